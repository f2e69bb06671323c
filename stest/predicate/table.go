package predicate

import (
	"fmt"

	"github.com/ZanzyTHEbar/stest/stest/common"
	"github.com/ZanzyTHEbar/stest/stest/metadata"
)

// ID identifies one file-property test
type ID int

const (
	Hidden ID = iota
	BlockSpecial
	CharSpecial
	Directory
	Exists
	RegularFile
	SetGroupID
	SymbolicLink
	NewerThan
	OlderThan
	NamedPipe
	Readable
	NonEmpty
	SetUserID
	Writable
	Executable
)

// Env is the context shared by every test of one run: the identity used for
// permission checks and the metadata of the reference files. A reference
// that was not configured or does not exist has Exists unset.
type Env struct {
	Identity metadata.Identity
	Newer    metadata.FileMetadata
	Older    metadata.FileMetadata
}

// Func evaluates one test against candidate metadata
type Func func(md metadata.FileMetadata, env *Env) Result

// Definition describes a test: how it is selected on the command line and
// how it is evaluated.
type Definition struct {
	ID    ID
	Short string
	Name  string
	Usage string
	// TakesFile marks tests configured with a reference file rather than a switch
	TakesFile bool
	Eval      Func
}

// Table lists every test in evaluation order. The CLI flags and the man page
// are generated from it.
var Table = []Definition{
	{ID: Hidden, Short: "a", Name: "hidden", Usage: "Test hidden files.", Eval: hidden},
	{ID: BlockSpecial, Short: "b", Name: "block", Usage: "Test that files are block specials.", Eval: isType(metadata.TypeBlockDevice)},
	{ID: CharSpecial, Short: "c", Name: "char", Usage: "Test that files are character specials.", Eval: isType(metadata.TypeCharDevice)},
	{ID: Directory, Short: "d", Name: "dir", Usage: "Test that files are directories.", Eval: isType(metadata.TypeDirectory)},
	{ID: Exists, Short: "e", Name: "exists", Usage: "Test that files exist. Existence is always tested, so this has no effect.", Eval: exists},
	{ID: RegularFile, Short: "f", Name: "file", Usage: "Test that files are regular files.", Eval: isType(metadata.TypeRegular)},
	{ID: SetGroupID, Short: "g", Name: "setgid", Usage: "Test that files have their set-group-ID flag set.", Eval: setGroupID},
	{ID: SymbolicLink, Short: "h", Name: "symlink", Usage: "Test that files are symbolic links.", Eval: symbolicLink},
	{ID: NewerThan, Short: "n", Name: "newer", Usage: "Test that files are newer than `file`. Ignored if file does not exist.", TakesFile: true, Eval: newerThan},
	{ID: OlderThan, Short: "o", Name: "older", Usage: "Test that files are older than `file`. Ignored if file does not exist.", TakesFile: true, Eval: olderThan},
	{ID: NamedPipe, Short: "p", Name: "pipe", Usage: "Test that files are named pipes.", Eval: isType(metadata.TypeNamedPipe)},
	{ID: Readable, Short: "r", Name: "readable", Usage: "Test that files are readable.", Eval: permits(metadata.Read)},
	{ID: NonEmpty, Short: "s", Name: "nonempty", Usage: "Test that files are not empty.", Eval: nonEmpty},
	{ID: SetUserID, Short: "u", Name: "setuid", Usage: "Test that files have their set-user-ID flag set.", Eval: setUserID},
	{ID: Writable, Short: "w", Name: "writable", Usage: "Test that files are writable.", Eval: permits(metadata.Write)},
	{ID: Executable, Short: "x", Name: "executable", Usage: "Test that files are executable.", Eval: permits(metadata.Execute)},
}

// Lookup returns the definition for id
func Lookup(id ID) (Definition, bool) {
	if id < 0 || int(id) >= len(Table) {
		return Definition{}, false
	}
	return Table[id], true
}

// ByName returns the test with the given long name
func ByName(name string) (ID, error) {
	for _, def := range Table {
		if def.Name == name {
			return def.ID, nil
		}
	}
	return -1, fmt.Errorf("%q: %w", name, common.ErrUnknownTest)
}

func (id ID) String() string {
	if def, ok := Lookup(id); ok {
		return def.Name
	}
	return fmt.Sprintf("test(%d)", int(id))
}

// Evaluate runs test id against md
func Evaluate(id ID, md metadata.FileMetadata, env *Env) Result {
	def, ok := Lookup(id)
	if !ok {
		return Fail
	}
	return def.Eval(md, env)
}
