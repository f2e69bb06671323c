package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	internal "github.com/ZanzyTHEbar/stest/stest"
	"github.com/ZanzyTHEbar/stest/stest/common"
	"github.com/ZanzyTHEbar/stest/stest/config"
	"github.com/ZanzyTHEbar/stest/stest/engine"
	"github.com/ZanzyTHEbar/stest/stest/predicate"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const longDescription = `stest takes a list of files and filters by the files' properties, analogous
to test. Files which pass all tests are printed to stdout. If no files are
given, stest reads files from stdin.

The exit status is 0 if at least one file passed, 1 if none did and 2 on error.`

// flagValues holds the parsed command line
type flagValues struct {
	switches   map[predicate.ID]*bool
	references map[predicate.ID]*string

	contents bool
	quiet    bool
	invert   bool

	configPath string
}

// NewRootCommand builds the stest command. Test flags are generated from
// predicate.Table.
func NewRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	fv := &flagValues{
		switches:   make(map[predicate.ID]*bool),
		references: make(map[predicate.ID]*string),
	}

	cmd := &cobra.Command{
		Use:               internal.DefaultAppName + " [-abcdefghlpqrsuvwx] [-n file] [-o file] [file...]",
		Short:             "filter a list of files by properties",
		Long:              longDescription,
		Version:           internal.DefaultVersion,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fv, args, stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.SortFlags = false

	for _, def := range predicate.Table {
		if def.TakesFile {
			fv.references[def.ID] = flags.StringP(def.Name, def.Short, "", def.Usage)
		} else {
			fv.switches[def.ID] = flags.BoolP(def.Name, def.Short, false, def.Usage)
		}
	}

	flags.BoolVarP(&fv.contents, "contents", "l", false, "Test the contents of a directory given as an argument.")
	flags.BoolVarP(&fv.quiet, "quiet", "q", false, "No files are printed, only the exit status is returned.")
	flags.BoolVarP(&fv.invert, "invert", "v", false, "Invert the sense of tests, only failing files pass.")

	flags.StringSlice("exclude", nil, "Skip files matching a gitignore-style `pattern` (repeatable).")
	flags.Int("workers", internal.DefaultWorkers, "Number of concurrent metadata lookups.")
	flags.String("log-level", internal.DefaultLogLevel, "Log `level` written to stderr.")
	flags.StringVar(&fv.configPath, "config", "", "Read settings from config `file`.")

	// -h is the symlink test, so help only has a long form.
	flags.Bool("help", false, "Show help for stest.")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(c.UsageString())
		return common.WithExitCode(err, common.ExitError)
	})

	return cmd
}

// selection turns parsed flags and config into an engine selection. A
// reference flag given an empty value still enables its comparison.
func (fv *flagValues) selection(cfg *config.Config, flags *pflag.FlagSet) engine.Selection {
	sel := engine.Selection{
		Invert:            fv.invert,
		Quiet:             fv.quiet,
		ExpandDirectories: fv.contents,
		Exclude:           cfg.Exclude,
	}
	for id, enabled := range fv.switches {
		if *enabled {
			sel.Tests = sel.Tests.With(id)
		}
	}
	if ref := fv.references[predicate.NewerThan]; ref != nil {
		sel.NewerThan = *ref
		sel.HasNewer = flags.Changed(predicate.NewerThan.String())
	}
	if ref := fv.references[predicate.OlderThan]; ref != nil {
		sel.OlderThan = *ref
		sel.HasOlder = flags.Changed(predicate.OlderThan.String())
	}
	return sel
}

func run(cmd *cobra.Command, fv *flagValues, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.LoadConfig(fv.configPath, cmd.Flags())
	if err != nil {
		return common.WithExitCode(errors.Wrap(err, "loading configuration"), common.ExitError)
	}

	logger := internal.GetLogger(stderr, cfg.Log.Level)

	eng, err := engine.New(fv.selection(cfg, cmd.Flags()), engine.Options{
		Logger:  logger,
		Workers: cfg.Workers,
	})
	if err != nil {
		return common.WithExitCode(errors.Wrap(err, "configuring tests"), common.ExitError)
	}

	paths := args
	if len(paths) == 0 {
		paths, err = ReadCandidates(stdin)
		if err != nil {
			return common.WithExitCode(err, common.ExitError)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := bufio.NewWriter(stdout)
	summary, err := eng.Filter(ctx, paths, func(o engine.Outcome) error {
		_, werr := fmt.Fprintln(out, o.Candidate.Name)
		return werr
	})
	if flushErr := out.Flush(); err == nil && flushErr != nil {
		err = common.WrapError(flushErr, "failed to write output")
	}
	if err != nil {
		return common.WithExitCode(err, common.ExitError)
	}

	logger.Debug().
		Int("passed", summary.PassedCount()).
		Int("total", summary.Total()).
		Msg("Run finished")

	if !summary.AnyPassed() {
		return common.WithExitCode(common.ErrNoCandidatePassed, common.ExitNonePass)
	}
	return nil
}

// Execute runs stest with args and returns the process exit code
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !common.IsSilent(err) {
		fmt.Fprintf(stderr, "%s: %v\n", internal.DefaultAppName, err)
	}
	return common.GetExitCode(err)
}
