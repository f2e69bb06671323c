package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/stest/stest"
	"github.com/ZanzyTHEbar/stest/stest/common"
	"github.com/ZanzyTHEbar/stest/stest/metadata"
	"github.com/ZanzyTHEbar/stest/stest/predicate"

	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sourcegraph/conc/stream"
	"github.com/spf13/afero"
)

// Options configures an Engine
type Options struct {
	// Fs is the filesystem candidates are looked up in; nil means the OS filesystem
	Fs afero.Fs
	// Identity decides readable, writable and executable; nil means the
	// real identity of this process
	Identity *metadata.Identity
	Logger   zerolog.Logger
	// Workers bounds concurrent lookups in Filter; 0 means one per CPU
	Workers int
}

// Candidate is a path to evaluate and the name printed when it passes
type Candidate struct {
	Path string
	Name string
}

// NewCandidate returns a candidate printed as given
func NewCandidate(path string) Candidate {
	return Candidate{Path: path, Name: path}
}

// TestResult records the result of one test against a candidate
type TestResult struct {
	ID     predicate.ID
	Result predicate.Result
}

// Outcome is the evaluation of one candidate. When ExpandableDirectory is
// set the candidate was not tested and Passed is false; its entries are the
// candidates instead.
type Outcome struct {
	Candidate           Candidate
	Metadata            metadata.FileMetadata
	Passed              bool
	ExpandableDirectory bool
	// Results lists tests in evaluation order up to the first failure
	Results []TestResult
}

// Engine evaluates a Selection against candidates
type Engine struct {
	selection Selection
	tests     []predicate.ID
	env       predicate.Env
	lookup    *metadata.Lookup
	exclude   *ignore.GitIgnore
	logger    zerolog.Logger
	workers   int
}

// New creates an engine for sel. Reference files are looked up once here.
func New(sel Selection, opts Options) (*Engine, error) {
	if opts.Workers < 0 {
		return nil, fmt.Errorf("workers %d: %w", opts.Workers, common.ErrInvalidWorkers)
	}
	workers := opts.Workers
	if workers == 0 {
		workers = max(internal.DefaultWorkers, 1)
	}

	exclude, err := compileExclude(sel.Exclude)
	if err != nil {
		return nil, err
	}

	identity := metadata.CurrentIdentity()
	if opts.Identity != nil {
		identity = *opts.Identity
	}

	e := &Engine{
		selection: sel,
		tests:     sel.Enabled(),
		env:       predicate.Env{Identity: identity},
		lookup:    metadata.NewLookup(opts.Fs, opts.Logger),
		exclude:   exclude,
		logger:    opts.Logger,
		workers:   workers,
	}

	if sel.newerEnabled() {
		e.env.Newer = e.resolveReference(predicate.NewerThan, sel.NewerThan)
	}
	if sel.olderEnabled() {
		e.env.Older = e.resolveReference(predicate.OlderThan, sel.OlderThan)
	}

	e.logger.Debug().
		Strs("tests", testNames(e.tests)).
		Bool("invert", sel.Invert).
		Bool("quiet", sel.Quiet).
		Bool("expand", sel.ExpandDirectories).
		Int("workers", workers).
		Msg("Engine configured")

	return e, nil
}

func compileExclude(patterns []string) (*ignore.GitIgnore, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			return nil, common.ErrInvalidPattern
		}
	}
	return ignore.CompileIgnoreLines(patterns...), nil
}

func (e *Engine) resolveReference(id predicate.ID, path string) metadata.FileMetadata {
	md := metadata.Missing(path)
	if path != "" {
		md = e.lookup.Lookup(path)
	}
	if !md.Exists {
		e.logger.Debug().
			Str("test", id.String()).
			Str("reference", path).
			Msg("Reference file missing, test is inapplicable")
	}
	return md
}

// Evaluate looks candidate up once and decides it. With directory expansion
// enabled a directory is reported as expandable instead of being tested.
func (e *Engine) Evaluate(c Candidate) Outcome {
	return e.evaluate(c, e.lookup.Lookup(c.Path), e.selection.ExpandDirectories)
}

func (e *Engine) evaluate(c Candidate, md metadata.FileMetadata, expand bool) Outcome {
	out := Outcome{Candidate: c, Metadata: md}
	if expand && md.IsDir() {
		out.ExpandableDirectory = true
		return out
	}

	combined := e.combine(md, &out)
	out.Passed = combined != e.selection.Invert
	return out
}

// combine ANDs the enabled tests, stopping at the first failure. A trivial
// selection passes anything, existing or not; otherwise existence is required.
func (e *Engine) combine(md metadata.FileMetadata, out *Outcome) bool {
	if len(e.tests) == 0 {
		return true
	}
	if !md.Exists {
		return false
	}

	for _, id := range e.tests {
		r := predicate.Evaluate(id, md, &e.env)
		out.Results = append(out.Results, TestResult{ID: id, Result: r})
		if !r.Allows() {
			return false
		}
	}
	return true
}

// Expand lists the immediate entries of a directory candidate in name order.
// Entries are printed by name alone.
func (e *Engine) Expand(c Candidate) ([]Candidate, error) {
	names, err := e.lookup.ReadDirNames(c.Path)
	if err != nil {
		return nil, err
	}

	children := make([]Candidate, 0, len(names))
	for _, name := range names {
		children = append(children, Candidate{
			Path: filepath.Join(c.Path, name),
			Name: name,
		})
	}
	return children, nil
}

func (e *Engine) excluded(path string) bool {
	return e.exclude != nil && e.exclude.MatchesPath(path)
}

// Filter evaluates every path and calls emit, in input order, for each
// candidate that passed unless the selection is quiet. Lookups run on up to
// Workers goroutines; emission order does not depend on them.
func (e *Engine) Filter(ctx context.Context, paths []string, emit func(Outcome) error) (*Summary, error) {
	summary := newSummary()
	metrics := common.NewEvaluationMetrics()

	var emitErr error
	s := stream.New().WithMaxGoroutines(e.workers)
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		c := NewCandidate(path)
		s.Go(func() stream.Callback {
			outcomes := e.run(ctx, c, metrics)
			return func() {
				for _, o := range outcomes {
					summary.record(o.Passed)
					if !o.Passed || e.selection.Quiet || emit == nil || emitErr != nil {
						continue
					}
					emitErr = emit(o)
				}
			}
		})
	}
	s.Wait()

	e.logger.Debug().
		Fields(metrics.GetMetrics()).
		Int("passed", summary.PassedCount()).
		Int("total", summary.Total()).
		Msg("Filter completed")

	if emitErr != nil {
		return summary, common.WrapError(emitErr, "failed to emit candidate")
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// run evaluates one input path, expanding it when it is a directory and
// expansion is enabled. Entries are never expanded again.
func (e *Engine) run(ctx context.Context, c Candidate, metrics *common.EvaluationMetrics) []Outcome {
	if ctx.Err() != nil {
		return nil
	}
	if e.excluded(c.Path) {
		metrics.RecordExclusion()
		return nil
	}

	md := e.lookup.Lookup(c.Path)
	if e.selection.ExpandDirectories && md.IsDir() {
		children, err := e.Expand(c)
		if err == nil {
			metrics.RecordExpansion()
			return e.runChildren(ctx, children, metrics)
		}
		// An unlistable directory is tested as itself.
		e.logger.Debug().Err(err).Str("path", c.Path).Msg("Directory expansion failed")
	}

	o := e.evaluate(c, md, false)
	metrics.RecordEvaluation(o.Passed, md.Exists)
	return []Outcome{o}
}

func (e *Engine) runChildren(ctx context.Context, children []Candidate, metrics *common.EvaluationMetrics) []Outcome {
	outcomes := make([]Outcome, 0, len(children))
	for _, child := range children {
		if ctx.Err() != nil {
			break
		}
		if e.excluded(child.Path) {
			metrics.RecordExclusion()
			continue
		}
		md := e.lookup.Lookup(child.Path)
		o := e.evaluate(child, md, false)
		metrics.RecordEvaluation(o.Passed, md.Exists)
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func testNames(ids []predicate.ID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.String())
	}
	return names
}
