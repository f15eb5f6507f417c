package campaign

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/brutalist/internal/coverage"
	"github.com/roach88/brutalist/internal/guard"
	"github.com/roach88/brutalist/internal/mutation"
	"github.com/roach88/brutalist/internal/predicate"
	"github.com/roach88/brutalist/internal/snapshot"
)

// Option configures a Run.
type Option func(*runner)

// WithLogger sets the logger. Runs are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) { r.logger = logger }
}

// WithWorkers bounds the number of trials evaluated concurrently.
// Values below 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(r *runner) { r.workers = n }
}

// WithClock sets the source of trial sequence numbers.
func WithClock(seq Sequencer) Option {
	return func(r *runner) { r.clock = seq }
}

// WithRunIDs sets the run ID source.
func WithRunIDs(gen RunIDGenerator) Option {
	return func(r *runner) { r.ids = gen }
}

type runner struct {
	logger  *slog.Logger
	workers int
	clock   Sequencer
	ids     RunIDGenerator
}

// prepared is a campaign that passed ingress validation.
type prepared struct {
	base       mutation.Snapshot
	invariants []predicate.Named
	trials     []Trial
	ops        [][]mutation.Operator
}

// Run executes every trial of c and returns the aggregated result.
//
// Errors are returned for guard violations (*guard.ConstraintError),
// malformed operators or invariants, invariants that fail on the base
// (*BaselineError) and context cancellation. Individual trials never fail.
func Run(ctx context.Context, c *Campaign, opts ...Option) (*Result, error) {
	r := &runner{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  NewClock(),
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = runtime.GOMAXPROCS(0)
	}

	p, err := prepare(c)
	if err != nil {
		return nil, err
	}

	baseFingerprint, err := snapshot.Fingerprint(p.base)
	if err != nil {
		return nil, err
	}

	runID := r.ids.Generate()
	r.logger.Info("campaign starting",
		"campaign", c.Name,
		"run_id", runID,
		"trials", len(p.trials),
		"invariants", len(p.invariants),
		"workers", r.workers,
	)

	// Sequence numbers are assigned in declaration order before dispatch so
	// that results do not depend on scheduling.
	seqs := make([]int64, len(p.trials))
	for i := range seqs {
		seqs[i] = r.clock.Next()
	}

	results := make([]TrialResult, len(p.trials))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range p.trials {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := runTrial(runID, seqs[i], p.trials[i].Name, p.base, p.ops[i], p.invariants)
			if err != nil {
				return err
			}
			results[i] = res

			r.logger.Debug("trial finished",
				"trial", res.Name,
				"seq", res.Seq,
				"caught", res.Caught,
				"detected_by", res.DetectedBy,
				"equivalent", res.Equivalent,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := newResult(runID, c, baseFingerprint, results)
	if err != nil {
		return nil, err
	}

	r.logger.Info("campaign finished",
		"campaign", c.Name,
		"run_id", runID,
		"score", result.Score.Percent(),
		"acceptable", result.Score.Acceptable(),
	)
	return result, nil
}

// prepare performs every ingress check: guard bounds, operator parsing,
// invariant compilation and the baseline check.
func prepare(c *Campaign) (*prepared, error) {
	v := guard.NewValidator(c.Constraints())

	if err := guard.ValidateBatch(v, c.Trials); err != nil {
		return nil, fmt.Errorf("campaign %q: trials: %w", c.Name, err)
	}

	ops := make([][]mutation.Operator, len(c.Trials))
	for i, tr := range c.Trials {
		if err := guard.ValidateRun(v, tr.Mutations); err != nil {
			return nil, fmt.Errorf("trial %q: %w", tr.Name, err)
		}
		parsed, err := mutation.ParseOperators(tr.Mutations)
		if err != nil {
			return nil, fmt.Errorf("trial %q: %w", tr.Name, err)
		}
		ops[i] = parsed
	}

	invariants, err := predicate.CompileAll(c.Invariants)
	if err != nil {
		return nil, err
	}

	base, err := c.BaseSnapshot()
	if err != nil {
		return nil, fmt.Errorf("base: %w", err)
	}

	if failing := predicate.Detects(mutation.NewTester(base), invariants); len(failing) > 0 {
		return nil, &BaselineError{Invariants: failing}
	}

	return &prepared{
		base:       base,
		invariants: invariants,
		trials:     c.Trials,
		ops:        ops,
	}, nil
}

func runTrial(runID string, seq int64, name string, base mutation.Snapshot, ops []mutation.Operator, invariants []predicate.Named) (TrialResult, error) {
	tester := mutation.NewTester(base)
	tester.ApplyAll(ops...)
	state := tester.State()

	fingerprint, err := snapshot.Fingerprint(state)
	if err != nil {
		return TrialResult{}, fmt.Errorf("trial %q: %w", name, err)
	}

	opStrings := make([]string, len(ops))
	for i, op := range ops {
		opStrings[i] = op.String()
	}

	// Fingerprints normalize strings, so equivalence compares raw bytes.
	equivalent := maps.Equal(state, base)

	detected := predicate.Detects(tester, invariants)
	return TrialResult{
		ID:          snapshot.TrialID(runID, seq, opStrings),
		Seq:         seq,
		Name:        name,
		Operators:   opStrings,
		Caught:      len(detected) > 0,
		DetectedBy:  detected,
		Fingerprint: fingerprint,
		Equivalent:  equivalent,
	}, nil
}

func newResult(runID string, c *Campaign, baseFingerprint string, trials []TrialResult) (*Result, error) {
	caught := 0
	report := coverage.NewReport(fmt.Sprintf("Mutation Coverage: %s", c.Name))
	for _, tr := range trials {
		if tr.Caught {
			caught++
		}
		report.AddItem(tr.Name, tr.Caught)
	}

	score, err := mutation.CalculateScore(caught, len(trials))
	if err != nil {
		return nil, err
	}

	return &Result{
		RunID:           runID,
		Campaign:        c.Name,
		BaseFingerprint: baseFingerprint,
		Threshold:       c.PassThreshold(),
		Trials:          trials,
		Score:           score,
		Report:          report,
	}, nil
}
