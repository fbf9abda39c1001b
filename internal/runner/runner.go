// Package runner evaluates every checker of a checklist. Each evaluation
// is a pure function sharing nothing with its siblings, so the runner
// fans them out one goroutine per checker with zero locking discipline;
// output order is checklist order regardless of completion order.
package runner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"signoff/internal/checker"
	"signoff/internal/checklist"
	"signoff/internal/findings"
)

// DefaultConcurrency bounds the evaluation fan-out.
const DefaultConcurrency = 8

// Outcome is one checker's evaluation plus its checklist identity.
type Outcome struct {
	ID          string
	Description string
	checker.Evaluation
}

// RunResult is the aggregate of one checklist run.
type RunResult struct {
	RunID     string
	Checklist string
	StartedAt time.Time
	Duration  time.Duration
	Outcomes  []Outcome
	Passed    int
	Failed    int
}

// Runner evaluates checklists.
type Runner struct {
	log         *zap.Logger
	concurrency int
}

// New returns a runner logging through log. A nil logger is replaced with
// a no-op logger so library callers need no zap setup.
func New(log *zap.Logger, concurrency int) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Runner{log: log, concurrency: concurrency}
}

// Run evaluates all checkers of cl against the findings document. The
// engine itself has no cancellation concept; the context only bounds the
// fan-out, so checkers not yet started when ctx is done are skipped and
// reported through the returned error.
func (r *Runner) Run(ctx context.Context, cl *checklist.Checklist, doc *findings.Document) (*RunResult, error) {
	res := &RunResult{
		RunID:     uuid.NewString(),
		Checklist: cl.Name,
		StartedAt: time.Now(),
		Outcomes:  make([]Outcome, len(cl.Checkers)),
	}
	r.log.Info("starting checklist run",
		zap.String("run_id", res.RunID),
		zap.String("checklist", cl.Name),
		zap.Int("checkers", len(cl.Checkers)))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, ck := range cl.Checkers {
		i, ck := i, ck
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ev := checker.Evaluate(ck.Spec, doc.For(ck.ID))
			res.Outcomes[i] = Outcome{ID: ck.ID, Description: ck.Description, Evaluation: ev}
			r.log.Debug("checker evaluated",
				zap.String("checker", ck.ID),
				zap.Bool("pass", ev.Pass),
				zap.String("reason", ev.Reason))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, o := range res.Outcomes {
		if o.Pass {
			res.Passed++
		} else {
			res.Failed++
		}
	}
	res.Duration = time.Since(res.StartedAt)
	r.log.Info("checklist run complete",
		zap.String("run_id", res.RunID),
		zap.Int("passed", res.Passed),
		zap.Int("failed", res.Failed),
		zap.Duration("duration", res.Duration))
	return res, nil
}
