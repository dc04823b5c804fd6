package snapshot

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mwaltz/sitesnap/pkg/errors"
	"github.com/mwaltz/sitesnap/pkg/observability"
)

// Result records the outcome of one job for the run summary.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Runner executes a set of source jobs. In parallel mode every job starts
// at once in an errgroup; the first failure cancels the group context and
// siblings unwind at their next HTTP call. In sequential mode jobs run in
// declared order and the first failure stops the run.
type Runner struct {
	Logger     *log.Logger
	Sequential bool
}

// Validate checks that every credential required by the job set is present.
// It returns a MISSING_CREDENTIAL error naming all absent credentials, so
// the run can abort with a usage message before any network activity.
func Validate(jobs []Job, creds Credentials) error {
	seen := make(map[string]bool)
	var missing []string
	for _, j := range jobs {
		for _, name := range creds.Missing(j.Credentials()...) {
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrCodeMissingCredential,
			"missing credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Run executes all jobs to completion and returns per-job results along
// with the first fatal error, if any. The runner always awaits every
// started job before returning.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	runID := uuid.NewString()[:8]
	logger = logger.With("run", runID)

	results := make([]Result, len(jobs))

	if r.Sequential {
		for i, job := range jobs {
			results[i] = r.runOne(ctx, logger, job)
			if results[i].Err != nil {
				return results[:i+1], results[i].Err
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			results[i] = r.runOne(gctx, logger, job)
			return results[i].Err
		})
	}
	err := g.Wait()
	return results, err
}

func (r *Runner) runOne(ctx context.Context, logger *log.Logger, job Job) Result {
	jl := logger.With("source", job.Name())
	jl.Debug("starting job")
	observability.Run().OnJobStart(ctx, job.Name())

	start := time.Now()
	err := job.Run(log.WithContext(ctx, jl))
	elapsed := time.Since(start).Round(time.Millisecond)
	observability.Run().OnJobComplete(ctx, job.Name(), elapsed, err)

	if err != nil {
		jl.Error("job failed", "err", err, "duration", elapsed)
	} else {
		jl.Info("job finished", "duration", elapsed)
	}
	return Result{Name: job.Name(), Err: err, Duration: elapsed}
}
