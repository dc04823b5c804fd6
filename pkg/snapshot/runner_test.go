package snapshot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mwaltz/sitesnap/pkg/errors"
)

// fakeJob is a scriptable Job for runner tests.
type fakeJob struct {
	name  string
	creds []string
	run   func(ctx context.Context) error
}

func (f *fakeJob) Name() string          { return f.name }
func (f *fakeJob) Credentials() []string { return f.creds }
func (f *fakeJob) Run(ctx context.Context) error {
	if f.run == nil {
		return nil
	}
	return f.run(ctx)
}

func TestValidate(t *testing.T) {
	jobs := []Job{
		&fakeJob{name: "a", creds: []string{CredDiscordInvite}},
		&fakeJob{name: "b", creds: []string{CredCrowdinToken, CredDiscordInvite}},
		&fakeJob{name: "c"},
	}

	creds := Credentials{CredDiscordInvite: "abc", CredCrowdinToken: "tok"}
	if err := Validate(jobs, creds); err != nil {
		t.Errorf("Validate with full set failed: %v", err)
	}

	err := Validate(jobs, Credentials{CredCrowdinToken: "tok"})
	if !errors.Is(err, errors.ErrCodeMissingCredential) {
		t.Fatalf("error = %v, want MISSING_CREDENTIAL", err)
	}
	// The duplicated requirement is reported once.
	if got := err.Error(); strings.Count(got, CredDiscordInvite) != 1 {
		t.Errorf("error %q should name the missing credential exactly once", got)
	}
}

func TestRunner_SequentialStopsAtFirstError(t *testing.T) {
	var order []string
	boom := fmt.Errorf("boom")

	jobs := []Job{
		&fakeJob{name: "one", run: func(context.Context) error {
			order = append(order, "one")
			return nil
		}},
		&fakeJob{name: "two", run: func(context.Context) error {
			order = append(order, "two")
			return boom
		}},
		&fakeJob{name: "three", run: func(context.Context) error {
			order = append(order, "three")
			return nil
		}},
	}

	r := &Runner{Sequential: true}
	results, err := r.Run(context.Background(), jobs)
	if err != boom {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if len(order) != 2 || order[0] != "one" || order[1] != "two" {
		t.Errorf("order = %v", order)
	}
}

func TestRunner_ParallelAwaitsAllJobs(t *testing.T) {
	var mu sync.Mutex
	finished := make(map[string]bool)
	done := func(name string) {
		mu.Lock()
		finished[name] = true
		mu.Unlock()
	}

	boom := fmt.Errorf("boom")
	jobs := []Job{
		&fakeJob{name: "fail", run: func(context.Context) error {
			done("fail")
			return boom
		}},
		&fakeJob{name: "slow", run: func(ctx context.Context) error {
			// Outlives the failure; the runner must still wait for it.
			select {
			case <-time.After(50 * time.Millisecond):
			case <-ctx.Done():
			}
			done("slow")
			return nil
		}},
	}

	r := &Runner{}
	results, err := r.Run(context.Background(), jobs)
	if err != boom {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	mu.Lock()
	defer mu.Unlock()
	if !finished["fail"] || !finished["slow"] {
		t.Errorf("finished = %v, want both jobs awaited", finished)
	}
}

func TestRunner_ParallelFailureCancelsSiblings(t *testing.T) {
	canceled := make(chan struct{})

	jobs := []Job{
		&fakeJob{name: "fail", run: func(context.Context) error {
			return fmt.Errorf("boom")
		}},
		&fakeJob{name: "watcher", run: func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				close(canceled)
				return ctx.Err()
			case <-time.After(5 * time.Second):
				return fmt.Errorf("group context never canceled")
			}
		}},
	}

	r := &Runner{}
	if _, err := r.Run(context.Background(), jobs); err == nil {
		t.Fatal("expected error")
	}
	select {
	case <-canceled:
	default:
		t.Error("sibling did not observe cancellation")
	}
}
