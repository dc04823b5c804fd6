package observability

import (
	"context"
	"testing"
	"time"
)

type recordingRunHooks struct {
	started   []string
	completed []string
}

func (r *recordingRunHooks) OnJobStart(_ context.Context, source string) {
	r.started = append(r.started, source)
}

func (r *recordingRunHooks) OnJobComplete(_ context.Context, source string, _ time.Duration, _ error) {
	r.completed = append(r.completed, source)
}

func TestSetRunHooks(t *testing.T) {
	defer Reset()

	rec := &recordingRunHooks{}
	SetRunHooks(rec)

	Run().OnJobStart(context.Background(), "aur")
	Run().OnJobComplete(context.Background(), "aur", time.Second, nil)

	if len(rec.started) != 1 || rec.started[0] != "aur" {
		t.Errorf("started = %v", rec.started)
	}
	if len(rec.completed) != 1 {
		t.Errorf("completed = %v", rec.completed)
	}
}

func TestSetRunHooks_NilIgnored(t *testing.T) {
	defer Reset()

	SetRunHooks(nil)
	if _, ok := Run().(NoopRunHooks); !ok {
		t.Error("nil registration must keep the no-op hooks")
	}
}

func TestReset(t *testing.T) {
	SetRunHooks(&recordingRunHooks{})
	SetHTTPHooks(nil)
	Reset()

	if _, ok := Run().(NoopRunHooks); !ok {
		t.Error("Reset must restore no-op run hooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset must restore no-op HTTP hooks")
	}
}
