package jobmgr

import (
	"context"
	"testing"
	"time"
)

func TestStartAsyncRejectsDuplicateName(t *testing.T) {
	m := NewManager(nil)

	release := make(chan struct{})
	started := make(chan struct{})
	err := m.StartAsync("sweep", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})
	if err != nil {
		t.Fatalf("StartAsync() error = %v", err)
	}
	<-started

	if err := m.StartAsync("sweep", func(ctx context.Context) error { return nil }); err == nil {
		t.Fatal("StartAsync() with duplicate name should fail")
	}
	if !m.Running("sweep") {
		t.Fatal("Running(sweep) = false, want true")
	}

	close(release)
	waitGone(t, m, "sweep")
}

func TestStopCancelsJob(t *testing.T) {
	m := NewManager(nil)

	canceled := make(chan struct{})
	started := make(chan struct{})
	err := m.StartAsync("broadcast", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(canceled)
		return ctx.Err()
	})
	if err != nil {
		t.Fatalf("StartAsync() error = %v", err)
	}
	<-started

	if err := m.Stop("broadcast"); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	select {
	case <-canceled:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not observe cancellation")
	}

	if err := m.Stop("broadcast"); err == nil {
		t.Fatal("Stop() on stopped job should fail")
	}
}

func TestReporterReceivesLifecycle(t *testing.T) {
	events := make(chan string, 4)
	m := NewManager(func(msg string) { events <- msg })

	if err := m.StartAsync("ok", func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("StartAsync() error = %v", err)
	}

	want := []string{"running:ok", "done:ok"}
	for _, w := range want {
		select {
		case got := <-events:
			if got != w {
				t.Fatalf("reporter message = %q, want %q", got, w)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", w)
		}
	}
}

func TestStatus(t *testing.T) {
	m := NewManager(nil)
	if got := m.Status(); got != "No jobs are running." {
		t.Fatalf("Status() = %q", got)
	}
}

func waitGone(t *testing.T, m *Manager, name string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !m.Running(name) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %q still running", name)
}
