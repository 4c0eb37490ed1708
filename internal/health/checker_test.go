package health

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/moodmuse-app/moodmuse/internal/infra/sqlite"
)

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewChecker(db, dir, "default")
}

func TestCheckerAllHealthy(t *testing.T) {
	c := newTestChecker(t)
	c.runAll(context.Background())

	if !c.IsHealthy() {
		t.Fatalf("expected healthy checker, statuses: %+v", c.Statuses())
	}
	statuses := c.Statuses()
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	for _, s := range statuses {
		if !s.Healthy {
			t.Errorf("check %s unhealthy: %s", s.Name, s.Error)
		}
		if s.CheckedAt.IsZero() {
			t.Errorf("check %s has zero CheckedAt", s.Name)
		}
	}
}

func TestCheckerFailingCheck(t *testing.T) {
	c := newTestChecker(t)
	recovered := false
	c.checks = append(c.checks, Check{
		Name: "always_fails",
		CheckFn: func(ctx context.Context) error {
			return errors.New("boom")
		},
		RecoverFn: func(ctx context.Context) error {
			recovered = true
			return nil
		},
	})
	c.runAll(context.Background())

	if c.IsHealthy() {
		t.Fatal("expected unhealthy checker")
	}
	if !recovered {
		t.Error("recovery function was not invoked")
	}
	var found bool
	for _, s := range c.Statuses() {
		if s.Name == "always_fails" {
			found = true
			if s.Healthy {
				t.Error("failing check reported healthy")
			}
			if s.Error != "boom" {
				t.Errorf("error = %q, want boom", s.Error)
			}
		}
	}
	if !found {
		t.Error("always_fails status missing")
	}
}

func TestCheckerRunStopsOnContextCancel(t *testing.T) {
	c := newTestChecker(t)
	c.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	// Wait for at least one full pass
	deadline := time.After(2 * time.Second)
	for len(c.Statuses()) == 0 {
		select {
		case <-deadline:
			t.Fatal("checker never produced statuses")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancel")
	}
}

func TestCheckDataDirMissingIsHealthy(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "not-created-yet")
	if err := checkDataDir(dir); err != nil {
		t.Fatalf("missing dir should be healthy: %v", err)
	}
}

func TestCheckDataDirNotADirectory(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	file := filepath.Join(dir, "state.db")
	if err := checkDataDir(file); err == nil {
		t.Fatal("expected error for regular file")
	}
}
