package ml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestArtifactWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	columns := filepath.Join(dir, "columns.json")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(columns, []byte(`{"data_columns":[]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	watcher, err := NewArtifactWatcher(zaptest.NewLogger(t), columns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	if err := os.WriteFile(other, []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(columns, []byte(`{"data_columns":["a","b","c"]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	want, _ := filepath.Abs(columns)
	select {
	case got := <-watcher.Changes():
		if got != want {
			t.Fatalf("expected change for %s, got %s", want, got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}
