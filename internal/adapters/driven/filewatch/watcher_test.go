package filewatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 50 * time.Millisecond

func TestWatch_ReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.csv")
	require.NoError(t, os.WriteFile(path, []byte("project_id\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := Watch(ctx, path, testDebounce)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, []byte("project_id\n1\n"), 0o600)
	}()

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}
}

func TestWatch_CoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := Watch(ctx, path, 200*time.Millisecond)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('0' + i)}, 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}

	select {
	case <-changes:
		t.Fatal("burst produced more than one notification")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := Watch(ctx, path, testDebounce)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	select {
	case <-changes:
		t.Fatal("unexpected notification for another file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.csv")

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := Watch(ctx, path, testDebounce)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "projects.csv"), 0)

	assert.Error(t, err)
}
