package upload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rescp17/daemonSend/pkg/fileInfo"
	"github.com/stretchr/testify/require"
)

// newTestFile writes size bytes to name inside a temp dir and returns it as a picked file.
func newTestFile(t *testing.T, name string, size int) fileInfo.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644))
	f, err := fileInfo.CreateFile(path)
	require.NoError(t, err)
	return f
}

// stubUploader counts calls and returns a fixed response.
type stubUploader struct {
	mu    sync.Mutex
	calls int
	resp  any
	err   error
}

func (s *stubUploader) Upload(ctx context.Context, file *fileInfo.File, recipient string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.resp, s.err
}

func (s *stubUploader) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
