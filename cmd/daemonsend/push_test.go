package main

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/rescp17/daemonSend/internal/daemontest"
	"github.com/rescp17/daemonSend/pkg/upload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestRunPushSuccess(t *testing.T) {
	daemon := daemontest.New(t, daemontest.Reply{Status: http.StatusAccepted, Body: `{"status": "transfer initiated"}`})
	var out bytes.Buffer

	err := runPush(context.Background(), upload.NewClient(daemon.Endpoint(), 0), writeFile(t, "report.pdf", 2048), "alice", &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Sending report.pdf (2.0 KB) to alice...")
	assert.Contains(t, out.String(), "File sent successfully")
	uploads := daemon.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "alice", uploads[0].Recipient)
}

func TestRunPushServerError(t *testing.T) {
	daemon := daemontest.New(t, daemontest.Reply{Status: http.StatusInternalServerError, Body: `{"message":"disk full"}`})
	var out bytes.Buffer

	err := runPush(context.Background(), upload.NewClient(daemon.Endpoint(), 0), writeFile(t, "report.pdf", 10), "bob", &out)
	require.EqualError(t, err, "disk full")
}

func TestRunPushNeedsRecipient(t *testing.T) {
	daemon := daemontest.New(t, daemontest.Reply{Status: http.StatusOK, Body: `{}`})
	var out bytes.Buffer

	err := runPush(context.Background(), upload.NewClient(daemon.Endpoint(), 0), writeFile(t, "report.pdf", 10), "", &out)
	require.EqualError(t, err, "Please enter a recipient")
	assert.Empty(t, daemon.Uploads())
	assert.Empty(t, out.String())
}

func TestRunPushMissingFile(t *testing.T) {
	var out bytes.Buffer

	err := runPush(context.Background(), upload.NewClient("http://127.0.0.1:0/upload", 0), filepath.Join(t.TempDir(), "nope"), "carol", &out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
