package upload

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rescp17/daemonSend/internal/daemontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientUploadSendsTwoPartForm(t *testing.T) {
	daemon := daemontest.New(t, daemontest.Reply{Status: http.StatusOK, Body: `{"id":"abc"}`})
	file := newTestFile(t, "report.pdf", 2048)

	client := NewClient(daemon.Endpoint(), 0)
	body, err := client.Upload(context.Background(), &file, "alice")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "abc"}, body)

	uploads := daemon.Uploads()
	require.Len(t, uploads, 1)
	up := uploads[0]
	assert.Equal(t, []string{FieldFile, FieldRecipient}, up.Fields)
	assert.Equal(t, "report.pdf", up.FileName)
	assert.Len(t, up.Content, 2048)
	assert.Equal(t, "alice", up.Recipient)
	assert.Equal(t, file.MimeType, up.FileContentType)
}

func TestClientUploadKeepsUTF8Recipient(t *testing.T) {
	daemon := daemontest.New(t, daemontest.Reply{Status: http.StatusAccepted, Body: `{"status": "transfer initiated"}`})
	file := newTestFile(t, "notes.txt", 3)

	_, err := NewClient(daemon.Endpoint(), 0).Upload(context.Background(), &file, "Zoë 東京")
	require.NoError(t, err)
	assert.Equal(t, "Zoë 東京", daemon.Uploads()[0].Recipient)
}

func TestClientUploadErrors(t *testing.T) {
	tests := []struct {
		name        string
		reply       daemontest.Reply
		wantStatus  int
		wantMessage string
	}{
		{"message field", daemontest.Reply{Status: http.StatusInternalServerError, Body: `{"message":"disk full"}`}, 500, "disk full"},
		{"no message field", daemontest.Reply{Status: http.StatusBadRequest, Body: `{"error":"nope"}`}, 400, "Upload failed"},
		{"empty message", daemontest.Reply{Status: http.StatusBadRequest, Body: `{"message":""}`}, 400, "Upload failed"},
		{"not json", daemontest.Reply{Status: http.StatusBadGateway, Body: "bad gateway"}, 502, "Upload failed"},
		{"empty body", daemontest.Reply{Status: http.StatusServiceUnavailable}, 503, "Upload failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			daemon := daemontest.New(t, tt.reply)
			file := newTestFile(t, "a.bin", 16)

			_, err := NewClient(daemon.Endpoint(), 0).Upload(context.Background(), &file, "bob")
			var serverErr *ServerError
			require.True(t, errors.As(err, &serverErr), "got %v", err)
			assert.Equal(t, tt.wantStatus, serverErr.StatusCode)
			assert.Equal(t, tt.wantMessage, err.Error())
		})
	}
}

func TestClientUploadSuccessBodyMustBeJSON(t *testing.T) {
	daemon := daemontest.New(t, daemontest.Reply{Status: http.StatusOK, Body: "ok"})
	file := newTestFile(t, "a.bin", 16)

	_, err := NewClient(daemon.Endpoint(), 0).Upload(context.Background(), &file, "bob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response body")
	assert.Len(t, daemon.Uploads(), 1)
}

func TestClientUploadTransportError(t *testing.T) {
	daemon := daemontest.New(t, daemontest.Reply{Status: http.StatusOK, Body: `{}`})
	endpoint := daemon.Endpoint()
	daemon.Close()
	file := newTestFile(t, "a.bin", 16)

	_, err := NewClient(endpoint, 0).Upload(context.Background(), &file, "bob")
	require.Error(t, err)
	var serverErr *ServerError
	assert.False(t, errors.As(err, &serverErr))
	assert.NotEmpty(t, err.Error())
}

func TestClientUploadMissingFile(t *testing.T) {
	daemon := daemontest.New(t, daemontest.Reply{Status: http.StatusOK, Body: `{}`})
	file := newTestFile(t, "a.bin", 16)
	file.Path = file.Path + ".gone"

	_, err := NewClient(daemon.Endpoint(), 0).Upload(context.Background(), &file, "bob")
	require.Error(t, err)
	assert.Empty(t, daemon.Uploads())
}
