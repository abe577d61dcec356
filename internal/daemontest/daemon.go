// Package daemontest runs an in-process stand-in for the upload daemon.
package daemontest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

const UploadPath = "/upload"

// Upload is what the daemon saw in one request.
type Upload struct {
	FileName        string
	FileContentType string
	Content         []byte
	Recipient       string
	// Fields lists form part names in the order they arrived.
	Fields []string
}

// Reply is the canned response for one request.
type Reply struct {
	Status int
	Body   string
}

// Daemon records uploads and answers them with a canned Reply.
type Daemon struct {
	*httptest.Server

	mu      sync.Mutex
	uploads []Upload
	reply   Reply
	handler http.HandlerFunc
}

// New starts a daemon that answers every upload with reply.
// It is closed when the test ends.
func New(t testing.TB, reply Reply) *Daemon {
	t.Helper()
	d := &Daemon{reply: reply}

	r := chi.NewRouter()
	r.Post(UploadPath, d.handleUpload)
	d.Server = httptest.NewServer(r)
	t.Cleanup(d.Server.Close)
	return d
}

// Endpoint is the full upload URL.
func (d *Daemon) Endpoint() string {
	return d.URL + UploadPath
}

// SetHandler replaces the canned reply. h runs after the upload is recorded.
func (d *Daemon) SetHandler(h http.HandlerFunc) {
	d.mu.Lock()
	d.handler = h
	d.mu.Unlock()
}

// Uploads returns a copy of everything received so far.
func (d *Daemon) Uploads() []Upload {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Upload, len(d.uploads))
	copy(out, d.uploads)
	return out
}

func (d *Daemon) handleUpload(w http.ResponseWriter, r *http.Request) {
	reader, err := r.MultipartReader()
	if err != nil {
		http.Error(w, `{"message":"not a multipart form"}`, http.StatusBadRequest)
		return
	}

	var up Upload
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			http.Error(w, `{"message":"broken form"}`, http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(part)
		if err != nil {
			http.Error(w, `{"message":"broken form"}`, http.StatusBadRequest)
			return
		}
		up.Fields = append(up.Fields, part.FormName())
		switch part.FormName() {
		case "file":
			up.FileName = part.FileName()
			up.FileContentType = part.Header.Get("Content-Type")
			up.Content = data
		case "recipient":
			up.Recipient = string(data)
		}
	}

	d.mu.Lock()
	d.uploads = append(d.uploads, up)
	reply, handler := d.reply, d.handler
	d.mu.Unlock()

	if handler != nil {
		handler(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	_, _ = io.WriteString(w, reply.Body)
}
