package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/rescp17/daemonSend/pkg/fileInfo"
)

// Form field names the daemon reads.
const (
	FieldFile      = "file"
	FieldRecipient = "recipient"
)

// loggingTransport is an http.RoundTripper that logs every request it forwards.
type loggingTransport struct {
	next http.RoundTripper
}

// RoundTrip passes the request to the next transport and logs the result.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		slog.Warn("daemon request failed", "method", req.Method, "url", req.URL.String(), "duration", time.Since(start), "error", err)
		return nil, err
	}
	slog.Info("daemon responded", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}

// Client posts files to the daemon's upload endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a client for endpoint. A zero timeout means requests
// run until the daemon answers or the connection fails.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &loggingTransport{next: http.DefaultTransport},
		},
		endpoint: endpoint,
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Upload sends file and recipient as a two part multipart form and returns
// the decoded JSON body of a successful response. A non-2xx response yields
// a *ServerError.
func (c *Client) Upload(ctx context.Context, file *fileInfo.File, recipient string) (any, error) {
	content, err := file.Open()
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		defer content.Close()
		pw.CloseWithError(writeForm(form, file, content, recipient))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			slog.Debug("daemon error body is not JSON", "status", resp.StatusCode, "error", err)
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errInvalidBody(err)
	}
	return body, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeForm(form *multipart.Writer, file *fileInfo.File, content io.Reader, recipient string) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FieldFile, quoteEscaper.Replace(file.Name)))
	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	part, err := form.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to copy %s into form: %w", file.Name, err)
	}
	if err := form.WriteField(FieldRecipient, recipient); err != nil {
		return err
	}
	return form.Close()
}
