// Package client talks to the journal backend's REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/media"
)

// Client is a thin JSON-over-HTTP client for the journal backend.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for the backend rooted at base, e.g. http://localhost:5001.
func New(base string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return nil, errors.Wrap(err, "client: parse base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("client: unsupported scheme %q", u.Scheme)
	}
	c := &Client{
		base: strings.TrimRight(u.String(), "/"),
		http: &http.Client{Timeout: 30 * time.Second},
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Filter narrows the entry list. Empty fields are not sent.
type Filter struct {
	Tags  []string
	Start string
	End   string
}

func (f Filter) IsZero() bool {
	return len(f.Tags) == 0 && f.Start == "" && f.End == ""
}

func (f Filter) query() url.Values {
	q := url.Values{}
	if len(f.Tags) > 0 {
		q.Set("tag", strings.Join(f.Tags, ","))
	}
	if f.Start != "" {
		q.Set("start_date", f.Start)
	}
	if f.End != "" {
		q.Set("end_date", f.End)
	}
	return q
}

// NewEntry is the payload of a create call.
type NewEntry struct {
	Title     string
	Content   string
	EntryDate string
	Tags      []string
}

// EntryUpdate is the JSON payload of an update call.
type EntryUpdate struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	EntryDate string `json:"entry_date"`
}

// Tags lists the known tags, most used first.
func (c *Client) Tags(ctx context.Context) ([]entry.Tag, error) {
	var tags []entry.Tag
	if err := c.doJSON(ctx, "list tags", http.MethodGet, "/api/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// Entries lists entries matching f.
func (c *Client) Entries(ctx context.Context, f Filter) ([]*entry.Entry, error) {
	path := "/api/entries"
	if q := f.query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	var entries []*entry.Entry
	if err := c.doJSON(ctx, "list entries", http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Entry fetches one entry.
func (c *Client) Entry(ctx context.Context, id string) (*entry.Entry, error) {
	e := &entry.Entry{}
	if err := c.doJSON(ctx, "get entry", http.MethodGet, "/api/entries/"+url.PathEscape(id), nil, e); err != nil {
		return nil, err
	}
	return e, nil
}

// mutation responses are either the entry itself or a bare acknowledgement.
type mutationResponse struct {
	entry.Entry
	EntryID string `json:"entry_id"`
	Success *bool  `json:"success"`
}

// Create uploads a new entry with its attachments as multipart form data.
// Files must already have passed media.Validate.
func (c *Client) Create(ctx context.Context, n NewEntry, files []media.File) (*entry.Entry, error) {
	const op = "create entry"
	body, contentType, err := encodeMultipart(n, files)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	var resp mutationResponse
	if err := c.do(ctx, op, http.MethodPost, "/api/entries", contentType, body, &resp); err != nil {
		return nil, err
	}
	e := resp.Entry
	if e.ID == "" {
		e.ID = resp.EntryID
	}
	if e.Title == "" {
		e.Title = n.Title
		e.Content = n.Content
		e.Tags = n.Tags
		if t, err := entry.ParseTime(n.EntryDate); err == nil {
			e.EntryDate = entry.Timestamp{Time: t}
		}
	}
	return &e, nil
}

// Update replaces the title, content and date of an entry.
func (c *Client) Update(ctx context.Context, id string, u EntryUpdate) (*entry.Entry, error) {
	const op = "update entry"
	b, err := json.Marshal(u)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	var resp mutationResponse
	if err := c.do(ctx, op, http.MethodPut, "/api/entries/"+url.PathEscape(id), "application/json", bytes.NewReader(b), &resp); err != nil {
		return nil, err
	}
	if resp.Success != nil && !*resp.Success {
		return nil, &ServerError{Op: op, StatusCode: http.StatusOK, Message: "entry was not updated"}
	}
	e := resp.Entry
	if e.ID == "" {
		e.ID = id
		e.Title = u.Title
		e.Content = u.Content
		if t, err := entry.ParseTime(u.EntryDate); err == nil {
			e.EntryDate = entry.Timestamp{Time: t}
		}
	}
	return &e, nil
}

// Delete removes an entry.
func (c *Client) Delete(ctx context.Context, id string) error {
	const op = "delete entry"
	var resp mutationResponse
	if err := c.doJSON(ctx, op, http.MethodDelete, "/api/entries/"+url.PathEscape(id), nil, &resp); err != nil {
		return err
	}
	if resp.Success != nil && !*resp.Success {
		return &ServerError{Op: op, StatusCode: http.StatusOK, Message: "entry was not deleted"}
	}
	return nil
}

// GenerateQuestion asks the backend for a journaling prompt. suggestion is
// optional steering text.
func (c *Client) GenerateQuestion(ctx context.Context, suggestion string) (string, error) {
	const op = "generate question"
	var payload any
	if s := strings.TrimSpace(suggestion); s != "" {
		payload = map[string]string{"suggestion": s}
	}
	var resp struct {
		Question string `json:"question"`
	}
	if err := c.doJSON(ctx, op, http.MethodPost, "/api/generate-question", payload, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Question) == "" {
		return "", &ServerError{Op: op, StatusCode: http.StatusOK, Message: "no question in response"}
	}
	return resp.Question, nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, op)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, contentType, body, out)
}

func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return errors.Wrap(err, op)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.String("request_id", reqID), zap.Error(err))
		return &NetworkError{Op: op, Cause: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request done",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("duration", time.Since(start)))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Cause: errors.Wrap(err, "read body")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: op, Cause: errors.Wrap(err, "decode response")}
	}
	return nil
}

func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return ""
}

func encodeMultipart(n NewEntry, files []media.File) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct{ name, value string }{
		{"title", n.Title},
		{"content", n.Content},
		{"entry_date", n.EntryDate},
		{"tags", strings.Join(n.Tags, ",")},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     "media",
			"filename": f.Name,
		}))
		h.Set("Content-Type", f.MIME)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if err := copyFile(part, f.Path); err != nil {
			return nil, "", errors.Wrapf(err, "attach %s", f.Name)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func copyFile(dst io.Writer, path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	_, err = io.Copy(dst, fh)
	return err
}
