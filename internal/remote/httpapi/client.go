// Package httpapi implements the collaborator contracts against the
// marketplace's REST API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentmate-client-core/internal/remote"
)

const defaultTimeout = 15 * time.Second

// Client is the shared HTTP plumbing for all collaborator clients: base
// URL, bearer token injection, JSON codec, and the mapping from transport
// and HTTP status errors to remote.Failure.
type Client struct {
	baseURL string
	http    *http.Client
	token   func() string
}

type ClientOption func(*Client)

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTokenSource supplies the session's access token for each call.
func WithTokenSource(source func() string) ClientOption {
	return func(c *Client) {
		c.token = source
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &remote.Failure{Message: fmt.Sprintf("encode request body: %v", err), Code: remote.CodeBadRequest}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &remote.Failure{Message: fmt.Sprintf("build request: %v", err), Code: remote.CodeBadRequest}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(req, method)

	resp, err := c.http.Do(req)
	if err != nil {
		return &remote.Failure{Message: fmt.Sprintf("%s %s: %v", method, path, err), Retryable: true, Code: remote.CodeNetwork}
	}
	defer resp.Body.Close()
	return c.handle(resp, out)
}

// upload sends a multipart request: one "type" field plus the image files.
func (c *Client) upload(ctx context.Context, path string, imageType string, files []remote.EvidenceFile, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("type", imageType); err != nil {
		return &remote.Failure{Message: fmt.Sprintf("encode upload: %v", err), Code: remote.CodeBadRequest}
	}
	for _, f := range files {
		part, err := w.CreateFormFile("images", f.Name)
		if err != nil {
			return &remote.Failure{Message: fmt.Sprintf("encode upload: %v", err), Code: remote.CodeBadRequest}
		}
		if _, err := part.Write(f.Data); err != nil {
			return &remote.Failure{Message: fmt.Sprintf("encode upload: %v", err), Code: remote.CodeBadRequest}
		}
	}
	if err := w.Close(); err != nil {
		return &remote.Failure{Message: fmt.Sprintf("encode upload: %v", err), Code: remote.CodeBadRequest}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return &remote.Failure{Message: fmt.Sprintf("build request: %v", err), Code: remote.CodeBadRequest}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.decorate(req, http.MethodPost)

	resp, err := c.http.Do(req)
	if err != nil {
		return &remote.Failure{Message: fmt.Sprintf("POST %s: %v", path, err), Retryable: true, Code: remote.CodeNetwork}
	}
	defer resp.Body.Close()
	return c.handle(resp, out)
}

func (c *Client) decorate(req *http.Request, method string) {
	if c.token != nil {
		if t := c.token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}
	if method != http.MethodGet {
		req.Header.Set("X-Idempotency-Key", uuid.NewString())
	}
}

type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (c *Client) handle(resp *http.Response, out any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &remote.Failure{Message: fmt.Sprintf("decode response: %v", err), Code: remote.CodeServerError}
		}
		return nil
	}

	var env errorEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	msg := env.Error
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	f := &remote.Failure{Message: msg, Code: env.Code}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		f.Code = remote.CodeNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		f.Code = remote.CodeUnauthorized
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusTooManyRequests:
		f.Retryable = true
		if f.Code == "" {
			f.Code = remote.CodeServerError
		}
	default:
		if f.Code == "" {
			f.Code = remote.CodeBadRequest
		}
	}
	return f
}
