// Package upstream is the gateway's only seam to the course-platform REST API.
// Every inconsistency the upstream ships (shifting list nesting, the quiz
// empty-result sentinel, relative asset paths) is absorbed here so the rest
// of the gateway sees typed records and plain errors.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"

	"course_admin_gateway/internal/config"
	"course_admin_gateway/pkg/logger"
	"course_admin_gateway/pkg/monitoring"

	"go.uber.org/zap"
)

type Client struct {
	baseURL   string
	assetBase string
	http      *http.Client

	mu       sync.RWMutex
	sentinel string
}

func NewClient(cfg *config.UpstreamConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		assetBase: cfg.AssetBaseURL,
		sentinel:  cfg.QuizEmptySentinel,
		http:      &http.Client{Timeout: timeout},
	}
}

// AssetBase returns the configured public base for stored asset paths.
func (c *Client) AssetBase() string { return c.assetBase }

// SetQuizEmptySentinel swaps the "no questions" message substring at runtime,
// so a config reload takes effect without a restart.
func (c *Client) SetQuizEmptySentinel(sentinel string) {
	c.mu.Lock()
	c.sentinel = sentinel
	c.mu.Unlock()
}

// APIError carries the upstream's own message when it has one; callers prefer
// it over a generic fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream request failed with status %d", e.Status)
}

type tokenKey struct{}

// WithToken attaches the staff bearer token for passthrough to the upstream.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := tokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, operation string) (*envelope, error) {
	resp, err := c.http.Do(req)
	monitoring.ObserveUpstream(operation, err)
	if err != nil {
		logger.Log.Error("upstream call failed", zap.String("operation", operation), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	env := &envelope{status: resp.StatusCode}
	if len(raw) > 0 {
		// Tolerate non-JSON error bodies; keep the status for the error path.
		_ = json.Unmarshal(raw, env)
	}

	if resp.StatusCode >= 400 || (env.Success != nil && !*env.Success) {
		return env, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return env, nil
}

// getList fetches a collection and decodes it through the envelope normalizer.
func (c *Client) getList(ctx context.Context, operation, path string, query url.Values, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	env, err := c.do(req, operation)
	if err != nil {
		return err
	}
	list, err := extractList(env.Data)
	if err != nil {
		return err
	}
	if list == nil {
		return nil
	}
	return json.Unmarshal(list, out)
}

// mutate sends a JSON body and optionally decodes the returned record.
func (c *Client) mutate(ctx context.Context, operation, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, nil, body, "application/json")
	if err != nil {
		return err
	}
	env, err := c.do(req, operation)
	if err != nil {
		return err
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	obj, err := extractObject(env.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(obj, out)
}

// FilePart describes the file part of a multipart mutation.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Reader      io.Reader
}

// mutateMultipart sends fields plus an optional file part, for create/update
// calls that carry an image and for the upload endpoint.
func (c *Client) mutateMultipart(ctx context.Context, operation, method, path string, fields map[string]string, file *FilePart, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return err
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, nil, &buf, writer.FormDataContentType())
	if err != nil {
		return err
	}
	env, err := c.do(req, operation)
	if err != nil {
		return err
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	obj, err := extractObject(env.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(obj, out)
}
