package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
)

// Client is the single transport all resource managers share. It owns the
// base URL, attaches the bearer token from the injected CredentialProvider,
// and normalizes error bodies at this boundary so callers only ever see
// AppError values.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialProvider
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func New(baseURL string, creds CredentialProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Internal("Failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// ListResult carries one page of a collection plus the server-reported total
// when the endpoint provides one. Endpoints that return a bare array leave
// TotalReported false and the caller falls back to the page-size heuristic.
type ListResult[T any] struct {
	Items         []T
	Total         int64
	TotalReported bool
}

type listEnvelope[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// GetList fetches a collection endpoint, accepting both the enveloped
// {items, total} shape and a bare JSON array.
func GetList[T any](ctx context.Context, c *Client, path string, query url.Values) (ListResult[T], error) {
	var raw json.RawMessage
	if err := c.Get(ctx, path, query, &raw); err != nil {
		return ListResult[T]{}, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return ListResult[T]{}, errors.Internal("Failed to decode list response", err)
		}
		return ListResult[T]{Items: items}, nil
	}

	var env listEnvelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return ListResult[T]{}, errors.Internal("Failed to decode list response", err)
	}
	return ListResult[T]{Items: env.Items, Total: env.Total, TotalReported: true}, nil
}

// Upload issues the multipart POST /upload/image request. Extra fields (the
// target folder) ride along as plain form values.
func (c *Client) Upload(ctx context.Context, path, fileField, filename string, file io.Reader, fields map[string]string, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return errors.Internal("Failed to build multipart body", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.Internal("Failed to read upload file", err)
	}
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return errors.Internal("Failed to build multipart body", err)
		}
	}
	if err := w.Close(); err != nil {
		return errors.Internal("Failed to build multipart body", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, errors.Internal("Failed to build request", err)
	}

	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		logger.LogRequest(req.Method, req.URL.Path, 0, err)
		return errors.Network(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Network(err)
	}

	logger.LogRequest(req.Method, req.URL.Path, resp.StatusCode, nil)

	if resp.StatusCode >= 400 {
		return c.decodeError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Internal("Failed to decode response", err)
	}
	return nil
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func (c *Client) decodeError(status int, data []byte) error {
	var body errorBody
	_ = json.Unmarshal(data, &body)
	detail := ParseDetail(body.Detail)

	code := codeForStatus(status)
	message := detail.String()
	if detail.Kind == DetailUnknown {
		message = fmt.Sprintf("The server rejected the request (%d)", status)
	}

	return errors.New(code, message, status, nil)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "SERVER_ERROR"
	}
}
