// Package testutil stands in for the storefront backend in tests: an echo
// server that records every request and answers with canned JSON, including
// the polymorphic {"detail": ...} error bodies the real API produces.
package testutil

import (
	"bytes"
	"io"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"dukkan/internal/adapter/rest"
)

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

type API struct {
	*echo.Echo
	srv *httptest.Server

	mu       sync.Mutex
	requests []Request
}

func NewAPI(t *testing.T) *API {
	t.Helper()
	e := echo.New()
	e.HideBanner = true

	a := &API{Echo: e}
	e.Use(a.record)
	a.srv = httptest.NewServer(e)
	t.Cleanup(a.srv.Close)
	return a
}

func (a *API) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body []byte
		if c.Request().Body != nil {
			body, _ = io.ReadAll(c.Request().Body)
			c.Request().Body = io.NopCloser(bytes.NewReader(body))
		}

		a.mu.Lock()
		a.requests = append(a.requests, Request{
			Method: c.Request().Method,
			Path:   c.Request().URL.Path,
			Query:  c.Request().URL.Query(),
			Body:   body,
		})
		a.mu.Unlock()

		return next(c)
	}
}

func (a *API) URL() string {
	return a.srv.URL
}

// Client builds a rest.Client pointed at this fake API.
func (a *API) Client() *rest.Client {
	return rest.New(a.srv.URL, rest.NewStaticCredentials("test-token"))
}

func (a *API) Requests() []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Request(nil), a.requests...)
}

// Count returns how many recorded requests match method and path.
func (a *API) Count(method, path string) int {
	n := 0
	for _, r := range a.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// LastBody returns the body of the most recent request matching method and
// path, or nil when none matched.
func (a *API) LastBody(method, path string) []byte {
	reqs := a.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i].Body
		}
	}
	return nil
}

// JSON answers with the given document as-is.
func JSON(data interface{}) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(200, data)
	}
}

// JSONFunc evaluates the document per request, for stateful fixtures.
func JSONFunc(fn func() interface{}) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(200, fn())
	}
}

// Detail answers with the backend's error shape. detail may be a string, an
// array of field errors, or an object; the client must cope with all three.
func Detail(status int, detail interface{}) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(status, map[string]interface{}{"detail": detail})
	}
}
