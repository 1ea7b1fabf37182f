package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"dukkan/pkg/errors"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, NewStaticCredentials("secret-token"))
	var out map[string]bool
	err := c.Get(context.Background(), "/admin/orders", nil, &out)

	assert.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.True(t, out["ok"])
}

func TestClientRejectsMissingToken(t *testing.T) {
	c := New("http://localhost:1", NewStaticCredentials(""))
	err := c.Get(context.Background(), "/admin/orders", nil, nil)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestClientMapsErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Code already exists"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, NewStaticCredentials("t"))
	err := c.Post(context.Background(), "/admin/discounts", map[string]string{}, nil)

	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	assert.Equal(t, "Code already exists", errors.Message(err))
}

func TestClientMapsUnknownErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))
	defer srv.Close()

	c := New(srv.URL, NewStaticCredentials("t"))
	err := c.Get(context.Background(), "/admin/orders", nil, nil)

	assert.True(t, errors.Is(err, "SERVER_ERROR"))
	assert.Contains(t, errors.Message(err), "500")
}

func TestClientNetworkFailure(t *testing.T) {
	c := New("http://127.0.0.1:1", NewStaticCredentials("t"))
	err := c.Get(context.Background(), "/admin/orders", nil, nil)
	assert.True(t, errors.Is(err, "NETWORK_ERROR"))
}

func TestGetListBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "a"}, {"id": "b"}]`))
	}))
	defer srv.Close()

	type row struct {
		ID string `json:"id"`
	}
	c := New(srv.URL, NewStaticCredentials("t"))
	res, err := GetList[row](context.Background(), c, "/admin/categories", nil)

	assert.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.False(t, res.TotalReported)
}

func TestGetListEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [{"id": "a"}], "total": 41}`))
	}))
	defer srv.Close()

	type row struct {
		ID string `json:"id"`
	}
	c := New(srv.URL, NewStaticCredentials("t"))
	res, err := GetList[row](context.Background(), c, "/admin/orders", nil)

	assert.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.True(t, res.TotalReported)
	assert.Equal(t, int64(41), res.Total)
}
