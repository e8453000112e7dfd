package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrovs/prodhub/internal/common"
)

func TestHTTPClient_CRUDRoundTrip(t *testing.T) {
	var gotMethod, gotPath, gotCookie string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if c, err := r.Cookie(SessionCookieName); err == nil {
			gotCookie = c.Value
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"srv-1"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetToken("tok-123")
	ctx := context.Background()

	data, err := c.Create(ctx, "tasks", map[string]string{"title": "a"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/tasks", gotPath)
	assert.Equal(t, "tok-123", gotCookie)
	assert.JSONEq(t, `{"title":"a"}`, string(gotBody))

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "srv-1", resp.ID)

	_, err = c.Update(ctx, "notes", "n1", map[string]string{"title": "b"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/notes/n1", gotPath)

	_, err = c.List(ctx, "habit-logs")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/api/habit-logs", gotPath)

	require.NoError(t, c.Delete(ctx, "expenses", "e9"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/expenses/e9", gotPath)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tasks":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	ctx := context.Background()

	_, err := c.List(ctx, "tasks")
	assert.ErrorIs(t, err, common.ErrServerRejected)

	_, err = c.List(ctx, "notes")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewHTTPClient(srv.URL)
	_, err := c.List(context.Background(), "tasks")
	assert.ErrorIs(t, err, common.ErrUnavailable)
	assert.Error(t, c.Ping(context.Background()))
}

func TestHTTPClient_PingIgnoresStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	assert.NoError(t, c.Ping(context.Background()), "an HTTP response means the server is reachable")
}

func TestHTTPClient_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewHTTPClient(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx, "tasks")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnavailable) || errors.Is(err, context.Canceled))
}
