package http

import (
	gohttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		assert.Equal(t, gohttp.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"yoga-mat"}`))
	}))
	defer srv.Close()

	resp, err := Get(srv.URL).Timeout(2 * time.Second).Send()
	require.NoError(t, err)
	require.True(t, resp.OK())

	var body struct {
		Name string `json:"name"`
	}
	require.NoError(t, resp.JSON(&body))
	assert.Equal(t, "yoga-mat", body.Name)
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		if calls.Add(1) < 3 {
			conn, _, err := w.(gohttp.Hijacker).Hijack()
			require.NoError(t, err)
			conn.Close() // abort mid-request to force a transport error
			return
		}
		w.WriteHeader(gohttp.StatusOK)
	}))
	defer srv.Close()

	resp, err := Get(srv.URL).Retry(3, 10*time.Millisecond).Send()
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, int32(3), calls.Load())
}

func TestSendExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		conn, _, err := w.(gohttp.Hijacker).Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer srv.Close()

	_, err := Get(srv.URL).Retry(2, time.Millisecond).Send()
	assert.Error(t, err)
}

func TestThrowOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		gohttp.Error(w, "nope", gohttp.StatusTeapot)
	}))
	defer srv.Close()

	resp, err := Get(srv.URL).Send()
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Error(t, resp.Throw())
}

func TestPostMarshalsBody(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(gohttp.StatusCreated)
	}))
	defer srv.Close()

	resp, err := Post(srv.URL).Body(map[string]int{"qty": 3}).Send()
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusCreated, resp.StatusCode)
}
