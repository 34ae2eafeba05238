package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluminumlabs/incognito/pkg/httpserver"
)

func testConfig() httpserver.Config {
	cfg := httpserver.DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func waitRun(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		require.FailNow(t, "run did not finish")
		return nil
	}
}

func TestRun_ServesUntilContextDone(t *testing.T) {
	t.Parallel()

	var stopped atomic.Bool
	srv := httpserver.New(testConfig(), httpserver.WithStopHook(func() { stopped.Store(true) }))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("pong"))
		}))
	}()
	<-srv.Ready()

	resp, err := http.Get("http://" + srv.Addr().String())
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "pong", string(body))

	cancel()
	require.NoError(t, waitRun(t, done))
	assert.True(t, stopped.Load())
}

func TestRun_ManualShutdown(t *testing.T) {
	t.Parallel()

	var hooks atomic.Int32
	srv := httpserver.New(testConfig(), httpserver.WithStopHook(func() { hooks.Add(1) }))

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), nil) }()
	<-srv.Ready()

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, waitRun(t, done))
	require.NoError(t, srv.Shutdown(context.Background()))
	assert.Equal(t, int32(1), hooks.Load())
}

func TestRun_BindError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	cfg := testConfig()
	cfg.Addr = ln.Addr().String()
	err = httpserver.New(cfg).Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestRun_AlreadyRunning(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, nil) }()
	<-srv.Ready()

	assert.ErrorIs(t, srv.Run(ctx, nil), httpserver.ErrAlreadyRunning)
	cancel()
	require.NoError(t, waitRun(t, done))
}

func TestShutdown_BeforeRun(t *testing.T) {
	t.Parallel()
	assert.NoError(t, httpserver.New(testConfig()).Shutdown(context.Background()))
}

func TestNew_ZeroConfigUsesDefaults(t *testing.T) {
	t.Parallel()
	srv := httpserver.New(httpserver.Config{})
	assert.Nil(t, srv.Addr())
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		checks []func(context.Context) error
		code   int
		body   string
	}{
		{name: "liveness", code: http.StatusOK, body: "ALIVE"},
		{
			name:   "ready",
			checks: []func(context.Context) error{func(context.Context) error { return nil }},
			code:   http.StatusOK,
			body:   "READY",
		},
		{
			name: "not ready",
			checks: []func(context.Context) error{
				func(context.Context) error { return nil },
				func(context.Context) error { return errors.New("closed") },
			},
			code: http.StatusServiceUnavailable,
			body: "NOT_READY",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			httpserver.HealthCheckHandler(nil, tc.checks...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.body, rec.Body.String())
		})
	}
}
