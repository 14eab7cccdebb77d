package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/kit-service/config"
)

func TestNewServer(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		name         string
		cfg          config.ServerConfig
		wantWrite    time.Duration
		wantShutdown time.Duration
	}{
		{"defaults", config.ServerConfig{Port: "8080"}, 15 * time.Second, 10 * time.Second},
		{
			"write timeout outlasts request timeout",
			config.ServerConfig{Port: "8080", RequestTimeout: 30 * time.Second, ShutdownTimeout: 3 * time.Second},
			35 * time.Second, 3 * time.Second,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(handler, tt.cfg)

			assert.Equal(t, ":8080", server.httpServer.Addr)
			assert.Equal(t, tt.wantWrite, server.httpServer.WriteTimeout)
			assert.Equal(t, tt.wantShutdown, server.shutdownTimeout)
		})
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	server := NewServer(handler, config.ServerConfig{Port: "0"})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_RunInvalidAddress(t *testing.T) {
	server := NewServer(http.NotFoundHandler(), config.ServerConfig{Port: "invalid-port"})

	err := server.Run(context.Background())

	assert.Error(t, err)
}
