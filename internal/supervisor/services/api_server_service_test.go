// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// stubServer returns serveErr immediately, or blocks until Shutdown when
// serveErr is nil.
type stubServer struct {
	serveErr    error
	shutdownErr error
	stopped     chan struct{}
}

func newStubServer(serveErr, shutdownErr error) *stubServer {
	return &stubServer{serveErr: serveErr, shutdownErr: shutdownErr, stopped: make(chan struct{})}
}

func (s *stubServer) Serve(l net.Listener) error {
	defer l.Close()
	if s.serveErr != nil {
		return s.serveErr
	}
	<-s.stopped
	return http.ErrServerClosed
}

func (s *stubServer) Shutdown(context.Context) error {
	close(s.stopped)
	return s.shutdownErr
}

func TestAPIServerService_Interface(t *testing.T) {
	var _ suture.Service = (*APIServerService)(nil)
	var _ APIServer = (*http.Server)(nil)
}

func TestNewAPIServerService_Defaults(t *testing.T) {
	svc := NewAPIServerService(newStubServer(nil, nil), "127.0.0.1:0", 0, zerolog.Nop())
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want 10s", svc.shutdownTimeout)
	}
	if svc.String() != "api-server" {
		t.Errorf("String() = %q", svc.String())
	}
	if svc.Addr() != nil {
		t.Errorf("Addr() before Serve = %v, want nil", svc.Addr())
	}
}

func waitForAddr(t *testing.T, svc *APIServerService) net.Addr {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if addr := svc.Addr(); addr != nil {
			return addr
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("server never bound")
	return nil
}

func TestAPIServerService_ServesUntilCanceled(t *testing.T) {
	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "ok")
		}),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewAPIServerService(server, "127.0.0.1:0", time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	addr := waitForAddr(t, svc)
	resp, err := http.Get("http://" + addr.String())
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestAPIServerService_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name       string
		server     *stubServer
		cancel     bool
		wantErr    error
		wantSubstr string
	}{
		{name: "serve failure", server: newStubServer(boom, nil), wantErr: boom, wantSubstr: "api server failed"},
		{name: "server closed is clean", server: newStubServer(http.ErrServerClosed, nil)},
		{name: "shutdown failure", server: newStubServer(nil, boom), cancel: true, wantErr: boom, wantSubstr: "shutdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAPIServerService(tt.server, "127.0.0.1:0", time.Second, zerolog.Nop())
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancel {
				go func() {
					for svc.Addr() == nil {
						time.Sleep(5 * time.Millisecond)
					}
					cancel()
				}()
			}

			err := svc.Serve(ctx)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Serve() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) || !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("Serve() = %v, want %q wrapping %v", err, tt.wantSubstr, tt.wantErr)
			}
		})
	}
}

func TestAPIServerService_BindFailure(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer taken.Close()

	svc := NewAPIServerService(newStubServer(nil, nil), taken.Addr().String(), time.Second, zerolog.Nop())
	err = svc.Serve(context.Background())
	if err == nil || !strings.Contains(err.Error(), "bind") {
		t.Errorf("Serve() = %v, want bind error", err)
	}
	if svc.Addr() != nil {
		t.Error("Addr() set after failed bind")
	}
}
