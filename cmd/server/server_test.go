package main

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/JaimeStill/ecopoint/internal/config"
	"github.com/JaimeStill/ecopoint/internal/infrastructure"
	"github.com/JaimeStill/ecopoint/pkg/lifecycle"
)

func TestBuildRouter_Health(t *testing.T) {
	lc := lifecycle.New()
	router := buildRouter(&infrastructure.Infrastructure{Lifecycle: lc})

	get := func(path string) int {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	if code := get("/healthz"); code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want %d", code, http.StatusOK)
	}
	if code := get("/readyz"); code != http.StatusServiceUnavailable {
		t.Errorf("GET /readyz before startup = %d, want %d", code, http.StatusServiceUnavailable)
	}

	lc.WaitForStartup()

	if code := get("/readyz"); code != http.StatusOK {
		t.Errorf("GET /readyz after startup = %d, want %d", code, http.StatusOK)
	}
	if code := get("/healthz/"); code != http.StatusOK {
		t.Errorf("GET /healthz/ = %d, want %d", code, http.StatusOK)
	}
}

func TestConfig_RepoDefaults(t *testing.T) {
	t.Chdir("../..")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if cfg.Server.Port != 3333 {
		t.Errorf("Server.Port = %d, want 3333", cfg.Server.Port)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q", cfg.API.BasePath)
	}
}

func TestHTTPServer_StartAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: port}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	lc := lifecycle.New()

	srv := newHTTPServer(cfg, time.Second, handler, logger)
	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(port) + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusTeapot)
	}

	if err := lc.Shutdown(2 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if _, err := http.Get("http://127.0.0.1:" + strconv.Itoa(port) + "/"); err == nil {
		t.Error("GET after shutdown succeeded, want connection error")
	}
}

func TestHTTPServer_StartReportsBindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	cfg := &config.ServerConfig{Host: "127.0.0.1", Port: ln.Addr().(*net.TCPAddr).Port}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := newHTTPServer(cfg, time.Second, http.NotFoundHandler(), logger)
	if err := srv.Start(lifecycle.New()); err == nil {
		t.Error("Start() on a bound port error = nil, want error")
	}
}
