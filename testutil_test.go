// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// fakeOrchestrator is an httptest-backed orchestrator. It answers the
// operator login exchange with a numbered session cookie and forwards
// everything else to the scripted handler.
type fakeOrchestrator struct {
	t *testing.T

	mu     sync.Mutex
	logins int
	calls  map[string]int

	// handle answers non-login requests: (status, body)
	handle func(path, body string) (int, string)

	server *httptest.Server
}

func newFakeOrchestrator(t *testing.T, handle func(path, body string) (int, string)) *fakeOrchestrator {
	t.Helper()
	f := &fakeOrchestrator{
		t:      t,
		calls:  make(map[string]int),
		handle: handle,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeOrchestrator) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	body := string(raw)

	f.mu.Lock()
	f.calls[r.URL.Path]++
	f.mu.Unlock()

	if r.URL.Path == "/portal/rest/login/operatorLogin" {
		f.mu.Lock()
		f.logins++
		token := "session-" + strconv.Itoa(f.logins)
		f.mu.Unlock()
		http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: token})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
		return
	}

	status, resp := 200, "{}"
	if f.handle != nil {
		status, resp = f.handle(r.URL.Path, body)
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp))
}

func (f *fakeOrchestrator) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins
}

func (f *fakeOrchestrator) callCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

// newTestClient builds a client against the fake orchestrator with password
// credentials unless overridden by opts
func newTestClient(t *testing.T, url string, opts ...func(*Client)) *Client {
	t.Helper()
	base := []func(*Client){
		Username("operator"),
		Password("secret"),
	}
	client, err := NewClient(url, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	return client
}
