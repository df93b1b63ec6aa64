package lts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewFeedClientDefaults(t *testing.T) {
	client := NewFeedClient(ClientConfig{})

	headers := client.DefaultHeaders()
	if headers["User-Agent"] != DefaultUserAgent {
		t.Errorf("Expected default User-Agent, got %q", headers["User-Agent"])
	}
	if headers["Accept"] != "application/json" {
		t.Errorf("Expected Accept application/json, got %q", headers["Accept"])
	}
	if client.client.Timeout != 0 {
		t.Errorf("Expected no client timeout, got %v", client.client.Timeout)
	}
}

func TestNewFeedClientCustomConfig(t *testing.T) {
	client := NewFeedClient(ClientConfig{UserAgent: "custom/2.0", Timeout: 5 * time.Second})

	if got := client.DefaultHeaders()["User-Agent"]; got != "custom/2.0" {
		t.Errorf("Expected custom User-Agent, got %q", got)
	}
	if client.client.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", client.client.Timeout)
	}
}

func TestFetchSendsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewFeedClient(ClientConfig{UserAgent: "ltscheck-test"})
	client.SetHTTPClient(server.Client())

	body, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(body) != `{"ok": true}` {
		t.Errorf("Unexpected body: %s", body)
	}
	if gotUA != "ltscheck-test" {
		t.Errorf("Expected User-Agent ltscheck-test, got %q", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Expected Accept application/json, got %q", gotAccept)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
		{"redirect not followed", http.StatusNotModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewFeedClient(ClientConfig{})
			client.SetHTTPClient(server.Client())

			_, err := client.Fetch(context.Background(), server.URL)
			if !errors.Is(err, ErrFetch) {
				t.Fatalf("Expected ErrFetch, got %v", err)
			}

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("Expected *FetchError, got %T", err)
			}
			if fetchErr.StatusCode != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, fetchErr.StatusCode)
			}
			if fetchErr.URL != server.URL {
				t.Errorf("Expected URL %s, got %s", server.URL, fetchErr.URL)
			}
			if calls != 1 {
				t.Errorf("Expected exactly one request, got %d", calls)
			}
		})
	}
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewFeedClient(ClientConfig{Timeout: time.Second})
	_, err := client.Fetch(context.Background(), url)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *FetchError, got %T: %v", err, err)
	}
	if fetchErr.StatusCode != 0 {
		t.Errorf("Expected no status code, got %d", fetchErr.StatusCode)
	}
	if fetchErr.Err == nil {
		t.Error("Expected underlying transport error")
	}
}

func TestFetchCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewFeedClient(ClientConfig{})
	client.SetHTTPClient(server.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got %v", err)
	}
	if !errors.Is(err, ErrFetch) {
		t.Errorf("Expected ErrFetch, got %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"fetch status", &FetchError{URL: "https://example.test/feed", StatusCode: 404}, "GET https://example.test/feed: status 404"},
		{"fetch transport", &FetchError{URL: "https://example.test/feed", Err: errors.New("connection refused")}, "GET https://example.test/feed: connection refused"},
		{"parse", &ParseError{Source: "data/lts-versions.json", Err: errors.New("invalid JSON")}, "parse data/lts-versions.json: invalid JSON"},
		{"logic", &LogicError{Msg: "no stable LTS channel found"}, "no stable LTS channel found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
