package lts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// dotnetIndexFixture has LTS channels 6, 8 and 10 plus STS channels 7 and 9
const dotnetIndexFixture = `{
  "releases-index": [
    {"channel-version": "10.0", "latest-release": "10.0.0", "release-type": "lts", "support-phase": "active"},
    {"channel-version": "9.0", "latest-release": "9.0.9", "release-type": "sts", "support-phase": "active"},
    {"channel-version": "8.0", "latest-release": "8.0.20", "release-type": "lts", "support-phase": "active"},
    {"channel-version": "7.0", "latest-release": "7.0.20", "release-type": "sts", "support-phase": "eol"},
    {"channel-version": "6.0", "latest-release": "6.0.36", "release-type": "lts", "support-phase": "eol"}
  ]
}`

// dotnetPreviewFixture has the highest LTS channel still at a release candidate
const dotnetPreviewFixture = `{
  "releases-index": [
    {"channel-version": "10.0", "latest-release": "10.0.0-rc.1", "release-type": "lts", "support-phase": "go-live"},
    {"channel-version": "9.0", "latest-release": "9.0.9", "release-type": "sts", "support-phase": "active"},
    {"channel-version": "8.0", "latest-release": "8.0.20", "release-type": "lts", "support-phase": "active"}
  ]
}`

func TestLatestDotnetLTS(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"highest stable LTS", dotnetIndexFixture, 10},
		{"preview LTS excluded", dotnetPreviewFixture, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channels, err := ParseDotnetIndex("fixture", []byte(tt.body))
			if err != nil {
				t.Fatalf("ParseDotnetIndex failed: %v", err)
			}
			got, err := LatestDotnetLTS(channels)
			if err != nil {
				t.Fatalf("LatestDotnetLTS failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("LatestDotnetLTS() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestLatestDotnetLTSNumericOrder ensures channel 10 beats channel 8 regardless of input order
func TestLatestDotnetLTSNumericOrder(t *testing.T) {
	channels := []DotnetChannel{
		{ChannelVersion: "8.0", LatestRelease: "8.0.20", ReleaseType: "lts"},
		{ChannelVersion: "10.0", LatestRelease: "10.0.1", ReleaseType: "lts"},
		{ChannelVersion: "6.0", LatestRelease: "6.0.36", ReleaseType: "lts"},
	}
	got, err := LatestDotnetLTS(channels)
	if err != nil {
		t.Fatalf("LatestDotnetLTS failed: %v", err)
	}
	if got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
}

func TestLatestDotnetLTSNoStableChannel(t *testing.T) {
	channels := []DotnetChannel{
		{ChannelVersion: "11.0", LatestRelease: "11.0.0-preview.1", ReleaseType: "lts"},
		{ChannelVersion: "9.0", LatestRelease: "9.0.9", ReleaseType: "sts"},
	}
	_, err := LatestDotnetLTS(channels)
	if err == nil {
		t.Fatal("Expected error when no stable LTS channel exists")
	}

	var logicErr *LogicError
	if !errors.As(err, &logicErr) {
		t.Fatalf("Expected *LogicError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrNoQualifying) {
		t.Error("Expected error to match ErrNoQualifying")
	}
}

func TestParseDotnetIndexErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{"releases-index": [`},
		{"missing array", `{"releases": []}`},
		{"array document", `[]`},
		{"wrong element type", `{"releases-index": "none"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDotnetIndex("fixture", []byte(tt.body))
			if !errors.Is(err, ErrParse) {
				t.Errorf("Expected ErrParse, got %v", err)
			}
		})
	}
}

func TestDotnetResolverResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(dotnetIndexFixture))
	}))
	defer server.Close()

	client := NewFeedClient(ClientConfig{})
	client.SetHTTPClient(server.Client())

	got, err := NewDotnetResolver(client, server.URL).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
}

func TestDotnetResolverHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewFeedClient(ClientConfig{})
	client.SetHTTPClient(server.Client())

	_, err := NewDotnetResolver(client, server.URL).Resolve(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *FetchError, got %T: %v", err, err)
	}
	if fetchErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", fetchErr.StatusCode)
	}
}

func TestNewDotnetResolverDefaultURL(t *testing.T) {
	r := NewDotnetResolver(NewFeedClient(ClientConfig{}), "")
	if r.url != DefaultDotnetIndexURL {
		t.Errorf("Expected default URL, got %s", r.url)
	}
}
