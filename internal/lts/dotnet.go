package lts

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultDotnetIndexURL is the official .NET release metadata index
const DefaultDotnetIndexURL = "https://builds.dotnet.microsoft.com/dotnet/release-metadata/releases-index.json"

// releaseTypeLTS marks a long-term support channel in the release index
const releaseTypeLTS = "lts"

// DotnetChannel is one entry of the .NET release index.
type DotnetChannel struct {
	ChannelVersion string `json:"channel-version"`
	LatestRelease  string `json:"latest-release"`
	ReleaseType    string `json:"release-type"`
	SupportPhase   string `json:"support-phase"`
}

// dotnetIndex matches the top-level release index document
type dotnetIndex struct {
	Releases []DotnetChannel `json:"releases-index"`
}

// DotnetResolver finds the newest stable .NET LTS major version.
type DotnetResolver struct {
	client *FeedClient
	url    string
}

// NewDotnetResolver creates a resolver that reads the index at url.
func NewDotnetResolver(client *FeedClient, url string) *DotnetResolver {
	if url == "" {
		url = DefaultDotnetIndexURL
	}
	return &DotnetResolver{client: client, url: url}
}

// Resolve fetches the release index and returns the highest stable LTS major.
func (r *DotnetResolver) Resolve(ctx context.Context) (int, error) {
	body, err := r.client.Fetch(ctx, r.url)
	if err != nil {
		return 0, err
	}
	channels, err := ParseDotnetIndex(r.url, body)
	if err != nil {
		return 0, err
	}
	return LatestDotnetLTS(channels)
}

// ParseDotnetIndex decodes a release index document.
func ParseDotnetIndex(source string, body []byte) ([]DotnetChannel, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if _, ok := raw["releases-index"]; !ok {
		return nil, &ParseError{Source: source, Err: errors.New(`missing "releases-index" array`)}
	}

	var index dotnetIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return index.Releases, nil
}

// LatestDotnetLTS selects the numerically highest LTS channel whose latest
// release carries no pre-release label and returns its major version.
// A hyphen in the latest release string marks a preview or RC.
func LatestDotnetLTS(channels []DotnetChannel) (int, error) {
	var best *semver.Version
	for _, ch := range channels {
		if ch.ReleaseType != releaseTypeLTS {
			continue
		}
		if strings.Contains(ch.LatestRelease, "-") {
			continue
		}
		v, err := parseLine(ch.ChannelVersion)
		if err != nil {
			continue
		}
		if best == nil || compareLines(v, best) > 0 {
			best = v
		}
	}

	if best == nil {
		return 0, &LogicError{Msg: "no stable LTS channel found"}
	}
	return int(best.Major()), nil
}
