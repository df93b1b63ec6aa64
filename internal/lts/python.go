package lts

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/obentoo/ltscheck/internal/common/logger"
	"github.com/tidwall/gjson"
)

// DefaultPythonFeedURLs are the endoflife.date endpoints tried in order
var DefaultPythonFeedURLs = []string{
	"https://endoflife.date/api/python.json",
	"https://endoflife.date/api/v1/python.json",
	"https://endoflife.date/api/v1/products/python",
}

// eolDateLayout is the date format used by endoflife.date
const eolDateLayout = "2006-01-02"

// pythonLinePrefix restricts the resolver to Python 3 release lines
const pythonLinePrefix = "3."

// Cycle is one Python release line normalized from any feed shape.
type Cycle struct {
	// Name is the cycle identifier, e.g. "3.13"
	Name string
	// EOL is the end-of-life date, zero when the feed announces none
	EOL time.Time
}

// SupportedAt reports whether the cycle has an end-of-life date after now.
// A cycle without a date is never supported.
func (c Cycle) SupportedAt(now time.Time) bool {
	if c.EOL.IsZero() {
		return false
	}
	return c.EOL.After(now)
}

// FeedShape identifies one known layout of the Python end-of-life feed.
type FeedShape int

const (
	// ShapeUnknown matches nothing
	ShapeUnknown FeedShape = iota
	// ShapeReleaseEnvelope is {"result": {"releases": [{"name", "eolFrom", "isEol"}]}}
	ShapeReleaseEnvelope
	// ShapeCycleList is [{"cycle", "eol"}] where eol is a date or a boolean
	ShapeCycleList
	// ShapeCyclesObject is {"cycles": [{"cycle", "eol"}]}
	ShapeCyclesObject
	// ShapeReleasesObject is {"releases": [{"cycle", "eol"}]}
	ShapeReleasesObject
)

// feedShapeOrder is the order in which shapes are matched against a document
var feedShapeOrder = []FeedShape{
	ShapeReleaseEnvelope,
	ShapeCycleList,
	ShapeCyclesObject,
	ShapeReleasesObject,
}

func (s FeedShape) String() string {
	switch s {
	case ShapeReleaseEnvelope:
		return "release-envelope"
	case ShapeCycleList:
		return "cycle-list"
	case ShapeCyclesObject:
		return "cycles-object"
	case ShapeReleasesObject:
		return "releases-object"
	default:
		return "unknown"
	}
}

// matches reports whether doc has this shape
func (s FeedShape) matches(doc gjson.Result) bool {
	switch s {
	case ShapeReleaseEnvelope:
		return doc.Get("result.releases").IsArray()
	case ShapeCycleList:
		return doc.IsArray()
	case ShapeCyclesObject:
		return doc.Get("cycles").IsArray()
	case ShapeReleasesObject:
		return doc.Get("releases").IsArray()
	default:
		return false
	}
}

// decode normalizes a document of this shape into cycles
func (s FeedShape) decode(doc gjson.Result) []Cycle {
	var cycles []Cycle
	switch s {
	case ShapeReleaseEnvelope:
		doc.Get("result.releases").ForEach(func(_, r gjson.Result) bool {
			if c, ok := cycleFrom(r.Get("name"), r.Get("eolFrom")); ok {
				cycles = append(cycles, c)
			}
			return true
		})
	case ShapeCycleList:
		cycles = cycleRecords(doc)
	case ShapeCyclesObject:
		cycles = cycleRecords(doc.Get("cycles"))
	case ShapeReleasesObject:
		cycles = cycleRecords(doc.Get("releases"))
	}
	return cycles
}

// cycleRecords decodes an array of {"cycle", "eol"} records
func cycleRecords(list gjson.Result) []Cycle {
	var cycles []Cycle
	list.ForEach(func(_, r gjson.Result) bool {
		if c, ok := cycleFrom(r.Get("cycle"), r.Get("eol")); ok {
			cycles = append(cycles, c)
		}
		return true
	})
	return cycles
}

// cycleFrom builds a Cycle from a name and a date-or-flag value.
// Entries without a name or with an unreadable date are dropped; a boolean or
// null value leaves EOL zero.
func cycleFrom(name, eol gjson.Result) (Cycle, bool) {
	c := Cycle{Name: strings.TrimSpace(name.String())}
	if c.Name == "" {
		return c, false
	}

	switch eol.Type {
	case gjson.String:
		t, err := time.Parse(eolDateLayout, eol.Str)
		if err != nil {
			return c, false
		}
		c.EOL = t
	}
	return c, true
}

// DetectFeedShape returns the first shape in match order that fits body.
func DetectFeedShape(body []byte) FeedShape {
	if !gjson.ValidBytes(body) {
		return ShapeUnknown
	}
	doc := gjson.ParseBytes(body)
	for _, shape := range feedShapeOrder {
		if shape.matches(doc) {
			return shape
		}
	}
	return ShapeUnknown
}

// ParsePythonFeed decodes a Python end-of-life document of any known shape.
// A document that is not JSON, matches no shape, or yields no cycles is a *ParseError.
func ParsePythonFeed(source string, body []byte) ([]Cycle, FeedShape, error) {
	if !gjson.ValidBytes(body) {
		return nil, ShapeUnknown, &ParseError{Source: source, Err: errors.New("invalid JSON")}
	}

	shape := DetectFeedShape(body)
	if shape == ShapeUnknown {
		return nil, shape, &ParseError{Source: source, Err: errors.New("unrecognized feed shape")}
	}

	cycles := shape.decode(gjson.ParseBytes(body))
	if len(cycles) == 0 {
		return nil, shape, &ParseError{Source: source, Err: fmt.Errorf("%s document holds no release cycles", shape)}
	}
	return cycles, shape, nil
}

// LatestSupportedPython returns the highest 3.x cycle still supported at now.
// Cycles are ordered by numeric (major, minor), never lexicographically.
func LatestSupportedPython(cycles []Cycle, now time.Time) (string, error) {
	var supported []string
	for _, c := range cycles {
		if !strings.HasPrefix(c.Name, pythonLinePrefix) || !c.SupportedAt(now) {
			continue
		}
		if _, err := parseLine(c.Name); err != nil {
			continue
		}
		supported = append(supported, c.Name)
	}

	if len(supported) == 0 {
		return "", &LogicError{Msg: "no supported 3.x cycle currently has a future end-of-life date"}
	}

	slices.SortStableFunc(supported, func(a, b string) int {
		return CompareCycles(b, a)
	})
	return supported[0], nil
}

// PythonResolver finds the newest actively supported Python 3.x line.
type PythonResolver struct {
	client  *FeedClient
	urls    []string
	nowFunc func() time.Time
}

// NewPythonResolver creates a resolver over the candidate urls, tried in order.
func NewPythonResolver(client *FeedClient, urls []string, nowFunc func() time.Time) *PythonResolver {
	if len(urls) == 0 {
		urls = DefaultPythonFeedURLs
	}
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return &PythonResolver{client: client, urls: urls, nowFunc: nowFunc}
}

// Resolve queries the candidate endpoints in order and resolves the latest
// supported cycle from the first one that decodes.
func (r *PythonResolver) Resolve(ctx context.Context) (string, error) {
	var errs []error
	var lastFetch error
	fetched := false
	for _, url := range r.urls {
		body, err := r.client.Fetch(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return "", err
			}
			logger.Debug("python feed %s unavailable: %v", url, err)
			errs = append(errs, err)
			lastFetch = err
			continue
		}
		fetched = true

		cycles, shape, err := ParsePythonFeed(url, body)
		if err != nil {
			logger.Debug("python feed %s rejected: %v", url, err)
			errs = append(errs, err)
			continue
		}

		logger.Debug("python feed %s matched %s shape (%d cycles)", url, shape, len(cycles))
		return LatestSupportedPython(cycles, r.nowFunc())
	}

	// No candidate produced a body: report the last transport failure
	if !fetched {
		return "", lastFetch
	}
	return "", &ParseError{Source: "python end-of-life feed", Err: errors.Join(errs...)}
}
