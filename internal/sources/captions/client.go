package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scriba/internal/media"
	"scriba/internal/sources"
)

// HTTPDoer describes the HTTP client used by the captions source.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches caption tracks from the timedtext API in json3 format.
type Client struct {
	baseURL string
	client  HTTPDoer
}

// NewClient constructs a captions client. A nil doer falls back to a
// http.Client with the given timeout.
func NewClient(baseURL string, timeout time.Duration, doer HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  doer,
	}
}

// json3 payload shape: a flat event list where each event carries a start
// offset, duration, and one or more text runs.
type json3Payload struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMS    int64      `json:"tStartMs"`
	DurationMS int64      `json:"dDurationMs"`
	Segs       []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// ErrNoTrack is returned when the API has no caption track for the
// requested video/language combination.
var ErrNoTrack = fmt.Errorf("no caption track")

// Fetch retrieves the caption track for one video id and language.
// Returns ErrNoTrack when the track does not exist; other errors indicate
// transport or decode failures.
func (c *Client) Fetch(ctx context.Context, videoID, lang string) ([]media.Segment, error) {
	endpoint := fmt.Sprintf("%s?v=%s&lang=%s&fmt=json3",
		c.baseURL, url.QueryEscape(videoID), url.QueryEscape(lang))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, sources.Wrap(sources.ErrUpstream, "captions", "build request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, sources.Wrap(sources.ErrUpstream, "captions", "fetch track", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoTrack
	case resp.StatusCode != http.StatusOK:
		return nil, sources.Wrap(sources.ErrUpstream, "captions",
			fmt.Sprintf("fetch track: status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, sources.Wrap(sources.ErrUpstream, "captions", "read body", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrNoTrack
	}

	var payload json3Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, sources.Wrap(sources.ErrDecode, "captions", "parse json3", err)
	}

	segments := make([]media.Segment, 0, len(payload.Events))
	for _, event := range payload.Events {
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		cleaned := strings.TrimSpace(text.String())
		if cleaned == "" {
			continue
		}
		duration := event.DurationMS
		if duration < 0 {
			duration = 0
		}
		segments = append(segments, media.Segment{
			Text:       cleaned,
			OffsetMS:   event.StartMS,
			DurationMS: duration,
		})
	}
	return segments, nil
}
