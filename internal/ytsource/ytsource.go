// Package ytsource talks to YouTube for caption tracks and timed text.
//
// Track listing tries the watch page first (ytInitialPlayerResponse works
// from any IP), then falls back to the ANDROID Innertube /player endpoint.
// No request is retried; failures surface immediately to the caller.
package ytsource

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"tubetext/api-gateway/models"
	"tubetext/api-gateway/transcript"
)

// Client fetches caption data over HTTPS. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	logger     *logrus.Logger
}

func New(httpClient *http.Client, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, logger: logger}
}

// ListTracks returns the caption tracks available for videoID.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	tracks, err := c.listTracksViaWatchPage(ctx, videoID)
	if err == nil {
		return tracks, nil
	}
	if errors.Is(err, transcript.ErrVideoUnavailable) || errors.Is(err, transcript.ErrTranscriptsDisabled) {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"error":    err.Error(),
	}).Warn("Watch page scrape failed, falling back to Innertube player")

	return c.listTracksViaPlayer(ctx, videoID)
}

// FetchTrack downloads and parses a track's timedtext XML into ordered
// segments.
func (c *Client) FetchTrack(ctx context.Context, track CaptionTrack) ([]models.TranscriptSegment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build timedtext request: %v", transcript.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch timedtext: %v", transcript.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: timedtext HTTP %d", transcript.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read timedtext: %v", transcript.ErrUpstream, err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("%w: parse timedtext XML: %v", transcript.ErrUpstream, err)
	}

	segments := make([]models.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		segments = append(segments, models.TranscriptSegment{
			Start:    line.Start,
			Duration: line.Dur,
			Text:     text,
		})
	}
	return segments, nil
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON
// in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

func (c *Client) listTracksViaWatchPage(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURLPrefix+videoID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build watch request: %v", transcript.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: watch page: %v", transcript.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: watch page HTTP %d", transcript.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read watch page: %v", transcript.ErrUpstream, err)
	}

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, fmt.Errorf("%w: ytInitialPlayerResponse not found", transcript.ErrUpstream)
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, fmt.Errorf("%w: unbalanced ytInitialPlayerResponse JSON", transcript.ErrUpstream)
	}

	var pr playerResp
	if err := json.Unmarshal(jsonData, &pr); err != nil {
		return nil, fmt.Errorf("%w: decode ytInitialPlayerResponse: %v", transcript.ErrUpstream, err)
	}
	return tracksFromPlayerResp(pr)
}

func (c *Client) listTracksViaPlayer(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal player request: %v", transcript.ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, playerURL+"?prettyPrint=false", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: build player request: %v", transcript.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: innertube player: %v", transcript.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: innertube player HTTP %d", transcript.ErrUpstream, resp.StatusCode)
	}

	var pr playerResp
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("%w: decode player response: %v", transcript.ErrUpstream, err)
	}
	return tracksFromPlayerResp(pr)
}

// tracksFromPlayerResp maps a player response to caption tracks or to the
// definitive error kind the playability status implies.
func tracksFromPlayerResp(pr playerResp) ([]CaptionTrack, error) {
	if pr.PlayabilityStatus != nil {
		switch pr.PlayabilityStatus.Status {
		case "ERROR", "UNPLAYABLE", "LOGIN_REQUIRED":
			if pr.PlayabilityStatus.Reason != "" {
				return nil, fmt.Errorf("%w: %s", transcript.ErrVideoUnavailable, pr.PlayabilityStatus.Reason)
			}
			return nil, transcript.ErrVideoUnavailable
		}
	}
	if pr.Captions == nil {
		return nil, transcript.ErrTranscriptsDisabled
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, transcript.ErrTranscriptsDisabled
	}
	return tracks, nil
}

// extractJSON returns the balanced JSON object at the start of b, or nil.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	var prev byte
	for i, c := range b {
		if inStr {
			if c == '"' && prev != '\\' {
				inStr = false
			}
		} else {
			switch c {
			case '"':
				inStr = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return b[:i+1]
				}
			}
		}
		prev = c
	}
	return nil
}
