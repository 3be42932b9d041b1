package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stwalsh4118/simulive/internal/logger"
	"golang.org/x/net/html"
)

var (
	// ErrVideoNotFound is returned when no video exists for the given ID
	ErrVideoNotFound = errors.New("video not found")
)

// VideoInfo is the metadata needed to register a webinar from a video
type VideoInfo struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	DurationSec  int64  `json:"duration_sec"`

	// NeedsManualDuration is set when metadata came from a source that does
	// not expose the duration, which the operator must then enter by hand
	NeedsManualDuration bool `json:"needs_manual_duration"`
}

const lookupTimeout = 10 * time.Second

// Client looks up video metadata. With an API key it queries the Data API;
// without one it falls back to oEmbed plus a watch-page scrape, which cannot
// provide the duration.
type Client struct {
	apiKey     string
	httpClient *http.Client

	dataAPIBaseURL string
	oembedBaseURL  string
	watchBaseURL   string
}

// NewClient creates a metadata client. apiKey may be empty.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:         apiKey,
		httpClient:     &http.Client{Timeout: lookupTimeout},
		dataAPIBaseURL: "https://www.googleapis.com/youtube/v3",
		oembedBaseURL:  "https://www.youtube.com/oembed",
		watchBaseURL:   "https://youtu.be",
	}
}

// Lookup returns metadata for a video ID
func (c *Client) Lookup(ctx context.Context, videoID string) (*VideoInfo, error) {
	if c.apiKey == "" {
		return c.lookupFallback(ctx, videoID)
	}
	return c.lookupDataAPI(ctx, videoID)
}

// Data API wire types, limited to the fields we read

type dataAPIResponse struct {
	Items []struct {
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails map[string]struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

func (c *Client) lookupDataAPI(ctx context.Context, videoID string) (*VideoInfo, error) {
	endpoint := fmt.Sprintf("%s/videos?id=%s&key=%s&part=snippet,contentDetails",
		c.dataAPIBaseURL, url.QueryEscape(videoID), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build video lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected video lookup status: %d", resp.StatusCode)
	}

	var data dataAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode video info: %w", err)
	}

	if len(data.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	item := data.Items[0]
	return &VideoInfo{
		Title:        item.Snippet.Title,
		ThumbnailURL: pickThumbnail(videoID, item.Snippet.Thumbnails),
		DurationSec:  ParseISO8601Duration(item.ContentDetails.Duration),
	}, nil
}

// pickThumbnail prefers the largest thumbnail the API returned
func pickThumbnail(videoID string, thumbnails map[string]struct {
	URL string `json:"url"`
}) string {
	for _, quality := range []string{"maxres", "high", "default"} {
		if t, ok := thumbnails[quality]; ok && t.URL != "" {
			return t.URL
		}
	}
	return ThumbnailURL(videoID, "high")
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// lookupFallback gets what it can without an API key: title and thumbnail
// via oEmbed, or scraped from the watch page when the video is not
// embeddable. Duration is unavailable either way.
func (c *Client) lookupFallback(ctx context.Context, videoID string) (*VideoInfo, error) {
	info, err := c.lookupOEmbed(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return nil, err
		}

		logger.Log.Debug().
			Err(err).
			Str("video_id", videoID).
			Msg("oEmbed lookup failed, scraping watch page")

		info, err = c.scrapeWatchPage(ctx, videoID)
		if err != nil {
			return nil, err
		}
	}

	info.NeedsManualDuration = true
	return info, nil
}

func (c *Client) lookupOEmbed(ctx context.Context, videoID string) (*VideoInfo, error) {
	endpoint := fmt.Sprintf("%s?url=%s&format=json",
		c.oembedBaseURL, url.QueryEscape("https://www.youtube.com/watch?v="+videoID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build oembed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch oembed data: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough to decode
	case http.StatusBadRequest, http.StatusNotFound:
		return nil, ErrVideoNotFound
	default:
		return nil, fmt.Errorf("unexpected oembed status: %d", resp.StatusCode)
	}

	var data oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode oembed data: %w", err)
	}

	thumbnail := data.ThumbnailURL
	if thumbnail == "" {
		thumbnail = ThumbnailURL(videoID, "high")
	}

	return &VideoInfo{
		Title:        data.Title,
		ThumbnailURL: thumbnail,
	}, nil
}

// scrapeWatchPage pulls the title out of the watch page HTML. Used for
// videos that exist but are not embeddable, where oEmbed refuses to answer.
func (c *Client) scrapeWatchPage(ctx context.Context, videoID string) (*VideoInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.watchBaseURL+"/"+videoID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build watch page request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected watch page status: %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse watch page: %w", err)
	}

	return &VideoInfo{
		Title:        pageTitle(doc),
		ThumbnailURL: ThumbnailURL(videoID, "high"),
	}, nil
}

// pageTitle walks the parsed document for the first <title> element
func pageTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
		return strings.TrimSuffix(n.FirstChild.Data, " - YouTube")
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if title := pageTitle(child); title != "" {
			return title
		}
	}
	return ""
}
