// Package youtube is a minimal read-only client for the two YouTube Data
// API v3 endpoints the minigames need: resolving a video's active live
// chat and paging through its messages.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dougneves/doug-minigames/pkg/domain"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// defaultPollingInterval is used when the API omits its polling advice.
const defaultPollingInterval = 10 * time.Second

// Client is the YouTube Data API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates an API client authenticated with the given key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MessagePage is one page of live chat messages plus scheduling hints.
type MessagePage struct {
	Messages        []domain.ChatMessage
	NextPageToken   string
	PollingInterval time.Duration
}

// LiveChatID resolves the active live chat id of a video. A video without
// one (not live, or chat off) yields ErrNotFound.
func (c *Client) LiveChatID(ctx context.Context, videoID string) (string, error) {
	params := url.Values{}
	params.Set("part", "liveStreamingDetails")
	params.Set("id", videoID)
	params.Set("key", c.apiKey)

	var resp struct {
		Items []struct {
			LiveStreamingDetails struct {
				ActiveLiveChatID string `json:"activeLiveChatId"`
			} `json:"liveStreamingDetails"`
		} `json:"items"`
	}
	if err := c.get(ctx, "/videos?"+params.Encode(), &resp); err != nil {
		return "", fmt.Errorf("youtube.LiveChatID: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].LiveStreamingDetails.ActiveLiveChatID == "" {
		return "", ErrNotFound
	}
	return resp.Items[0].LiveStreamingDetails.ActiveLiveChatID, nil
}

// Messages fetches one page of chat messages. An empty pageToken starts
// from the live position. A 403/404 carrying a liveChatDisabled,
// liveChatNotFound, or liveChatEnded reason maps to ErrChatDisabled;
// everything else non-2xx is an *HTTPError and should be treated as
// transient by callers.
func (c *Client) Messages(ctx context.Context, liveChatID, pageToken string) (*MessagePage, error) {
	params := url.Values{}
	params.Set("liveChatId", liveChatID)
	params.Set("part", "snippet,authorDetails")
	params.Set("key", c.apiKey)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp struct {
		Items                 []domain.ChatMessage `json:"items"`
		NextPageToken         string               `json:"nextPageToken"`
		PollingIntervalMillis int64                `json:"pollingIntervalMillis"`
	}
	if err := c.get(ctx, "/liveChat/messages?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("youtube.Messages: %w", err)
	}

	interval := time.Duration(resp.PollingIntervalMillis) * time.Millisecond
	if interval <= 0 {
		interval = defaultPollingInterval
	}
	return &MessagePage{
		Messages:        resp.Items,
		NextPageToken:   resp.NextPageToken,
		PollingInterval: interval,
	}, nil
}

// apiErrorBody is the error envelope the Data API wraps failures in.
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// terminalReason reports whether an API error reason means the chat is
// permanently gone rather than temporarily unreachable.
func terminalReason(reason string) bool {
	switch reason {
	case "liveChatDisabled", "liveChatNotFound", "liveChatEnded":
		return true
	}
	return false
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr apiErrorBody
		if json.Unmarshal(body, &apiErr) == nil {
			if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusNotFound {
				for _, e := range apiErr.Error.Errors {
					if terminalReason(e.Reason) {
						return ErrChatDisabled
					}
				}
			}
			if apiErr.Error.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error.Message}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
