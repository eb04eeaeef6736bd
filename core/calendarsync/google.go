package calendarsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/hearthkeep/hearthkeep/sdk/environment"
)

// ErrEventNotFound is returned when the remote calendar no longer has the
// event.
var ErrEventNotFound = errors.New("calendar event not found")

// Client is the calendar operations the sync service needs. The Google
// implementation satisfies it; tests substitute their own.
type Client interface {
	InsertEvent(ctx context.Context, event Event) (string, error)
	PatchEvent(ctx context.Context, eventID string, event Event) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// GoogleOptions represents the exportable Google Calendar configuration.
type GoogleOptions struct {
	ClientID     string `env:"GCAL_CLIENT_ID" required:"true"`
	ClientSecret string `env:"GCAL_CLIENT_SECRET" required:"true"`
	RefreshToken string `env:"GCAL_REFRESH_TOKEN" required:"true"`
	CalendarID   string `env:"GCAL_CALENDAR_ID" default:"primary"`
	BaseURL      string `env:"GCAL_BASE_URL" default:"https://www.googleapis.com/calendar/v3"`
}

// GoogleClient is a thin REST client for the Google Calendar events API.
// The underlying *http.Client carries OAuth2 refresh-token credentials and
// renews access tokens on its own.
type GoogleClient struct {
	http       *http.Client
	baseURL    string
	calendarID string
}

// NewGoogleClientFromEnv builds a Google client from prefixed environment
// variables.
func NewGoogleClientFromEnv(ctx context.Context, prefix string) (*GoogleClient, error) {
	var opts GoogleOptions
	if err := environment.ParseEnvTags(prefix, &opts); err != nil {
		return nil, fmt.Errorf("parsing google calendar config: %w", err)
	}
	return NewGoogleClient(ctx, opts), nil
}

// NewGoogleClient builds a Google client from explicit options.
func NewGoogleClient(ctx context.Context, opts GoogleOptions) *GoogleClient {
	cfg := oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}

	httpClient := cfg.Client(ctx, &oauth2.Token{RefreshToken: opts.RefreshToken})
	httpClient.Timeout = 30 * time.Second

	return &GoogleClient{
		http:       httpClient,
		baseURL:    opts.BaseURL,
		calendarID: opts.CalendarID,
	}
}

// googleEvent is the wire shape of an all-day calendar event.
type googleEvent struct {
	ID          string     `json:"id,omitempty"`
	Summary     string     `json:"summary"`
	Description string     `json:"description,omitempty"`
	Start       googleDate `json:"start"`
	End         googleDate `json:"end"`
}

type googleDate struct {
	Date string `json:"date"`
}

func toGoogleEvent(event Event) googleEvent {
	return googleEvent{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       googleDate{Date: event.Start.Format(time.DateOnly)},
		End:         googleDate{Date: event.End.Format(time.DateOnly)},
	}
}

func (c *GoogleClient) eventsURL(eventID string) string {
	u := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))
	if eventID != "" {
		u += "/" + url.PathEscape(eventID)
	}
	return u
}

// InsertEvent creates an event and returns its remote id.
func (c *GoogleClient) InsertEvent(ctx context.Context, event Event) (string, error) {
	var created googleEvent
	if err := c.do(ctx, http.MethodPost, c.eventsURL(""), toGoogleEvent(event), &created); err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return created.ID, nil
}

// PatchEvent updates an existing event in place.
func (c *GoogleClient) PatchEvent(ctx context.Context, eventID string, event Event) error {
	if err := c.do(ctx, http.MethodPatch, c.eventsURL(eventID), toGoogleEvent(event), nil); err != nil {
		return fmt.Errorf("patch event %s: %w", eventID, err)
	}
	return nil
}

// DeleteEvent removes an event. A remote 404/410 maps to ErrEventNotFound.
func (c *GoogleClient) DeleteEvent(ctx context.Context, eventID string) error {
	if err := c.do(ctx, http.MethodDelete, c.eventsURL(eventID), nil, nil); err != nil {
		return fmt.Errorf("delete event %s: %w", eventID, err)
	}
	return nil
}

func (c *GoogleClient) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call calendar api: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrEventNotFound
	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("calendar api status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
