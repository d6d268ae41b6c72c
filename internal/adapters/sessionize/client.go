package sessionize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"devevents/internal/domain"
)

// DefaultBaseURL is the public Sessionize v2 API root.
const DefaultBaseURL = "https://sessionize.com/api/v2"

type sessionizeHTTPFetcher struct {
	client  *http.Client
	baseURL string
}

// NewHTTPFetcher returns a fetcher that calls the Sessionize API rooted at baseURL.
func NewHTTPFetcher(client *http.Client, baseURL string) domain.SpeakerFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &sessionizeHTTPFetcher{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (f *sessionizeHTTPFetcher) Fetch(ctx context.Context, sessionizeID string) (domain.SessionizeAllResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/view/All", f.baseURL, url.PathEscape(sessionizeID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.SessionizeAllResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.client.Do(req)
	if err != nil {
		return domain.SessionizeAllResponse{}, fmt.Errorf("%w: failed to fetch from sessionize: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.SessionizeAllResponse{}, fmt.Errorf("%w: sessionize api returned status: %d", domain.ErrUpstream, resp.StatusCode)
	}

	var data domain.SessionizeAllResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return domain.SessionizeAllResponse{}, fmt.Errorf("%w: failed to decode sessionize response: %w", domain.ErrUpstream, err)
	}
	return data, nil
}
