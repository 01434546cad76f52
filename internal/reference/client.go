package reference

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Client fetches countries and states from the backend's reference
// endpoints. Responses arrive in the backend's embedded-collection
// envelope.
type Client struct {
	base *url.URL
	http *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse reference base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: u, http: httpClient}, nil
}

func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	var resp struct {
		Embedded struct {
			Countries []Country `json:"countries"`
		} `json:"_embedded"`
	}
	if err := c.get(ctx, "/api/countries", "", &resp); err != nil {
		return nil, fmt.Errorf("fetch countries: %w", err)
	}
	return resp.Embedded.Countries, nil
}

func (c *Client) States(ctx context.Context, countryCode string) ([]State, error) {
	q := url.Values{"code": {countryCode}}
	var resp struct {
		Embedded struct {
			States []State `json:"states"`
		} `json:"_embedded"`
	}
	if err := c.get(ctx, "/api/states/search/findByCountryCode", q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetch states for %s: %w", countryCode, err)
	}
	return resp.Embedded.States, nil
}

func (c *Client) get(ctx context.Context, path, rawQuery string, out any) error {
	rel := &url.URL{Path: path, RawQuery: rawQuery}
	u := c.base.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
