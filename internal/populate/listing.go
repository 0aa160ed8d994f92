package populate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gamehub/pkg/models"
)

// ListingClient fetches one page of the storefront's filtered-search
// endpoint. A failure here is the only error the populate pipeline
// surfaces to its caller.
type ListingClient struct {
	BaseURL string
	Client  *http.Client
}

func NewListingClient(baseURL string) *ListingClient {
	return &ListingClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 12 * time.Second},
	}
}

type listingResponse struct {
	Products []models.ScrapedProduct `json:"products"`
}

func (c *ListingClient) FetchPage(ctx context.Context, params url.Values) ([]models.ScrapedProduct, error) {
	u, err := url.Parse(c.BaseURL + "/games/ajax/filtered")
	if err != nil {
		return nil, fmt.Errorf("listing: parse base url: %w", err)
	}

	q := u.Query()
	q.Set("mediaType", "game")
	for key, vals := range params {
		for _, v := range vals {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("listing: build request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("listing: status %d: %s", resp.StatusCode, string(body))
	}

	var lr listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("listing: decode: %w", err)
	}
	return lr.Products, nil
}
