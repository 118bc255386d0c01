package samgov

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrSourceUnavailable marks a failed fetch from SAM.gov (transport error or
// non-success status). Callers should keep serving last-known store contents.
var ErrSourceUnavailable = errors.New("sam.gov source unavailable")

// Client talks to the SAM.gov opportunities v2 search API.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewClient(apiKey string) *Client {
	return &Client{
		HTTP: &http.Client{
			Timeout: 60 * time.Second,
		},
		BaseURL: "https://api.sam.gov/opportunities/v2/search",
		APIKey:  apiKey,
	}
}

// SearchParams selects one page of opportunities. The caller chooses the
// posted-date window and pagination; the client does not page on its own.
type SearchParams struct {
	Title      string
	NaicsCode  string
	State      string
	PostedFrom time.Time
	PostedTo   time.Time
	Limit      int
	Offset     int
}

// SearchOpportunities fetches a single page of raw records. Any transport or
// HTTP-level failure is reported as ErrSourceUnavailable; the response body
// is treated as opaque records for the adapter.
func (c *Client) SearchOpportunities(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	query := url.Values{}
	query.Set("api_key", c.APIKey)
	query.Set("postedFrom", params.PostedFrom.Format("01/02/2006"))
	query.Set("postedTo", params.PostedTo.Format("01/02/2006"))
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(params.Offset))
	if params.Title != "" {
		query.Set("title", params.Title)
	}
	if params.NaicsCode != "" {
		query.Set("ncode", params.NaicsCode)
	}
	if params.State != "" {
		query.Set("state", params.State)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("[SamGov] Fetching offset=%d limit=%d title=%q ncode=%q", params.Offset, limit, params.Title, params.NaicsCode)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", ErrSourceUnavailable, resp.StatusCode, string(body))
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrSourceUnavailable, err)
	}

	log.Printf("[SamGov] Got %d opportunities (total: %d)", len(searchResp.OpportunitiesData), searchResp.TotalRecords)
	return &searchResp, nil
}
