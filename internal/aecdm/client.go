// Package aecdm is the client for the upstream building-model elements
// API. It only retrieves element snapshots; classification happens in the
// containment package.
package aecdm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"roomscan/internal/model"
)

// PageSize is the server-side page cap for element queries
const PageSize = 500

// QueryError is an error reported by the upstream elements API. It is
// propagated unchanged to callers; the client never retries.
type QueryError struct {
	StatusCode int
	Body       string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("upstream elements query failed with status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the elements API of one deployment
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL, authenticating every
// request with the supplied bearer token
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Model binds the client to one model URN so it can serve as an element
// source for the analyzer
func (c *Client) Model(urn string) *ModelSource {
	return &ModelSource{client: c, urn: urn}
}

// ModelSource fetches elements of a single model by category
type ModelSource struct {
	client *Client
	urn    string
}

// ElementsByCategory implements containment.ElementSource
func (m *ModelSource) ElementsByCategory(ctx context.Context, category string) ([]*model.Element, error) {
	return m.client.ElementsByCategory(ctx, m.urn, category)
}

// wire representation of the elements endpoint payload

type elementsResponse struct {
	Pagination struct {
		Cursor string `json:"cursor"`
	} `json:"pagination"`
	Results []elementRecord `json:"results"`
}

type elementRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Properties struct {
		Results []model.Property `json:"results"`
	} `json:"properties"`
	Geometry *model.Geometry `json:"geometry,omitempty"`
}

// ElementsByCategory fetches every element of the category from the model,
// following cursor pagination until the server reports no further page.
// The filter combines the category with the Instance context predicate so
// type definitions never show up in the result.
func (c *Client) ElementsByCategory(ctx context.Context, modelURN, category string) ([]*model.Element, error) {
	filter := fmt.Sprintf("property.name.category==%s and property.name.'Element Context'==Instance", category)

	var elements []*model.Element
	cursor := ""
	for {
		page, err := c.fetchPage(ctx, modelURN, filter, cursor)
		if err != nil {
			return nil, err
		}
		for _, rec := range page.Results {
			elements = append(elements, &model.Element{
				ID:         rec.ID,
				Name:       rec.Name,
				Category:   rec.Category,
				Properties: rec.Properties.Results,
				Geometry:   rec.Geometry,
			})
		}
		if page.Pagination.Cursor == "" {
			break
		}
		cursor = page.Pagination.Cursor
	}
	return elements, nil
}

// fetchPage retrieves a single page of elements
func (c *Client) fetchPage(ctx context.Context, modelURN, filter, cursor string) (*elementsResponse, error) {
	query := url.Values{}
	query.Set("filter", filter)
	query.Set("limit", fmt.Sprintf("%d", PageSize))
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	endpoint := fmt.Sprintf("%s/v1/models/%s/elements?%s", c.baseURL, url.PathEscape(modelURN), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elements request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &QueryError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var page elementsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding elements response: %w", err)
	}
	return &page, nil
}
