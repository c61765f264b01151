// Package catalog is the read-side client for the external service and add-on
// catalog. The configurator never owns catalog data; it snapshots what it
// needs into the draft at selection time.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"photobooking/internal/domain"
)

var ErrNotFound = errors.New("catalog item not found")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Services returns active services only; the contract exposes the flag but
// inactive entries are filtered here.
func (c *Client) Services(ctx context.Context) ([]domain.Service, error) {
	var out struct {
		Services []domain.Service `json:"services"`
	}
	if err := c.getJSON(ctx, "/services", nil, &out); err != nil {
		return nil, err
	}

	active := make([]domain.Service, 0, len(out.Services))
	for _, s := range out.Services {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return active, nil
}

func (c *Client) ServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	services, err := c.Services(ctx)
	if err != nil {
		return nil, err
	}
	for i := range services {
		if services[i].ID == id {
			return &services[i], nil
		}
	}
	return nil, ErrNotFound
}

// AddonsForService is parameterized by the selected service's name; the
// collaborator filters to active and applicable server-side.
func (c *Client) AddonsForService(ctx context.Context, serviceName string) ([]domain.Addon, error) {
	var out struct {
		Addons []domain.Addon `json:"addons"`
	}
	q := url.Values{"service_name": {serviceName}}
	if err := c.getJSON(ctx, "/addons", q, &out); err != nil {
		return nil, err
	}
	return out.Addons, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("catalog response decode failed: %w", err)
	}
	return nil
}
