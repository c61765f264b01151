package coupon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"photobooking/internal/domain"
)

// Client is the HTTP implementation of ValidatorClient.
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

type validateRequest struct {
	Code        string `json:"code"`
	TotalAmount int64  `json:"total_amount"`
}

func (c *Client) Validate(ctx context.Context, code string, totalAmount int64) (*domain.CouponVerdict, error) {
	var verdict domain.CouponVerdict
	err := c.postJSON(ctx, "/coupons/validate", validateRequest{Code: code, TotalAmount: totalAmount}, &verdict)
	if err != nil {
		return nil, err
	}
	return &verdict, nil
}

type suggestRequest struct {
	TotalAmount int64 `json:"total_amount"`
}

func (c *Client) Suggest(ctx context.Context, totalAmount int64) ([]domain.CouponDescriptor, error) {
	var out struct {
		Coupons []domain.CouponDescriptor `json:"coupons"`
	}
	if err := c.postJSON(ctx, "/coupons/suggest", suggestRequest{TotalAmount: totalAmount}, &out); err != nil {
		return nil, err
	}
	return out.Coupons, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, v interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return nil
}
