// Package orderclient is the HTTP client for the order-creation service.
package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"toyshop/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type orderResponse struct {
	Order struct {
		OrderID string `json:"orderId"`
	} `json:"order"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Submit posts the order payload. On a non-2xx answer the service's error
// message, when present, is carried back verbatim in a SubmissionError so the
// UI can surface it unchanged.
func (c *Client) Submit(ctx context.Context, payload domain.OrderPayload) (*domain.OrderConfirmation, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorResponse
		_ = json.Unmarshal(raw, &errBody)
		return nil, &domain.SubmissionError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	var ok orderResponse
	if err := json.Unmarshal(raw, &ok); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	return &domain.OrderConfirmation{
		OrderID:     ok.Order.OrderID,
		TotalAmount: payload.TotalAmount,
		ItemsQty:    payload.ItemsQty,
		PlacedAt:    time.Now().UTC(),
	}, nil
}
