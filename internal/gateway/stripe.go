package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Error carries the gateway's own status and error detail so handlers can
// propagate it.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("stripe: status %d: %s", e.Status, e.Message)
}

// StripeClient creates payment intents. No retries: a failed call surfaces
// immediately to the caller.
type StripeClient struct {
	key     string
	baseURL string
	client  *http.Client
}

func NewStripeClient(key string) *StripeClient {
	return &StripeClient{
		key:     key,
		baseURL: "https://api.stripe.com/v1",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewStripeClientWithBaseURL is used by tests to point at a fake gateway.
func NewStripeClientWithBaseURL(key, baseURL string) *StripeClient {
	c := NewStripeClient(key)
	c.baseURL = baseURL
	return c
}

// CreateIntent requests a card payment intent for amountMinor USD cents and
// returns the client secret the frontend completes the charge with.
func (c *StripeClient) CreateIntent(ctx context.Context, amountMinor int64) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", "usd")
	form.Add("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		msg := string(body)
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			msg = errResp.Error.Message
		}
		return "", &Error{Status: resp.StatusCode, Message: msg}
	}

	var intent struct {
		ClientSecret string `json:"client_secret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", err
	}
	if intent.ClientSecret == "" {
		return "", &Error{Status: resp.StatusCode, Message: "no client secret in response"}
	}

	return intent.ClientSecret, nil
}
