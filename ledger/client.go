package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/capsulex/libcapsule-go/capsule"
)

// Client is an HTTP client for the value-transfer ledger.
type Client struct {
	baseURL  string
	ledgerID string
	client   *http.Client
}

// Compile-time interface check.
var _ Service = (*Client)(nil)

// NewClient creates a ledger client. ledgerID selects the currency
// ledger when the gateway fronts more than one.
func NewClient(baseURL, ledgerID string) *Client {
	return &Client{
		baseURL:  baseURL,
		ledgerID: ledgerID,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// TransferFee implements Service.
func (c *Client) TransferFee(ctx context.Context) (uint64, error) {
	var out struct {
		Fee uint64 `json:"fee"`
	}
	if err := c.get(ctx, "/fee", &out); err != nil {
		return 0, err
	}
	return out.Fee, nil
}

// Balance implements Service.
func (c *Client) Balance(ctx context.Context, account capsule.Account) (uint64, error) {
	var out struct {
		Balance uint64 `json:"balance"`
	}
	path := "/accounts/" + url.PathEscape(account.String()) + "/balance"
	if err := c.get(ctx, path, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

// History implements Service.
func (c *Client) History(ctx context.Context, account capsule.Account) ([]Transaction, error) {
	var out struct {
		Transactions []Transaction `json:"transactions"`
	}
	path := "/accounts/" + url.PathEscape(account.String()) + "/transactions"
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Transactions, nil
}

// Approve implements Service.
func (c *Client) Approve(ctx context.Context, args ApproveArgs) error {
	return c.post(ctx, "/approve", args)
}

// Transfer implements Service.
func (c *Client) Transfer(ctx context.Context, args TransferArgs) error {
	return c.post(ctx, "/transfer", args)
}

// get performs a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("ledger: build request: %w", err)
	}

	body, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

// post performs a POST of the JSON-encoded args.
func (c *Client) post(ctx context.Context, path string, args interface{}) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("ledger: marshal args: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("ledger: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.roundTrip(req)
	return err
}

// roundTrip executes the request and maps failures onto the package's
// sentinel errors.
func (c *Client) roundTrip(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrInvalidResponse, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, ErrInsufficientBalance
	default:
		return nil, fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}
}

// url joins the base URL, ledger resource, and path.
func (c *Client) url(path string) string {
	return fmt.Sprintf("%s/v1/ledgers/%s%s", c.baseURL, c.ledgerID, path)
}
