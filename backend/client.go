package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/capsulex/libcapsule-go/capsule"
)

// Client is an HTTP client for the escrow backend's public interface.
// It handles request serialization, response parsing, and mapping the
// backend's structured rejections onto CallError values.
type Client struct {
	baseURL   string
	capsuleID string
	client    *http.Client
}

// Compile-time interface check.
var _ Service = (*Client)(nil)

// NewClient creates a backend client for one capsule.
func NewClient(baseURL, capsuleID string) *Client {
	return &Client{
		baseURL:   baseURL,
		capsuleID: capsuleID,
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

// snapshotEnvelope is the wire shape of a snapshot response. The
// lifecycle state is left raw for capsule.DecodeState, which owns the
// tagged-union rules.
type snapshotEnvelope struct {
	CapsuleID     string                 `json:"capsule_id"`
	State         json.RawMessage        `json:"state"`
	Owner         capsule.Account        `json:"owner"`
	EscrowAccount capsule.Account        `json:"escrow_account"`
	Receiver      capsule.Account        `json:"receiver"`
	Listing       *capsule.Listing       `json:"listing"`
	BuyerOffers   []capsule.BuyerOffer   `json:"buyer_offers"`
	CompletedDeal *capsule.CompletedDeal `json:"completed_deal"`
}

// errorEnvelope is the wire shape of a structured rejection.
type errorEnvelope struct {
	Error *CallError `json:"error"`
}

// FetchSnapshot implements Service.
//
// An unrecognized lifecycle tag does not fail the fetch: the snapshot is
// returned with the illegal phase so the projector can render its
// fallback, and the decode diagnostic is wrapped alongside.
func (c *Client) FetchSnapshot(ctx context.Context) (*capsule.Snapshot, error) {
	body, err := c.get(ctx, "")
	if err != nil {
		return nil, err
	}

	var env snapshotEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: snapshot: %w", ErrInvalidResponse, err)
	}

	state, decodeErr := capsule.DecodeState(env.State)
	snap := &capsule.Snapshot{
		CapsuleID:     env.CapsuleID,
		State:         state,
		Owner:         env.Owner,
		EscrowAccount: env.EscrowAccount,
		Receiver:      env.Receiver,
		Listing:       env.Listing,
		BuyerOffers:   env.BuyerOffers,
		CompletedDeal: env.CompletedDeal,
	}
	if decodeErr != nil {
		return snap, fmt.Errorf("backend: snapshot state: %w", decodeErr)
	}
	return snap, nil
}

// SetSaleIntention implements Service.
func (c *Client) SetSaleIntention(ctx context.Context, args SetSaleIntentionArgs) error {
	return c.post(ctx, "set_sale_intention", args)
}

// CancelSaleIntention implements Service.
func (c *Client) CancelSaleIntention(ctx context.Context) error {
	return c.post(ctx, "cancel_sale_intention", nil)
}

// SetSaleOffer implements Service.
func (c *Client) SetSaleOffer(ctx context.Context, args SetSaleOfferArgs) error {
	return c.post(ctx, "set_sale_offer", args)
}

// CancelSaleOffer implements Service.
func (c *Client) CancelSaleOffer(ctx context.Context) error {
	return c.post(ctx, "cancel_sale_offer", nil)
}

// SetBuyerOffer implements Service.
func (c *Client) SetBuyerOffer(ctx context.Context, args SetBuyerOfferArgs) error {
	return c.post(ctx, "set_buyer_offer", args)
}

// CancelBuyerOffer implements Service.
func (c *Client) CancelBuyerOffer(ctx context.Context) error {
	return c.post(ctx, "cancel_buyer_offer", nil)
}

// AcceptBuyerOffer implements Service.
func (c *Client) AcceptBuyerOffer(ctx context.Context, args AcceptBuyerOfferArgs) error {
	return c.post(ctx, "accept_buyer_offer", args)
}

// AcceptSellerOffer implements Service.
func (c *Client) AcceptSellerOffer(ctx context.Context, args AcceptSellerOfferArgs) error {
	return c.post(ctx, "accept_seller_offer", args)
}

// StartRelease implements Service.
func (c *Client) StartRelease(ctx context.Context) error {
	return c.post(ctx, "start_release", nil)
}

// CancelSaleDeal implements Service.
func (c *Client) CancelSaleDeal(ctx context.Context) error {
	return c.post(ctx, "cancel_sale_deal", nil)
}

// get performs a GET against the capsule's resource, optionally with a
// sub-path.
func (c *Client) get(ctx context.Context, sub string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(sub), nil)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	return c.roundTrip(req)
}

// post performs a POST of the JSON-encoded args against a capsule method.
func (c *Client) post(ctx context.Context, method string, args interface{}) error {
	var body io.Reader
	if args != nil {
		data, err := json.Marshal(args)
		if err != nil {
			return fmt.Errorf("backend: marshal %s args: %w", method, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(method), body)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	_, err = c.roundTrip(req)
	return err
}

// roundTrip executes the request and maps non-2xx responses carrying the
// structured error envelope onto CallError values.
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

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Code != "" {
		return nil, env.Error
	}
	return nil, fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
}

// url joins the base URL, capsule resource, and optional method path.
func (c *Client) url(sub string) string {
	u := fmt.Sprintf("%s/v1/capsules/%s", c.baseURL, c.capsuleID)
	if sub != "" {
		u += "/" + sub
	}
	return u
}
