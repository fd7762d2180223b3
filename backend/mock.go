package backend

import (
	"context"

	"github.com/capsulex/libcapsule-go/capsule"
)

// MockService is a test double for Service. Function fields must be set
// before the corresponding method is called.
type MockService struct {
	FetchSnapshotFn       func(ctx context.Context) (*capsule.Snapshot, error)
	SetSaleIntentionFn    func(ctx context.Context, args SetSaleIntentionArgs) error
	CancelSaleIntentionFn func(ctx context.Context) error
	SetSaleOfferFn        func(ctx context.Context, args SetSaleOfferArgs) error
	CancelSaleOfferFn     func(ctx context.Context) error
	SetBuyerOfferFn       func(ctx context.Context, args SetBuyerOfferArgs) error
	CancelBuyerOfferFn    func(ctx context.Context) error
	AcceptBuyerOfferFn    func(ctx context.Context, args AcceptBuyerOfferArgs) error
	AcceptSellerOfferFn   func(ctx context.Context, args AcceptSellerOfferArgs) error
	StartReleaseFn        func(ctx context.Context) error
	CancelSaleDealFn      func(ctx context.Context) error
}

func (m *MockService) FetchSnapshot(ctx context.Context) (*capsule.Snapshot, error) {
	return m.FetchSnapshotFn(ctx)
}
func (m *MockService) SetSaleIntention(ctx context.Context, args SetSaleIntentionArgs) error {
	return m.SetSaleIntentionFn(ctx, args)
}
func (m *MockService) CancelSaleIntention(ctx context.Context) error {
	return m.CancelSaleIntentionFn(ctx)
}
func (m *MockService) SetSaleOffer(ctx context.Context, args SetSaleOfferArgs) error {
	return m.SetSaleOfferFn(ctx, args)
}
func (m *MockService) CancelSaleOffer(ctx context.Context) error {
	return m.CancelSaleOfferFn(ctx)
}
func (m *MockService) SetBuyerOffer(ctx context.Context, args SetBuyerOfferArgs) error {
	return m.SetBuyerOfferFn(ctx, args)
}
func (m *MockService) CancelBuyerOffer(ctx context.Context) error {
	return m.CancelBuyerOfferFn(ctx)
}
func (m *MockService) AcceptBuyerOffer(ctx context.Context, args AcceptBuyerOfferArgs) error {
	return m.AcceptBuyerOfferFn(ctx, args)
}
func (m *MockService) AcceptSellerOffer(ctx context.Context, args AcceptSellerOfferArgs) error {
	return m.AcceptSellerOfferFn(ctx, args)
}
func (m *MockService) StartRelease(ctx context.Context) error {
	return m.StartReleaseFn(ctx)
}
func (m *MockService) CancelSaleDeal(ctx context.Context) error {
	return m.CancelSaleDealFn(ctx)
}
