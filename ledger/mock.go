package ledger

import (
	"context"

	"github.com/capsulex/libcapsule-go/capsule"
)

// MockService is a test double for Service. Function fields must be set
// before the corresponding method is called.
type MockService struct {
	TransferFeeFn func(ctx context.Context) (uint64, error)
	BalanceFn     func(ctx context.Context, account capsule.Account) (uint64, error)
	HistoryFn     func(ctx context.Context, account capsule.Account) ([]Transaction, error)
	ApproveFn     func(ctx context.Context, args ApproveArgs) error
	TransferFn    func(ctx context.Context, args TransferArgs) error
}

func (m *MockService) TransferFee(ctx context.Context) (uint64, error) {
	return m.TransferFeeFn(ctx)
}
func (m *MockService) Balance(ctx context.Context, account capsule.Account) (uint64, error) {
	return m.BalanceFn(ctx, account)
}
func (m *MockService) History(ctx context.Context, account capsule.Account) ([]Transaction, error) {
	return m.HistoryFn(ctx, account)
}
func (m *MockService) Approve(ctx context.Context, args ApproveArgs) error {
	return m.ApproveFn(ctx, args)
}
func (m *MockService) Transfer(ctx context.Context, args TransferArgs) error {
	return m.TransferFn(ctx, args)
}
