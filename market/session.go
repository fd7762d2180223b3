// Package market wires the decision layer together for one capsule and
// one viewer: gated fetches from the backend and ledger collaborators,
// the lifecycle projection, and the settlement preview.
//
// A session never mutates authoritative state. Mutating calls go from
// the presentation layer straight to the backend/ledger services using
// the payloads the projection hands out; the session's job is to keep
// the inputs to the two core computations trustworthy.
package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/capsulex/libcapsule-go/backend"
	"github.com/capsulex/libcapsule-go/capsule"
	"github.com/capsulex/libcapsule-go/gate"
	"github.com/capsulex/libcapsule-go/ledger"
	"github.com/capsulex/libcapsule-go/logger"
	"github.com/capsulex/libcapsule-go/settle"
	"github.com/capsulex/libcapsule-go/store"
	"github.com/capsulex/libcapsule-go/view"
)

// SessionConfig configures a Session.
type SessionConfig struct {
	Logger  *slog.Logger
	Clock   clockwork.Clock
	Backend backend.Service
	Ledger  ledger.Service

	// Store is optional: when set, completed-deal records and ledger
	// history are cached through it.
	Store *store.BoltStore

	// Viewer is the authenticated principal, or anonymous.
	Viewer capsule.Account

	// Rates are the deployment reward shares. Validated here so a bad
	// deployment fails at construction, never mid-preview.
	Rates settle.Rates
}

// Validate checks the config and fills defaults.
func (cfg *SessionConfig) Validate() error {
	if cfg.Backend == nil {
		return errors.New("market: backend service is required")
	}
	if cfg.Ledger == nil {
		return errors.New("market: ledger service is required")
	}
	if err := cfg.Rates.Validate(); err != nil {
		return err
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.New("info")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return nil
}

// Session tracks one capsule for one viewer.
type Session struct {
	log     *slog.Logger
	clock   clockwork.Clock
	backend backend.Service
	ledger  ledger.Service
	store   *store.BoltStore
	viewer  capsule.Account
	rates   settle.Rates

	projector *view.Projector

	snapshotGate gate.Gate[*capsule.Snapshot]
	feeGate      gate.Gate[uint64]
	balanceGate  gate.Gate[uint64]
	historyGate  gate.Gate[[]ledger.Transaction]

	mu             sync.Mutex
	inspectedBuyer capsule.Account
}

// NewSession creates a session. Configuration errors are fatal here.
func NewSession(cfg SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		log:       cfg.Logger,
		clock:     cfg.Clock,
		backend:   cfg.Backend,
		ledger:    cfg.Ledger,
		store:     cfg.Store,
		viewer:    cfg.Viewer,
		rates:     cfg.Rates,
		projector: view.NewProjector(cfg.Logger, cfg.Clock),
	}, nil
}

// Refresh fetches a fresh lifecycle snapshot through the snapshot gate.
// Concurrent refreshes join one underlying call. A snapshot carrying an
// unrecognized tag is still applied (the projector renders its illegal
// fallback) with the decode diagnostic logged, not dropped.
func (s *Session) Refresh(ctx context.Context) (*capsule.Snapshot, error) {
	return s.snapshotGate.Do(ctx, "snapshot", func(ctx context.Context) (*capsule.Snapshot, error) {
		snap, err := s.backend.FetchSnapshot(ctx)
		if err != nil {
			if snap == nil {
				return nil, err
			}
			s.log.Warn("market: snapshot carries unclassifiable state", "err", err)
		}
		s.cacheCompletedDeal(snap)
		return snap, nil
	})
}

// cacheCompletedDeal persists the immutable record so the Closed page
// survives restarts and later refetches.
func (s *Session) cacheCompletedDeal(snap *capsule.Snapshot) {
	if s.store == nil || snap == nil || snap.CompletedDeal == nil {
		return
	}
	if err := s.store.PutCompletedDeal(snap.CapsuleID, snap.CompletedDeal); err != nil {
		s.log.Warn("market: cache completed deal", "err", err)
	}
}

// LoadFee fetches the ledger's per-transfer fee through the fee gate.
func (s *Session) LoadFee(ctx context.Context) (uint64, error) {
	return s.feeGate.Do(ctx, "fee", func(ctx context.Context) (uint64, error) {
		return s.ledger.TransferFee(ctx)
	})
}

// LoadBalance fetches the viewer's balance through the balance gate,
// keyed by account so a viewer switch discards stale results.
func (s *Session) LoadBalance(ctx context.Context) (uint64, error) {
	account := s.viewer
	if account.IsAnonymous() {
		return 0, ErrAnonymousViewer
	}
	return s.balanceGate.Do(ctx, "balance:"+account.String(), func(ctx context.Context) (uint64, error) {
		return s.ledger.Balance(ctx, account)
	})
}

// LoadHistory fetches the viewer's ledger history, caching it through
// the store when one is configured.
func (s *Session) LoadHistory(ctx context.Context) ([]ledger.Transaction, error) {
	account := s.viewer
	if account.IsAnonymous() {
		return nil, ErrAnonymousViewer
	}
	return s.historyGate.Do(ctx, "history:"+account.String(), func(ctx context.Context) ([]ledger.Transaction, error) {
		txs, err := s.ledger.History(ctx, account)
		if err != nil {
			if s.store != nil {
				if cached, cacheErr := s.store.GetHistory(account); cacheErr == nil {
					s.log.Warn("market: serving cached ledger history", "err", err)
					return cached, nil
				}
			}
			return nil, err
		}
		if s.store != nil {
			if err := s.store.PutHistory(account, txs); err != nil {
				s.log.Warn("market: cache ledger history", "err", err)
			}
		}
		return txs, nil
	})
}

// InspectBuyer selects whose offer the owner is looking at and resets
// any balance data tied to the previous selection.
func (s *Session) InspectBuyer(buyer capsule.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inspectedBuyer = buyer
}

// Project assembles the current projection from one consistent set of
// gate states. Pure per call; safe to re-run on every change.
func (s *Session) Project() view.Projection {
	snap, _ := s.snapshotGate.Value()
	fee, _ := s.feeGate.Value()
	balance, _ := s.balanceGate.Value()

	s.mu.Lock()
	inspected := s.inspectedBuyer
	s.mu.Unlock()

	return s.projector.Project(view.Inputs{
		Viewer:         s.viewer,
		InspectedBuyer: inspected,
		Snapshot:       snap,
		SnapshotGate:   s.snapshotGate.State(),
		Fee:            fee,
		FeeGate:        s.feeGate.State(),
		Balance:        balance,
		BalanceGate:    s.balanceGate.State(),
	})
}

// PreviewSettlement computes the reward split preview for a sale price.
// Loading until the fee has settled; "cannot estimate" when the chain is
// infeasible, never zero, and with a retry path when fee data failed.
func (s *Session) PreviewSettlement(price uint64) view.Availability[*settle.Result] {
	st := s.feeGate.State()
	if st.InFlight || !st.Loaded {
		return view.Loading[*settle.Result]()
	}
	if st.Err != nil {
		return view.NotAvailable[*settle.Result]("ledger fee unavailable")
	}

	fee, _ := s.feeGate.Value()
	res, err := settle.Calculate(settle.Inputs{SalePrice: price, LedgerFee: fee, Rates: s.rates})
	if err != nil {
		if errors.Is(err, settle.ErrPriceTooLowForFees) {
			return view.NotAvailable[*settle.Result]("cannot estimate: price too low for fees")
		}
		// Rates were validated at construction; anything else is a bug
		// worth surfacing in logs.
		s.log.Error("market: settlement preview failed", "err", err)
		return view.NotAvailable[*settle.Result](fmt.Sprintf("settlement failed: %v", err))
	}
	return view.Available(res)
}

// CompletedDeal returns the completed-deal record: from the live
// snapshot when present, falling back to the local cache.
func (s *Session) CompletedDeal(capsuleID string) (*capsule.CompletedDeal, error) {
	if snap, ok := s.snapshotGate.Value(); ok && snap != nil && snap.CompletedDeal != nil {
		return snap.CompletedDeal, nil
	}
	if s.store == nil {
		return nil, store.ErrNotFound
	}
	return s.store.GetCompletedDeal(capsuleID)
}

// ResetViewerData drops balance and history state, e.g. after logout.
// The snapshot gate is left intact: lifecycle data is viewer-independent.
func (s *Session) ResetViewerData() {
	s.balanceGate.Reset()
	s.historyGate.Reset()
}
