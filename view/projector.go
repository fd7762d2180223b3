// Package view maps the backend's reported lifecycle state, the viewer's
// role, and the readiness of remote data onto a render decision: which
// page variant to show, the derived sale status, and an availability for
// every user-facing action.
//
// Everything here is a pure function of one immutable snapshot plus gate
// states, so the whole projection is recomputed on every input change.
// The backend stays the only enforcer of correctness: an action offered
// here can still be rejected there.
package view

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/capsulex/libcapsule-go/backend"
	"github.com/capsulex/libcapsule-go/capsule"
	"github.com/capsulex/libcapsule-go/gate"
	"github.com/capsulex/libcapsule-go/ledger"
)

// approveTTL is how long a ledger approval handed to the escrow stays
// valid.
const approveTTL = 10 * time.Minute

// listingTTL is the default lifetime of a new sale offer.
const listingTTL = 7 * 24 * time.Hour

// Page is the page variant the presentation layer should render.
type Page int

const (
	// PageLoading is rendered before the first snapshot settles.
	PageLoading Page = iota
	PageActivation
	PageCapture
	PageHolding
	PageRelease
	PageClosed

	// PageIllegal is the defensive fallback for state the projector
	// cannot classify. It is always accompanied by a diagnostic log.
	PageIllegal
)

// String returns the page name.
func (p Page) String() string {
	switch p {
	case PageActivation:
		return "Activation"
	case PageCapture:
		return "Capture"
	case PageHolding:
		return "Holding"
	case PageRelease:
		return "Release"
	case PageClosed:
		return "Closed"
	case PageIllegal:
		return "Illegal"
	default:
		return "Loading"
	}
}

// RenderState is the page decision.
type RenderState struct {
	Page Page

	// CompletedDeal is set when the immutable completed-deal record
	// forces the sold panel, whatever the live tag says.
	CompletedDeal *capsule.CompletedDeal

	// IllegalDetail carries the diagnostic for PageIllegal. Not
	// user-facing copy.
	IllegalDetail string
}

// SaleOfferPlan carries everything listing needs besides the price the
// owner types in.
type SaleOfferPlan struct {
	Receiver        capsule.Account
	ExpiresAtMillis int64
}

// BuyerOfferPlan carries everything placing or raising a buy offer
// needs besides the amount the buyer types in.
type BuyerOfferPlan struct {
	// Spender is the escrow account the buyer's approval names.
	Spender capsule.Account

	// LedgerFee is the flat per-transfer fee in effect.
	LedgerFee uint64

	// MaxAmount is the largest offer the viewer's balance can back,
	// net of the approval and transfer fees.
	MaxAmount uint64

	ApproveExpiresAtMillis int64
}

// TakeListingPlan carries everything accepting the listed price needs:
// the pinned backend call and the ledger approval to hand off unchanged.
type TakeListingPlan struct {
	Accept  backend.AcceptSellerOfferArgs
	Approve ledger.ApproveArgs
}

// Actions is the per-action availability table.
type Actions struct {
	SetSaleIntention    Availability[struct{}]
	CancelSaleIntention Availability[struct{}]
	SetSaleOffer        Availability[SaleOfferPlan]
	CancelSaleOffer     Availability[struct{}]
	SetBuyerOffer       Availability[BuyerOfferPlan]
	CancelBuyerOffer    Availability[struct{}]
	AcceptBuyerOffer    Availability[backend.AcceptBuyerOfferArgs]
	AcceptSellerOffer   Availability[TakeListingPlan]
	StartRelease        Availability[struct{}]
	CancelSaleDeal      Availability[struct{}]
}

// Projection is the full decision for one render pass.
type Projection struct {
	Role    Role
	Render  RenderState
	Sale    SaleStatus
	Actions Actions

	// QuarantineRemaining counts down to the end of the post-listing
	// quarantine. Purely informational: the backend enforces the
	// cooldown, this only previews time remaining.
	QuarantineRemaining time.Duration
}

// Inputs are the gate-wrapped remote data a projection reads. The
// snapshot is one immutable value; no derivation observes a partial
// update.
type Inputs struct {
	// Viewer is the authenticated principal, or anonymous.
	Viewer capsule.Account

	// InspectedBuyer selects whose offer the owner is looking at. Empty
	// means the highest offer.
	InspectedBuyer capsule.Account

	Snapshot     *capsule.Snapshot
	SnapshotGate gate.State

	Fee     uint64
	FeeGate gate.State

	Balance     uint64
	BalanceGate gate.State
}

// Projector derives projections. Safe for reuse across input changes;
// it holds no per-snapshot state.
type Projector struct {
	log   *slog.Logger
	clock clockwork.Clock
}

// NewProjector creates a projector. A nil logger falls back to
// slog.Default; a nil clock to the real clock.
func NewProjector(log *slog.Logger, clock clockwork.Clock) *Projector {
	if log == nil {
		log = slog.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Projector{log: log, clock: clock}
}

// Project computes the full render decision from one set of inputs.
// It never panics: unclassifiable state degrades to PageIllegal with
// every action NotAvailable.
func (p *Projector) Project(in Inputs) Projection {
	role := DeriveRole(in.Viewer, in.Snapshot)
	sale := DeriveSaleStatus(in.SnapshotGate, in.Snapshot)

	proj := Projection{
		Role:                role,
		Sale:                sale,
		Render:              p.renderState(in),
		QuarantineRemaining: p.quarantineRemaining(sale),
	}

	if anyPending(in.SnapshotGate) {
		proj.Actions = loadingActions()
		return proj
	}
	if in.Snapshot == nil || proj.Render.Page == PageIllegal {
		proj.Actions = unavailableActions("state not classifiable")
		return proj
	}

	proj.Actions = p.actions(in, role)
	return proj
}

// renderState picks the page variant.
func (p *Projector) renderState(in Inputs) RenderState {
	if anyPending(in.SnapshotGate) {
		return RenderState{Page: PageLoading}
	}
	if in.Snapshot == nil {
		// Settled with an error and nothing cached: the caller renders a
		// retry from the gate state.
		return RenderState{Page: PageLoading}
	}

	snap := in.Snapshot

	// Completed-deal precedence: the record is immutable and always
	// renderable, even if the raw tag has since moved past Hold.
	if snap.CompletedDeal != nil {
		return RenderState{Page: PageClosed, CompletedDeal: snap.CompletedDeal}
	}

	switch snap.State.Phase {
	case capsule.PhaseWaitingActivation:
		return RenderState{Page: PageActivation}
	case capsule.PhaseCapture:
		return RenderState{Page: PageCapture}
	case capsule.PhaseRelease:
		return RenderState{Page: PageRelease}
	case capsule.PhaseClosed:
		return RenderState{Page: PageClosed}
	case capsule.PhaseHolding:
		if snap.State.Holding == nil {
			return p.illegal("Holding phase with no holding sub-state")
		}
		return RenderState{Page: PageHolding}
	default:
		return p.illegal("unrecognized lifecycle tag")
	}
}

// illegal logs the diagnostic and returns the fallback render.
func (p *Projector) illegal(detail string) RenderState {
	p.log.Error("projector: illegal lifecycle state", "detail", detail)
	return RenderState{Page: PageIllegal, IllegalDetail: detail}
}

// actions evaluates the full gating table against one snapshot. The
// snapshot gate has already settled by the time this runs.
func (p *Projector) actions(in Inputs, role Role) Actions {
	snap := in.Snapshot
	st := snap.State
	authenticated := !in.Viewer.IsAnonymous()
	receiverConfigured := !snap.Receiver.IsAnonymous()
	listed := snap.Listing != nil
	ownOffer := snap.OfferFrom(in.Viewer)

	var a Actions

	// Owner-side actions depend only on the snapshot.
	a.SetSaleIntention = simple(OwnerCanSetSaleIntention(role, st, receiverConfigured), "guard rejected")
	a.CancelSaleIntention = simple(OwnerCanCancelSaleIntention(role, st, receiverConfigured), "guard rejected")
	a.CancelSaleOffer = simple(OwnerCanCancelSaleOffer(role, st, listed), "guard rejected")
	a.StartRelease = simple(OwnerCanStartRelease(role, st), "guard rejected")
	a.CancelSaleDeal = simple(OwnerCanCancelSaleDeal(role, st), "guard rejected")

	if OwnerCanSetSaleOffer(role, st, receiverConfigured) {
		a.SetSaleOffer = Available(SaleOfferPlan{
			Receiver:        snap.Receiver,
			ExpiresAtMillis: p.clock.Now().Add(listingTTL).UnixMilli(),
		})
	} else {
		a.SetSaleOffer = NotAvailable[SaleOfferPlan]("guard rejected")
	}

	a.AcceptBuyerOffer = p.acceptBuyerOffer(in, role)

	// Buyer-side actions additionally need the ledger fee and the
	// viewer's balance.
	a.SetBuyerOffer = p.setBuyerOffer(in, role, authenticated)
	a.CancelBuyerOffer = simple(BuyerCanCancelOffer(role, st, ownOffer != nil), "guard rejected")
	a.AcceptSellerOffer = p.acceptSellerOffer(in, role, authenticated)

	return a
}

// acceptBuyerOffer resolves which buyer offer the owner would accept:
// the inspected buyer's, or the highest standing offer.
func (p *Projector) acceptBuyerOffer(in Inputs, role Role) Availability[backend.AcceptBuyerOfferArgs] {
	snap := in.Snapshot

	var offer *capsule.BuyerOffer
	if !in.InspectedBuyer.IsAnonymous() {
		offer = snap.OfferFrom(in.InspectedBuyer)
	} else {
		for i := range snap.BuyerOffers {
			if offer == nil || snap.BuyerOffers[i].Amount > offer.Amount {
				offer = &snap.BuyerOffers[i]
			}
		}
	}

	if !OwnerCanAcceptBuyerOffer(role, snap.State, offer != nil) {
		return NotAvailable[backend.AcceptBuyerOfferArgs]("guard rejected")
	}
	return Available(backend.AcceptBuyerOfferArgs{
		Buyer:  offer.Buyer,
		Amount: offer.Amount,
	})
}

// setBuyerOffer composes the place-offer availability from the guard
// plus the fee and balance gates.
func (p *Projector) setBuyerOffer(in Inputs, role Role, authenticated bool) Availability[BuyerOfferPlan] {
	if !BuyerCanSetOffer(role, in.Snapshot.State, authenticated) {
		return NotAvailable[BuyerOfferPlan]("guard rejected")
	}
	if anyPending(in.FeeGate, in.BalanceGate) {
		return Loading[BuyerOfferPlan]()
	}
	if anyFailed(in.FeeGate, in.BalanceGate) {
		return NotAvailable[BuyerOfferPlan]("ledger data failed to load")
	}
	if in.Snapshot.EscrowAccount.IsAnonymous() {
		// A real spender account is required to approve against. This is
		// an illegal-state guard, not a user error.
		p.log.Error("projector: snapshot carries no escrow account")
		return NotAvailable[BuyerOfferPlan]("no escrow spender account")
	}

	// The approval and the eventual transfer each cost one fee.
	if in.Balance < 2*in.Fee {
		return NotAvailable[BuyerOfferPlan]("balance cannot cover ledger fees")
	}
	return Available(BuyerOfferPlan{
		Spender:                in.Snapshot.EscrowAccount,
		LedgerFee:              in.Fee,
		MaxAmount:              in.Balance - 2*in.Fee,
		ApproveExpiresAtMillis: p.clock.Now().Add(approveTTL).UnixMilli(),
	})
}

// acceptSellerOffer composes the take-the-listing availability: guard,
// fee and balance gates, then the pinned call plus approval payload.
func (p *Projector) acceptSellerOffer(in Inputs, role Role, authenticated bool) Availability[TakeListingPlan] {
	snap := in.Snapshot
	if !BuyerCanAcceptSellerOffer(role, snap.State, snap.Listing != nil, authenticated) {
		return NotAvailable[TakeListingPlan]("guard rejected")
	}
	if anyPending(in.FeeGate, in.BalanceGate) {
		return Loading[TakeListingPlan]()
	}
	if anyFailed(in.FeeGate, in.BalanceGate) {
		return NotAvailable[TakeListingPlan]("ledger data failed to load")
	}
	if snap.EscrowAccount.IsAnonymous() {
		p.log.Error("projector: snapshot carries no escrow account")
		return NotAvailable[TakeListingPlan]("no escrow spender account")
	}

	price := snap.Listing.Price
	if in.Balance < price+2*in.Fee {
		return NotAvailable[TakeListingPlan]("insufficient balance for listed price")
	}
	return Available(TakeListingPlan{
		Accept: backend.AcceptSellerOfferArgs{Price: price},
		Approve: ledger.ApproveArgs{
			Spender:         snap.EscrowAccount,
			Amount:          price + in.Fee,
			ExpiresAtMillis: p.clock.Now().Add(approveTTL).UnixMilli(),
		},
	})
}

// quarantineRemaining previews the countdown, clamped at zero.
func (p *Projector) quarantineRemaining(sale SaleStatus) time.Duration {
	if sale.QuarantineEndMillis == 0 {
		return 0
	}
	remaining := time.UnixMilli(sale.QuarantineEndMillis).Sub(p.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// simple wraps a bare guard result into an availability with no payload.
func simple(ok bool, reason string) Availability[struct{}] {
	if ok {
		return Available(struct{}{})
	}
	return NotAvailable[struct{}](reason)
}

// loadingActions is the whole table in Loading.
func loadingActions() Actions {
	return Actions{
		SetSaleIntention:    Loading[struct{}](),
		CancelSaleIntention: Loading[struct{}](),
		SetSaleOffer:        Loading[SaleOfferPlan](),
		CancelSaleOffer:     Loading[struct{}](),
		SetBuyerOffer:       Loading[BuyerOfferPlan](),
		CancelBuyerOffer:    Loading[struct{}](),
		AcceptBuyerOffer:    Loading[backend.AcceptBuyerOfferArgs](),
		AcceptSellerOffer:   Loading[TakeListingPlan](),
		StartRelease:        Loading[struct{}](),
		CancelSaleDeal:      Loading[struct{}](),
	}
}

// unavailableActions is the whole table in NotAvailable.
func unavailableActions(reason string) Actions {
	return Actions{
		SetSaleIntention:    NotAvailable[struct{}](reason),
		CancelSaleIntention: NotAvailable[struct{}](reason),
		SetSaleOffer:        NotAvailable[SaleOfferPlan](reason),
		CancelSaleOffer:     NotAvailable[struct{}](reason),
		SetBuyerOffer:       NotAvailable[BuyerOfferPlan](reason),
		CancelBuyerOffer:    NotAvailable[struct{}](reason),
		AcceptBuyerOffer:    NotAvailable[backend.AcceptBuyerOfferArgs](reason),
		AcceptSellerOffer:   NotAvailable[TakeListingPlan](reason),
		StartRelease:        NotAvailable[struct{}](reason),
		CancelSaleDeal:      NotAvailable[struct{}](reason),
	}
}
