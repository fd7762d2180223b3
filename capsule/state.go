// Package capsule defines the data model for a tradable digital-identity
// capsule held in escrow by the marketplace backend: the backend's nested
// lifecycle state, the per-fetch snapshot, and the account type shared by
// the backend and ledger clients.
//
// The backend is the sole source of truth. Every type here is a read model
// of what the backend reports; nothing in this package mutates anything.
package capsule

// Phase is the top-level lifecycle phase of a capsule.
type Phase int

const (
	// PhaseWaitingActivation means the capsule exists but has not yet been
	// activated by its owner.
	PhaseWaitingActivation Phase = iota

	// PhaseCapture means the capsule is being captured into escrow custody.
	PhaseCapture

	// PhaseHolding means the capsule is in custody; a HoldingState carries
	// the nested sub-machine.
	PhaseHolding

	// PhaseRelease means control is being returned to a human owner.
	PhaseRelease

	// PhaseClosed means the lifecycle has ended.
	PhaseClosed

	// PhaseIllegal is the defensive terminal for state the decoder could
	// not classify. It must never be treated as any other phase.
	PhaseIllegal
)

// String returns the wire tag for the phase, or "Illegal".
func (p Phase) String() string {
	switch p {
	case PhaseWaitingActivation:
		return "WaitingActivation"
	case PhaseCapture:
		return "Capture"
	case PhaseHolding:
		return "Holding"
	case PhaseRelease:
		return "Release"
	case PhaseClosed:
		return "Closed"
	default:
		return "Illegal"
	}
}

// HoldingPhase is the sub-machine active while a capsule is in custody.
type HoldingPhase int

const (
	HoldingStartHolding HoldingPhase = iota
	HoldingFetchAssets
	HoldingCheckAssets
	HoldingValidateAssets
	HoldingHold
	HoldingUnsellable
	HoldingCancelSaleDeal
)

// String returns the wire tag for the holding phase.
func (p HoldingPhase) String() string {
	switch p {
	case HoldingStartHolding:
		return "StartHolding"
	case HoldingFetchAssets:
		return "FetchAssets"
	case HoldingCheckAssets:
		return "CheckAssets"
	case HoldingValidateAssets:
		return "ValidateAssets"
	case HoldingHold:
		return "Hold"
	case HoldingUnsellable:
		return "Unsellable"
	case HoldingCancelSaleDeal:
		return "CancelSaleDeal"
	default:
		return "Illegal"
	}
}

// SaleDealPhase is the sale-deal sub-machine optionally carried by Hold.
type SaleDealPhase int

const (
	SaleDealWaitingSellOffer SaleDealPhase = iota
	SaleDealTrading
	SaleDealAccept
)

// String returns the wire tag for the sale-deal phase.
func (p SaleDealPhase) String() string {
	switch p {
	case SaleDealWaitingSellOffer:
		return "WaitingSellOffer"
	case SaleDealTrading:
		return "Trading"
	case SaleDealAccept:
		return "Accept"
	default:
		return "Illegal"
	}
}

// LifecycleState mirrors the backend's nested lifecycle tagged union.
// Exactly one variant is active at each depth: Holding is non-nil only
// when Phase == PhaseHolding, and HoldingState.SaleDeal is non-nil only
// when HoldingState.Phase == HoldingHold with a sale deal present.
type LifecycleState struct {
	Phase   Phase
	Holding *HoldingState
}

// HoldingState is the nested state while the capsule is in custody.
type HoldingState struct {
	Phase            HoldingPhase
	SaleDeal         *SaleDealState // Hold only; nil when no deal exists yet
	UnsellableReason string         // Unsellable only
}

// SaleDealState is the sale-deal sub-machine carried by Hold.
type SaleDealState struct {
	Phase SaleDealPhase
	Buyer Account // Accept only
}

// IsHold reports whether the state is Holding/Hold, regardless of the
// sale-deal payload.
func (s LifecycleState) IsHold() bool {
	return s.Phase == PhaseHolding && s.Holding != nil && s.Holding.Phase == HoldingHold
}

// SaleDeal returns the sale-deal sub-state when the state is Holding/Hold
// and a deal exists, or nil.
func (s LifecycleState) SaleDeal() *SaleDealState {
	if !s.IsHold() {
		return nil
	}
	return s.Holding.SaleDeal
}
