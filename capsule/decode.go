package capsule

import (
	"encoding/json"
	"fmt"
)

// DecodeState parses the backend's nested single-tag representation of the
// lifecycle state, e.g.
//
//	{"Holding":{"Hold":{"saleDeal":{"Accept":{"buyer":"..."}}}}}
//
// Exactly one tag must be set at each depth. Anything else (an unknown
// tag, multiple tags, no tag, or an undecodable payload) yields a state
// with Phase == PhaseIllegal together with a diagnostic error the caller
// may log. DecodeState never panics and never guesses between variants.
func DecodeState(raw json.RawMessage) (LifecycleState, error) {
	illegal := LifecycleState{Phase: PhaseIllegal}

	tag, payload, err := splitTag(raw)
	if err != nil {
		return illegal, err
	}

	switch tag {
	case "WaitingActivation":
		return LifecycleState{Phase: PhaseWaitingActivation}, nil
	case "Capture":
		return LifecycleState{Phase: PhaseCapture}, nil
	case "Release":
		return LifecycleState{Phase: PhaseRelease}, nil
	case "Closed":
		return LifecycleState{Phase: PhaseClosed}, nil
	case "Holding":
		holding, err := decodeHolding(payload)
		if err != nil {
			return illegal, err
		}
		return LifecycleState{Phase: PhaseHolding, Holding: holding}, nil
	default:
		return illegal, fmt.Errorf("%w: %q", ErrUnknownStateTag, tag)
	}
}

// decodeHolding parses the holding sub-machine.
func decodeHolding(raw json.RawMessage) (*HoldingState, error) {
	tag, payload, err := splitTag(raw)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "StartHolding":
		return &HoldingState{Phase: HoldingStartHolding}, nil
	case "FetchAssets":
		return &HoldingState{Phase: HoldingFetchAssets}, nil
	case "CheckAssets":
		return &HoldingState{Phase: HoldingCheckAssets}, nil
	case "ValidateAssets":
		return &HoldingState{Phase: HoldingValidateAssets}, nil
	case "CancelSaleDeal":
		return &HoldingState{Phase: HoldingCancelSaleDeal}, nil
	case "Unsellable":
		var body struct {
			Reason string `json:"reason"`
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &body); err != nil {
				return nil, fmt.Errorf("%w: Unsellable: %w", ErrInvalidStatePayload, err)
			}
		}
		return &HoldingState{Phase: HoldingUnsellable, UnsellableReason: body.Reason}, nil
	case "Hold":
		var body struct {
			SaleDeal json.RawMessage `json:"saleDeal"`
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &body); err != nil {
				return nil, fmt.Errorf("%w: Hold: %w", ErrInvalidStatePayload, err)
			}
		}
		st := &HoldingState{Phase: HoldingHold}
		if len(body.SaleDeal) > 0 && string(body.SaleDeal) != "null" {
			deal, err := decodeSaleDeal(body.SaleDeal)
			if err != nil {
				return nil, err
			}
			st.SaleDeal = deal
		}
		return st, nil
	default:
		return nil, fmt.Errorf("%w: Holding/%q", ErrUnknownStateTag, tag)
	}
}

// decodeSaleDeal parses the sale-deal sub-machine carried by Hold.
func decodeSaleDeal(raw json.RawMessage) (*SaleDealState, error) {
	tag, payload, err := splitTag(raw)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "WaitingSellOffer":
		return &SaleDealState{Phase: SaleDealWaitingSellOffer}, nil
	case "Trading":
		return &SaleDealState{Phase: SaleDealTrading}, nil
	case "Accept":
		var body struct {
			Buyer Account `json:"buyer"`
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &body); err != nil {
				return nil, fmt.Errorf("%w: Accept: %w", ErrInvalidStatePayload, err)
			}
		}
		return &SaleDealState{Phase: SaleDealAccept, Buyer: body.Buyer}, nil
	default:
		return nil, fmt.Errorf("%w: Hold/saleDeal/%q", ErrUnknownStateTag, tag)
	}
}

// splitTag extracts the single variant tag and its payload from one level
// of the union. Zero tags or more than one tag is an error: the decoder
// must never pick between simultaneously-set variants.
func splitTag(raw json.RawMessage) (string, json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil, ErrEmptyState
	}

	var level map[string]json.RawMessage
	if err := json.Unmarshal(raw, &level); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidStatePayload, err)
	}
	if len(level) == 0 {
		return "", nil, ErrEmptyState
	}
	if len(level) > 1 {
		return "", nil, fmt.Errorf("%w: %d tags", ErrAmbiguousState, len(level))
	}
	for tag, payload := range level {
		return tag, payload, nil
	}
	return "", nil, ErrEmptyState // unreachable
}
