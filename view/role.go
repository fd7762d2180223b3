package view

import "github.com/capsulex/libcapsule-go/capsule"

// Role is the viewer's relationship to the capsule, derived fresh from
// each snapshot. Owner and PotentialBuyer are mutually exclusive by
// construction: ownership is checked first and wins.
type Role int

const (
	// RoleGuest is any viewer who neither owns the capsule nor has an
	// offer on it, including the anonymous viewer.
	RoleGuest Role = iota

	// RoleOwner is the principal the backend reports as owner.
	RoleOwner

	// RolePotentialBuyer is an authenticated non-owner with a buyer
	// offer attributed to them.
	RolePotentialBuyer
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "Owner"
	case RolePotentialBuyer:
		return "PotentialBuyer"
	default:
		return "Guest"
	}
}

// DeriveRole computes the viewer's role from the snapshot. It is never
// cached: any snapshot or viewer change requires a fresh derivation.
func DeriveRole(viewer capsule.Account, snap *capsule.Snapshot) Role {
	if viewer.IsAnonymous() || snap == nil {
		return RoleGuest
	}
	if viewer == snap.Owner {
		return RoleOwner
	}
	if snap.OfferFrom(viewer) != nil {
		return RolePotentialBuyer
	}
	return RoleGuest
}
