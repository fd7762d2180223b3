package capsule

// Account identifies a principal on the marketplace and the value-transfer
// ledger. The empty string is the anonymous (unauthenticated) viewer.
type Account string

// IsAnonymous reports whether the account is the unauthenticated principal.
func (a Account) IsAnonymous() bool { return a == "" }

// String returns the textual account identifier.
func (a Account) String() string { return string(a) }
