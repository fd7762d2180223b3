package market

import "errors"

// ErrAnonymousViewer indicates a viewer-scoped fetch was attempted
// without an authenticated principal.
var ErrAnonymousViewer = errors.New("market: anonymous viewer has no ledger account")
