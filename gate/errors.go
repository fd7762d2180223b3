package gate

import "errors"

// ErrStaleResult indicates a call settled after the gate's request key
// had changed. The result was discarded, not applied.
var ErrStaleResult = errors.New("gate: result discarded, request key changed")
