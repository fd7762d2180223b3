package capsule

import "errors"

var (
	// ErrUnknownStateTag indicates the backend reported a lifecycle tag
	// this client does not recognize.
	ErrUnknownStateTag = errors.New("capsule: unknown lifecycle state tag")

	// ErrAmbiguousState indicates more than one variant tag was set at a
	// single level of the lifecycle union.
	ErrAmbiguousState = errors.New("capsule: ambiguous lifecycle state (multiple tags set)")

	// ErrEmptyState indicates the backend reported no tag at all at some
	// level of the lifecycle union.
	ErrEmptyState = errors.New("capsule: empty lifecycle state")

	// ErrInvalidStatePayload indicates a variant's payload could not be
	// decoded.
	ErrInvalidStatePayload = errors.New("capsule: invalid lifecycle state payload")
)
