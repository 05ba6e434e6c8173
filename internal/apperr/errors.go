// Package apperr defines the error taxonomy the service layer exposes to
// controllers. Services wrap these sentinels with context via fmt.Errorf and
// %w; controllers classify with errors.Is to pick a status code.
package apperr

import "errors"

var (
	// ErrValidation marks a malformed request: unknown instance id, missing
	// field, batch referencing questions outside the session. The whole
	// request is rejected and may be corrected and retried.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a session or vocabulary that does not exist or does
	// not belong to the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a lost transaction race; the caller should retry the
	// whole batch.
	ErrConflict = errors.New("concurrency conflict")
)
