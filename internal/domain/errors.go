package domain

import "errors"

var (
	// ErrContentPolicy marks a 400-class identify rejection; the caller is
	// expected to escalate to the navigation flow, not record a tab error.
	ErrContentPolicy = errors.New("image rejected by content policy")

	ErrNoImage          = errors.New("no image attached and no content hash known")
	ErrNoLanguages      = errors.New("no languages selected")
	ErrFileRequired     = errors.New("a file must be attached before saving to database")
	ErrPermissionDenied = errors.New("action not permitted in the current state")
	ErrNotIdentified    = errors.New("active tab has no translation record")
	ErrStale            = errors.New("response superseded by a newer operation")
)
