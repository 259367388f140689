package constants

import "time"

// Session settings
const (
	SessionTTL        = 7 * 24 * time.Hour
	SessionTokenBytes = 16

	ContextKeySession = "session"
	ContextKeyCrop    = "crop"
)

// Pagination settings
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AdvisoryTimeout bounds each external advice request.
const AdvisoryTimeout = 10 * time.Second
