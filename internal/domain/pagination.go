package domain

// Page window defaults used when the caller does not configure them.
const (
	DefaultPageLimit = 5
	MaxPageLimit     = 100
)

// PaginationParams holds an offset-based page window for list queries.
type PaginationParams struct {
	Limit  int
	Offset int
}

// Normalize returns a copy with Limit defaulted to def when non-positive,
// capped at max, and Offset clamped to zero.
func (p PaginationParams) Normalize(def, max int) PaginationParams {
	if def <= 0 {
		def = DefaultPageLimit
	}
	if max <= 0 {
		max = MaxPageLimit
	}
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
