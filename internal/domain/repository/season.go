package repository

// SeasonType is the phase of an NFL season as reported by the state
// endpoint.
type SeasonType string

const (
	SeasonPre     SeasonType = "pre"
	SeasonRegular SeasonType = "regular"
	SeasonPost    SeasonType = "post"
)

// IsValidSeasonType returns true if st is a supported season type.
func IsValidSeasonType(st SeasonType) bool {
	switch st {
	case SeasonPre, SeasonRegular, SeasonPost:
		return true
	default:
		return false
	}
}

// DefaultSeasonType returns the default season type.
func DefaultSeasonType() SeasonType { return SeasonRegular }

// NormalizeSeasonType converts a raw string to a valid season type (or
// default).
func NormalizeSeasonType(s string) SeasonType {
	if s == "" {
		return DefaultSeasonType()
	}
	st := SeasonType(s)
	if IsValidSeasonType(st) {
		return st
	}
	return DefaultSeasonType()
}
