package border

// OutcomeKind distinguishes the three results of one detection attempt.
type OutcomeKind int

const (
	// Detected means at least one token was found.
	Detected OutcomeKind = iota
	// DetectedEmpty means detection ran and found no tokens.
	DetectedEmpty
	// DetectionFailed means the detector returned an error.
	DetectionFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case Detected:
		return "detected"
	case DetectedEmpty:
		return "empty"
	case DetectionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is the result of one detection attempt.
type Outcome struct {
	Kind   OutcomeKind
	Tokens []Token
	Err    error
}
