package model

// Verdict is the single result produced for a claim
type Verdict struct {
	Verdict     VerdictKind `json:"verdict"`     // TRUE, FALSE, UNVERIFIED or ERROR
	Explanation string      `json:"explanation"` // Human-readable reasoning
	Sources     []Source    `json:"sources"`     // Supporting references, never nil
	Confidence  string      `json:"confidence"`  // Percentage string such as "70%"
}

// Source is a titled reference attached to a verdict
type Source struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// VerdictKind classifies a claim
type VerdictKind string

const (
	VerdictTrue       VerdictKind = "TRUE"
	VerdictFalse      VerdictKind = "FALSE"
	VerdictUnverified VerdictKind = "UNVERIFIED"
	VerdictError      VerdictKind = "ERROR"
)

// Fixed confidence literals
const (
	ConfidenceKnowledgeBase = "99%"
	ConfidenceNews          = "70%"
	ConfidenceNone          = "0%"
)

// ExhaustedExplanation is returned when no stage produced a result
const ExhaustedExplanation = "Could not verify the claim through any available API."

// ExhaustedVerdict returns the terminal verdict for a claim no stage could handle
func ExhaustedVerdict() Verdict {
	return Verdict{
		Verdict:     VerdictError,
		Explanation: ExhaustedExplanation,
		Sources:     []Source{},
		Confidence:  ConfidenceNone,
	}
}

// ParseVerdictKind maps a loose string onto a VerdictKind.
// Unknown values map to UNVERIFIED.
func ParseVerdictKind(s string) VerdictKind {
	switch VerdictKind(s) {
	case VerdictTrue, VerdictFalse, VerdictError:
		return VerdictKind(s)
	default:
		return VerdictUnverified
	}
}
