package models

type (
	// NoteRequest holds the form input used to build a SOAP note prompt.
	NoteRequest struct {
		Issue       string
		Description string
	}

	// TokenEstimate is the result of counting a prompt before sending it.
	TokenEstimate struct {
		Model            string
		InputTokens      int
		OutputTokens     int
		EstimatedCostUSD float64
	}
)
