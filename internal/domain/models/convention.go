package models

// ConventionAdvice is a single-hand system suggestion: the bid a named
// bidding strategy table produces for the hand.
type ConventionAdvice struct {
	Strategy     string `json:"strategy"`
	Bid          string `json:"bid"`
	HCP          int    `json:"hcp"`
	Distribution string `json:"distribution"`
}
