package models

import "time"

// Board is one labeled deal from a dataset or the detection feed:
// two hands plus the contract actually bid at the table.
type Board struct {
	ID       string   `json:"id,omitempty"`
	Table    string   `json:"table,omitempty"`
	Hand1    []string `json:"hand1"`
	Hand2    []string `json:"hand2"`
	Contract string   `json:"contract"`

	// DetectedAt is set for boards arriving from the card-detection feed.
	DetectedAt int64 `json:"detected_at,omitempty"`
}

// FeatureRow is an extracted, labeled feature vector ready for the
// feature store. This is what the training collaborator consumes.
type FeatureRow struct {
	BoardID   string
	Extracted time.Time
	Schema    int
	Values    []float64
	Contract  string
}
