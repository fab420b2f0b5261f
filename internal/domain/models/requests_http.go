package models

// Requests for the HTTP API. Defined in domain for consistency and reuse.

type RecommendRequest struct {
	Hand1 []string `json:"hand1" validate:"required,len=13"`
	Hand2 []string `json:"hand2" validate:"required,len=13"`

	Generations int   `json:"generations" default:"50" validate:"gte=1,lte=500"`
	Population  int   `json:"population" default:"100" validate:"gte=10,lte=1000"`
	Seed        int64 `json:"seed" default:"1" validate:"gte=0"`
}

type ValidateRequest struct {
	Hand1    []string `json:"hand1" validate:"required,len=13"`
	Hand2    []string `json:"hand2" validate:"required,len=13"`
	Contract string   `json:"contract" validate:"required,min=2,max=3"`
}

type ConventionRequest struct {
	Cards    []string `json:"cards" validate:"required,len=13"`
	Strategy string   `json:"strategy" validate:"required"`
}

type PreprocessRequest struct {
	Boards []Board `json:"boards" validate:"required,min=1,dive"`

	// Async enqueues the dataset as a background job instead of storing inline.
	Async bool `json:"async"`
}

type DatasetRowsRequest struct {
	// From and To accept RFC3339 or unix seconds.
	From  string `query:"from"`
	To    string `query:"to"`
	Limit int    `query:"limit" default:"1000" validate:"gte=1,lte=50000"`
}

type DatasetLatestRequest struct {
	N int `query:"n" default:"100" validate:"gte=1,lte=50000"`
}
