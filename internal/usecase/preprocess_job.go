package usecase

import (
	"context"

	"BidSnapper/pkg/queue"
)

// PreprocessJobType is the queue message type for async dataset runs.
const PreprocessJobType = "dataset_preprocess"

// PreprocessJob runs dataset preprocessing off a queue message so large
// datasets do not block the request path.
type PreprocessJob struct {
	uc *PreprocessUseCase
}

func NewPreprocessJob(uc *PreprocessUseCase) *PreprocessJob {
	return &PreprocessJob{uc: uc}
}

func (j *PreprocessJob) Name() string { return "dataset-preprocess" }

func (j *PreprocessJob) Type() string { return PreprocessJobType }

func (j *PreprocessJob) Handle(ctx context.Context, payload interface{}) error {
	params, err := queue.ParsePayload[PreprocessParams](payload)
	if err != nil {
		return err
	}
	_, err = j.uc.Preprocess(ctx, *params)
	return err
}

var _ queue.Job = (*PreprocessJob)(nil)
