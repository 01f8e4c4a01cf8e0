package usecase

import (
	"context"

	"RosterPulse/internal/domain/models"
	"RosterPulse/pkg/queue"
)

// RefreshJobType is the queue message type for league refresh jobs.
const RefreshJobType = "league.refresh"

// RefreshJob runs a league refresh from the Redis job queue. The batch
// scheduler enqueues one job per league so failed leagues retry
// independently.
type RefreshJob struct {
	refresh *RefreshUsecase
}

func NewRefreshJob(refresh *RefreshUsecase) *RefreshJob {
	return &RefreshJob{refresh: refresh}
}

func (j *RefreshJob) Name() string { return "league-refresh" }

func (j *RefreshJob) Type() string { return RefreshJobType }

func (j *RefreshJob) Handle(ctx context.Context, payload interface{}) error {
	req, err := queue.ParsePayload[models.RefreshRequest](payload)
	if err != nil {
		return err
	}
	_, err = j.refresh.Refresh(ctx, req.LeagueIDs)
	return err
}

var _ queue.Job = (*RefreshJob)(nil)
