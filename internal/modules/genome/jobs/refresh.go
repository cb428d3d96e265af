package jobs

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/abelzach/KaroBuddy/internal/modules/genome"
)

// RefreshJob recomputes every user's genome on a schedule so the chat and
// dashboard surfaces always have a recent snapshot to read.
type RefreshJob struct {
	service     *genome.Service
	horizonDays int
	log         zerolog.Logger
}

// NewRefreshJob creates a new genome refresh job
func NewRefreshJob(service *genome.Service, horizonDays int, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		service:     service,
		horizonDays: horizonDays,
		log:         log.With().Str("job", "genome_refresh").Logger(),
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "genome_refresh"
}

// Run executes the refresh
func (j *RefreshJob) Run() error {
	refreshed, failed := j.service.RefreshAll(context.Background(), j.horizonDays)
	j.log.Info().Int("refreshed", refreshed).Int("failed", failed).Msg("Scheduled genome refresh finished")
	return nil
}
