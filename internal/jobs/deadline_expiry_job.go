package jobs

import (
	"context"
	"time"

	"parcelmatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DeadlineExpiryJob sweeps parcels whose bidding deadline passed without a
// selection and expires their pending bids. Enforcement of deadlines is
// authoritative here; client countdowns only drive rendering and refresh.
type DeadlineExpiryJob struct {
	handler commands.ExpireBidsCommandHandler
	cron    *cron.Cron
	logger  zerolog.Logger
}

// NewDeadlineExpiryJob creates the sweep job. It runs every ten seconds,
// frequent enough that an expired auction closes promptly but without
// hammering the database every second.
func NewDeadlineExpiryJob(handler commands.ExpireBidsCommandHandler, logger zerolog.Logger) *DeadlineExpiryJob {
	return &DeadlineExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With().Str("component", "deadline_expiry_job").Logger(),
	}
}

// Start schedules the sweep.
func (j *DeadlineExpiryJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireBidsCommand(time.Now())
		if err != nil {
			j.logger.Error().Err(err).Msg("failed to build expire bids command")
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.Error().Err(err).Msg("deadline expiry sweep failed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Msg("deadline expiry job started (running every ten seconds)")
	return nil
}

// Stop stops the sweep.
func (j *DeadlineExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.Info().Msg("deadline expiry job stopped")
}
