package worker

import (
	"context"
	"errors"

	"github.com/osse101/ShadowArmy_Go/internal/game"
	"github.com/osse101/ShadowArmy_Go/internal/logger"
)

// HuntTickJob completes the manual hunt cycle when it is due
type HuntTickJob struct {
	svc game.Service
}

// NewHuntTickJob creates the job driven by the hunt tick interval
func NewHuntTickJob(svc game.Service) *HuntTickJob {
	return &HuntTickJob{svc: svc}
}

// Process runs one hunt tick
func (j *HuntTickJob) Process(ctx context.Context) error {
	result, err := j.svc.HuntTick(ctx)
	if err != nil {
		return err
	}
	if result != nil {
		logger.FromContext(ctx).Debug(LogMsgHuntCycleCompleted,
			"area", result.AreaID,
			"exp", result.ExpGained,
			"extracted", len(result.ExtractedShadows))
	}
	return nil
}

// AccrualTickJob credits passive experience from deployed shadows
type AccrualTickJob struct {
	svc game.Service
}

// NewAccrualTickJob creates the job driven by the accrual tick interval
func NewAccrualTickJob(svc game.Service) *AccrualTickJob {
	return &AccrualTickJob{svc: svc}
}

// Process runs one accrual tick over the real time since the previous one
func (j *AccrualTickJob) Process(ctx context.Context) error {
	_, err := j.svc.AccrualTick(ctx)
	return err
}

// CheckpointJob records the liveness timestamp used by offline reconciliation
type CheckpointJob struct {
	svc game.Service
}

// NewCheckpointJob creates the job driven by the checkpoint interval
func NewCheckpointJob(svc game.Service) *CheckpointJob {
	return &CheckpointJob{svc: svc}
}

// Process records a checkpoint
func (j *CheckpointJob) Process(ctx context.Context) error {
	j.svc.Checkpoint(ctx)
	return nil
}

// AutosaveJob persists the game to its save slot
type AutosaveJob struct {
	svc game.Service
}

// NewAutosaveJob creates the job driven by the autosave interval
func NewAutosaveJob(svc game.Service) *AutosaveJob {
	return &AutosaveJob{svc: svc}
}

// Process saves the game. A service without a repository is not an error here.
func (j *AutosaveJob) Process(ctx context.Context) error {
	err := j.svc.Save(ctx)
	if errors.Is(err, game.ErrNoRepository) {
		logger.FromContext(ctx).Debug(LogMsgAutosaveSkipped)
		return nil
	}
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgAutosaveCompleted)
	return nil
}
