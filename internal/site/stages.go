package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hypersite/hypersite/internal/logfields"
	"github.com/hypersite/hypersite/internal/metrics"
)

// Stage is a single step of the build pipeline. Stages mutate the shared
// BuildState and report failures through StageError so the runner can tell
// warnings from fatal conditions.
type Stage func(ctx context.Context, state *BuildState) error

// StageErrorKind classifies how the pipeline reacts to a stage failure.
type StageErrorKind int

const (
	// StageErrorFatal aborts the build.
	StageErrorFatal StageErrorKind = iota
	// StageErrorWarning is recorded and the build continues.
	StageErrorWarning
	// StageErrorCanceled means the context was canceled or timed out.
	StageErrorCanceled
)

func (k StageErrorKind) String() string {
	switch k {
	case StageErrorFatal:
		return "fatal"
	case StageErrorWarning:
		return "warning"
	case StageErrorCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// StageError wraps an error raised by a pipeline stage together with the
// stage name and its severity classification.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// runStages executes the pipeline in order. Stage durations are recorded in
// the report regardless of outcome. Warning-class errors are collected and
// execution continues; fatal and canceled errors abort immediately.
func runStages(ctx context.Context, state *BuildState, stages []StageDef) error {
	for _, def := range stages {
		if err := ctx.Err(); err != nil {
			canceled := newCanceledStageError(def.Name, err)
			state.Report.addError(canceled)
			return canceled
		}

		start := time.Now()
		err := def.Fn(ctx, state)
		elapsed := time.Since(start)
		state.Report.recordStage(def.Name, elapsed)
		state.recorder().ObserveStageDuration(string(def.Name), elapsed)

		if err == nil {
			state.recorder().IncStageResult(string(def.Name), metrics.ResultSuccess)
			continue
		}

		var stageErr *StageError
		if !errors.As(err, &stageErr) {
			stageErr = newFatalStageError(def.Name, err)
		}

		switch stageErr.Kind {
		case StageErrorWarning:
			state.Report.addWarning(stageErr)
			state.recorder().IncStageResult(string(def.Name), metrics.ResultWarning)
			slog.Warn("build stage reported warnings",
				logfields.Stage(string(def.Name)),
				logfields.Error(stageErr.Err))
		case StageErrorCanceled:
			state.Report.addError(stageErr)
			return stageErr
		default:
			state.Report.addError(stageErr)
			state.recorder().IncStageResult(string(def.Name), metrics.ResultFatal)
			slog.Error("build stage failed",
				logfields.Stage(string(def.Name)),
				logfields.Error(stageErr.Err))
			return stageErr
		}
	}
	return nil
}
