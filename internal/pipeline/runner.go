package pipeline

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/rectpromote/internal/logfields"
)

// Run executes steps in order and stops at the first error, which is
// returned as a *StepError. Cancellation is checked before every step;
// steps that never ran stay not_started in the report.
func Run(ctx context.Context, st *State, steps []StepDef, obs Observer) error {
	if obs == nil {
		obs = NoopObserver{}
	}
	if st.Report == nil {
		st.Report = NewReport()
	}
	rep := st.Report
	rep.Plan(steps)

	err := runSteps(ctx, st, steps, obs)
	rep.Err = err
	rep.Finish()
	obs.OnRunComplete(rep, st)
	return err
}

func runSteps(ctx context.Context, st *State, steps []StepDef, obs Observer) error {
	rep := st.Report
	for _, def := range steps {
		log := slog.With(logfields.RunID(rep.RunID), logfields.Step(string(def.Name)))

		if err := ctx.Err(); err != nil {
			se := &StepError{Kind: StepErrorCanceled, Step: def.Name, Err: err}
			rep.Record(def.Name, StepCanceled, 0, se)
			obs.OnStepComplete(def.Name, 0, StepCanceled)
			return se
		}

		if def.Skip {
			log.Info("Skipping step")
			rep.Record(def.Name, StepSkipped, 0, nil)
			obs.OnStepComplete(def.Name, 0, StepSkipped)
			continue
		}

		log.Debug("Starting step")
		rep.Record(def.Name, StepRunning, 0, nil)
		obs.OnStepStart(def.Name)

		t0 := time.Now()
		err := def.Fn(ctx, st)
		dur := time.Since(t0)

		if err != nil {
			se := &StepError{Kind: StepErrorFailed, Step: def.Name, Err: err}
			result := StepFailed
			if ctx.Err() != nil {
				se.Kind, result = StepErrorCanceled, StepCanceled
			}
			rep.Record(def.Name, result, dur, se)
			obs.OnStepComplete(def.Name, dur, result)
			log.Debug("Step stopped the run", logfields.StepResult(string(result)), logfields.Duration(dur))
			return se
		}

		rep.Record(def.Name, StepSucceeded, dur, nil)
		obs.OnStepComplete(def.Name, dur, StepSucceeded)
		log.Info("Step succeeded", logfields.Duration(dur))
	}
	return nil
}
