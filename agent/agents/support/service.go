package support

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
	nodex "github.com/tanpawarit/Chative-Support-Agent/agent/nodes"
)

type Config struct {
	// EvaluationTime pins the clock used by the cancellation policy (RFC3339).
	EvaluationTime string
}

type Option func(*Agent)

// WithClock overrides the request clock. It takes precedence over
// Config.EvaluationTime.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		if now != nil {
			a.now = now
		}
	}
}

type Agent struct {
	catalog    contractx.CatalogSource
	classifier contractx.Classifier

	now     func() time.Time
	compose func(nodex.RequestState) (contractx.Trace, error)
}

// New builds an Agent. A nil classifier means keyword classification only.
func New(
	catalog contractx.CatalogSource,
	classifier contractx.Classifier,
	cfg Config,
	opts ...Option,
) (*Agent, error) {
	if catalog == nil {
		return nil, errors.New("catalog source is required")
	}

	a := &Agent{
		catalog:    catalog,
		classifier: classifier,
		now:        time.Now,
		compose:    nodex.Compose,
	}

	if raw := strings.TrimSpace(cfg.EvaluationTime); raw != "" {
		pinned, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: evaluation time %q: %v", contractx.ErrValidation, raw, err)
		}
		a.now = func() time.Time { return pinned }
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a, nil
}

// Process runs one message through classify, dispatch, guard and compose. It
// never fails: errors are turned into a degraded trace with an apology.
func (a *Agent) Process(ctx context.Context, text string) (result contractx.Result) {
	logger := log.With().Str("request_id", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			logger.Error().Err(err).Msg("request failed")
			result = errorResult(err)
		}
	}()

	st := nodex.NewRequestState(text, a.now().UTC())
	st = nodex.Classify(ctx, st, a.classifier)

	st, err := nodex.Dispatch(ctx, st, a.catalog)
	if err != nil {
		logger.Error().Err(err).Str("intent", string(st.Intent)).Msg("request failed")
		return errorResult(err)
	}

	st = nodex.Guard(st)

	trace := composeOrApologize(st, a.compose, logger)
	logger.Info().
		Str("intent", string(trace.Intent)).
		Strs("tools_called", trace.ToolsCalled).
		Bool("policy_decision", trace.PolicyDecision != nil).
		Msg("request processed")

	return contractx.Result{Trace: trace, FinalMessage: trace.FinalMessage}
}

// composeOrApologize keeps everything computed so far when rendering fails.
func composeOrApologize(
	st nodex.RequestState,
	compose func(nodex.RequestState) (contractx.Trace, error),
	logger zerolog.Logger,
) (trace contractx.Trace) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Err(fmt.Errorf("panic: %v", r)).Msg("compose failed")
			trace = st.Trace(nodex.ApologyMessage)
		}
	}()

	trace, err := compose(st)
	if err != nil {
		logger.Error().Err(err).Msg("compose failed")
		return st.Trace(nodex.ApologyMessage)
	}
	return trace
}

func errorResult(err error) contractx.Result {
	trace := contractx.Trace{
		Intent:         contractx.IntentError,
		ToolsCalled:    []string{},
		Evidence:       []contractx.Evidence{},
		PolicyDecision: &contractx.PolicyDecision{Error: err.Error()},
		FinalMessage:   nodex.ApologyMessage,
	}
	return contractx.Result{Trace: trace, FinalMessage: trace.FinalMessage}
}
