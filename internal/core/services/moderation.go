package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driving"
	"github.com/beenthere-labs/beenthere/internal/riskmodel"
)

// Ensure Moderation implements the interface.
var _ driving.ModerationService = (*Moderation)(nil)

// Moderation classifies text with the loaded risk model. The model is
// immutable after load; concurrent calls need no locking. With no
// trained model every verdict is the all-safe fallback - that degraded
// state is visible through Ready so operators never mistake it for a
// validated corpus.
type Moderation struct {
	model *riskmodel.Model
	log   zerolog.Logger
}

// NewModeration creates a moderation service. A nil or untrained model
// is allowed and selects the fail-safe default behaviour.
func NewModeration(model *riskmodel.Model, log zerolog.Logger) *Moderation {
	if model == nil || !model.IsTrained() {
		log.Warn().Msg("no trained risk model loaded; moderation degrades to all-safe verdicts")
	}
	return &Moderation{model: model, log: log}
}

// Ready reports whether a trained risk model is loaded.
func (s *Moderation) Ready() bool { return s.model.IsTrained() }

// Moderate implements driving.ModerationService. Classification is a
// local, bounded-time computation; it never fails.
func (s *Moderation) Moderate(_ context.Context, text string) domain.RiskAssessment {
	return s.model.Predict(riskmodel.Normalize(text))
}
