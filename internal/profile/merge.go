package profile

import (
	"fmt"
	"time"

	"github.com/yungbote/cognify-backend/internal/domain"
)

const (
	// DefaultAdaptationRate is the weight given to new evidence when blending
	// into an existing confidence score.
	DefaultAdaptationRate = 0.15

	// DefaultConfidenceThreshold gates value adoption: candidates below it
	// only nudge confidence, they never overwrite the current value.
	DefaultConfidenceThreshold = 0.70
)

// MergeOptions tunes the adaptation policy. Zero values fall back to the
// package defaults, and a zero Now falls back to time.Now.
type MergeOptions struct {
	AdaptationRate      float64
	ConfidenceThreshold float64
	Now                 time.Time
}

func (o MergeOptions) withDefaults() MergeOptions {
	if o.AdaptationRate == 0 {
		o.AdaptationRate = DefaultAdaptationRate
	}
	if o.ConfidenceThreshold == 0 {
		o.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if o.Now.IsZero() {
		o.Now = time.Now().UTC()
	}
	return o
}

// Merge folds inference candidates into the profile in place and reports
// whether anything changed. Per candidate dimension the confidence is blended
// as old*(1-rate) + candidate*rate; the value is adopted only when the
// candidate's own confidence clears the threshold, otherwise the existing
// value is kept. Dimensions absent from results are left untouched, which
// makes a merge with no candidates a no-op: no version bump, no timestamp.
//
// Version and adaptation bookkeeping happens here; persisting the profile is
// the caller's job and must be atomic with a version check.
func Merge(p *domain.CognitiveProfile, results []domain.InferenceResult, opts MergeOptions) (bool, error) {
	opts = opts.withDefaults()

	changed := false
	for _, r := range results {
		if err := validateCandidate(r); err != nil {
			return false, err
		}
		oldValue, oldConfidence := p.Dimension(r.Dimension)

		newConfidence := oldConfidence*(1-opts.AdaptationRate) + r.Confidence*opts.AdaptationRate
		if newConfidence < 0 || newConfidence > 1 {
			return false, &InvariantViolationError{
				Dimension: string(r.Dimension),
				Field:     "confidence",
				Value:     fmt.Sprintf("%g", newConfidence),
				Detail:    "blended confidence outside [0,1]",
			}
		}

		newValue := oldValue
		if r.Confidence >= opts.ConfidenceThreshold {
			newValue = r.Value
		}
		if newValue != oldValue || newConfidence != oldConfidence {
			p.SetDimension(r.Dimension, newValue, newConfidence)
			changed = true
		}
	}

	if changed {
		p.ProfileVersion++
		p.TotalAdaptations++
		p.LastUpdated = opts.Now
	}
	return changed, nil
}

func validateCandidate(r domain.InferenceResult) error {
	if r.Confidence < 0 || r.Confidence > 1 {
		return &InvariantViolationError{
			Dimension: string(r.Dimension),
			Field:     "confidence",
			Value:     fmt.Sprintf("%g", r.Confidence),
			Detail:    "candidate confidence outside [0,1]",
		}
	}
	if !r.Dimension.ValidValue(r.Value) {
		return &InvariantViolationError{
			Dimension: string(r.Dimension),
			Field:     "value",
			Value:     r.Value,
			Detail:    "candidate value outside the dimension's domain",
		}
	}
	return nil
}
