package profile

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/yungbote/cognify-backend/internal/domain"
)

// BuildWindow reduces raw telemetry for one learner over [start, end) into a
// BehavioralWindow. It is a pure reduce: callers fetch the records, this
// function never touches storage. Fields with no underlying data stay nil so
// the rule engine can distinguish "no signal" from a measured zero.
func BuildWindow(userID string, start, end time.Time, sessions []domain.LearningSession, interactions []domain.ResourceInteraction, masteries []domain.ConceptMastery) domain.BehavioralWindow {
	w := domain.BehavioralWindow{
		UserID:      userID,
		PeriodStart: start,
		PeriodEnd:   end,
	}
	reduceInteractions(&w, interactions)
	reduceSessions(&w, sessions)
	reduceMasteries(&w, masteries)
	return w
}

func reduceInteractions(w *domain.BehavioralWindow, interactions []domain.ResourceInteraction) {
	var videoCompletion, textCompletion []float64
	var videoEngagement, textEngagement []float64

	for _, it := range interactions {
		switch it.ResourceType {
		case domain.ResourceVideo:
			w.VideoCount++
			if it.CompletionPercentage != nil {
				videoCompletion = append(videoCompletion, *it.CompletionPercentage)
			}
			if it.EngagementScore != nil {
				videoEngagement = append(videoEngagement, *it.EngagementScore)
			}
		case domain.ResourceArticle, domain.ResourceCodeExample:
			w.TextCount++
			if it.CompletionPercentage != nil {
				textCompletion = append(textCompletion, *it.CompletionPercentage)
			}
			if it.EngagementScore != nil {
				textEngagement = append(textEngagement, *it.EngagementScore)
			}
		case domain.ResourceInteractive:
			w.InteractiveCount++
		}
	}
	w.TotalInteractions = len(interactions)

	// Proportion of video among video+text consumption. A zero denominator
	// means no signal, not a zero preference.
	if denom := w.VideoCount + w.TextCount; denom > 0 {
		w.VideoToTextRatio = ptr(float64(w.VideoCount) / float64(denom))
	}
	w.AvgVideoCompletion = mean(videoCompletion)
	w.AvgArticleCompletion = mean(textCompletion)
	w.AvgVideoEngagement = mean(videoEngagement)
	w.AvgTextEngagement = mean(textEngagement)
	if w.TotalInteractions > 0 {
		w.InteractiveEngagementRate = ptr(float64(w.InteractiveCount) / float64(w.TotalInteractions))
	}
	w.PreferredResourceType = preferredResourceType(
		w.VideoCount, w.TextCount, w.InteractiveCount,
		w.AvgVideoEngagement, w.AvgTextEngagement,
	)
}

func reduceSessions(w *domain.BehavioralWindow, sessions []domain.LearningSession) {
	w.TotalSessions = len(sessions)
	if len(sessions) == 0 {
		return
	}

	var totalSeconds, frustration, help int
	var focusScores, completionRates []float64
	hourCounts := map[int]int{}
	dates := map[string]struct{}{}
	var first, last time.Time
	var allConcepts []string

	for i, s := range sessions {
		totalSeconds += s.DurationSeconds
		frustration += s.FrustrationIndicators
		help += s.HelpRequests
		hourCounts[s.StartedAt.Hour()]++
		dates[s.StartedAt.Format("2006-01-02")] = struct{}{}
		if i == 0 || s.StartedAt.Before(first) {
			first = s.StartedAt
		}
		if i == 0 || s.StartedAt.After(last) {
			last = s.StartedAt
		}
		if s.FocusScore != nil {
			focusScores = append(focusScores, *s.FocusScore)
		}
		if s.CompletionRate != nil {
			completionRates = append(completionRates, *s.CompletionRate)
		}
		if len(s.ConceptsCovered) > 0 {
			var concepts []string
			if err := json.Unmarshal(s.ConceptsCovered, &concepts); err == nil {
				allConcepts = append(allConcepts, concepts...)
			}
		}
	}

	w.AvgSessionMinutes = ptr(float64(totalSeconds) / float64(len(sessions)) / 60)
	w.TotalLearningHours = ptr(float64(totalSeconds) / 3600)
	w.FrustrationEvents = &frustration
	w.HelpRequests = &help
	w.AvgFocusScore = mean(focusScores)
	w.CompletionRate = mean(completionRates)
	w.PreferredLearningHours = topHours(hourCounts, 3)

	unique := map[string]struct{}{}
	for _, c := range allConcepts {
		unique[c] = struct{}{}
	}
	w.UniqueConcepts = len(unique)
	if len(unique) > 0 {
		w.ConceptRevisitRate = ptr(float64(len(allConcepts)) / float64(len(unique)))
	}

	if len(sessions) >= 2 {
		// Active days over the span covered: more distinct days means a
		// steadier habit.
		span := int(last.Truncate(24*time.Hour).Sub(first.Truncate(24*time.Hour)).Hours()/24) + 1
		consistency := 0.5
		if span > 0 {
			consistency = float64(len(dates)) / float64(span)
			if consistency > 1.0 {
				consistency = 1.0
			}
		}
		w.LearningConsistency = &consistency
	} else {
		w.LearningConsistency = ptr(0.5)
	}
}

func reduceMasteries(w *domain.BehavioralWindow, masteries []domain.ConceptMastery) {
	w.ConceptsTracked = len(masteries)
	if len(masteries) == 0 {
		return
	}

	dist := map[string]int{}
	var velocities, retentions []float64
	var totalSeconds int
	for _, m := range masteries {
		dist[m.CurrentLevel]++
		totalSeconds += m.TotalTimeSpentSeconds
		if m.LearningVelocity != nil {
			velocities = append(velocities, *m.LearningVelocity)
		}
		if m.RetentionScore != nil {
			retentions = append(retentions, *m.RetentionScore)
		}
	}
	w.MasteryDistribution = dist
	w.LearningVelocity = mean(velocities)
	w.RetentionScore = mean(retentions)
	w.AvgHoursPerConcept = ptr(float64(totalSeconds) / 3600 / float64(len(masteries)))
}

func preferredResourceType(videoCount, textCount, interactiveCount int, videoEngagement, textEngagement *float64) string {
	ve, te := deref(videoEngagement), deref(textEngagement)
	switch {
	case videoCount > textCount && ve > te:
		return domain.ResourceVideo
	case textCount > videoCount && te > ve:
		return domain.ResourceArticle
	case interactiveCount > videoCount && interactiveCount > textCount:
		return domain.ResourceInteractive
	default:
		return domain.Mixed
	}
}

func topHours(counts map[int]int, n int) []domain.HourBin {
	if len(counts) == 0 {
		return nil
	}
	bins := make([]domain.HourBin, 0, len(counts))
	for hour, c := range counts {
		bins = append(bins, domain.HourBin{Hour: hour, Sessions: c})
	}
	sort.Slice(bins, func(i, j int) bool {
		if bins[i].Sessions != bins[j].Sessions {
			return bins[i].Sessions > bins[j].Sessions
		}
		return bins[i].Hour < bins[j].Hour
	})
	if len(bins) > n {
		bins = bins[:n]
	}
	return bins
}

func mean(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return ptr(sum / float64(len(vals)))
}

func ptr(v float64) *float64 { return &v }

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
