package session

const (
	minEffectiveness  = 0.1
	maxEffectiveness  = 0.9
	effectivenessStep = 0.1
)

// defaultApproaches returns the seven persuasion tactics every new session
// starts with.
func defaultApproaches() map[string]Approach {
	return map[string]Approach{
		"social proof":        {Effectiveness: 0.7, Description: "Showing that others are doing it"},
		"scarcity":            {Effectiveness: 0.7, Description: "Limited time or availability"},
		"authority":           {Effectiveness: 0.6, Description: "Expert endorsement or credentials"},
		"reciprocity":         {Effectiveness: 0.5, Description: "Giving something to get something"},
		"commitment":          {Effectiveness: 0.5, Description: "Building on prior commitments"},
		"liking":              {Effectiveness: 0.6, Description: "Building rapport and connection"},
		"fear of missing out": {Effectiveness: 0.6, Description: "Emphasizing what they might lose"},
	}
}

// AdjustPersuasionEffectiveness nudges an approach's weight up or down by
// one step, clamped to [0.1, 0.9]. Unknown approach names are ignored.
func (m *Manager) AdjustPersuasionEffectiveness(userID, approach string, wasEffective bool) {
	m.UpdateSession(userID, func(s *UserSession) {
		a, ok := s.PersuasionApproaches[approach]
		if !ok {
			return
		}
		delta := effectivenessStep
		if !wasEffective {
			delta = -effectivenessStep
		}
		a.Effectiveness = clamp(a.Effectiveness+delta, minEffectiveness, maxEffectiveness)
		s.PersuasionApproaches[approach] = a
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
