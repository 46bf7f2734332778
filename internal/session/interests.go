package session

import (
	"sort"
	"strings"
)

// interestKeywords maps each interest tag to the substrings that signal it.
// Kept declarative so the table can be tuned and tested independently of
// the scanning logic.
var interestKeywords = map[string][]string{
	"investing":        {"invest", "stock", "market", "portfolio", "dividend", "shares"},
	"crypto":           {"crypto", "bitcoin", "ethereum", "blockchain", "token", "coin"},
	"passive_income":   {"passive", "income", "revenue", "stream", "earn while"},
	"entrepreneurship": {"business", "startup", "entrepreneur", "venture", "company"},
	"real_estate":      {"real estate", "property", "rent", "house", "apartment", "mortgage"},
	"online_business":  {"online business", "e-commerce", "dropshipping", "website", "digital"},
	"personal_finance": {"budget", "save", "debt", "credit", "loan", "financial"},
	"career":           {"job", "career", "salary", "promotion", "interview", "resume"},
	"education":        {"learn", "course", "training", "education", "skill", "knowledge"},
	"technology":       {"tech", "software", "app", "digital", "online", "internet"},
	"trading":          {"trading", "trader", "forex", "binary options", "pocket option", "signals", "chart", "candle", "market analysis", "trade"},
}

// RecordInterestSignal scans text for interest keywords and increments each
// matched interest's score by one. Multiple keyword hits for the same
// interest count once per call.
func (m *Manager) RecordInterestSignal(userID, text string) {
	lower := strings.ToLower(text)

	matched := make([]string, 0, 2)
	for interest, keywords := range interestKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, interest)
				break
			}
		}
	}
	if len(matched) == 0 {
		return
	}

	m.UpdateSession(userID, func(s *UserSession) {
		for _, interest := range matched {
			s.Interests[interest]++
		}
	})
}

// TopInterests returns up to limit interest tags ordered by score, highest
// first, with underscores replaced by spaces for prompt use. Ties break by
// name so output is deterministic.
func (m *Manager) TopInterests(userID string, limit int) []string {
	s := m.GetSession(userID)

	type scored struct {
		name  string
		score int
	}
	list := make([]scored, 0, len(s.Interests))
	for name, score := range s.Interests {
		list = append(list, scored{name, score})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].name < list[j].name
	})

	if limit > len(list) {
		limit = len(list)
	}
	out := make([]string, 0, limit)
	for _, entry := range list[:limit] {
		out = append(out, strings.ReplaceAll(entry.name, "_", " "))
	}
	return out
}
