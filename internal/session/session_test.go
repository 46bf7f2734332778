package session

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"signalmentor/internal/storage"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "test.json"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewManager(store, 42)
}

func TestGetSessionCreatesWithDefaults(t *testing.T) {
	m := newTestManager(t)

	s := m.GetSession("u1")
	if s.UserID != "u1" {
		t.Fatalf("UserID = %q, want %q", s.UserID, "u1")
	}
	if s.CreatedAt.IsZero() || s.LastActive.IsZero() {
		t.Fatal("timestamps not set on fresh session")
	}

	p := s.Personality
	checks := []struct {
		name      string
		v, lo, hi int
	}{
		{"friendliness", p.Friendliness, 7, 10},
		{"enthusiasm", p.Enthusiasm, 7, 10},
		{"formality", p.Formality, 3, 8},
		{"persuasiveness", p.Persuasiveness, 7, 10},
		{"directness", p.Directness, 5, 10},
	}
	for _, c := range checks {
		if c.v < c.lo || c.v > c.hi {
			t.Errorf("%s = %d, want in [%d, %d]", c.name, c.v, c.lo, c.hi)
		}
	}

	if len(s.PersuasionApproaches) != 7 {
		t.Fatalf("approaches = %d, want 7", len(s.PersuasionApproaches))
	}
	for _, name := range []string{"social proof", "scarcity", "authority", "reciprocity", "commitment", "liking", "fear of missing out"} {
		if _, ok := s.PersuasionApproaches[name]; !ok {
			t.Errorf("missing approach %q", name)
		}
	}
}

func TestGetSessionIsIdempotent(t *testing.T) {
	m := newTestManager(t)

	first := m.GetSession("u1")
	second := m.GetSession("u1")
	if first.Personality != second.Personality {
		t.Fatalf("personality changed between reads: %+v vs %+v", first.Personality, second.Personality)
	}
	if first.CreatedAt != second.CreatedAt {
		t.Fatal("CreatedAt changed between reads")
	}
}

func TestGetSessionReturnsCopy(t *testing.T) {
	m := newTestManager(t)

	s := m.GetSession("u1")
	s.Interests["crypto"] = 99
	s.PersuasionApproaches["scarcity"] = Approach{Effectiveness: 0.0}

	fresh := m.GetSession("u1")
	if fresh.Interests["crypto"] != 0 {
		t.Fatal("mutating a returned session leaked into the manager")
	}
	if fresh.PersuasionApproaches["scarcity"].Effectiveness != 0.7 {
		t.Fatal("mutating returned approaches leaked into the manager")
	}
}

func TestUpdateSessionPersists(t *testing.T) {
	m := newTestManager(t)

	m.UpdateSession("u1", func(s *UserSession) {
		s.MessageCount = 5
	})
	if got := m.GetSession("u1").MessageCount; got != 5 {
		t.Fatalf("MessageCount = %d, want 5", got)
	}
}

func TestMarkJoinedGroup(t *testing.T) {
	m := newTestManager(t)

	m.MarkJoinedGroup("u1", true)
	if !m.GetSession("u1").HasJoinedGroup {
		t.Fatal("HasJoinedGroup = false, want true")
	}
	m.MarkJoinedGroup("u1", false)
	if m.GetSession("u1").HasJoinedGroup {
		t.Fatal("HasJoinedGroup = true, want false")
	}
}

func TestAdjustPersuasionEffectivenessClamps(t *testing.T) {
	m := newTestManager(t)
	m.GetSession("u1")

	for i := 0; i < 10; i++ {
		m.AdjustPersuasionEffectiveness("u1", "social proof", true)
	}
	if got := m.GetSession("u1").PersuasionApproaches["social proof"].Effectiveness; got != 0.9 {
		t.Fatalf("effectiveness after repeated boosts = %v, want 0.9", got)
	}

	for i := 0; i < 20; i++ {
		m.AdjustPersuasionEffectiveness("u1", "social proof", false)
	}
	if got := m.GetSession("u1").PersuasionApproaches["social proof"].Effectiveness; got != 0.1 {
		t.Fatalf("effectiveness after repeated drops = %v, want 0.1", got)
	}
}

func TestAdjustPersuasionIgnoresUnknownApproach(t *testing.T) {
	m := newTestManager(t)
	before := m.GetSession("u1").PersuasionApproaches

	m.AdjustPersuasionEffectiveness("u1", "hypnosis", true)

	after := m.GetSession("u1").PersuasionApproaches
	if len(after) != len(before) {
		t.Fatalf("approach count changed: %d -> %d", len(before), len(after))
	}
	if _, ok := after["hypnosis"]; ok {
		t.Fatal("unknown approach was added")
	}
}

func TestRecordInterestSignal(t *testing.T) {
	m := newTestManager(t)

	// One call with two crypto keywords counts crypto once.
	m.RecordInterestSignal("u1", "I love bitcoin and ethereum")
	if got := m.GetSession("u1").Interests["crypto"]; got != 1 {
		t.Fatalf("crypto score = %d, want 1", got)
	}

	// A second call increments again.
	m.RecordInterestSignal("u1", "thinking about crypto")
	if got := m.GetSession("u1").Interests["crypto"]; got != 2 {
		t.Fatalf("crypto score = %d, want 2", got)
	}

	// One call can hit several interests.
	m.RecordInterestSignal("u1", "can trading help me pay off my debt?")
	s := m.GetSession("u1")
	if s.Interests["trading"] != 1 || s.Interests["personal_finance"] != 1 {
		t.Fatalf("interests = %v, want trading and personal_finance at 1", s.Interests)
	}
}

func TestRecordInterestSignalNoMatch(t *testing.T) {
	m := newTestManager(t)

	m.RecordInterestSignal("u1", "hello there")
	if got := len(m.GetSession("u1").Interests); got != 0 {
		t.Fatalf("interests = %d, want 0", got)
	}
}

func TestTopInterests(t *testing.T) {
	m := newTestManager(t)

	m.UpdateSession("u1", func(s *UserSession) {
		s.Interests["trading"] = 3
		s.Interests["crypto"] = 5
		s.Interests["passive_income"] = 3
		s.Interests["career"] = 1
	})

	got := m.TopInterests("u1", 3)
	want := []string{"crypto", "passive income", "trading"}
	if len(got) != len(want) {
		t.Fatalf("TopInterests = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TopInterests = %v, want %v", got, want)
		}
	}
}

func TestAppendTurnCapsHistory(t *testing.T) {
	m := newTestManager(t)

	for i := 0; i < 12; i++ {
		m.AppendTurn("u1", RoleUser, fmt.Sprintf("message %d", i))
	}

	history := m.History("u1")
	if len(history) != 10 {
		t.Fatalf("history length = %d, want 10", len(history))
	}
	if history[0].Content != "message 2" {
		t.Fatalf("oldest kept entry = %q, want %q", history[0].Content, "message 2")
	}
	if history[9].Content != "message 11" {
		t.Fatalf("newest entry = %q, want %q", history[9].Content, "message 11")
	}
	if got := m.GetSession("u1").MessageCount; got != 12 {
		t.Fatalf("MessageCount = %d, want 12", got)
	}
}

func TestFormatForPrompt(t *testing.T) {
	m := newTestManager(t)

	if got := m.FormatForPrompt("u1"); got != "" {
		t.Fatalf("empty history rendered %q, want empty", got)
	}

	m.AppendTurn("u1", RoleUser, "hi")
	m.AppendTurn("u1", RoleAssistant, "hey there!")

	want := "User: hi\nAssistant: hey there!"
	if got := m.FormatForPrompt("u1"); got != want {
		t.Fatalf("FormatForPrompt = %q, want %q", got, want)
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	m := newTestManager(t)

	m.UpdateSession("u1", func(s *UserSession) {
		s.Interests["crypto"] = 4
	})

	prompt := m.BuildSystemPrompt("u1")
	for _, part := range []string{"Alex", "trading mentor", "crypto", "Behavioral Directives"} {
		if !strings.Contains(prompt, part) {
			t.Errorf("prompt missing %q", part)
		}
	}
	if strings.Contains(prompt, "7") || strings.Contains(prompt, "10") {
		// Trait numbers never leak into the prompt.
		t.Errorf("prompt leaks raw trait numbers:\n%s", prompt)
	}
}
