package command

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"signalmentor/internal/ai"
	"signalmentor/internal/bot"
	"signalmentor/internal/config"
	"signalmentor/internal/session"
	"signalmentor/internal/storage"
	"signalmentor/pkg/jobmgr"
)

type recordingMessenger struct {
	mu      sync.Mutex
	texts   []string
	directs []string
	edits   []string
}

func (m *recordingMessenger) SendText(ctx context.Context, chatID, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
	return "msg-1", nil
}

func (m *recordingMessenger) SendDirect(ctx context.Context, userID, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.directs = append(m.directs, text)
	return "msg-1", nil
}

func (m *recordingMessenger) sentTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

func (m *recordingMessenger) sentDirects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.directs...)
}

func (m *recordingMessenger) SendVoice(ctx context.Context, chatID, path string) error { return nil }

func (m *recordingMessenger) SendVideo(ctx context.Context, chatID, path, caption string) error {
	return nil
}

func (m *recordingMessenger) SendPresence(ctx context.Context, chatID string, kind bot.Presence) error {
	return nil
}

func (m *recordingMessenger) EditText(ctx context.Context, chatID, messageID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, text)
	return nil
}

type stubExplainer struct {
	parked []string
}

func (e *stubExplainer) BeginTradingPitch(userID string) {
	e.parked = append(e.parked, userID)
}

func newTestContext(t *testing.T) (*Context, *recordingMessenger) {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "test.json"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sessions := session.NewManager(store, 42)
	msgr := &recordingMessenger{}
	return &Context{
		Ctx:       context.Background(),
		Msgr:      msgr,
		Store:     store,
		Sessions:  sessions,
		Cfg:       &config.Config{Prefix: "/", Mods: []string{"mod-1"}},
		Registry:  DefaultRegistry,
		Jobs:      jobmgr.NewManager(nil),
		Responder: ai.NewResponder(nil, sessions, store),
		Explainer: &stubExplainer{},
		ChatID:    "chat-1",
		UserID:    "u1",
		UserName:  "Tester",
	}, msgr
}

func TestRegistryLookup(t *testing.T) {
	for _, name := range []string{"help", "ping", "myid", "grouplink", "setgrouplink", "broadcast", "trading", "ai"} {
		if !DefaultRegistry.Has(name) {
			t.Errorf("builtin %q not registered", name)
		}
	}
	// Aliases resolve to the canonical command.
	if got := DefaultRegistry.Get("uid"); got == nil || got.Meta().Name != "myid" {
		t.Error("alias uid does not resolve to myid")
	}
	if DefaultRegistry.Get("bogus") != nil {
		t.Error("unknown name resolved")
	}
}

func TestRunEnforcesModsOnly(t *testing.T) {
	cctx, msgr := newTestContext(t)

	Run(cctx, DefaultRegistry.Get("setgrouplink"), []string{"https://example.test/group"})
	if len(msgr.texts) != 1 || !strings.Contains(msgr.texts[0], "moderators") {
		t.Fatalf("texts = %v, want moderator denial", msgr.texts)
	}

	cctx.UserID = "mod-1"
	Run(cctx, DefaultRegistry.Get("setgrouplink"), []string{"https://example.test/group"})
	if last := msgr.texts[len(msgr.texts)-1]; !strings.Contains(last, "has been set") {
		t.Fatalf("last text = %q, want confirmation", last)
	}
}

func TestHelpListsVisibleCommands(t *testing.T) {
	cctx, msgr := newTestContext(t)

	Run(cctx, DefaultRegistry.Get("help"), nil)
	if len(msgr.texts) != 1 {
		t.Fatalf("sent %d messages, want 1", len(msgr.texts))
	}
	out := msgr.texts[0]
	if !strings.Contains(out, "/ping") || !strings.Contains(out, "/trading") {
		t.Errorf("help output missing builtins:\n%s", out)
	}
	// Mod commands are hidden from regular users.
	if strings.Contains(out, "/broadcast") {
		t.Errorf("help output leaks mod commands:\n%s", out)
	}
}

func TestHelpDescribesCommand(t *testing.T) {
	cctx, msgr := newTestContext(t)

	Run(cctx, DefaultRegistry.Get("help"), []string{"ping"})
	if len(msgr.texts) != 1 || !strings.Contains(msgr.texts[0], "response time") {
		t.Fatalf("texts = %v, want ping description", msgr.texts)
	}
}

func TestPingEditsWithLatency(t *testing.T) {
	cctx, msgr := newTestContext(t)

	Run(cctx, DefaultRegistry.Get("ping"), nil)
	if len(msgr.edits) != 1 || !strings.Contains(msgr.edits[0], "Pong") {
		t.Fatalf("edits = %v, want pong", msgr.edits)
	}
	if !strings.Contains(msgr.edits[0], "uptime") {
		t.Errorf("pong missing uptime: %q", msgr.edits[0])
	}
}

func TestGroupLinkRoundTrip(t *testing.T) {
	cctx, msgr := newTestContext(t)

	// Without a stored link the command explains the admin flow.
	Run(cctx, DefaultRegistry.Get("grouplink"), nil)
	if !strings.Contains(msgr.texts[0], "sent directly by the admin") {
		t.Fatalf("text = %q, want disabled explanation", msgr.texts[0])
	}

	cctx.UserID = "mod-1"
	Run(cctx, DefaultRegistry.Get("setgrouplink"), []string{"https://example.test/vip"})

	cctx.UserID = "u1"
	Run(cctx, DefaultRegistry.Get("grouplink"), nil)
	if last := msgr.texts[len(msgr.texts)-1]; !strings.Contains(last, "https://example.test/vip") {
		t.Fatalf("last text = %q, want stored link", last)
	}
}

func TestSetGroupLinkValidation(t *testing.T) {
	cctx, msgr := newTestContext(t)
	cctx.UserID = "mod-1"

	Run(cctx, DefaultRegistry.Get("setgrouplink"), nil)
	if !strings.Contains(msgr.texts[0], "provide a group link") {
		t.Fatalf("text = %q, want missing-link warning", msgr.texts[0])
	}

	Run(cctx, DefaultRegistry.Get("setgrouplink"), []string{"ftp://bad"})
	if last := msgr.texts[len(msgr.texts)-1]; !strings.Contains(last, "Invalid group link") {
		t.Fatalf("last text = %q, want validation warning", last)
	}
}

func TestTradingRecordsInterestAndParks(t *testing.T) {
	cctx, msgr := newTestContext(t)
	parked := cctx.Explainer.(*stubExplainer)

	Run(cctx, DefaultRegistry.Get("trading"), nil)

	if len(msgr.texts) != 2 {
		t.Fatalf("sent %d messages, want 2", len(msgr.texts))
	}
	if got := cctx.Sessions.GetSession("u1").Interests["trading"]; got != 5 {
		t.Errorf("trading interest = %d, want 5", got)
	}
	if len(parked.parked) != 1 || parked.parked[0] != "u1" {
		t.Errorf("parked = %v, want [u1]", parked.parked)
	}
}

func TestAskCommandWithoutProvider(t *testing.T) {
	cctx, msgr := newTestContext(t)

	Run(cctx, DefaultRegistry.Get("ai"), []string{"what", "is", "trading"})
	if len(msgr.texts) != 1 || msgr.texts[0] != ai.MsgUnavailable {
		t.Fatalf("texts = %v, want unavailable reply", msgr.texts)
	}

	Run(cctx, DefaultRegistry.Get("ai"), nil)
	if last := msgr.texts[len(msgr.texts)-1]; !strings.Contains(last, "provide a question") {
		t.Fatalf("last text = %q, want missing-question warning", last)
	}
}

func TestBroadcastDeliversToContactsAndGroups(t *testing.T) {
	cctx, msgr := newTestContext(t)
	cctx.UserID = "mod-1"

	cctx.Store.UpsertContact(storage.Contact{ID: "c1", Name: "Carol"})
	cctx.Store.UpsertContact(storage.Contact{ID: "bot-1", Name: "Helper", IsBot: true})
	cctx.Store.UpsertContact(storage.Contact{ID: "mod-1", Name: "Moderator"})
	cctx.Store.UpsertGroup(storage.Group{ID: "g1", Name: "Signals", ChannelID: "chan-g1"})
	cctx.Store.UpsertGroup(storage.Group{ID: "g2", Name: "No announce channel"})
	cctx.Store.UpsertGroup(storage.Group{ID: "g3", Name: "Gone", ChannelID: "chan-g3"})
	cctx.Store.MarkGroupLeft("g3")

	Run(cctx, DefaultRegistry.Get("broadcast"), []string{"big", "news"})

	summary := waitForText(t, msgr, "Broadcast complete")
	if !strings.Contains(summary, "Successfully sent to: 2") {
		t.Fatalf("summary = %q, want 2 successes", summary)
	}

	// Humans get a DM; bots and the sender are skipped.
	directs := msgr.sentDirects()
	if len(directs) != 1 || !strings.Contains(directs[0], "big news") {
		t.Fatalf("directs = %v, want one announcement", directs)
	}

	// Only the active group with a recorded channel is announced to.
	groupSends := 0
	for _, text := range msgr.sentTexts() {
		if strings.Contains(text, "big news") {
			groupSends++
		}
	}
	if groupSends != 1 {
		t.Fatalf("group announcements = %d, want 1", groupSends)
	}
}

func waitForText(t *testing.T, msgr *recordingMessenger, substr string) string {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		for _, text := range msgr.sentTexts() {
			if strings.Contains(text, substr) {
				return text
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no message containing %q", substr)
	return ""
}
