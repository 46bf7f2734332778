package convo

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"signalmentor/internal/bot"
	"signalmentor/internal/config"
	"signalmentor/internal/session"
	"signalmentor/internal/storage"
)

// Machine runs the scripted sales flow. One Run call handles one inbound
// message; concurrent calls for different users are safe.
type Machine struct {
	msgr     bot.Messenger
	store    *storage.Storage
	sessions *session.Manager
	pacer    *Pacer
	cfg      *config.Config

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMachine creates a Machine. seed makes canned-response selection and
// delay jitter reproducible; zero seeds from the clock.
func NewMachine(msgr bot.Messenger, store *storage.Storage, sessions *session.Manager, pacer *Pacer, cfg *config.Config, seed int64) *Machine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Machine{
		msgr:     msgr,
		store:    store,
		sessions: sessions,
		pacer:    pacer,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Run advances the user's scripted flow for one inbound message. It
// returns false when the current stage leaves this message to the caller
// (command dispatch or the AI responder); scripted stages always consume
// the message.
func (m *Machine) Run(ctx context.Context, turn Turn) bool {
	state := loadState(m.store, turn.UserID)

	if state.Stage == StageNone || turn.Text == "/start" {
		m.runGreeting(ctx, turn)
		return true
	}

	switch state.Stage {
	case StageStart1:
		m.runNamePitch(ctx, turn)
		return true
	case StageStart2:
		if IsNegative(turn.Text) {
			saveState(m.store, turn.UserID, StageDeclined)
			return true
		}
		m.runRegistrationSteps(ctx, turn)
		return true
	case StageWaitingForID:
		saveState(m.store, turn.UserID, StageRegistrationComplete)
		m.sendText(ctx, turn.ChatID, msgAlreadyComplete)
		return true
	case StageIntro:
		if !IsAffirmative(turn.Text) {
			return false
		}
		m.runExplainer(ctx, turn)
		return true
	case StageTradingExplained:
		if !IsAffirmative(turn.Text) {
			return false
		}
		m.runRegistrationPush(ctx, turn)
		return true
	case StageRegistrationSent:
		if !SaysRegistered(turn.Text) && !IsAffirmative(turn.Text) {
			return false
		}
		m.runConfirmation(ctx, turn)
		return true
	case StageRegistrationComplete:
		m.sendPaced(ctx, turn.ChatID, m.pick(completedResponses), cannedDelay)
		return true
	case StageDeclined:
		m.runDeclined(ctx, turn)
		return true
	}

	log.Printf("[WARN] convo: user %s in unknown stage %q, resetting", turn.UserID, state.Stage)
	saveState(m.store, turn.UserID, StageNone)
	return false
}

// BeginTradingPitch parks the user in the explainer entry stage, so
// their next agreement starts the trading explainer sequence.
func (m *Machine) BeginTradingPitch(userID string) {
	saveState(m.store, userID, StageIntro)
}

// runGreeting introduces the persona and asks for name and location.
func (m *Machine) runGreeting(ctx context.Context, turn Turn) {
	m.sendPaced(ctx, turn.ChatID, msgGreeting1, greetingDelay1)
	m.sendPaced(ctx, turn.ChatID, msgGreeting2, greetingDelay2)
	saveState(m.store, turn.UserID, StageStart1)
}

// runNamePitch extracts a name from the introduction and pitches the VIP
// group.
func (m *Machine) runNamePitch(ctx context.Context, turn Turn) {
	m.sessions.RecordInterestSignal(turn.UserID, turn.Text)
	name := ExtractName(turn.Text)
	m.sendPaced(ctx, turn.ChatID, fmt.Sprintf(msgNamePitch, name), namePitchDelay)
	saveState(m.store, turn.UserID, StageStart2)
}

// runRegistrationSteps sends the registration link and the full
// registration-content sequence. The stage is persisted before the media
// sequence so a failure mid-sequence never replays the script.
func (m *Machine) runRegistrationSteps(ctx context.Context, turn Turn) {
	m.sendPaced(ctx, turn.ChatID, fmt.Sprintf(msgRegistrationSteps, m.cfg.RegistrationLink), stepsDelay)
	m.pacer.sleep(stepsPause)

	saveState(m.store, turn.UserID, StageRegistrationComplete)
	m.sendRegistrationContent(ctx, turn.ChatID)
}

// sendRegistrationContent is the two-videos, one-voice-note, five-texts
// sequence. Every media send is best-effort.
func (m *Machine) sendRegistrationContent(ctx context.Context, chatID string) {
	m.sendVideoBestEffort(ctx, chatID, m.mediaPath("video1.mp4"), fmt.Sprintf(msgVideo1Caption, m.cfg.RegistrationLink))
	m.pacer.sleep(mediaGap)
	m.sendVideoBestEffort(ctx, chatID, m.mediaPath("video2.mp4"), msgVideo2Caption)

	m.pacer.Hold(ctx, chatID, bot.PresenceRecording, recordingHold)
	m.sendVoiceBestEffort(ctx, chatID, m.mediaPath("greeting.ogg"), msgVoiceFallback)

	m.sendPaced(ctx, chatID, msgManualSignup, 3*time.Second)
	m.sendPaced(ctx, chatID, msgDepositQuick, 4*time.Second)
	m.sendPaced(ctx, chatID, msgDepositMinimum, 3*time.Second)
	m.sendPaced(ctx, chatID, msgDepositRealTalk, 3500*time.Millisecond)
	m.sendPaced(ctx, chatID, msgDepositTypical, 4*time.Second)
	m.sendPaced(ctx, chatID, msgDepositClose, 5*time.Second)
}

// runExplainer walks through what binary trading is and asks for buy-in.
func (m *Machine) runExplainer(ctx context.Context, turn Turn) {
	m.sendPaced(ctx, turn.ChatID, msgExplainer1, explainerDelay1)
	m.sendPaced(ctx, turn.ChatID, msgExplainer2, m.jitter(6*time.Second))
	m.sendPaced(ctx, turn.ChatID, msgExplainer3, m.jitter(5*time.Second))
	m.sendPaced(ctx, turn.ChatID, msgExplainer4, m.jitter(7*time.Second))
	saveState(m.store, turn.UserID, StageTradingExplained)
}

// runRegistrationPush sends the link, warnings, promo code, and the media
// sequence. The stage transition is written before the media so a failed
// upload never blocks progress.
func (m *Machine) runRegistrationPush(ctx context.Context, turn Turn) {
	m.sendPaced(ctx, turn.ChatID, msgPushAck, 5*time.Second)
	m.sendPaced(ctx, turn.ChatID, fmt.Sprintf(msgPushLink, m.cfg.RegistrationLink), 7*time.Second)
	m.sendPaced(ctx, turn.ChatID, msgManualSignup, 7*time.Second)
	m.sendPaced(ctx, turn.ChatID, fmt.Sprintf(msgPushPromo, m.cfg.PromoCode), 7*time.Second)

	m.pacer.Hold(ctx, turn.ChatID, bot.PresenceRecording, recordingHold)
	saveState(m.store, turn.UserID, StageRegistrationSent)

	voiceOK := m.sendVoiceBestEffort(ctx, turn.ChatID, m.mediaPath("greeting.ogg"), "")
	video1OK := m.sendVideoBestEffort(ctx, turn.ChatID, m.mediaPath("video1.mp4"), msgVideoMissing)
	m.pacer.sleep(mediaGap)
	video2OK := m.sendVideoBestEffort(ctx, turn.ChatID, m.mediaPath("video2.mp4"), msgUIDMissing)
	if video2OK {
		m.sendText(ctx, turn.ChatID, msgUIDWhere)
	}
	if !voiceOK && !video1OK && !video2OK {
		m.sendText(ctx, turn.ChatID, msgMediaFailure)
	}

	m.sendPaced(ctx, turn.ChatID, msgDepositQuick, m.jitter(5*time.Second))
	m.sendPaced(ctx, turn.ChatID, msgDepositMinimum, m.jitter(3*time.Second))
	m.sendPaced(ctx, turn.ChatID, msgDepositRealTalk, m.jitter(4*time.Second))
	m.sendPaced(ctx, turn.ChatID, msgDepositTypical, m.jitter(4*time.Second))
	m.sendPaced(ctx, turn.ChatID, msgDepositClose, m.jitter(3*time.Second))
}

// runConfirmation congratulates the user and closes the flow.
func (m *Machine) runConfirmation(ctx context.Context, turn Turn) {
	m.sendPaced(ctx, turn.ChatID, msgConfirm1, confirmDelay)
	m.sendPaced(ctx, turn.ChatID, msgConfirm2, m.jitter(8*time.Second))
	saveState(m.store, turn.UserID, StageRegistrationComplete)
}

// runDeclined nudges a declined user, or restarts the flow if they ask
// back in.
func (m *Machine) runDeclined(ctx context.Context, turn Turn) {
	if WantsReengagement(turn.Text) || IsAffirmative(turn.Text) {
		saveState(m.store, turn.UserID, StageNone)
		m.sendPaced(ctx, turn.ChatID, msgRestart, cannedDelay)
		return
	}
	m.sendPaced(ctx, turn.ChatID, m.pick(declinedResponses), cannedDelay)
}

// sendPaced holds a typing indicator for delay, then sends text.
func (m *Machine) sendPaced(ctx context.Context, chatID, text string, delay time.Duration) {
	m.pacer.Hold(ctx, chatID, bot.PresenceTyping, delay)
	m.sendText(ctx, chatID, text)
}

func (m *Machine) sendText(ctx context.Context, chatID, text string) {
	if _, err := m.msgr.SendText(ctx, chatID, text); err != nil {
		log.Printf("[WARN] convo: send to %s: %v", chatID, err)
	}
}

// sendVideoBestEffort uploads a video with a bounded timeout. A missing
// file or failed send falls back to the caption as plain text (when one
// is set) and reports false; the sequence always continues.
func (m *Machine) sendVideoBestEffort(ctx context.Context, chatID, path, caption string) bool {
	if _, err := os.Stat(path); err != nil {
		log.Printf("[WARN] convo: video not found: %s", path)
		if caption != "" {
			m.sendText(ctx, chatID, caption)
		}
		return false
	}

	m.pacer.Hold(ctx, chatID, bot.PresenceUploadingVideo, uploadHold)

	sendCtx, cancel := context.WithTimeout(ctx, mediaSendTimeout)
	defer cancel()
	if err := m.msgr.SendVideo(sendCtx, chatID, path, caption); err != nil {
		log.Printf("[WARN] convo: video %s to %s: %v", filepath.Base(path), chatID, err)
		if caption != "" {
			m.sendText(ctx, chatID, caption)
		}
		return false
	}
	return true
}

// sendVoiceBestEffort sends a voice note, falling back to fallbackText
// when the file is missing or the send fails. Reports whether the note
// was delivered.
func (m *Machine) sendVoiceBestEffort(ctx context.Context, chatID, path, fallbackText string) bool {
	if _, err := os.Stat(path); err != nil {
		log.Printf("[WARN] convo: voice note not found: %s", path)
	} else if err := m.msgr.SendVoice(ctx, chatID, path); err != nil {
		log.Printf("[WARN] convo: voice %s to %s: %v", filepath.Base(path), chatID, err)
	} else {
		return true
	}
	if fallbackText != "" {
		m.sendText(ctx, chatID, fallbackText)
	}
	return false
}

func (m *Machine) mediaPath(name string) string {
	return filepath.Join(m.cfg.MediaDir, name)
}

// pick selects one canned response uniformly at random.
func (m *Machine) pick(responses []string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return responses[m.rng.Intn(len(responses))]
}

// jitter adds up to jitterSpread of randomness to a base delay.
func (m *Machine) jitter(base time.Duration) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return base + time.Duration(m.rng.Int63n(int64(jitterSpread)))
}
