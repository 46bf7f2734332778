package convo

import (
	"context"
	"log"
	"time"

	"signalmentor/internal/bot"
)

// presenceInterval is how often a presence signal is re-sent during a
// hold. Transports expire the indicator after roughly five seconds.
const presenceInterval = 4 * time.Second

// Pacer fakes human composing time: it shows a presence indicator and
// keeps it alive for the full hold duration before the actual send.
type Pacer struct {
	msgr bot.Messenger

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func NewPacer(msgr bot.Messenger) *Pacer {
	return &Pacer{msgr: msgr, sleep: time.Sleep}
}

// Hold sends one presence signal immediately, re-sends it every
// presenceInterval until total has elapsed, then returns. Presence
// failures are logged and never abort the hold.
func (p *Pacer) Hold(ctx context.Context, chatID string, kind bot.Presence, total time.Duration) {
	p.send(ctx, chatID, kind)

	for elapsed := time.Duration(0); elapsed < total; {
		step := presenceInterval
		if remaining := total - elapsed; remaining < step {
			step = remaining
		}
		p.sleep(step)
		elapsed += step
		if elapsed < total {
			p.send(ctx, chatID, kind)
		}
	}
}

func (p *Pacer) send(ctx context.Context, chatID string, kind bot.Presence) {
	if err := p.msgr.SendPresence(ctx, chatID, kind); err != nil {
		log.Printf("[WARN] convo: presence %s to %s: %v", kind, chatID, err)
	}
}
