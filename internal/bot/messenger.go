// Package bot defines the transport contracts the conversation engine
// depends on. Adapters (Discord, tests) implement them; the engine never
// imports a transport library directly.
package bot

import "context"

// Presence is a transport-level "the human is composing" indicator.
// Transports that support fewer kinds map the rest onto what they have.
type Presence string

const (
	PresenceTyping         Presence = "typing"
	PresenceRecording      Presence = "recording"
	PresenceUploadingVideo Presence = "uploading_video"
)

// Messenger sends outbound messages and presence signals. Implementations
// return errors; callers decide whether a failure aborts anything (in the
// scripted flow it never does).
type Messenger interface {
	// SendText sends a plain text message and returns its message ID.
	SendText(ctx context.Context, chatID, text string) (string, error)
	// SendDirect sends a plain text message to a user rather than a chat,
	// resolving whatever private channel the transport needs.
	SendDirect(ctx context.Context, userID, text string) (string, error)
	// SendVoice sends an audio file as a voice note.
	SendVoice(ctx context.Context, chatID, path string) error
	// SendVideo sends a video file with an optional caption.
	SendVideo(ctx context.Context, chatID, path, caption string) error
	// SendPresence shows a composing indicator. Indicators expire at the
	// transport after a few seconds and must be re-sent for long holds.
	SendPresence(ctx context.Context, chatID string, kind Presence) error
	// EditText replaces the text of a previously sent message.
	EditText(ctx context.Context, chatID, messageID, text string) error
}
