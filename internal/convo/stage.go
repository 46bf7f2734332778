// Package convo implements the scripted sales conversation: the stage
// machine that walks a user from first contact to registration, the intent
// router that picks between the script, slash commands, and the AI
// responder, and the pacer that fakes human composing time.
package convo

import (
	"time"

	"signalmentor/internal/storage"
)

// Stage identifies where a user is in the scripted flow.
type Stage string

const (
	// Primary path.
	StageNone                 Stage = "none"
	StageStart1               Stage = "start_1"
	StageStart2               Stage = "start_2"
	StageDeclined             Stage = "declined"
	StageRegistrationComplete Stage = "registration_complete"

	// Secondary explainer path, reachable only by seeding the state
	// externally. Kept because deployed databases contain users parked
	// in these stages.
	StageIntro            Stage = "intro"
	StageTradingExplained Stage = "trading_explained"
	StageRegistrationSent Stage = "registration_sent"

	// Legacy dead end, converted to registration_complete on contact.
	StageWaitingForID Stage = "waiting_for_id"
)

// StateRecord is the persisted per-user conversation state.
type StateRecord struct {
	Stage      Stage     `json:"stage"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// loadState returns the user's conversation state, defaulting to StageNone.
func loadState(store *storage.Storage, userID string) StateRecord {
	var rec StateRecord
	if !store.Get(storage.TableState, userID, &rec) || rec.Stage == "" {
		return StateRecord{Stage: StageNone, LastUpdate: time.Now()}
	}
	return rec
}

// saveState persists the user's stage transition.
func saveState(store *storage.Storage, userID string, stage Stage) {
	store.Set(storage.TableState, userID, StateRecord{Stage: stage, LastUpdate: time.Now()})
}
