package game

import (
	"encoding/json"
	"time"

	"scriblet/models"
)

// Hub inbox events. Every mutation of game state arrives as one of these
// and is handled on the hub goroutine.
type event interface{ isEvent() }

type connectEvent struct {
	client *models.Client
}

type disconnectEvent struct {
	connID string
}

// clientEvent is a decoded wire envelope from one connection.
type clientEvent struct {
	client *models.Client
	msg    models.ClientMessage
}

// tickEvent is one second elapsed on a room's phase timer. Gen identifies
// the timer that produced it; stale ticks are dropped.
type tickEvent struct {
	roomID string
	gen    uint64
}

type sweepEvent struct {
	olderThan time.Duration
}

type roomListRequest struct {
	reply chan []models.RoomSummary
}

func (connectEvent) isEvent()    {}
func (disconnectEvent) isEvent() {}
func (clientEvent) isEvent()     {}
func (tickEvent) isEvent()       {}
func (sweepEvent) isEvent()      {}
func (roomListRequest) isEvent() {}

// Client-to-server payloads.

type settingsPatch struct {
	MaxPlayers   *int      `json:"maxPlayers"`
	DrawTime     *int      `json:"drawTime"`
	ChooseTime   *int      `json:"chooseTime"`
	WordOptions  *int      `json:"wordOptions"`
	Difficulty   *string   `json:"difficulty"`
	HintsEnabled *bool     `json:"hintsEnabled"`
	HintCount    *int      `json:"hintCount"`
	Rounds       *int      `json:"rounds"`
	CustomWords  *[]string `json:"customWords"`
}

type createRoomPayload struct {
	Settings settingsPatch `json:"settings"`
	Username string        `json:"username"`
}

type joinRoomPayload struct {
	RoomID    string `json:"roomId"`
	Username  string `json:"username"`
	SessionID string `json:"sessionId"`
}

type selectWordPayload struct {
	Word string `json:"word"`
}

type chatMessagePayload struct {
	Message string `json:"message"`
}

type kickPlayerPayload struct {
	PlayerID string `json:"playerId"`
}

type updateSettingsPayload struct {
	RoomID   string        `json:"roomId"`
	Settings settingsPatch `json:"settings"`
}

type getRoomPayload struct {
	RoomID string `json:"roomId"`
}

// defaultSettings are applied on room creation; the creator's patch
// overrides any subset of fields.
func defaultSettings() models.RoomSettings {
	return models.RoomSettings{
		MaxPlayers:   4,
		DrawTime:     60,
		ChooseTime:   60,
		WordOptions:  3,
		Difficulty:   "Normal",
		HintsEnabled: true,
		HintCount:    2,
		Rounds:       3,
		CustomWords:  []string{},
	}
}

// applyPatch merges the provided fields into s, preserving the rest.
func applyPatch(s *models.RoomSettings, p settingsPatch) {
	if p.MaxPlayers != nil {
		s.MaxPlayers = *p.MaxPlayers
	}
	if p.DrawTime != nil {
		s.DrawTime = *p.DrawTime
	}
	if p.ChooseTime != nil {
		s.ChooseTime = *p.ChooseTime
	}
	if p.WordOptions != nil {
		s.WordOptions = *p.WordOptions
	}
	if p.Difficulty != nil {
		s.Difficulty = *p.Difficulty
	}
	if p.HintsEnabled != nil {
		s.HintsEnabled = *p.HintsEnabled
	}
	if p.HintCount != nil {
		s.HintCount = *p.HintCount
	}
	if p.Rounds != nil {
		s.Rounds = *p.Rounds
	}
	if p.CustomWords != nil {
		s.CustomWords = *p.CustomWords
	}
}

func decode(data json.RawMessage, v interface{}) bool {
	return json.Unmarshal(data, v) == nil
}
