package models

import (
	"encoding/json"
	"time"
)

// RoomSettings is mutable only by the host. JSON names match the wire
// format used by the clients.
type RoomSettings struct {
	MaxPlayers   int      `json:"maxPlayers"`
	DrawTime     int      `json:"drawTime"` // seconds
	ChooseTime   int      `json:"chooseTime"`
	WordOptions  int      `json:"wordOptions"`
	Difficulty   string   `json:"difficulty"`
	HintsEnabled bool     `json:"hintsEnabled"`
	HintCount    int      `json:"hintCount"`
	Rounds       int      `json:"rounds"`
	CustomWords  []string `json:"customWords"`
}

// Player is one room member. It survives reconnects: on rejoin the record
// migrates to the new connection id instead of being recreated.
type Player struct {
	Username          string
	Score             int
	IsHost            bool
	LastAwardedPoints int // transient, cleared after each round-end broadcast
}

// TurnTimer is the room's single live timer. Gen lets the hub drop ticks
// that were already in flight when the timer was replaced.
type TurnTimer struct {
	Type string // "choose", "draw" or "pause"
	Gen  uint64
	Stop chan struct{}
}

// RoundState is reinitialized at the start of every turn; only PlayerOrder,
// Round and Turn persist across turns within one game.
type RoundState struct {
	IsPlaying       bool
	Round           int // 1-indexed
	Turn            int // 0-indexed, increments every completed drawing slot
	PlayerOrder     []string
	CurrentDrawer   string
	IsChoosing      bool
	Word            string
	WordChoices     []string
	RevealedIndices map[int]bool
	HintCount       int   // effective count for this turn
	HintMoments     []int // timeLeft values at which a hint fires, descending
	DrawerAwarded   bool
	CorrectGuesses  map[string]bool
	DrawingData     json.RawMessage
	TimeLeft        int
	TimerType       string
	Timer           *TurnTimer
}

// Room is one game session, keyed by a short room code.
type Room struct {
	ID         string
	Host       string
	Players    map[string]*Player
	Order      []string // connection ids in insertion order
	Settings   RoomSettings
	State      RoundState
	LastActive time.Time
}

// RoomSummary is the /rooms listing entry.
type RoomSummary struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	IsPlaying   bool   `json:"isPlaying"`
}
