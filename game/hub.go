package game

import (
	"math/rand"
	"time"

	"scriblet/game/broadcast"
	"scriblet/game/words"
	"scriblet/models"

	"go.uber.org/zap"
)

// Hub runs the whole game core on one goroutine: socket events, timer
// ticks and cleanup sweeps all arrive on the inbox and are handled to
// completion, one at a time. Nothing in the game packages takes a lock.
type Hub struct {
	logger   *zap.Logger
	reg      *Registry
	ch       broadcast.Channel
	supply   *words.Supply
	tickers  TickerFactory
	rng      *rand.Rand
	sessions *SessionStore // nil when redis is not configured
	archive  *Archive      // nil when postgres is not configured

	inbox    chan event
	timerGen uint64
}

func NewHub(logger *zap.Logger, supply *words.Supply, tickers TickerFactory, sessions *SessionStore, archive *Archive) *Hub {
	h := &Hub{
		logger:   logger,
		reg:      NewRegistry(),
		supply:   supply,
		tickers:  tickers,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions: sessions,
		archive:  archive,
		inbox:    make(chan event, 1024),
	}
	h.ch = broadcast.NewRouter(h.reg, logger)
	return h
}

// Run consumes the inbox until it is closed. It must be the only goroutine
// calling dispatch.
func (h *Hub) Run() {
	for ev := range h.inbox {
		h.dispatch(ev)
	}
}

// Connect registers a new socket with the hub.
func (h *Hub) Connect(client *models.Client) {
	h.inbox <- connectEvent{client: client}
}

// Disconnect is posted by the read pump when the socket dies.
func (h *Hub) Disconnect(connID string) {
	h.inbox <- disconnectEvent{connID: connID}
}

// Deliver forwards one decoded client envelope to the hub.
func (h *Hub) Deliver(client *models.Client, msg models.ClientMessage) {
	h.inbox <- clientEvent{client: client, msg: msg}
}

// SweepIdleRooms implements utils.RoomSweeper.
func (h *Hub) SweepIdleRooms(olderThan time.Duration) {
	h.inbox <- sweepEvent{olderThan: olderThan}
}

// RoomSummaries answers the HTTP /rooms listing through the inbox so the
// handler never touches hub state directly.
func (h *Hub) RoomSummaries() []models.RoomSummary {
	reply := make(chan []models.RoomSummary, 1)
	h.inbox <- roomListRequest{reply: reply}
	return <-reply
}

func (h *Hub) dispatch(ev event) {
	switch ev := ev.(type) {
	case connectEvent:
		h.reg.Register(ev.client)
		h.logger.Info("client connected", zap.String("conn", ev.client.ID))
	case disconnectEvent:
		h.handleDisconnect(ev.connID)
	case clientEvent:
		h.handleClientEvent(ev.client, ev.msg)
	case tickEvent:
		h.handleTick(ev)
	case sweepEvent:
		h.handleSweep(ev.olderThan)
	case roomListRequest:
		ev.reply <- h.reg.Summaries()
	}
}

// handleClientEvent decodes and routes one wire event. Envelopes that fail
// to decode are dropped: a malformed request is an expected race, not a
// user-facing failure.
func (h *Hub) handleClientEvent(client *models.Client, msg models.ClientMessage) {
	switch msg.Event {
	case "create-room":
		var p createRoomPayload
		if decode(msg.Data, &p) && p.Username != "" {
			h.handleCreateRoom(client, p)
		}
	case "join-room":
		var p joinRoomPayload
		if decode(msg.Data, &p) {
			h.handleJoinRoom(client, p)
		}
	case "start-game":
		h.handleStartGame(client)
	case "select-word":
		var p selectWordPayload
		if decode(msg.Data, &p) {
			h.handleSelectWord(client, p.Word)
		}
	case "drawing-data":
		h.handleDrawingData(client, msg.Data)
	case "clear-canvas":
		h.handleClearCanvas(client)
	case "chat-message":
		var p chatMessagePayload
		if decode(msg.Data, &p) {
			h.handleChatMessage(client, p.Message)
		}
	case "kick-player":
		var p kickPlayerPayload
		if decode(msg.Data, &p) {
			h.handleKickPlayer(client, p.PlayerID)
		}
	case "update-room-settings":
		var p updateSettingsPayload
		if decode(msg.Data, &p) {
			h.handleUpdateSettings(client, p)
		}
	case "get-room":
		var p getRoomPayload
		if decode(msg.Data, &p) {
			h.handleGetRoom(client, p.RoomID)
		}
	default:
		h.logger.Debug("unknown event", zap.String("event", msg.Event), zap.String("conn", client.ID))
	}
}

func (h *Hub) sendError(client *models.Client, message string) {
	h.ch.ToConn(client.ID, "error", map[string]interface{}{"message": message})
}

func roomUpdatePayload(room *models.Room) map[string]interface{} {
	return map[string]interface{}{
		"roomId":   room.ID,
		"players":  Roster(room),
		"host":     room.Host,
		"settings": room.Settings,
	}
}

func scoresOf(room *models.Room) map[string]int {
	scores := make(map[string]int, len(room.Players))
	for _, player := range room.Players {
		scores[player.Username] = player.Score
	}
	return scores
}

func (h *Hub) touch(room *models.Room) {
	room.LastActive = time.Now()
}

// handleSweep removes rooms that have been inactive past the cutoff. The
// members are told the same way a kick is, then the room is dropped.
func (h *Hub) handleSweep(olderThan time.Duration) {
	cutoff := time.Now().Add(-olderThan)
	for _, room := range h.reg.rooms {
		if room.State.IsPlaying || room.LastActive.After(cutoff) {
			continue
		}
		h.logger.Info("removing idle room", zap.String("room", room.ID))
		h.stopTimer(room)
		h.ch.ToRoom(room.ID, "kicked", nil)
		h.reg.DeleteRoom(room)
	}
}
