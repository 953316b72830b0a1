package game

import (
	"encoding/json"

	"scriblet/models"

	"go.uber.org/zap"
)

func (h *Hub) handleCreateRoom(client *models.Client, p createRoomPayload) {
	settings := defaultSettings()
	applyPatch(&settings, p.Settings)

	room := h.reg.CreateRoom(settings, client.ID, p.Username)
	h.logger.Info("room created",
		zap.String("room", room.ID),
		zap.String("host", p.Username),
		zap.String("conn", client.ID),
	)

	payload := roomUpdatePayload(room)
	if token := h.issueSession(room.ID, p.Username); token != "" {
		payload["sessionId"] = token
	}
	h.ch.ToConn(client.ID, "room-created", payload)
	h.ch.ToRoom(room.ID, "room-update", roomUpdatePayload(room))
}

func (h *Hub) handleJoinRoom(client *models.Client, p joinRoomPayload) {
	username := p.Username
	if username == "" && p.SessionID != "" {
		if roomID, name, ok := h.resolveSession(p.SessionID); ok && roomID == p.RoomID {
			username = name
		}
	}
	if username == "" {
		return
	}

	room := h.reg.Room(p.RoomID)
	if room == nil {
		h.sendError(client, ErrRoomNotFound.Error())
		return
	}
	h.touch(room)

	if oldID := h.reg.FindByUsername(room, username); oldID != "" {
		h.rejoin(client, room, oldID)
	} else {
		if len(room.Players) >= room.Settings.MaxPlayers {
			h.sendError(client, ErrRoomFull.Error())
			return
		}
		h.join(client, room, username)
	}

	h.ch.ToRoomExcept(room.ID, client.ID, "room-update", roomUpdatePayload(room))
}

// rejoin migrates an existing player record to the new connection and
// replays the game state. The secret word travels only when the rejoining
// connection is the current drawer.
func (h *Hub) rejoin(client *models.Client, room *models.Room, oldID string) {
	h.reg.MigratePlayer(room, oldID, client.ID)
	player := room.Players[client.ID]
	h.logger.Info("player rejoined",
		zap.String("room", room.ID),
		zap.String("username", player.Username),
		zap.String("conn", client.ID),
	)

	state := &room.State
	var word interface{}
	if state.CurrentDrawer == client.ID {
		word = state.Word
	}
	var drawerName string
	if drawer, ok := room.Players[state.CurrentDrawer]; ok {
		drawerName = drawer.Username
	}

	payload := roomUpdatePayload(room)
	payload["gameState"] = map[string]interface{}{
		"isPlaying":   state.IsPlaying,
		"drawer":      drawerName,
		"drawerId":    state.CurrentDrawer,
		"word":        word,
		"isChoosing":  state.IsChoosing,
		"drawingData": state.DrawingData,
		"timeLeft":    state.TimeLeft,
		"scores":      scoresOf(room),
	}
	if token := h.issueSession(room.ID, player.Username); token != "" {
		payload["sessionId"] = token
	}
	h.ch.ToConn(client.ID, "room-joined", payload)
}

// join adds a brand-new player. A joiner during a running game gets a
// snapshot with the hint-masked word, never the word itself, plus the
// stored stroke buffer so the canvas can be redrawn.
func (h *Hub) join(client *models.Client, room *models.Room, username string) {
	h.reg.AddPlayer(room, client.ID, username)
	h.logger.Info("player joined",
		zap.String("room", room.ID),
		zap.String("username", username),
		zap.String("conn", client.ID),
	)

	payload := roomUpdatePayload(room)
	state := &room.State
	if state.IsPlaying {
		var drawerName string
		if drawer, ok := room.Players[state.CurrentDrawer]; ok {
			drawerName = drawer.Username
		}
		hiddenWord := ""
		if state.Word != "" {
			hiddenWord = MaskedWord(state.Word, state.RevealedIndices)
		}
		payload["gameState"] = map[string]interface{}{
			"isPlaying":     true,
			"drawer":        drawerName,
			"drawerId":      state.CurrentDrawer,
			"isChoosing":    state.IsChoosing,
			"timeLeft":      state.TimeLeft,
			"drawingData":   state.DrawingData,
			"hiddenWord":    hiddenWord,
			"timerType":     state.TimerType,
			"round":         state.Round,
			"turn":          state.Turn,
			"scores":        scoresOf(room),
			"hintsRevealed": len(state.RevealedIndices),
			"totalHints":    state.HintCount,
		}
	}
	if token := h.issueSession(room.ID, username); token != "" {
		payload["sessionId"] = token
	}
	h.ch.ToConn(client.ID, "room-joined", payload)

	if state.IsPlaying && len(state.DrawingData) > 0 {
		h.ch.ToConn(client.ID, "drawing-data", json.RawMessage(state.DrawingData))
	}

	h.ch.ToRoom(room.ID, "chat-message", map[string]interface{}{
		"message":  username + " joined the game",
		"isSystem": true,
	})
}

func (h *Hub) handleKickPlayer(client *models.Client, targetID string) {
	room := h.reg.RoomByConn(client.ID)
	if room == nil || room.Host != client.ID {
		return
	}
	target, ok := room.Players[targetID]
	if !ok {
		return
	}
	h.touch(room)
	h.logger.Info("player kicked",
		zap.String("room", room.ID),
		zap.String("username", target.Username),
	)

	h.ch.ToConn(targetID, "kicked", nil)
	h.reg.RemovePlayer(room, targetID)
	h.ch.ToRoom(room.ID, "room-update", roomUpdatePayload(room))
}

// handleDisconnect removes the departing player, destroying the room on
// the last departure and promoting a new host otherwise.
func (h *Hub) handleDisconnect(connID string) {
	defer h.reg.Unregister(connID)

	room := h.reg.RoomByConn(connID)
	if room == nil {
		return
	}
	player, ok := room.Players[connID]
	if !ok {
		return
	}
	h.reg.RemovePlayer(room, connID)

	if len(room.Players) == 0 {
		h.logger.Info("room empty, cleaning up", zap.String("room", room.ID))
		h.stopTimer(room)
		h.reg.DeleteRoom(room)
		return
	}

	if room.Host == connID {
		newHost := room.Order[0]
		room.Host = newHost
		room.Players[newHost].IsHost = true
		h.logger.Info("host left, promoted new host",
			zap.String("room", room.ID),
			zap.String("username", room.Players[newHost].Username),
		)
	}

	h.touch(room)
	h.ch.ToRoom(room.ID, "room-update", roomUpdatePayload(room))
	h.ch.ToRoom(room.ID, "chat-message", map[string]interface{}{
		"message":  player.Username + " left the game",
		"isSystem": true,
	})
}

func (h *Hub) handleUpdateSettings(client *models.Client, p updateSettingsPayload) {
	room := h.reg.Room(p.RoomID)
	if room == nil || room.Host != client.ID {
		return
	}
	h.touch(room)
	applyPatch(&room.Settings, p.Settings)
	h.ch.ToRoom(room.ID, "room-update", roomUpdatePayload(room))
}

func (h *Hub) handleGetRoom(client *models.Client, roomID string) {
	room := h.reg.Room(roomID)
	if room == nil {
		return
	}
	h.ch.ToConn(client.ID, "room-update", roomUpdatePayload(room))
}
