package game

import (
	"encoding/json"
	"strings"

	"scriblet/models"

	"go.uber.org/zap"
)

// handleDrawingData accepts a stroke buffer from the current drawer,
// validates its shape and relays it to everyone else. Payloads arrive
// either as a raw array or double-encoded as a JSON string.
func (h *Hub) handleDrawingData(client *models.Client, raw json.RawMessage) {
	room := h.reg.RoomByConn(client.ID)
	if room == nil {
		return
	}
	state := &room.State
	if !state.IsPlaying || state.CurrentDrawer != client.ID {
		return
	}

	data := raw
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		data = json.RawMessage(asString)
	}
	if !validStrokes(data) {
		h.logger.Warn("rejected malformed drawing payload",
			zap.String("room", room.ID),
			zap.String("conn", client.ID),
		)
		return
	}

	h.touch(room)
	state.DrawingData = data
	h.ch.ToRoomExcept(room.ID, client.ID, "drawing-data", data)
}

// validStrokes checks the buffer is an array of strokes, each stroke
// null or an array of points, each point null or exactly four numbers.
func validStrokes(data json.RawMessage) bool {
	if isJSONNull(data) {
		return false
	}
	var strokes []json.RawMessage
	if err := json.Unmarshal(data, &strokes); err != nil {
		return false
	}
	for _, s := range strokes {
		if isJSONNull(s) {
			continue
		}
		var points []json.RawMessage
		if err := json.Unmarshal(s, &points); err != nil {
			return false
		}
		for _, p := range points {
			if isJSONNull(p) {
				continue
			}
			var coords []float64
			if err := json.Unmarshal(p, &coords); err != nil || len(coords) != 4 {
				return false
			}
		}
	}
	return true
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func (h *Hub) handleClearCanvas(client *models.Client) {
	room := h.reg.RoomByConn(client.ID)
	if room == nil {
		return
	}
	state := &room.State
	if !state.IsPlaying || state.CurrentDrawer != client.ID {
		return
	}
	h.touch(room)
	state.DrawingData = nil
	h.ch.ToRoom(room.ID, "canvas-clear", nil)
}

// handleChatMessage relays chat and detects correct guesses. The drawer
// and players who already guessed chat freely without triggering the
// guess check.
func (h *Hub) handleChatMessage(client *models.Client, message string) {
	room := h.reg.RoomByConn(client.ID)
	if room == nil {
		return
	}
	player, ok := room.Players[client.ID]
	if !ok {
		return
	}
	h.touch(room)
	state := &room.State

	if state.IsPlaying {
		if _, ok := room.Players[state.CurrentDrawer]; !ok {
			// The drawer vanished mid-turn; force the round over.
			h.endTurn(room)
			return
		}
	}

	isDrawer := state.CurrentDrawer == client.ID
	guessable := state.IsPlaying && !state.IsChoosing && state.Word != "" &&
		!isDrawer && !state.CorrectGuesses[client.ID]

	if guessable && strings.EqualFold(strings.TrimSpace(message), state.Word) {
		state.CorrectGuesses[client.ID] = true
		pts := GuesserPoints(state.TimeLeft, room.Settings.DrawTime)
		player.Score += pts
		player.LastAwardedPoints = pts
		h.logger.Info("correct guess",
			zap.String("room", room.ID),
			zap.String("username", player.Username),
			zap.Int("points", pts),
		)

		h.ch.ToRoom(room.ID, "chat-message", map[string]interface{}{
			"message": player.Username + " guessed correctly!",
			"type":    "correct-guess",
		})
		h.ch.ToRoom(room.ID, "game-state-update", map[string]interface{}{
			"scores": scoresOf(room),
		})

		if len(state.CorrectGuesses) >= len(room.Players)-1 {
			h.everyoneGuessed(room)
		}
		return
	}

	h.ch.ToRoom(room.ID, "chat-message", map[string]interface{}{
		"username": player.Username,
		"message":  message,
		"isDrawer": isDrawer,
	})
}

// everyoneGuessed ends the drawing phase early once every non-drawer
// has the word, crediting the drawer immediately.
func (h *Hub) everyoneGuessed(room *models.Room) {
	state := &room.State
	pts := 0
	drawerName := ""
	if drawer, ok := room.Players[state.CurrentDrawer]; ok {
		pts = DrawerPoints(len(state.CorrectGuesses), len(room.Players))
		drawer.Score += pts
		drawer.LastAwardedPoints = pts
		drawerName = drawer.Username
	}
	state.DrawerAwarded = true

	h.ch.ToRoom(room.ID, "word-end", map[string]interface{}{
		"awardedPoints": map[string]int{drawerName: pts},
		"word":          state.Word,
	})
	h.endTurn(room)
}
