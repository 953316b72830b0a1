package game

import (
	"encoding/json"
	"math/rand"
	"sort"

	"scriblet/models"

	"go.uber.org/zap"
)

func (h *Hub) handleStartGame(client *models.Client) {
	room := h.reg.RoomByConn(client.ID)
	if room == nil || room.Host != client.ID || room.State.IsPlaying {
		return
	}
	h.touch(room)
	h.logger.Info("game started",
		zap.String("room", room.ID),
		zap.Int("players", len(room.Players)),
	)

	state := &room.State
	state.IsPlaying = true
	state.Round = 1
	state.Turn = 0
	state.PlayerOrder = append([]string(nil), room.Order...)
	h.rng.Shuffle(len(state.PlayerOrder), func(i, j int) {
		state.PlayerOrder[i], state.PlayerOrder[j] = state.PlayerOrder[j], state.PlayerOrder[i]
	})
	for _, p := range room.Players {
		p.Score = 0
		p.LastAwardedPoints = 0
	}

	h.ch.ToRoom(room.ID, "game-state-update", map[string]interface{}{
		"isPlaying":  true,
		"round":      1,
		"turn":       0,
		"scores":     scoresOf(room),
		"drawTime":   room.Settings.DrawTime,
		"chooseTime": room.Settings.ChooseTime,
		"isChoosing": false,
	})

	state.TimeLeft = 1
	h.startTimer(room, "pause")
}

// startTurn resets per-turn state and opens the word-choice window for
// the next drawer in rotation. Stale connection ids left in PlayerOrder
// by reconnects are repaired by falling back to the current roster.
func (h *Hub) startTurn(room *models.Room) {
	state := &room.State
	state.IsChoosing = true
	state.Word = ""
	state.WordChoices = nil
	state.RevealedIndices = make(map[int]bool)
	state.HintMoments = nil
	state.HintCount = 0
	state.DrawerAwarded = false
	state.CorrectGuesses = make(map[string]bool)
	state.DrawingData = nil
	for _, p := range room.Players {
		p.LastAwardedPoints = 0
	}

	if len(state.PlayerOrder) == 0 {
		state.PlayerOrder = append([]string(nil), room.Order...)
	}
	drawerID := state.PlayerOrder[state.Turn%len(state.PlayerOrder)]
	if _, ok := room.Players[drawerID]; !ok {
		drawerID = room.Order[0]
	}
	state.CurrentDrawer = drawerID
	drawer := room.Players[drawerID]

	h.ch.ToRoom(room.ID, "canvas-clear", nil)
	h.ch.ToRoom(room.ID, "drawing-data", json.RawMessage("[]"))

	state.WordChoices = h.supply.Draw(room.Settings.Difficulty, room.Settings.CustomWords, room.Settings.WordOptions)
	state.TimeLeft = room.Settings.ChooseTime
	h.startTimer(room, "choose")

	base := map[string]interface{}{
		"isPlaying":  true,
		"round":      state.Round,
		"turn":       state.Turn,
		"drawer":     drawer.Username,
		"drawerId":   drawerID,
		"isChoosing": true,
		"timeLeft":   state.TimeLeft,
		"scores":     scoresOf(room),
	}
	h.ch.ToRoomExcept(room.ID, drawerID, "game-state-update", base)

	forDrawer := make(map[string]interface{}, len(base)+1)
	for k, v := range base {
		forDrawer[k] = v
	}
	forDrawer["wordChoices"] = state.WordChoices
	h.ch.ToConn(drawerID, "game-state-update", forDrawer)
}

func (h *Hub) handleSelectWord(client *models.Client, word string) {
	room := h.reg.RoomByConn(client.ID)
	if room == nil {
		return
	}
	state := &room.State
	if !state.IsPlaying || !state.IsChoosing || state.CurrentDrawer != client.ID {
		return
	}
	valid := false
	for _, w := range state.WordChoices {
		if w == word {
			valid = true
			break
		}
	}
	if !valid {
		return
	}
	h.touch(room)
	h.wordChosen(room, word)
}

// wordChosen commits the secret word, schedules hint reveals inside the
// first 60% of draw time and starts the drawing phase.
func (h *Hub) wordChosen(room *models.Room, word string) {
	state := &room.State
	state.IsChoosing = false
	state.Word = word

	hintCount := 0
	if room.Settings.HintsEnabled {
		hintCount = room.Settings.HintCount
		if max := len(word) / 2; hintCount > max {
			hintCount = max
		}
	}
	state.HintCount = hintCount
	state.HintMoments = hintMoments(room.Settings.DrawTime, hintCount, h.rng)

	h.ch.ToRoom(room.ID, "canvas-clear", nil)
	state.DrawingData = nil
	state.TimeLeft = room.Settings.DrawTime
	h.startTimer(room, "draw")

	drawerName := ""
	if drawer, ok := room.Players[state.CurrentDrawer]; ok {
		drawerName = drawer.Username
	}
	base := map[string]interface{}{
		"isPlaying":  true,
		"drawer":     drawerName,
		"drawerId":   state.CurrentDrawer,
		"isChoosing": false,
		"timeLeft":   state.TimeLeft,
		"timerType":  "draw",
		"round":      state.Round,
		"turn":       state.Turn,
	}

	forDrawer := make(map[string]interface{}, len(base)+2)
	for k, v := range base {
		forDrawer[k] = v
	}
	forDrawer["word"] = word
	forDrawer["isDrawer"] = true
	h.ch.ToConn(state.CurrentDrawer, "game-state-update", forDrawer)

	forOthers := make(map[string]interface{}, len(base)+2)
	for k, v := range base {
		forOthers[k] = v
	}
	forOthers["hiddenWord"] = MaskedWord(word, state.RevealedIndices)
	forOthers["isDrawer"] = false
	h.ch.ToRoomExcept(room.ID, state.CurrentDrawer, "game-state-update", forOthers)
}

// hintMoments picks hintCount distinct seconds-remaining values inside
// the window [floor(0.4*total), total), sorted descending so they fire
// in order as the clock runs down.
func hintMoments(total, hintCount int, rng *rand.Rand) []int {
	if hintCount <= 0 {
		return nil
	}
	low := total * 2 / 5
	span := total - low
	if span <= 0 {
		return nil
	}
	if hintCount > span {
		hintCount = span
	}
	seen := make(map[int]bool, hintCount)
	moments := make([]int, 0, hintCount)
	for len(moments) < hintCount {
		m := low + rng.Intn(span)
		if seen[m] {
			continue
		}
		seen[m] = true
		moments = append(moments, m)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(moments)))
	return moments
}

func (h *Hub) chooseTick(room *models.Room) {
	state := &room.State
	state.TimeLeft--
	h.ch.ToRoom(room.ID, "timer-update", map[string]interface{}{
		"timeLeft":  state.TimeLeft,
		"timerType": "choose",
	})
	if state.TimeLeft > 0 {
		return
	}
	// Out of time: choose for the drawer.
	if len(state.WordChoices) > 0 {
		h.wordChosen(room, state.WordChoices[h.rng.Intn(len(state.WordChoices))])
	} else {
		h.endTurn(room)
	}
}

func (h *Hub) drawTick(room *models.Room) {
	state := &room.State
	state.TimeLeft--
	h.ch.ToRoom(room.ID, "timer-update", map[string]interface{}{
		"timeLeft":      state.TimeLeft,
		"timerType":     "draw",
		"hintsRevealed": len(state.RevealedIndices),
		"totalHints":    state.HintCount,
	})

	for _, moment := range state.HintMoments {
		if moment != state.TimeLeft {
			continue
		}
		if idx := NextHintIndex(state.Word, state.RevealedIndices, h.rng); idx >= 0 {
			state.RevealedIndices[idx] = true
			indices := make([]int, 0, len(state.RevealedIndices))
			for i := range state.RevealedIndices {
				indices = append(indices, i)
			}
			sort.Ints(indices)
			h.ch.ToRoomExcept(room.ID, state.CurrentDrawer, "hint-update", map[string]interface{}{
				"indices":    indices,
				"hiddenWord": RevealedWord(state.Word, state.RevealedIndices),
				"hintNumber": len(state.RevealedIndices),
				"totalHints": state.HintCount,
			})
		}
	}

	if state.TimeLeft <= 0 {
		h.endTurn(room)
	}
}

func (h *Hub) pauseTick(room *models.Room) {
	state := &room.State
	state.TimeLeft--
	if state.TimeLeft <= 0 {
		h.startTurn(room)
	}
}

// endTurn settles scores, reveals the word and either advances the
// rotation, rolls the round, or finishes the game.
func (h *Hub) endTurn(room *models.Room) {
	state := &room.State
	h.stopTimer(room)

	if !state.DrawerAwarded {
		if drawer, ok := room.Players[state.CurrentDrawer]; ok {
			pts := DrawerPoints(len(state.CorrectGuesses), len(room.Players))
			drawer.Score += pts
			drawer.LastAwardedPoints = pts
		}
		state.DrawerAwarded = true
	}

	awarded := make(map[string]int, len(room.Players))
	for _, p := range room.Players {
		awarded[p.Username] = p.LastAwardedPoints
	}

	h.ch.ToRoom(room.ID, "game-state-update", map[string]interface{}{
		"roundEnd":      true,
		"scores":        scoresOf(room),
		"awardedPoints": awarded,
		"word":          state.Word,
	})

	for _, p := range room.Players {
		p.LastAwardedPoints = 0
	}

	// Turn counts completed drawing slots across the whole game; the
	// drawer rotation takes it modulo the player order.
	state.Turn++
	turnsPerRound := len(state.PlayerOrder)
	if turnsPerRound == 0 {
		turnsPerRound = len(room.Players)
	}
	if state.Turn%turnsPerRound == 0 {
		state.Round++
		if state.Round > room.Settings.Rounds {
			h.endGame(room)
			return
		}
	}

	state.TimeLeft = 4
	h.startTimer(room, "pause")
}

func (h *Hub) endGame(room *models.Room) {
	state := &room.State
	state.IsPlaying = false
	state.IsChoosing = false
	state.Word = ""
	state.Round = 1
	state.Turn = 0
	h.logger.Info("game ended", zap.String("room", room.ID))

	h.ch.ToRoom(room.ID, "game-end", map[string]interface{}{
		"scores": scoresOf(room),
	})

	if h.archive != nil {
		h.archive.Record(room)
	}
}
