package game

import (
	"strings"
	"testing"

	"scriblet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startGame kicks the host's game off and advances past the opening pause
// so the first choosing phase is live.
func startGame(t *testing.T, h *Hub, host *models.Client, room *models.Room) {
	t.Helper()
	deliver(t, h, host, "start-game", nil)
	require.True(t, room.State.IsPlaying)
	require.Equal(t, "pause", room.State.TimerType)
	tick(t, h, room)
	require.True(t, room.State.IsChoosing)
}

func TestStartGameRequiresHost(t *testing.T) {
	h, _ := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", nil)
	other := connect(h, "c2")
	joinRoom(t, h, other, room.ID, "bob")

	deliver(t, h, other, "start-game", nil)
	assert.False(t, room.State.IsPlaying)

	deliver(t, h, host, "start-game", nil)
	assert.True(t, room.State.IsPlaying)
}

func TestStartGameResetsScoresAndShufflesOrder(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", nil)
	joinRoom(t, h, connect(h, "c2"), room.ID, "bob")
	room.Players["c1"].Score = 500

	rec.reset()
	deliver(t, h, host, "start-game", nil)

	assert.Zero(t, room.Players["c1"].Score)
	assert.ElementsMatch(t, []string{"c1", "c2"}, room.State.PlayerOrder)

	update := rec.last("game-state-update")
	require.NotNil(t, update)
	data := update.data.(map[string]interface{})
	assert.Equal(t, true, data["isPlaying"])
	assert.Equal(t, 1, data["round"])
}

func TestChoosingPhaseOffersWordsToDrawerOnly(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", nil)
	joinRoom(t, h, connect(h, "c2"), room.ID, "bob")

	rec.reset()
	startGame(t, h, host, room)

	drawerID := room.State.CurrentDrawer
	require.Len(t, room.State.WordChoices, 3)

	var toDrawer, toOthers *recordedMsg
	for i := range rec.msgs {
		m := &rec.msgs[i]
		if m.event != "game-state-update" {
			continue
		}
		switch m.kind {
		case "conn":
			toDrawer = m
		case "except":
			toOthers = m
		}
	}
	require.NotNil(t, toDrawer)
	require.NotNil(t, toOthers)
	assert.Equal(t, drawerID, toDrawer.target)
	assert.Equal(t, drawerID, toOthers.except)
	assert.Contains(t, toDrawer.data.(map[string]interface{}), "wordChoices")
	assert.NotContains(t, toOthers.data.(map[string]interface{}), "wordChoices")
}

func TestSelectWordStartsDrawing(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", map[string]interface{}{"drawTime": 20})
	joinRoom(t, h, connect(h, "c2"), room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	word := room.State.WordChoices[0]

	// Words outside the offered set are ignored.
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": "not-offered"})
	assert.True(t, room.State.IsChoosing)

	rec.reset()
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": word})

	assert.False(t, room.State.IsChoosing)
	assert.Equal(t, word, room.State.Word)
	assert.Equal(t, "draw", room.State.TimerType)
	assert.Equal(t, 20, room.State.TimeLeft)

	updates := rec.byEvent("game-state-update")
	require.Len(t, updates, 2)
	for _, m := range updates {
		data := m.data.(map[string]interface{})
		assert.Equal(t, false, data["isChoosing"])
		assert.Equal(t, "draw", data["timerType"])
		assert.Equal(t, 20, data["timeLeft"])
		assert.Equal(t, drawer.ID, data["drawerId"])
		if m.kind == "conn" {
			assert.Equal(t, drawer.ID, m.target)
			assert.Equal(t, word, data["word"])
			assert.Equal(t, true, data["isDrawer"])
			assert.NotContains(t, data, "hiddenWord")
		} else {
			assert.Equal(t, drawer.ID, m.except)
			assert.Equal(t, false, data["isDrawer"])
			assert.NotContains(t, data, "word")
			mask := data["hiddenWord"].(string)
			assert.NotContains(t, mask, word)
			assert.Contains(t, mask, "_")
		}
	}
}

func TestSelectWordIgnoredFromGuesser(t *testing.T) {
	h, _ := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", nil)
	guest := connect(h, "c2")
	joinRoom(t, h, guest, room.ID, "bob")
	startGame(t, h, host, room)

	notDrawer := host
	if room.State.CurrentDrawer == host.ID {
		notDrawer = guest
	}
	deliver(t, h, notDrawer, "select-word", map[string]interface{}{"word": room.State.WordChoices[0]})
	assert.True(t, room.State.IsChoosing)
}

func TestChooseTimeoutAutoSelects(t *testing.T) {
	h, _ := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", map[string]interface{}{"chooseTime": 2})
	joinRoom(t, h, connect(h, "c2"), room.ID, "bob")
	startGame(t, h, host, room)

	choices := append([]string(nil), room.State.WordChoices...)
	tick(t, h, room) // 2 -> 1
	assert.True(t, room.State.IsChoosing)
	tick(t, h, room) // 1 -> 0, auto-select

	assert.False(t, room.State.IsChoosing)
	assert.Contains(t, choices, room.State.Word)
	assert.Equal(t, "draw", room.State.TimerType)
}

func TestHintScheduleInvariants(t *testing.T) {
	h, _ := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", map[string]interface{}{"drawTime": 60, "hintCount": 3})
	joinRoom(t, h, connect(h, "c2"), room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": room.State.WordChoices[0]})

	state := &room.State
	wantHints := len(state.Word) / 2
	if wantHints > 3 {
		wantHints = 3
	}
	assert.Equal(t, wantHints, state.HintCount)
	require.Len(t, state.HintMoments, wantHints)

	seen := map[int]bool{}
	for i, m := range state.HintMoments {
		assert.GreaterOrEqual(t, m, 24, "hint must fall inside the reveal window")
		assert.Less(t, m, 60)
		assert.False(t, seen[m], "hint moments must be distinct")
		seen[m] = true
		if i > 0 {
			assert.Less(t, m, state.HintMoments[i-1], "moments fire in descending order")
		}
	}
}

func TestHintsDisabled(t *testing.T) {
	h, _ := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", map[string]interface{}{"hintsEnabled": false})
	joinRoom(t, h, connect(h, "c2"), room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": room.State.WordChoices[0]})

	assert.Zero(t, room.State.HintCount)
	assert.Empty(t, room.State.HintMoments)
}

func TestHintsFireDuringDrawing(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", map[string]interface{}{"drawTime": 10, "hintCount": 2})
	joinRoom(t, h, connect(h, "c2"), room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": room.State.WordChoices[0]})
	wantHints := room.State.HintCount
	word := room.State.Word

	rec.reset()
	for room.State.TimeLeft > 0 && room.State.TimerType == "draw" {
		tick(t, h, room)
	}

	hints := rec.byEvent("hint-update")
	require.Len(t, hints, wantHints)
	for i, m := range hints {
		assert.Equal(t, "except", m.kind, "the drawer never receives hints")
		assert.Equal(t, drawer.ID, m.except)
		data := m.data.(map[string]interface{})
		assert.Equal(t, i+1, data["hintNumber"])
		assert.Equal(t, wantHints, data["totalHints"])
		mask := data["hiddenWord"].(string)
		letters := 0
		for _, r := range mask {
			if r != '_' && r != ' ' && r != '‖' {
				letters++
			}
		}
		assert.Equal(t, i+1, letters)
		assert.NotEqual(t, word, strings.ReplaceAll(mask, " ", ""))
	}
}

func TestHintUpdateKeepsWordBoundaryMarker(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", map[string]interface{}{"drawTime": 60})
	joinRoom(t, h, connect(h, "c2"), room.ID, "bob")
	startGame(t, h, host, room)

	h.wordChosen(room, "ice cream")
	state := &room.State
	state.HintMoments = []int{state.TimeLeft - 1}

	rec.reset()
	tick(t, h, room)

	hint := rec.last("hint-update")
	require.NotNil(t, hint)
	mask := hint.data.(map[string]interface{})["hiddenWord"].(string)
	assert.Equal(t, RevealedWord(state.Word, state.RevealedIndices), mask)
	// Rendering for guessers marks where a new word begins.
	assert.Contains(t, mask, "‖")
	assert.NotContains(t, mask, "cream")
}

func TestCorrectGuessScoringAndEarlyFinish(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", map[string]interface{}{"drawTime": 60})
	guest := connect(h, "c2")
	joinRoom(t, h, guest, room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	guesser := host
	if drawer == host {
		guesser = guest
	}
	word := room.State.WordChoices[0]
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": word})

	rec.reset()
	deliver(t, h, guesser, "chat-message", map[string]interface{}{
		"message": "  " + strings.ToUpper(word) + " ",
	})

	// Full time left: base 100 plus the whole 200 bonus.
	assert.Equal(t, 300, room.Players[guesser.ID].Score)
	// Only one non-drawer, so the turn ends at once and the drawer is paid.
	assert.Equal(t, 75, room.Players[drawer.ID].Score)

	notice := rec.byEvent("chat-message")
	require.NotEmpty(t, notice)
	first := notice[0].data.(map[string]interface{})
	assert.Equal(t, "correct-guess", first["type"])
	assert.Contains(t, first["message"], "guessed correctly")

	wordEnd := rec.last("word-end")
	require.NotNil(t, wordEnd)
	assert.Equal(t, word, wordEnd.data.(map[string]interface{})["word"])

	roundEnd := rec.last("game-state-update")
	require.NotNil(t, roundEnd)
	data := roundEnd.data.(map[string]interface{})
	assert.Equal(t, true, data["roundEnd"])
	awarded := data["awardedPoints"].(map[string]int)
	assert.Equal(t, 300, awarded[room.Players[guesser.ID].Username])
	assert.Equal(t, 75, awarded[room.Players[drawer.ID].Username])
}

func TestWrongGuessRelayedAsChat(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", nil)
	guest := connect(h, "c2")
	joinRoom(t, h, guest, room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	guesser := host
	if drawer == host {
		guesser = guest
	}
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": room.State.WordChoices[0]})

	rec.reset()
	deliver(t, h, guesser, "chat-message", map[string]interface{}{"message": "is it a dog?"})

	chat := rec.last("chat-message")
	require.NotNil(t, chat)
	data := chat.data.(map[string]interface{})
	assert.Equal(t, "is it a dog?", data["message"])
	assert.Equal(t, false, data["isDrawer"])
	assert.Zero(t, room.Players[guesser.ID].Score)
}

func TestDrawerChatNeverMatchesWord(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", nil)
	guest := connect(h, "c2")
	joinRoom(t, h, guest, room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	word := room.State.WordChoices[0]
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": word})

	rec.reset()
	deliver(t, h, drawer, "chat-message", map[string]interface{}{"message": word})

	chat := rec.last("chat-message")
	require.NotNil(t, chat)
	data := chat.data.(map[string]interface{})
	assert.Equal(t, true, data["isDrawer"])
	assert.Zero(t, room.Players[drawer.ID].Score)
	assert.Empty(t, room.State.CorrectGuesses)
}

func TestTimeoutAwardsNothingWithoutGuesses(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", map[string]interface{}{"drawTime": 2, "hintsEnabled": false})
	joinRoom(t, h, connect(h, "c2"), room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": room.State.WordChoices[0]})

	rec.reset()
	tick(t, h, room)
	tick(t, h, room)

	assert.Zero(t, room.Players["c1"].Score)
	assert.Zero(t, room.Players["c2"].Score)
	roundEnd := rec.last("game-state-update")
	require.NotNil(t, roundEnd)
	assert.Equal(t, true, roundEnd.data.(map[string]interface{})["roundEnd"])
	assert.Equal(t, "pause", room.State.TimerType)
	assert.Equal(t, 4, room.State.TimeLeft)
}

func TestGameRunsEveryTurnAndEnds(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", map[string]interface{}{
		"rounds":       2,
		"chooseTime":   1,
		"drawTime":     2,
		"hintsEnabled": false,
	})
	joinRoom(t, h, connect(h, "c2"), room.ID, "bob")
	startGame(t, h, host, room)

	drawers := []string{room.State.CurrentDrawer}
	for room.State.IsPlaying {
		switch room.State.TimerType {
		case "choose", "draw", "pause":
			tick(t, h, room)
		default:
			t.Fatalf("unexpected timer type %q", room.State.TimerType)
		}
		if room.State.IsChoosing && room.State.CurrentDrawer != drawers[len(drawers)-1] {
			drawers = append(drawers, room.State.CurrentDrawer)
		}
	}

	// 2 rounds x 2 players: each player drew twice, alternating.
	require.Len(t, drawers, 4)
	assert.NotEqual(t, drawers[0], drawers[1])
	assert.Equal(t, drawers[0], drawers[2])
	assert.Equal(t, drawers[1], drawers[3])

	// The turn counter keeps counting across rounds; the broadcast at each
	// choosing entry carries the running value.
	var turns []int
	for _, m := range rec.msgs {
		if m.event != "game-state-update" || m.kind != "except" {
			continue
		}
		data := m.data.(map[string]interface{})
		if choosing, ok := data["isChoosing"].(bool); ok && choosing {
			turns = append(turns, data["turn"].(int))
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3}, turns)

	end := rec.last("game-end")
	require.NotNil(t, end)
	assert.Contains(t, end.data.(map[string]interface{}), "scores")
	assert.Nil(t, room.State.Timer)
	assert.False(t, room.State.IsPlaying)
}

func TestDrawerLeavingMidTurnForcesRoundOver(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", nil)
	guest := connect(h, "c2")
	joinRoom(t, h, guest, room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	survivor := host
	if drawer == host {
		survivor = guest
	}
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": room.State.WordChoices[0]})

	h.dispatch(disconnectEvent{connID: drawer.ID})
	require.Len(t, room.Players, 1)

	rec.reset()
	deliver(t, h, survivor, "chat-message", map[string]interface{}{"message": "hello?"})

	roundEnd := rec.last("game-state-update")
	require.NotNil(t, roundEnd)
	assert.Equal(t, true, roundEnd.data.(map[string]interface{})["roundEnd"])
}

func TestDrawerLeavingDuringChoosingForcesRoundOver(t *testing.T) {
	h, rec := newTestHub(t)
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", nil)
	guest := connect(h, "c2")
	joinRoom(t, h, guest, room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	survivor := host
	if drawer == host {
		survivor = guest
	}
	require.True(t, room.State.IsChoosing)

	h.dispatch(disconnectEvent{connID: drawer.ID})
	require.Len(t, room.Players, 1)

	rec.reset()
	deliver(t, h, survivor, "chat-message", map[string]interface{}{"message": "anyone there?"})

	// The ghost drawer is noticed before the choose timer runs out.
	roundEnd := rec.last("game-state-update")
	require.NotNil(t, roundEnd)
	assert.Equal(t, true, roundEnd.data.(map[string]interface{})["roundEnd"])
	assert.Equal(t, 1, room.State.Turn)
}
