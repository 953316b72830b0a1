package game

import (
	"encoding/json"
	"testing"

	"scriblet/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawingRoom sets up a two-player game mid-drawing-phase and returns the
// drawer and the other player.
func drawingRoom(t *testing.T, h *Hub) (*models.Room, *models.Client, *models.Client) {
	t.Helper()
	host := connect(h, "c1")
	room := createRoom(t, h, host, "alice", nil)
	guest := connect(h, "c2")
	joinRoom(t, h, guest, room.ID, "bob")
	startGame(t, h, host, room)

	drawer := h.reg.Connection(room.State.CurrentDrawer)
	other := host
	if drawer == host {
		other = guest
	}
	deliver(t, h, drawer, "select-word", map[string]interface{}{"word": room.State.WordChoices[0]})
	return room, drawer, other
}

func TestDrawingDataRelayedToOthers(t *testing.T) {
	h, rec := newTestHub(t)
	room, drawer, _ := drawingRoom(t, h)

	strokes := `[[[1,2,3,4],[5,6,7,8]],null,[null,[9,10,11,12]]]`
	rec.reset()
	deliver(t, h, drawer, "drawing-data", json.RawMessage(strokes))

	assert.JSONEq(t, strokes, string(room.State.DrawingData))
	relay := rec.last("drawing-data")
	require.NotNil(t, relay)
	assert.Equal(t, "except", relay.kind)
	assert.Equal(t, drawer.ID, relay.except)
}

func TestDrawingDataStringEncoded(t *testing.T) {
	h, _ := newTestHub(t)
	room, drawer, _ := drawingRoom(t, h)

	// Some clients double-encode the buffer as a JSON string.
	encoded, err := json.Marshal(`[[[1,2,3,4]]]`)
	require.NoError(t, err)
	deliver(t, h, drawer, "drawing-data", json.RawMessage(encoded))

	assert.JSONEq(t, `[[[1,2,3,4]]]`, string(room.State.DrawingData))
}

func TestDrawingDataRejectsMalformedPayloads(t *testing.T) {
	h, rec := newTestHub(t)
	room, drawer, _ := drawingRoom(t, h)

	cases := []string{
		`{"not":"an array"}`,
		`[[[1,2,3]]]`,           // three coordinates
		`[[[1,2,3,4,5]]]`,       // five coordinates
		`[[["a","b","c","d"]]]`, // non-numeric
		`[[1,2,3,4]]`,           // stroke is not a point list
		`42`,
	}
	for _, payload := range cases {
		rec.reset()
		deliver(t, h, drawer, "drawing-data", json.RawMessage(payload))
		assert.Nil(t, room.State.DrawingData, "payload %s must be rejected", payload)
		assert.Nil(t, rec.last("drawing-data"), "payload %s must not be relayed", payload)
	}
}

func TestDrawingDataIgnoredFromGuesser(t *testing.T) {
	h, rec := newTestHub(t)
	room, _, other := drawingRoom(t, h)

	rec.reset()
	deliver(t, h, other, "drawing-data", json.RawMessage(`[[[1,2,3,4]]]`))

	assert.Nil(t, room.State.DrawingData)
	assert.Nil(t, rec.last("drawing-data"))
}

func TestClearCanvasDrawerOnly(t *testing.T) {
	h, rec := newTestHub(t)
	room, drawer, other := drawingRoom(t, h)
	deliver(t, h, drawer, "drawing-data", json.RawMessage(`[[[1,2,3,4]]]`))
	require.NotNil(t, room.State.DrawingData)

	rec.reset()
	deliver(t, h, other, "clear-canvas", nil)
	assert.NotNil(t, room.State.DrawingData)
	assert.Nil(t, rec.last("canvas-clear"))

	deliver(t, h, drawer, "clear-canvas", nil)
	assert.Nil(t, room.State.DrawingData)
	cleared := rec.last("canvas-clear")
	require.NotNil(t, cleared)
	assert.Equal(t, "room", cleared.kind)
}

func TestValidStrokes(t *testing.T) {
	valid := []string{
		`[]`,
		`[null]`,
		`[[[0,0,0,0]]]`,
		`[[null,[1.5,2.5,3.5,4.5]]]`,
	}
	for _, s := range valid {
		assert.True(t, validStrokes(json.RawMessage(s)), s)
	}

	invalid := []string{
		`null`,
		`"[]"`,
		`[[[1,2,3,4],[1,2]]]`,
		`[[[true,1,2,3]]]`,
	}
	for _, s := range invalid {
		assert.False(t, validStrokes(json.RawMessage(s)), s)
	}
}
