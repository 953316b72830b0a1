package game

import (
	"time"

	"scriblet/models"
)

// TickerFactory abstracts ticker creation so tests can drive phase
// timers by hand. Create returns the tick channel and a stop function.
type TickerFactory interface {
	Create(d time.Duration) (<-chan time.Time, func())
}

// SystemTickers builds real time.Tickers.
type SystemTickers struct{}

func (SystemTickers) Create(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// startTimer replaces the room's phase timer. Each timer carries a
// generation token; ticks from a superseded timer are dropped by
// handleTick so a late tick can never touch a newer phase.
func (h *Hub) startTimer(room *models.Room, timerType string) {
	h.stopTimer(room)

	h.timerGen++
	timer := &models.TurnTimer{
		Type: timerType,
		Gen:  h.timerGen,
		Stop: make(chan struct{}),
	}
	room.State.Timer = timer
	room.State.TimerType = timerType

	ticks, cancel := h.tickers.Create(time.Second)
	roomID := room.ID
	gen := timer.Gen
	go func() {
		defer cancel()
		for {
			select {
			case <-ticks:
				h.inbox <- tickEvent{roomID: roomID, gen: gen}
			case <-timer.Stop:
				return
			}
		}
	}()
}

func (h *Hub) stopTimer(room *models.Room) {
	if room.State.Timer != nil {
		close(room.State.Timer.Stop)
		room.State.Timer = nil
	}
}

func (h *Hub) handleTick(ev tickEvent) {
	room := h.reg.Room(ev.roomID)
	if room == nil {
		return
	}
	timer := room.State.Timer
	if timer == nil || timer.Gen != ev.gen {
		return
	}

	switch timer.Type {
	case "choose":
		h.chooseTick(room)
	case "draw":
		h.drawTick(room)
	case "pause":
		h.pauseTick(room)
	}
}
