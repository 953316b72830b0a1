package models

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Client is one websocket connection. The ID is the connection identifier
// used everywhere in the game state; it changes on every reconnect.
type Client struct {
	ID      string
	Conn    *websocket.Conn
	Send    chan []byte // outbound frames, drained by the write pump
	Limiter *rate.Limiter
}

// ClientMessage is the envelope for every client-to-server event.
type ClientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServerMessage is the envelope for every server-to-client event.
type ServerMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
