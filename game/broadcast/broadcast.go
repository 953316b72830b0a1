// Package broadcast is the room-scoped publish/subscribe layer: everything
// the game core needs from the transport is the three Channel primitives.
package broadcast

import (
	"encoding/json"

	"scriblet/models"

	"go.uber.org/zap"
)

// Channel delivers server events to room members and single connections.
type Channel interface {
	ToRoom(roomID, event string, data interface{})
	ToConn(connID, event string, data interface{})
	ToRoomExcept(roomID, excludedID, event string, data interface{})
}

// Resolver maps room and connection ids to live clients. The game hub
// implements it; all calls happen on the hub goroutine.
type Resolver interface {
	RoomMembers(roomID string) []*models.Client
	Connection(connID string) *models.Client
}

// Router is the production Channel over websocket send queues.
type Router struct {
	resolver Resolver
	logger   *zap.Logger
}

func NewRouter(resolver Resolver, logger *zap.Logger) *Router {
	return &Router{resolver: resolver, logger: logger}
}

func (r *Router) ToRoom(roomID, event string, data interface{}) {
	for _, client := range r.resolver.RoomMembers(roomID) {
		r.send(client, event, data)
	}
}

func (r *Router) ToConn(connID, event string, data interface{}) {
	if client := r.resolver.Connection(connID); client != nil {
		r.send(client, event, data)
	}
}

func (r *Router) ToRoomExcept(roomID, excludedID, event string, data interface{}) {
	for _, client := range r.resolver.RoomMembers(roomID) {
		if client.ID == excludedID {
			continue
		}
		r.send(client, event, data)
	}
}

// send enqueues one frame. A client whose queue is full has the frame
// dropped rather than blocking the hub.
func (r *Router) send(client *models.Client, event string, data interface{}) {
	frame, err := json.Marshal(models.ServerMessage{Event: event, Data: data})
	if err != nil {
		r.logger.Error("failed to marshal server event", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case client.Send <- frame:
	default:
		r.logger.Warn("send queue full, dropping frame",
			zap.String("event", event),
			zap.String("conn", client.ID),
		)
	}
}
