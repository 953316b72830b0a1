package game

import (
	"fmt"
	"strings"
	"time"

	"scriblet/models"

	"github.com/google/uuid"
)

const roomCodeLength = 6

// Registry owns the room table and the connection indexes. It is plain
// state: every method runs on the hub goroutine, so there is no locking.
type Registry struct {
	rooms   map[string]*models.Room
	conns   map[string]*models.Client // connection id -> client, all live sockets
	members map[string]string         // connection id -> room id
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:   make(map[string]*models.Room),
		conns:   make(map[string]*models.Client),
		members: make(map[string]string),
	}
}

func (r *Registry) Register(client *models.Client) {
	r.conns[client.ID] = client
}

func (r *Registry) Unregister(connID string) {
	delete(r.conns, connID)
}

func (r *Registry) Room(roomID string) *models.Room {
	return r.rooms[roomID]
}

func (r *Registry) RoomByConn(connID string) *models.Room {
	roomID, ok := r.members[connID]
	if !ok {
		return nil
	}
	return r.rooms[roomID]
}

// Connection implements broadcast.Resolver.
func (r *Registry) Connection(connID string) *models.Client {
	return r.conns[connID]
}

// RoomMembers implements broadcast.Resolver. Order follows the room's
// insertion order.
func (r *Registry) RoomMembers(roomID string) []*models.Client {
	room := r.rooms[roomID]
	if room == nil {
		return nil
	}
	clients := make([]*models.Client, 0, len(room.Order))
	for _, connID := range room.Order {
		if client, ok := r.conns[connID]; ok {
			clients = append(clients, client)
		}
	}
	return clients
}

// CreateRoom registers the requester as host and sole player.
func (r *Registry) CreateRoom(settings models.RoomSettings, hostID, username string) *models.Room {
	room := &models.Room{
		ID:   r.newRoomCode(),
		Host: hostID,
		Players: map[string]*models.Player{
			hostID: {Username: username, IsHost: true},
		},
		Order:    []string{hostID},
		Settings: settings,
		State: models.RoundState{
			Round:         1,
			CurrentDrawer: hostID,
		},
		LastActive: time.Now(),
	}
	r.rooms[room.ID] = room
	r.members[hostID] = room.ID
	return room
}

// newRoomCode derives a 6-character code from a random UUID, re-drawing on
// the rare collision with a live room.
func (r *Registry) newRoomCode() string {
	for attempt := 0; ; attempt++ {
		code := strings.ReplaceAll(uuid.NewString(), "-", "")[:roomCodeLength]
		if _, taken := r.rooms[code]; !taken || attempt >= 16 {
			return code
		}
	}
}

// FindByUsername returns the connection id currently holding username in
// the room, or "".
func (r *Registry) FindByUsername(room *models.Room, username string) string {
	for _, connID := range room.Order {
		if room.Players[connID].Username == username {
			return connID
		}
	}
	return ""
}

// MigratePlayer moves a player record to a new connection id, keeping
// score and host status. PlayerOrder keeps the old id on purpose: the turn
// sequence is a snapshot, and the drawer-repair path covers stale entries.
func (r *Registry) MigratePlayer(room *models.Room, oldID, newID string) {
	player := room.Players[oldID]
	delete(room.Players, oldID)
	room.Players[newID] = player
	for i, connID := range room.Order {
		if connID == oldID {
			room.Order[i] = newID
			break
		}
	}
	delete(r.members, oldID)
	r.members[newID] = room.ID
	if room.Host == oldID {
		room.Host = newID
	}
	if room.State.CurrentDrawer == oldID {
		room.State.CurrentDrawer = newID
	}
}

func (r *Registry) AddPlayer(room *models.Room, connID, username string) {
	room.Players[connID] = &models.Player{Username: username}
	room.Order = append(room.Order, connID)
	r.members[connID] = room.ID
}

// RemovePlayer drops a player from the room and its index. It does not
// touch PlayerOrder; stale entries there are repaired when selecting the
// next drawer.
func (r *Registry) RemovePlayer(room *models.Room, connID string) {
	delete(room.Players, connID)
	for i, id := range room.Order {
		if id == connID {
			room.Order = append(room.Order[:i], room.Order[i+1:]...)
			break
		}
	}
	delete(r.members, connID)
}

func (r *Registry) DeleteRoom(room *models.Room) {
	for _, connID := range room.Order {
		delete(r.members, connID)
	}
	delete(r.rooms, room.ID)
}

// Summaries lists every active room for the HTTP surface.
func (r *Registry) Summaries() []models.RoomSummary {
	list := make([]models.RoomSummary, 0, len(r.rooms))
	for _, room := range r.rooms {
		list = append(list, models.RoomSummary{
			ID:          room.ID,
			PlayerCount: len(room.Players),
			MaxPlayers:  room.Settings.MaxPlayers,
			IsPlaying:   room.State.IsPlaying,
		})
	}
	return list
}

const avatarCount = 6

// Roster is the players payload sent with every room update. The avatar is
// derived from the member's position, cycling through the mascot set.
func Roster(room *models.Room) []map[string]interface{} {
	roster := make([]map[string]interface{}, 0, len(room.Order))
	for i, connID := range room.Order {
		player := room.Players[connID]
		roster = append(roster, map[string]interface{}{
			"id":       connID,
			"username": player.Username,
			"score":    player.Score,
			"isHost":   player.IsHost,
			"avatar":   fmt.Sprintf("mascot%d.png", i%avatarCount+1),
		})
	}
	return roster
}
