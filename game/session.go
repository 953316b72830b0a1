package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionTTL = 24 * time.Hour

// SessionStore keeps short-lived resume tokens in Redis so a player can
// reclaim their seat after a dropped connection.
type SessionStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewSessionStore(rdb *redis.Client, logger *zap.Logger) *SessionStore {
	return &SessionStore{rdb: rdb, logger: logger}
}

type sessionRecord struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// Issue mints a token bound to a room seat. Returns "" on failure so
// callers can simply omit the field.
func (s *SessionStore) Issue(ctx context.Context, roomID, username string) string {
	token := uuid.New().String()
	body, err := json.Marshal(sessionRecord{RoomID: roomID, Username: username})
	if err != nil {
		return ""
	}
	if err := s.rdb.Set(ctx, "session:"+token, body, sessionTTL).Err(); err != nil {
		s.logger.Error("failed to store session token", zap.Error(err))
		return ""
	}
	return token
}

// Resolve looks a token up and returns the seat it grants.
func (s *SessionStore) Resolve(ctx context.Context, token string) (roomID, username string, ok bool) {
	body, err := s.rdb.Get(ctx, "session:"+token).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Error("failed to look up session token", zap.Error(err))
		}
		return "", "", false
	}
	var rec sessionRecord
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return "", "", false
	}
	return rec.RoomID, rec.Username, true
}

// issueSession and resolveSession tolerate a missing store; resume
// tokens are an optional feature that needs Redis configured.
func (h *Hub) issueSession(roomID, username string) string {
	if h.sessions == nil {
		return ""
	}
	return h.sessions.Issue(context.Background(), roomID, username)
}

func (h *Hub) resolveSession(token string) (string, string, bool) {
	if h.sessions == nil {
		return "", "", false
	}
	return h.sessions.Resolve(context.Background(), token)
}
