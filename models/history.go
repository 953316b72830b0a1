package models

import "time"

// GameResult is one player's final score in a finished game. Rows are
// written to PostgreSQL at game end when the archive is configured.
type GameResult struct {
	ID        uint   `gorm:"primaryKey"`
	RoomID    string `gorm:"index"`
	Username  string
	Score     int
	Rounds    int
	CreatedAt time.Time
}
