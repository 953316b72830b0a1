package game

import (
	"scriblet/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Archive writes final scoreboards to PostgreSQL when a game ends.
type Archive struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewArchive(db *gorm.DB, logger *zap.Logger) *Archive {
	return &Archive{db: db, logger: logger}
}

// Record snapshots the room's scores and persists them off the hub
// goroutine so a slow database never stalls the game loop.
func (a *Archive) Record(room *models.Room) {
	results := make([]models.GameResult, 0, len(room.Players))
	for _, p := range room.Players {
		results = append(results, models.GameResult{
			RoomID:   room.ID,
			Username: p.Username,
			Score:    p.Score,
			Rounds:   room.Settings.Rounds,
		})
	}
	go func() {
		if err := a.db.Create(&results).Error; err != nil {
			a.logger.Error("failed to archive game results",
				zap.String("room", room.ID),
				zap.Error(err),
			)
		}
	}()
}
