package utils

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RoomSweeper is implemented by the game hub.
type RoomSweeper interface {
	SweepIdleRooms(olderThan time.Duration)
}

// CronCleaner periodically removes rooms that sit non-empty but inactive.
// Empty rooms are destroyed immediately on the last disconnect, so this only
// covers rooms whose members connected and then never did anything.
func CronCleaner(sweeper RoomSweeper, logger *zap.Logger) {
	c := cron.New()

	c.AddFunc("@every 10m", func() {
		logger.Info("sweeping idle rooms")
		sweeper.SweepIdleRooms(24 * time.Hour)
	})

	c.Start()
}
