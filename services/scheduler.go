// services/scheduler.go
package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSyncScheduler runs the fixture sync on a fixed period when
// SYNC_INTERVAL_MINUTES is set to a positive number. Off by default; most
// deployments trigger syncs from the sync endpoint instead.
func (s *SyncService) StartSyncScheduler() {
	minutes, _ := strconv.Atoi(os.Getenv("SYNC_INTERVAL_MINUTES"))
	if minutes <= 0 {
		return
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] init failed: %v", err)
		return
	}
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(time.Duration(minutes)*time.Minute),
		gocron.NewTask(func() {
			result, err := s.runSync()
			if err != nil {
				log.Printf("[Scheduler] fixture sync failed: %v", err)
				return
			}
			log.Printf("✅ [Scheduler] fixture sync: %d new, %d updated", result.NewMatches, result.UpdatedMatches)
		}),
	)

	log.Printf("✅ Fixture sync scheduled every %d minute(s)", minutes)
}
