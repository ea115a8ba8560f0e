package service

import (
	"log"
	"time"

	"clinic-appointment-backend/internal/repository"

	"github.com/go-co-op/gocron"
)

// Verification codes are kept for a day after creation so sign-up can
// still see the consumed row, then swept out.
const codeRetention = 24 * time.Hour

// CleanupService periodically purges stale verification codes
type CleanupService struct {
	verificationRepo *repository.VerificationRepository
}

func NewCleanupService(verificationRepo *repository.VerificationRepository) *CleanupService {
	return &CleanupService{
		verificationRepo: verificationRepo,
	}
}

// StartCleanupCron schedules the hourly purge and starts the scheduler
func (s *CleanupService) StartCleanupCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Every(1).Hour().Do(func() {
		cutoff := time.Now().Add(-codeRetention)
		purged, err := s.verificationRepo.PurgeOlderThan(cutoff)
		if err != nil {
			log.Printf("Error purging verification codes: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("Purged %d stale verification codes", purged)
		}
	})
	if err != nil {
		log.Printf("Error scheduling verification code cleanup: %v", err)
	}

	scheduler.StartAsync()
	return scheduler
}
