// services/reconciliation_service.go
package services

import (
	"log"

	"inkfolio-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReconciliationService periodically scans for artworks stuck unavailable
// with no appointment referencing them. Detection only; restoring a piece
// stays an explicit artist action.
type ReconciliationService struct {
	db      *gorm.DB
	booking *BookingService
}

func NewReconciliationService(db *gorm.DB) *ReconciliationService {
	return &ReconciliationService{db: db, booking: NewBookingService(db)}
}

func (s *ReconciliationService) StartScheduler() {
	c := cron.New()

	// Run daily at 6 AM
	c.AddFunc("0 6 * * *", s.ScanAll)

	c.Start()
	log.Println("Reconciliation scheduler started")
}

func (s *ReconciliationService) ScanAll() {
	log.Println("Starting availability reconciliation scan...")

	var artists []models.Artist
	if err := s.db.Find(&artists).Error; err != nil {
		log.Printf("Failed to fetch artists: %v", err)
		return
	}

	for _, artist := range artists {
		orphaned, err := s.booking.FindOrphanedArtworks(artist.ID)
		if err != nil {
			log.Printf("Artist %s: reconciliation query failed: %v", artist.ID, err)
			continue
		}
		for _, artwork := range orphaned {
			log.Printf("Artist %s: artwork %s (%q) is unavailable with no appointment",
				artist.ID, artwork.ID, artwork.Title)
		}
	}

	log.Println("Availability reconciliation scan completed")
}
