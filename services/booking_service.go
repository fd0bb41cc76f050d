// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"inkfolio-backend/models"
	"inkfolio-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("validation failed")
	ErrArtworkUnavailable = errors.New("artwork is not available for booking")
)

// BookingService owns the appointment lifecycle and the cross-entity
// consistency it implies: booking flips artwork availability, finalizing
// converts the appointment into a ledger gain, cancelling may restore the
// piece to the gallery. Every multi-step write runs in one transaction.
type BookingService struct {
	store BookingStore
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{store: NewBookingStore(db)}
}

type CreateBookingInput struct {
	ArtworkID     uuid.UUID
	ClientName    string
	ClientContact string
	ScheduledAt   time.Time
}

// CreateBooking inserts the appointment and marks the artwork unavailable in
// a single transaction. The availability flip is conditioned on
// available = true, so two concurrent bookings of the same piece cannot both
// succeed.
func (s *BookingService) CreateBooking(artistID uuid.UUID, input CreateBookingInput) (*models.Appointment, error) {
	name := strings.TrimSpace(input.ClientName)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrValidation)
	}
	if !utils.ValidateClientContact(input.ClientContact) {
		return nil, fmt.Errorf("%w: contact must have 10 or 11 digits", ErrValidation)
	}

	appointment := &models.Appointment{
		ArtistID:      artistID,
		ArtworkID:     &input.ArtworkID,
		ClientName:    strings.ToUpper(name),
		ClientContact: utils.NormalizePhone(input.ClientContact),
		ScheduledAt:   input.ScheduledAt,
	}

	err := s.store.InTx(func(tx BookingStore) error {
		artwork, err := tx.GetArtwork(artistID, input.ArtworkID)
		if err != nil {
			return err
		}
		if !artwork.Available {
			return ErrArtworkUnavailable
		}

		if err := tx.CreateAppointment(appointment); err != nil {
			return err
		}

		flipped, err := tx.MarkArtworkUnavailable(artwork.ID)
		if err != nil {
			return err
		}
		if !flipped {
			// someone booked it between the read and the update
			return ErrArtworkUnavailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// FinalizeBooking records the gain and removes the appointment. The ledger
// insert happens strictly before the delete; if either fails the transaction
// rolls back and nothing is written. The artwork stays unavailable, a
// completed piece is considered consumed.
func (s *BookingService) FinalizeBooking(artistID, appointmentID uuid.UUID, manualAmount string) (*models.LedgerEntry, error) {
	var entry *models.LedgerEntry

	err := s.store.InTx(func(tx BookingStore) error {
		appointment, err := tx.GetAppointment(artistID, appointmentID)
		if err != nil {
			return err
		}

		amount, err := finalizeAmount(manualAmount, appointment.Artwork)
		if err != nil {
			return err
		}

		entry = &models.LedgerEntry{
			ArtistID:    artistID,
			Kind:        models.LedgerGain,
			Amount:      amount,
			Description: gainDescription(appointment.ClientName, appointment.Artwork),
		}
		if err := tx.CreateLedgerEntry(entry); err != nil {
			return err
		}

		return tx.DeleteAppointment(appointment.ID)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CancelBooking deletes the appointment; with restoreArtwork the linked
// piece returns to the gallery. Cancelling an already-deleted appointment
// reports not found.
func (s *BookingService) CancelBooking(artistID, appointmentID uuid.UUID, restoreArtwork bool) error {
	return s.store.InTx(func(tx BookingStore) error {
		appointment, err := tx.GetAppointment(artistID, appointmentID)
		if err != nil {
			return err
		}

		if err := tx.DeleteAppointment(appointment.ID); err != nil {
			return err
		}

		if restoreArtwork && appointment.ArtworkID != nil {
			if err := tx.RestoreArtworkAvailability(*appointment.ArtworkID); err != nil {
				return err
			}
		}
		return nil
	})
}

type UpdateBookingInput struct {
	ClientName    *string
	ClientContact *string
	ScheduledAt   *time.Time
}

// UpdateBooking patches appointment fields only; artwork and ledger are
// untouched.
func (s *BookingService) UpdateBooking(artistID, appointmentID uuid.UUID, input UpdateBookingInput) (*models.Appointment, error) {
	appointment, err := s.store.GetAppointment(artistID, appointmentID)
	if err != nil {
		return nil, err
	}

	if input.ClientName != nil {
		name := strings.TrimSpace(*input.ClientName)
		if name == "" {
			return nil, fmt.Errorf("%w: client name is required", ErrValidation)
		}
		appointment.ClientName = strings.ToUpper(name)
	}
	if input.ClientContact != nil {
		if !utils.ValidateClientContact(*input.ClientContact) {
			return nil, fmt.Errorf("%w: contact must have 10 or 11 digits", ErrValidation)
		}
		appointment.ClientContact = utils.NormalizePhone(*input.ClientContact)
	}
	if input.ScheduledAt != nil {
		appointment.ScheduledAt = *input.ScheduledAt
	}

	if err := s.store.SaveAppointment(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// ListBookings returns the artist's appointments ordered by schedule,
// artwork preloaded for the agenda view.
func (s *BookingService) ListBookings(artistID uuid.UUID) ([]models.Appointment, error) {
	return s.store.ListAppointments(artistID)
}

// FindOrphanedArtworks lists unavailable artworks no appointment references:
// the leftover state of a cancel-without-restore or a finalize, surfaced so
// the artist can decide whether to restore them.
func (s *BookingService) FindOrphanedArtworks(artistID uuid.UUID) ([]models.Artwork, error) {
	return s.store.FindOrphanedArtworks(artistID)
}

// GroupByDay buckets appointments by day of the given month, for the
// calendar heat dots. Appointments outside the month are skipped.
func GroupByDay(appointments []models.Appointment, month time.Month, year int) map[int][]models.Appointment {
	buckets := make(map[int][]models.Appointment)
	for _, a := range appointments {
		if a.ScheduledAt.Month() != month || a.ScheduledAt.Year() != year {
			continue
		}
		day := a.ScheduledAt.Day()
		buckets[day] = append(buckets[day], a)
	}
	return buckets
}

// finalizeAmount resolves the gain value: an explicit amount wins, otherwise
// the linked artwork's price string is parsed. Non-numeric prices without an
// explicit amount are rejected rather than recorded as zero.
func finalizeAmount(manualAmount string, artwork *models.Artwork) (float64, error) {
	source := strings.TrimSpace(manualAmount)
	if source == "" {
		if artwork == nil {
			return 0, fmt.Errorf("%w: no artwork linked, inform the amount", ErrValidation)
		}
		source = artwork.Price
	}
	amount, err := utils.ParseCurrency(source)
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be a positive value", ErrValidation)
	}
	return amount, nil
}

func gainDescription(clientName string, artwork *models.Artwork) string {
	title := "SEM TÍTULO"
	if artwork != nil && strings.TrimSpace(artwork.Title) != "" {
		title = strings.ToUpper(artwork.Title)
	}
	return fmt.Sprintf("TATTOO: %s - %s", strings.ToUpper(clientName), title)
}
