// services/booking_store.go
package services

import (
	"errors"

	"inkfolio-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStore is the minimal persistence interface the booking lifecycle
// needs. InTx runs fn against a store bound to one transaction; an error
// rolls every step back.
type BookingStore interface {
	InTx(fn func(BookingStore) error) error

	GetArtwork(artistID, artworkID uuid.UUID) (*models.Artwork, error)
	// MarkArtworkUnavailable flips available to false only while it is still
	// true, and reports whether a row was affected.
	MarkArtworkUnavailable(artworkID uuid.UUID) (bool, error)
	RestoreArtworkAvailability(artworkID uuid.UUID) error
	FindOrphanedArtworks(artistID uuid.UUID) ([]models.Artwork, error)

	GetAppointment(artistID, appointmentID uuid.UUID) (*models.Appointment, error)
	CreateAppointment(a *models.Appointment) error
	SaveAppointment(a *models.Appointment) error
	DeleteAppointment(id uuid.UUID) error
	ListAppointments(artistID uuid.UUID) ([]models.Appointment, error)

	CreateLedgerEntry(e *models.LedgerEntry) error
}

type gormBookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) BookingStore {
	return &gormBookingStore{db: db}
}

func (s *gormBookingStore) InTx(fn func(BookingStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormBookingStore{db: tx})
	})
}

func (s *gormBookingStore) GetArtwork(artistID, artworkID uuid.UUID) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := s.db.Where("id = ? AND artist_id = ?", artworkID, artistID).
		First(&artwork).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &artwork, nil
}

func (s *gormBookingStore) MarkArtworkUnavailable(artworkID uuid.UUID) (bool, error) {
	res := s.db.Model(&models.Artwork{}).
		Where("id = ? AND available = true", artworkID).
		Update("available", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *gormBookingStore) RestoreArtworkAvailability(artworkID uuid.UUID) error {
	return s.db.Model(&models.Artwork{}).
		Where("id = ?", artworkID).
		Update("available", true).Error
}

func (s *gormBookingStore) FindOrphanedArtworks(artistID uuid.UUID) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := s.db.
		Where("artist_id = ? AND available = false", artistID).
		Where("id NOT IN (?)", s.db.Model(&models.Appointment{}).
			Select("artwork_id").
			Where("artist_id = ? AND artwork_id IS NOT NULL", artistID)).
		Find(&artworks).Error
	return artworks, err
}

func (s *gormBookingStore) GetAppointment(artistID, appointmentID uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.Preload("Artwork").
		Where("id = ? AND artist_id = ?", appointmentID, artistID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

func (s *gormBookingStore) CreateAppointment(a *models.Appointment) error {
	return s.db.Create(a).Error
}

func (s *gormBookingStore) SaveAppointment(a *models.Appointment) error {
	return s.db.Save(a).Error
}

func (s *gormBookingStore) DeleteAppointment(id uuid.UUID) error {
	return s.db.Delete(&models.Appointment{}, "id = ?", id).Error
}

func (s *gormBookingStore) ListAppointments(artistID uuid.UUID) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Preload("Artwork").
		Where("artist_id = ?", artistID).
		Order("scheduled_at asc").
		Find(&appointments).Error
	return appointments, err
}

func (s *gormBookingStore) CreateLedgerEntry(e *models.LedgerEntry) error {
	return s.db.Create(e).Error
}
