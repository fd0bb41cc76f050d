package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceOnRequest is stored when the artist leaves the price blank.
// The price column holds the display string the public gallery renders
// verbatim, e.g. "R$ 120,00".
const PriceOnRequest = "Sob consulta"

type Artwork struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ArtistID uuid.UUID `gorm:"type:uuid;index;not null"`

	Title     string      `gorm:"not null"`
	Price     string      `gorm:"default:'Sob consulta'"`
	ImageURLs StringArray `gorm:"type:jsonb;default:'[]'"`

	// Flips to false when the piece is booked; only an explicit restore
	// brings it back to the gallery.
	Available bool `gorm:"default:true;index"`

	CreatedAt time.Time
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// Custom JSONB type for the ordered image URL list
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}
