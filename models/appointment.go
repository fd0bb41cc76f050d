package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// An appointment row existing means "scheduled". Finalizing or cancelling
// deletes the row; a finalized booking leaves its trace as a ledger entry.
type Appointment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	ArtistID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	ArtworkID *uuid.UUID `gorm:"type:uuid;index"`

	ClientName    string `gorm:"not null"`
	ClientContact string `gorm:"not null"` // digits only, 10-11

	ScheduledAt time.Time `gorm:"index;not null"`
	CreatedAt   time.Time

	Artwork *Artwork `gorm:"foreignKey:ArtworkID;constraint:OnDelete:SET NULL"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
