package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LedgerGain    = "gain"
	LedgerExpense = "expense"
)

// Immutable once created; the artist may only delete it.
type LedgerEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ArtistID uuid.UUID `gorm:"type:uuid;index;not null"`

	Kind        string  `gorm:"type:varchar(10);not null"` // gain, expense
	Amount      float64 `gorm:"type:decimal(10,2);not null"`
	Description string  `gorm:"not null"`

	CreatedAt time.Time `gorm:"index"`
}

func (l *LedgerEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
