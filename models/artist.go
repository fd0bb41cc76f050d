package models

import (
	"inkfolio-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Artist struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null" json:"-"`

	// URL-safe slug used on the public route /p/:username
	Username    string `gorm:"uniqueIndex;not null"`
	DisplayName string
	AvatarURL   string
	WhatsApp    string `gorm:"column:whatsapp"`

	// Public gallery theme tokens
	AccentColor     string `gorm:"default:'#e11d48'"`
	BackgroundColor string `gorm:"default:'#050505'"`
	CardColor       string `gorm:"default:'#0d0d0d'"`
	TextColor       string `gorm:"default:'#ffffff'"`
	SubtextColor    string `gorm:"default:'#a1a1aa'"`

	Artworks      []Artwork     `gorm:"foreignKey:ArtistID"`
	Appointments  []Appointment `gorm:"foreignKey:ArtistID"`
	LedgerEntries []LedgerEntry `gorm:"foreignKey:ArtistID"`

	LastLogin *time.Time

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (a *Artist) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed
	return
}
