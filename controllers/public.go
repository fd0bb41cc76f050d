// controllers/public.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"inkfolio-backend/config"
	"inkfolio-backend/models"
	"inkfolio-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPublicProfile serves the unauthenticated gallery page: theme, contact
// and artworks, available pieces first then newest. Booked pieces are shown
// as reserved.
func GetPublicProfile(c *gin.Context) {
	username := strings.ToLower(strings.TrimSpace(c.Param("username")))

	var artist models.Artist
	if err := config.DB.Where("LOWER(username) = ?", username).First(&artist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Artist not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var artworks []models.Artwork
	if err := config.DB.
		Where("artist_id = ?", artist.ID).
		Order("available desc, created_at desc").
		Find(&artworks).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve artworks")
		return
	}

	gallery := make([]gin.H, 0, len(artworks))
	for _, a := range artworks {
		gallery = append(gallery, gin.H{
			"id":        a.ID,
			"title":     a.Title,
			"price":     a.Price,
			"imageUrls": a.ImageURLs,
			"reserved":  !a.Available,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"username":    artist.Username,
		"displayName": artist.DisplayName,
		"avatarUrl":   artist.AvatarURL,
		"whatsapp":    artist.WhatsApp,
		"theme": gin.H{
			"accentColor":     artist.AccentColor,
			"backgroundColor": artist.BackgroundColor,
			"cardColor":       artist.CardColor,
			"textColor":       artist.TextColor,
			"subtextColor":    artist.SubtextColor,
		},
		"artworks": gallery,
	})
}
