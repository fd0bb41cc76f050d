package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inkfolio-backend/config"
	"inkfolio-backend/models"
	"inkfolio-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	DisplayName string `json:"displayName"`
	WhatsApp    string `json:"whatsapp"`
}

type UpdateThemeInput struct {
	AccentColor     string `json:"accentColor" binding:"required"`
	BackgroundColor string `json:"backgroundColor" binding:"required"`
	CardColor       string `json:"cardColor" binding:"required"`
	TextColor       string `json:"textColor" binding:"required"`
	SubtextColor    string `json:"subtextColor" binding:"required"`
}

func GetProfile(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	var artist models.Artist
	if err := config.DB.First(&artist, "id = ?", artistUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		return
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
	})
}

func UpdateProfile(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	updates := map[string]interface{}{
		"display_name": strings.TrimSpace(input.DisplayName),
		"whatsapp":     utils.NormalizePhone(input.WhatsApp),
	}
	if err := config.DB.Model(&models.Artist{}).Where("id = ?", artistUUID).
		Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// UpdateTheme saves the five public-gallery color tokens.
func UpdateTheme(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	var input UpdateThemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	for _, color := range []string{
		input.AccentColor, input.BackgroundColor, input.CardColor,
		input.TextColor, input.SubtextColor,
	} {
		if !utils.ValidateHexColor(color) {
			utils.RespondWithError(c, http.StatusBadRequest, "Colors must be hex values like #e11d48")
			return
		}
	}

	if err := config.DB.Model(&models.Artist{}).Where("id = ?", artistUUID).
		Updates(map[string]interface{}{
			"accent_color":     input.AccentColor,
			"background_color": input.BackgroundColor,
			"card_color":       input.CardColor,
			"text_color":       input.TextColor,
			"subtext_color":    input.SubtextColor,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update theme")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Theme updated"})
}

// UploadAvatar stores the profile picture and saves its public URL.
func UploadAvatar(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Avatar file is required")
		return
	}

	f, err := file.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read avatar")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read avatar")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	path := fmt.Sprintf("%d_avatar_%s.png", time.Now().UnixMilli(), artistUUID)
	url, err := config.Storage.Upload(path, contentType, data)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to upload avatar")
		return
	}

	if err := config.DB.Model(&models.Artist{}).Where("id = ?", artistUUID).
		Update("avatar_url", url).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save avatar")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}
