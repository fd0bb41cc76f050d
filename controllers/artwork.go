// controllers/artwork.go
package controllers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"inkfolio-backend/config"
	"inkfolio-backend/models"
	"inkfolio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateArtwork accepts multipart form data: title, price (raw digits or a
// formatted string) and one or more image files uploaded to the storage
// bucket in order.
func CreateArtwork(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	// multipart fields bypass the JSON sanitize middleware
	title := strings.TrimSpace(utils.SanitizeText(c.PostForm("title")))
	if title == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Title is required")
		return
	}

	price := utils.FormatMoneyInput(c.PostForm("price"))
	if price == "" {
		price = models.PriceOnRequest
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid form data")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "At least one image is required")
		return
	}

	safeTitle := strings.ReplaceAll(title, " ", "-")
	var urls models.StringArray
	for i, file := range files {
		f, err := file.Open()
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Failed to read image")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Failed to read image")
			return
		}

		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/png"
		}
		path := fmt.Sprintf("%d_%s_%d.png", time.Now().UnixMilli(), safeTitle, i)
		url, err := config.Storage.Upload(path, contentType, data)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to upload image")
			return
		}
		urls = append(urls, url)
	}

	artwork := models.Artwork{
		ArtistID:  artistUUID,
		Title:     strings.ToUpper(title),
		Price:     price,
		ImageURLs: urls,
		Available: true,
	}

	if err := config.DB.Create(&artwork).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create artwork")
		return
	}

	c.JSON(http.StatusCreated, artwork)
}

// GetArtworks lists the artist's gallery, newest first. The dashboard shows
// only available pieces; ?all=true includes booked ones.
func GetArtworks(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("artist_id = ?", artistUUID)
	if c.Query("all") != "true" {
		query = query.Where("available = true")
	}

	var artworks []models.Artwork
	if err := query.Order("created_at desc").Find(&artworks).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve artworks")
		return
	}

	c.JSON(http.StatusOK, artworks)
}

// DeleteArtwork removes the row, then deletes its images from storage.
// Storage failures are only logged; the database row is the source of truth.
func DeleteArtwork(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	artworkUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid artwork ID format")
		return
	}

	var artwork models.Artwork
	if err := config.DB.Where("artist_id = ? AND id = ?", artistUUID, artworkUUID).
		First(&artwork).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Artwork not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&artwork).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete artwork")
		return
	}

	if err := config.Storage.Remove(artwork.ImageURLs); err != nil {
		log.Printf("Artwork %s: failed to delete images from storage: %v", artwork.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted successfully"})
}

// RestoreArtwork puts a booked or consumed piece back in the gallery.
func RestoreArtwork(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	artworkUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid artwork ID format")
		return
	}

	res := config.DB.Model(&models.Artwork{}).
		Where("artist_id = ? AND id = ?", artistUUID, artworkUUID).
		Update("available", true)
	if res.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to restore artwork")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Artwork not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Artwork restored to gallery"})
}
