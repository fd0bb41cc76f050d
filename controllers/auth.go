package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"inkfolio-backend/config"
	"inkfolio-backend/models"
	"inkfolio-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates the artist account and its public gallery slug
func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	slug := utils.SlugifyUsername(input.Username)
	if slug == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Username must contain letters or digits")
		return
	}

	// Check if email or username already exists
	var existing models.Artist
	result := config.DB.Where("email = ? OR username = ?", input.Email, slug).First(&existing)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or username already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newArtist := models.Artist{
		Email:       input.Email,
		Password:    input.Password, // Will be hashed in BeforeCreate hook
		Username:    slug,
		DisplayName: input.Username,
	}

	if err := config.DB.Create(&newArtist).Error; err != nil {
		respondRegisterError(c, err)
		return
	}

	token, err := utils.GenerateToken(newArtist.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"artist": gin.H{
			"id":       newArtist.ID,
			"email":    newArtist.Email,
			"username": newArtist.Username,
		},
	})
}

// respondRegisterError maps a unique-index violation to 409: a concurrent
// registration can slip past the existence check above, and the index is the
// authority.
func respondRegisterError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		utils.RespondWithError(c, http.StatusConflict, "Email or username already registered")
		return
	}
	utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var artist models.Artist
	result := config.DB.Where("email = ?", strings.TrimSpace(input.Email)).First(&artist)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, artist.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(artist.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&artist).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"artist": gin.H{
			"id":       artist.ID,
			"email":    artist.Email,
			"username": artist.Username,
		},
	})
}

func Me(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	var artist models.Artist
	if err := config.DB.First(&artist, "id = ?", artistUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Account not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artist": gin.H{
			"id":          artist.ID,
			"email":       artist.Email,
			"username":    artist.Username,
			"displayName": artist.DisplayName,
			"avatarUrl":   artist.AvatarURL,
		},
	})
}
