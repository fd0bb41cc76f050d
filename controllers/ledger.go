// controllers/ledger.go
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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateLedgerEntryInput struct {
	Kind        string `json:"kind" binding:"required,oneof=gain expense"`
	Amount      string `json:"amount" binding:"required"` // "R$ 120,00" or plain number
	Description string `json:"description" binding:"required"`
}

// CreateLedgerEntry records a manual gain or expense.
func CreateLedgerEntry(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	var input CreateLedgerEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	amount, err := utils.ParseCurrency(input.Amount)
	if err != nil || amount <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount must be a positive value")
		return
	}

	entry := models.LedgerEntry{
		ArtistID:    artistUUID,
		Kind:        input.Kind,
		Amount:      amount,
		Description: strings.ToUpper(strings.TrimSpace(input.Description)),
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// periodStart maps the filter tabs to a lower bound: today, 7days or month
// (first of the current month, the default).
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "today":
		return utils.BeginningOfDay(now)
	case "7days":
		return utils.BeginningOfDay(now).AddDate(0, 0, -7)
	default:
		return utils.BeginningOfMonth(now)
	}
}

// GetLedgerEntries lists entries for the selected period, newest first.
func GetLedgerEntries(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	since := periodStart(c.Query("period"), time.Now())

	var entries []models.LedgerEntry
	if err := config.DB.
		Where("artist_id = ? AND created_at >= ?", artistUUID, since).
		Order("created_at desc").
		Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve entries")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetLedgerSummary returns income, expenses and net for the period.
func GetLedgerSummary(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	since := periodStart(c.Query("period"), time.Now())

	var income, expenses float64
	config.DB.Model(&models.LedgerEntry{}).
		Where("artist_id = ? AND kind = ? AND created_at >= ?", artistUUID, models.LedgerGain, since).
		Select("COALESCE(SUM(amount), 0)").Scan(&income)
	config.DB.Model(&models.LedgerEntry{}).
		Where("artist_id = ? AND kind = ? AND created_at >= ?", artistUUID, models.LedgerExpense, since).
		Select("COALESCE(SUM(amount), 0)").Scan(&expenses)

	c.JSON(http.StatusOK, gin.H{
		"income":   income,
		"expenses": expenses,
		"net":      income - expenses,
	})
}

// DeleteLedgerEntry removes an entry. Entries are immutable, delete is the
// only correction.
func DeleteLedgerEntry(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	entryUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	var entry models.LedgerEntry
	if err := config.DB.Where("artist_id = ? AND id = ?", artistUUID, entryUUID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Entry not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
