package controllers

import (
	"net/http"
	"time"

	"inkfolio-backend/config"
	"inkfolio-backend/models"
	"inkfolio-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	AvailableArtworks    int64   `json:"availableArtworks"`
	UpcomingAppointments int64   `json:"upcomingAppointments"`
	MonthlyIncome        float64 `json:"monthlyIncome"`
	MonthlyExpenses      float64 `json:"monthlyExpenses"`
	MonthlyNet           float64 `json:"monthlyNet"`
}

func GetDashboardOverview(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	var overview DashboardOverview
	now := time.Now()
	firstOfMonth := utils.BeginningOfMonth(now)

	config.DB.Model(&models.Artwork{}).
		Where("artist_id = ? AND available = true", artistUUID).
		Count(&overview.AvailableArtworks)

	config.DB.Model(&models.Appointment{}).
		Where("artist_id = ? AND scheduled_at >= ?", artistUUID, utils.BeginningOfDay(now)).
		Count(&overview.UpcomingAppointments)

	config.DB.Model(&models.LedgerEntry{}).
		Where("artist_id = ? AND kind = ? AND created_at >= ?", artistUUID, models.LedgerGain, firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&overview.MonthlyIncome)

	config.DB.Model(&models.LedgerEntry{}).
		Where("artist_id = ? AND kind = ? AND created_at >= ?", artistUUID, models.LedgerExpense, firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&overview.MonthlyExpenses)

	overview.MonthlyNet = overview.MonthlyIncome - overview.MonthlyExpenses

	c.JSON(http.StatusOK, overview)
}
