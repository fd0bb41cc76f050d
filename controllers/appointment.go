// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"inkfolio-backend/config"
	"inkfolio-backend/services"
	"inkfolio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateAppointmentInput struct {
	ArtworkID     uuid.UUID `json:"artworkId" binding:"required"`
	ClientName    string    `json:"clientName" binding:"required"`
	ClientContact string    `json:"clientContact" binding:"required"`
	ScheduledAt   time.Time `json:"scheduledAt" binding:"required"`
}

type UpdateAppointmentInput struct {
	ClientName    *string    `json:"clientName"`
	ClientContact *string    `json:"clientContact"`
	ScheduledAt   *time.Time `json:"scheduledAt"`
}

type FinalizeAppointmentInput struct {
	Amount string `json:"amount"` // optional, falls back to the artwork price
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Appointment or artwork not found")
	case errors.Is(err, services.ErrArtworkUnavailable):
		utils.RespondWithError(c, http.StatusConflict, "Artwork is no longer available")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Something went wrong")
	}
}

func artistFromContext(c *gin.Context) (uuid.UUID, bool) {
	artistID, exists := c.Get("artistId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Artist ID not found in context")
		return uuid.Nil, false
	}
	idStr, ok := artistID.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims")
		return uuid.Nil, false
	}
	artistUUID, err := uuid.Parse(idStr)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims")
		return uuid.Nil, false
	}
	return artistUUID, true
}

// CreateAppointment books an artwork: inserts the appointment and marks the
// piece unavailable in one transaction.
func CreateAppointment(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking := services.NewBookingService(config.DB)
	appointment, err := booking.CreateBooking(artistUUID, services.CreateBookingInput{
		ArtworkID:     input.ArtworkID,
		ClientName:    input.ClientName,
		ClientContact: input.ClientContact,
		ScheduledAt:   input.ScheduledAt,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists the agenda ordered by schedule.
func GetAppointments(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	booking := services.NewBookingService(config.DB)
	appointments, err := booking.ListBookings(artistUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetCalendar returns day -> appointments buckets for one month, driving the
// calendar heat dots. Defaults to the current month.
func GetCalendar(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	now := time.Now()
	month := int(now.Month())
	year := now.Year()
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	if y, err := strconv.Atoi(c.Query("year")); err == nil && y > 0 {
		year = y
	}

	booking := services.NewBookingService(config.DB)
	appointments, err := booking.ListBookings(artistUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":        month,
		"year":         year,
		"daysInMonth":  utils.DaysInMonth(time.Month(month), year),
		"firstWeekday": utils.FirstWeekdayOfMonth(time.Month(month), year),
		"days":         services.GroupByDay(appointments, time.Month(month), year),
	})
}

// UpdateAppointment patches client name, contact or schedule.
func UpdateAppointment(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking := services.NewBookingService(config.DB)
	appointment, err := booking.UpdateBooking(artistUUID, appointmentUUID, services.UpdateBookingInput{
		ClientName:    input.ClientName,
		ClientContact: input.ClientContact,
		ScheduledAt:   input.ScheduledAt,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// FinalizeAppointment converts the booking into a ledger gain and removes it
// from the agenda.
func FinalizeAppointment(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input FinalizeAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking := services.NewBookingService(config.DB)
	entry, err := booking.FinalizeBooking(artistUUID, appointmentUUID, input.Amount)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// CancelAppointment deletes the booking; ?restore=true returns the linked
// artwork to the gallery.
func CancelAppointment(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	restore := c.Query("restore") == "true"

	booking := services.NewBookingService(config.DB)
	if err := booking.CancelBooking(artistUUID, appointmentUUID, restore); err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// GetOrphanedArtworks lists pieces stuck unavailable with no appointment
// referencing them, so the artist can restore or delete them.
func GetOrphanedArtworks(c *gin.Context) {
	artistUUID, ok := artistFromContext(c)
	if !ok {
		return
	}

	booking := services.NewBookingService(config.DB)
	artworks, err := booking.FindOrphanedArtworks(artistUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve artworks")
		return
	}

	c.JSON(http.StatusOK, artworks)
}
