// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"inkfolio-backend/models"
	"inkfolio-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends a WhatsApp message to each client with a session
// scheduled for the next day.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := s.db.Preload("Artwork").
		Where("scheduled_at >= ? AND scheduled_at < ?", tomorrow, dayAfter).
		Find(&appointments).Error; err != nil {
		log.Printf("Failed to fetch appointments: %v", err)
		return
	}

	for _, appointment := range appointments {
		s.sendReminder(appointment)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) sendReminder(appointment models.Appointment) {
	title := "sua tattoo"
	if appointment.Artwork != nil && appointment.Artwork.Title != "" {
		title = appointment.Artwork.Title
	}
	message := fmt.Sprintf("Olá %s! Lembrete da sua sessão (%s) amanhã às %s.",
		appointment.ClientName, title, appointment.ScheduledAt.Format("15:04"))

	params := &twilioApi.CreateMessageParams{}
	// contacts are stored digits-only; Twilio WhatsApp wants E.164
	params.SetTo("whatsapp:+55" + appointment.ClientContact)
	params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Appointment %s: failed to send reminder: %v", appointment.ID, err)
		return
	}
	log.Printf("Appointment %s: reminder sent", appointment.ID)
}
