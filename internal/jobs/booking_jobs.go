package jobs

import (
	"context"

	"propertydesk-backend/internal/domain"
	"propertydesk-backend/internal/logger"
	"propertydesk-backend/internal/utils"
)

// MarkNoShowBookings flags confirmed bookings whose check-in date has passed
// without a recorded arrival.
func (jr *JobRunner) MarkNoShowBookings() {
	jr.runWithRecovery("MarkNoShowBookings", func() {
		ctx := context.Background()

		overdue, err := jr.bookings.ListOverdueCheckIns(ctx, utils.Today())
		if err != nil {
			logger.Error("Failed to list overdue check-ins", "error", err)
			return
		}

		count := 0
		for i := range overdue {
			b := &overdue[i]
			if !b.CanTransitionTo(domain.BookingStatusNoShow) {
				continue
			}
			b.Status = domain.BookingStatusNoShow
			if err := jr.bookings.Update(ctx, b); err != nil {
				logger.Error("Failed to mark booking as no-show", "booking_id", b.ID, "error", err)
				continue
			}
			count++
			logger.Debug("Marked booking as no-show",
				"booking_id", b.ID,
				"property_id", b.PropertyID,
				"check_in_date", b.CheckInDate.Format("2006-01-02"))
		}

		logger.Info("Marked bookings as no-show", "count", count)
	})
}

// SendCheckInReminders emails guests of confirmed bookings checking in
// tomorrow.
func (jr *JobRunner) SendCheckInReminders() {
	jr.runWithRecovery("SendCheckInReminders", func() {
		if jr.email == nil {
			logger.Info("Email disabled, skipping check-in reminders")
			return
		}

		ctx := context.Background()
		tomorrow := utils.Today().AddDate(0, 0, 1)

		arriving, err := jr.bookings.ListCheckInsOn(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list tomorrow's check-ins", "error", err)
			return
		}

		sent := 0
		for i := range arriving {
			b := &arriving[i]
			if b.GuestEmail == "" {
				continue
			}
			property, err := jr.properties.GetByID(ctx, b.PropertyID)
			if err != nil {
				logger.Error("Failed to load property for reminder", "booking_id", b.ID, "error", err)
				continue
			}
			if err := jr.email.SendCheckInReminder(ctx, b, property); err != nil {
				logger.Error("Failed to send check-in reminder", "booking_id", b.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent check-in reminders", "count", sent, "check_in_date", tomorrow.Format("2006-01-02"))
	})
}
