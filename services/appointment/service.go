package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	patientRepo "medibook/database/repository/patient"
	providerRepo "medibook/database/repository/provider"
	"medibook/models"
	"medibook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create books a new appointment. The provider's availability document is
// the contended resource: the whole read-check-write sequence runs under the
// provider's lock, so at most one of two overlapping candidates can win.
func (s *DefaultAppointmentService) Create(ctx context.Context, req CreateRequest, now time.Time) (*models.Appointment, error) {
	if req.ProviderID == "" || req.PatientID == "" || req.Date == "" || req.Time == "" || req.Reason == "" {
		return nil, NewError(CodeValidation, "providerId, date, time and reason are required")
	}

	canonicalTime, err := utils.Convert12To24Hour(req.Time)
	if err != nil {
		return nil, timeError(err)
	}
	when, err := combineDateTime(req.Date, canonicalTime)
	if err != nil {
		return nil, NewError(CodeValidation, "invalid date %q, expected YYYY-MM-DD", req.Date)
	}
	if !when.After(now) {
		return nil, NewError(CodeInPast, "appointment date and time must be in the future")
	}

	startMin, err := utils.ParseTimeToMinutes(canonicalTime)
	if err != nil {
		return nil, timeError(err)
	}
	endTime, err := utils.AddMinutesToTime(canonicalTime, s.duration())
	if err != nil {
		return nil, timeError(err)
	}
	endMin := startMin + s.duration()

	lock := s.locks.forProvider(req.ProviderID)
	lock.Lock()
	defer lock.Unlock()

	provider, err := s.Providers.GetByID(req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "provider %s not found", req.ProviderID)
		}
		return nil, storeFailure(err)
	}
	patient, err := s.Patients.GetByID(req.PatientID)
	if err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "patient %s not found", req.PatientID)
		}
		return nil, storeFailure(err)
	}

	day, err := weekdayOf(req.Date)
	if err != nil {
		return nil, NewError(CodeValidation, "invalid date %q, expected YYYY-MM-DD", req.Date)
	}
	window, err := findWindow(provider.Availability, day, startMin, endMin)
	if err != nil {
		return nil, NewError(CodeStoreError, "provider %s has a corrupt availability window: %v", provider.ID, err)
	}
	if window == nil {
		return nil, NewError(CodeProviderUnavailable, "provider is not available at this time")
	}
	conflict, err := hasConflict(startMin, endMin, window.BookedIntervals, "")
	if err != nil {
		return nil, NewError(CodeStoreError, "provider %s has a corrupt booked interval: %v", provider.ID, err)
	}
	if conflict {
		return nil, NewError(CodeSlotTaken, "this time is already booked")
	}

	appt := &models.Appointment{
		ID:         uuid.New().String(),
		ProviderID: provider.ID,
		PatientID:  patient.ID,
		Date:       req.Date,
		Time:       canonicalTime,
		Reason:     req.Reason,
		Status:     models.StatusUpcoming,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Appointments.Create(appt); err != nil {
		return nil, storeFailure(err)
	}

	window.BookedIntervals = append(window.BookedIntervals, models.BookedInterval{
		StartTime:     canonicalTime,
		EndTime:       endTime,
		AppointmentID: appt.ID,
	})
	provider.UpdatedAt = now
	if err := s.saveLedgerOrCompensate(provider, appt); err != nil {
		return nil, err
	}

	s.afterCreate(provider, appt, when)
	return appt, nil
}

// saveLedgerOrCompensate persists the provider's booked-interval ledger after
// a successful appointment insert. A failed ledger write is retried once and
// then compensated by deleting the appointment record; an appointment left
// without its ledger entry is surfaced as a ledger inconsistency, never
// swallowed.
func (s *DefaultAppointmentService) saveLedgerOrCompensate(provider *models.Provider, appt *models.Appointment) error {
	logger := utils.GetLogger()

	err := s.Providers.Update(provider)
	if err == nil {
		return nil
	}
	logger.Warn("provider ledger write failed, retrying",
		zap.String("providerID", provider.ID), zap.String("appointmentID", appt.ID), zap.Error(err))
	if err = s.Providers.Update(provider); err == nil {
		return nil
	}

	if delErr := s.Appointments.Delete(appt.ID); delErr != nil {
		logger.Error("ledger write and compensation both failed, appointment is orphaned",
			zap.String("appointmentID", appt.ID), zap.Error(err), zap.NamedError("compensationError", delErr))
		return NewError(CodeLedgerInconsistency,
			"appointment %s was persisted but the provider ledger update failed; operator remediation required", appt.ID)
	}
	return storeFailure(err)
}

// afterCreate runs post-commit side effects: a provider push and a scheduled
// patient reminder. Neither can fail the booking.
func (s *DefaultAppointmentService) afterCreate(provider *models.Provider, appt *models.Appointment, when time.Time) {
	logger := utils.GetLogger()

	if s.Notifier != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			body := fmt.Sprintf("A new appointment has been scheduled for %s at %s", appt.Date, appt.Time)
			if err := s.Notifier.SendProviderPushNotification(ctx, provider.ID, "New Appointment", body); err != nil {
				logger.Warn("failed to notify provider of new appointment",
					zap.String("providerID", provider.ID), zap.Error(err))
			}
		}()
	}

	s.scheduleReminder(provider.Name, appt, when)
}

func (s *DefaultAppointmentService) scheduleReminder(providerName string, appt *models.Appointment, when time.Time) {
	if s.Reminders == nil {
		return
	}
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		ProviderName:  providerName,
		Date:          appt.Date,
		Time:          appt.Time,
	}
	if err := s.Reminders.ScheduleReminder(payload, when.Add(-s.reminderLead())); err != nil {
		utils.GetLogger().Warn("failed to schedule appointment reminder",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}

// timeError maps the time utility sentinels onto engine codes.
func timeError(err error) *Error {
	if errors.Is(err, utils.ErrOutOfRangeTime) {
		return NewError(CodeOutOfRangeTime, "%v", err)
	}
	return NewError(CodeInvalidTimeFormat, "%v", err)
}

// loadAppointment fetches an appointment, mapping absence to NotFound.
func (s *DefaultAppointmentService) loadAppointment(id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "appointment %s not found", id)
		}
		return nil, storeFailure(err)
	}
	return appt, nil
}
