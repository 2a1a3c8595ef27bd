package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	providerRepo "medibook/database/repository/provider"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

// Update applies a patch to an appointment. Nil patch fields were not
// supplied by the caller; a supplied-but-empty notes value clears the notes.
// Ledger-touching branches (cancel, reschedule) run under the provider lock
// with the same consistency contract as Create.
func (s *DefaultAppointmentService) Update(
	ctx context.Context,
	id string,
	actor Actor,
	patch models.AppointmentUpdateRequest,
	now time.Time,
) (*models.Appointment, error) {
	if patch.Empty() {
		return nil, NewError(CodeValidation, "at least one field is required: status, date, time, or notes")
	}

	appt, err := s.loadAppointment(id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, appt); err != nil {
		return nil, err
	}

	var targetStatus string
	if patch.Status != nil {
		targetStatus = strings.ToUpper(strings.TrimSpace(*patch.Status))
		if targetStatus != models.StatusCompleted && targetStatus != models.StatusCancelled {
			return nil, NewError(CodeValidation, "status must be COMPLETED or CANCELLED")
		}
	}

	if appt.Status == models.StatusCancelled {
		return nil, NewError(CodeTerminalState, "cannot update a cancelled appointment")
	}
	if appt.Status == models.StatusCompleted &&
		(patch.Date != nil || patch.Time != nil || targetStatus == models.StatusCancelled) {
		return nil, NewError(CodeTerminalState, "completed appointments can only be updated with notes")
	}

	newDate := appt.Date
	if patch.Date != nil {
		if *patch.Date == "" {
			return nil, NewError(CodeValidation, "date must not be empty")
		}
		newDate = *patch.Date
	}
	newTime := appt.Time
	if patch.Time != nil {
		if *patch.Time == "" {
			return nil, NewError(CodeValidation, "time must not be empty")
		}
		canonical, err := utils.Convert12To24Hour(*patch.Time)
		if err != nil {
			return nil, timeError(err)
		}
		newTime = canonical
	}

	cancelling := targetStatus == models.StatusCancelled
	completing := targetStatus == models.StatusCompleted && appt.Status != models.StatusCompleted
	rescheduling := !cancelling && (newDate != appt.Date || newTime != appt.Time)

	var (
		provider         *models.Provider
		prevAvailability []models.Window
		when             time.Time
	)
	touchesLedger := cancelling || rescheduling
	if touchesLedger {
		lock := s.locks.forProvider(appt.ProviderID)
		lock.Lock()
		defer lock.Unlock()

		provider, err = s.Providers.GetByID(appt.ProviderID)
		if err != nil {
			if errors.Is(err, providerRepo.ErrNotFound) {
				return nil, NewError(CodeNotFound, "provider %s not found", appt.ProviderID)
			}
			return nil, storeFailure(err)
		}
		prevAvailability = cloneWindows(provider.Availability)
	}

	if cancelling {
		day, err := weekdayOf(appt.Date)
		if err != nil {
			return nil, NewError(CodeStoreError, "appointment %s has a corrupt date %q", appt.ID, appt.Date)
		}
		if w := windowOwningInterval(provider.Availability, day, appt.ID); w != nil {
			removeInterval(w, appt.ID)
		} else {
			// A missing interval means the ledger is already off; the cancel
			// still proceeds, but the condition must not pass silently.
			utils.GetLogger().Warn("no booked interval found for cancelled appointment",
				zap.String("appointmentID", appt.ID), zap.String("providerID", provider.ID))
		}
	}

	if rescheduling {
		when, err = combineDateTime(newDate, newTime)
		if err != nil {
			return nil, NewError(CodeValidation, "invalid date %q, expected YYYY-MM-DD", newDate)
		}
		if !when.After(now) {
			return nil, NewError(CodeInPast, "new appointment date and time must be in the future")
		}

		startMin, err := utils.ParseTimeToMinutes(newTime)
		if err != nil {
			return nil, timeError(err)
		}
		endTime, err := utils.AddMinutesToTime(newTime, s.duration())
		if err != nil {
			return nil, timeError(err)
		}
		endMin := startMin + s.duration()

		newDay, err := weekdayOf(newDate)
		if err != nil {
			return nil, NewError(CodeValidation, "invalid date %q, expected YYYY-MM-DD", newDate)
		}
		window, err := findWindow(provider.Availability, newDay, startMin, endMin)
		if err != nil {
			return nil, NewError(CodeStoreError, "provider %s has a corrupt availability window: %v", provider.ID, err)
		}
		if window == nil {
			return nil, NewError(CodeProviderUnavailable, "provider is not available at this time")
		}
		conflict, err := hasConflict(startMin, endMin, window.BookedIntervals, appt.ID)
		if err != nil {
			return nil, NewError(CodeStoreError, "provider %s has a corrupt booked interval: %v", provider.ID, err)
		}
		if conflict {
			return nil, NewError(CodeSlotTaken, "new time slot is already booked")
		}

		oldDay, err := weekdayOf(appt.Date)
		if err != nil {
			return nil, NewError(CodeStoreError, "appointment %s has a corrupt date %q", appt.ID, appt.Date)
		}
		// The old interval may live in any window of the old day, including a
		// different same-day window than the one the new slot lands in.
		if owner := windowOwningInterval(provider.Availability, oldDay, appt.ID); owner != nil && owner != window {
			removeInterval(owner, appt.ID)
		}

		replaced := false
		for i := range window.BookedIntervals {
			if window.BookedIntervals[i].AppointmentID == appt.ID {
				window.BookedIntervals[i].StartTime = newTime
				window.BookedIntervals[i].EndTime = endTime
				replaced = true
				break
			}
		}
		if !replaced {
			window.BookedIntervals = append(window.BookedIntervals, models.BookedInterval{
				StartTime:     newTime,
				EndTime:       endTime,
				AppointmentID: appt.ID,
			})
		}
	}

	if touchesLedger {
		provider.UpdatedAt = now
		// The appointment record is untouched so far; a failed ledger write
		// here leaves no partial state behind.
		if err := s.Providers.Update(provider); err != nil {
			utils.GetLogger().Warn("provider ledger write failed, retrying",
				zap.String("providerID", provider.ID), zap.Error(err))
			if err = s.Providers.Update(provider); err != nil {
				return nil, storeFailure(err)
			}
		}
	}

	notesChanged := false
	if cancelling {
		appt.Status = models.StatusCancelled
	} else if completing {
		appt.Status = models.StatusCompleted
	}
	if rescheduling {
		appt.Date = newDate
		appt.Time = newTime
	}
	if patch.Notes != nil {
		appt.Notes = *patch.Notes
		notesChanged = true
	}
	appt.UpdatedAt = now

	if err := s.Appointments.Update(appt); err != nil {
		if err = s.Appointments.Update(appt); err != nil {
			return nil, s.rollbackLedger(provider, prevAvailability, appt, err)
		}
	}

	statusChanged := cancelling || completing
	s.afterUpdate(appt, statusChanged, rescheduling, notesChanged)
	if rescheduling && provider != nil {
		s.scheduleReminder(provider.Name, appt, when)
	}
	return appt, nil
}

// rollbackLedger undoes a committed ledger change after the paired
// appointment write failed. If the rollback itself fails, the pair is out of
// sync and the condition is surfaced for operator remediation.
func (s *DefaultAppointmentService) rollbackLedger(
	provider *models.Provider,
	prevAvailability []models.Window,
	appt *models.Appointment,
	cause error,
) error {
	if provider == nil {
		// No ledger change was made; the failed appointment write is the
		// only effect.
		return storeFailure(cause)
	}
	provider.Availability = prevAvailability
	if err := s.Providers.Update(provider); err != nil {
		utils.GetLogger().Error("appointment write and ledger rollback both failed",
			zap.String("appointmentID", appt.ID),
			zap.Error(cause), zap.NamedError("rollbackError", err))
		return NewError(CodeLedgerInconsistency,
			"provider ledger for %s was updated but appointment %s could not be saved; operator remediation required",
			provider.ID, appt.ID)
	}
	return storeFailure(cause)
}

// afterUpdate notifies the patient about the most specific change:
// status change > reschedule > notes-only.
func (s *DefaultAppointmentService) afterUpdate(appt *models.Appointment, statusChanged, rescheduled, notesChanged bool) {
	if s.Notifier == nil {
		return
	}
	var body string
	switch {
	case statusChanged:
		body = "Your appointment has been " + strings.ToLower(appt.Status)
	case rescheduled:
		body = "Your appointment has been rescheduled to " + appt.Date + " at " + appt.Time
	case notesChanged:
		body = "Your appointment notes have been updated"
	default:
		return
	}
	patientID := appt.PatientID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.SendPatientPushNotification(ctx, patientID, "Appointment Update", body); err != nil {
			utils.GetLogger().Warn("failed to notify patient of appointment update",
				zap.String("patientID", patientID), zap.Error(err))
		}
	}()
}

func authorize(actor Actor, appt *models.Appointment) error {
	switch actor.Role {
	case RolePatient:
		if appt.PatientID != actor.ID {
			return NewError(CodeNotAuthorized, "not authorized")
		}
	case RoleProvider:
		if appt.ProviderID != actor.ID {
			return NewError(CodeNotAuthorized, "not authorized")
		}
	default:
		return NewError(CodeNotAuthorized, "not authorized")
	}
	return nil
}

func cloneWindows(windows []models.Window) []models.Window {
	cloned := make([]models.Window, len(windows))
	for i, w := range windows {
		cloned[i] = w
		cloned[i].BookedIntervals = append([]models.BookedInterval(nil), w.BookedIntervals...)
	}
	return cloned
}
