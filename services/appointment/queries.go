package appointment

import (
	"context"
	"errors"

	appointmentRepo "medibook/database/repository/appointment"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
)

// ListForActor returns the caller's own appointments bucketed by status.
// A patient sees appointments where they are the patient; a provider sees
// appointments where they are the provider.
func (s *DefaultAppointmentService) ListForActor(ctx context.Context, actor Actor) (*models.AppointmentBuckets, error) {
	var filter appointmentRepo.Filter
	switch actor.Role {
	case RolePatient:
		filter.PatientID = actor.ID
	case RoleProvider:
		filter.ProviderID = actor.ID
	default:
		return nil, NewError(CodeNotAuthorized, "unknown caller role %q", actor.Role)
	}
	return s.findBuckets(filter)
}

// ListPatientHistory returns one patient's appointments with one provider.
func (s *DefaultAppointmentService) ListPatientHistory(ctx context.Context, providerID, patientID string) (*models.AppointmentBuckets, error) {
	if err := s.requirePatient(patientID); err != nil {
		return nil, err
	}
	return s.findBuckets(appointmentRepo.Filter{ProviderID: providerID, PatientID: patientID})
}

// ListAllForPatient returns a patient's appointments across all providers.
func (s *DefaultAppointmentService) ListAllForPatient(ctx context.Context, patientID string) (*models.AppointmentBuckets, error) {
	if err := s.requirePatient(patientID); err != nil {
		return nil, err
	}
	return s.findBuckets(appointmentRepo.Filter{PatientID: patientID})
}

func (s *DefaultAppointmentService) requirePatient(patientID string) error {
	if _, err := s.Patients.GetByID(patientID); err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return NewError(CodeNotFound, "patient %s not found", patientID)
		}
		return storeFailure(err)
	}
	return nil
}

func (s *DefaultAppointmentService) findBuckets(filter appointmentRepo.Filter) (*models.AppointmentBuckets, error) {
	appointments, err := s.Appointments.Find(filter)
	if err != nil {
		return nil, storeFailure(err)
	}
	return partitionByStatus(appointments), nil
}

// partitionByStatus splits appointments into the three status buckets.
// The repository returns rows in ascending date order, so each bucket
// inherits that order.
func partitionByStatus(appointments []models.Appointment) *models.AppointmentBuckets {
	buckets := &models.AppointmentBuckets{
		Upcoming:  []models.Appointment{},
		Completed: []models.Appointment{},
		Cancelled: []models.Appointment{},
	}
	for _, a := range appointments {
		switch a.Status {
		case models.StatusUpcoming:
			buckets.Upcoming = append(buckets.Upcoming, a)
		case models.StatusCompleted:
			buckets.Completed = append(buckets.Completed, a)
		case models.StatusCancelled:
			buckets.Cancelled = append(buckets.Cancelled, a)
		}
	}
	return buckets
}
