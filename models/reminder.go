package models

// ReminderPayload is the asynq task body for a scheduled appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
	ProviderName  string `json:"providerName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}
