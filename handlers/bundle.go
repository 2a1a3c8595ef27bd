package handlers

// HandlerBundle groups the HTTP handlers for route registration.
type HandlerBundle struct {
	Appointment *AppointmentHandler
	Provider    *ProviderHandler
}
