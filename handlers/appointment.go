package handlers

import (
	"net/http"
	"time"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/appointment"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes the booking engine over HTTP.
type AppointmentHandler struct {
	Service appointment.AppointmentService
}

func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

func actorFromContext(c *gin.Context) appointment.Actor {
	return appointment.Actor{
		ID:   c.GetString(middleware.ContextActorID),
		Role: c.GetString(middleware.ContextRole),
	}
}

// CreateAppointment books a new appointment for the calling patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req appointment.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.PatientID = c.GetString(middleware.ContextActorID)

	appt, err := h.Service.Create(c.Request.Context(), req, time.Now())
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment scheduled successfully",
		"appointment": appt,
	})
}

// GetAppointments lists the caller's own appointments, bucketed by status.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	buckets, err := h.Service.ListForActor(c.Request.Context(), actorFromContext(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// UpdateAppointment applies a patch (status/date/time/notes) to one appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var patch models.AppointmentUpdateRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.Update(c.Request.Context(), c.Param("id"), actorFromContext(c), patch, time.Now())
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment updated successfully",
		"appointment": appt,
	})
}

// GetPatientHistory lists one patient's appointments with the calling provider.
func (h *AppointmentHandler) GetPatientHistory(c *gin.Context) {
	providerID := c.GetString(middleware.ContextActorID)
	patientID := c.Param("patientId")

	buckets, err := h.Service.ListPatientHistory(c.Request.Context(), providerID, patientID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"patientId":    patientID,
		"appointments": buckets,
	})
}

// GetPatientAllAppointments lists a patient's appointments across all providers.
func (h *AppointmentHandler) GetPatientAllAppointments(c *gin.Context) {
	patientID := c.Param("patientId")

	buckets, err := h.Service.ListAllForPatient(c.Request.Context(), patientID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"patientId":    patientID,
		"appointments": buckets,
	})
}

// respondEngineError maps engine error codes onto stable HTTP statuses.
func respondEngineError(c *gin.Context, err error) {
	code := appointment.CodeOf(err)
	c.JSON(statusForCode(code), utils.ErrorResponse{
		Message: err.Error(),
		Code:    code,
	})
}

func statusForCode(code string) int {
	switch code {
	case appointment.CodeValidation,
		appointment.CodeInvalidTimeFormat,
		appointment.CodeOutOfRangeTime,
		appointment.CodeInPast:
		return http.StatusBadRequest
	case appointment.CodeNotFound:
		return http.StatusNotFound
	case appointment.CodeNotAuthorized:
		return http.StatusForbidden
	case appointment.CodeSlotTaken, appointment.CodeTerminalState:
		return http.StatusConflict
	case appointment.CodeProviderUnavailable:
		return http.StatusUnprocessableEntity
	case appointment.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
