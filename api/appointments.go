package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vertexcare/clinicbook/internal/domain"
	"github.com/vertexcare/clinicbook/internal/service/appointments"
	"github.com/vertexcare/clinicbook/internal/service/auth"
)

type AppointmentHandler struct {
	service    appointments.AppointmentUseCase
	authority  auth.SessionAuthority
	cookieName string
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type appointmentResponse struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	MobileNumber   string `json:"mobileNumber"`
	EmailAddress   string `json:"emailAddress"`
	Department     string `json:"department"`
	DoctorName     string `json:"doctorName"`
	ReasonForVisit string `json:"reasonForVisit"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

func NewAppointmentHandler(service appointments.AppointmentUseCase, authority auth.SessionAuthority, cookieName string) *AppointmentHandler {
	return &AppointmentHandler{service: service, authority: authority, cookieName: cookieName}
}

func (h *AppointmentHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.PATCH("/:id", h.updateStatus)
	router.DELETE("/:id", h.delete)
}

// session resolves the cookie to server-side session state. A missing or
// stale cookie yields nil; authorization itself happens in the service.
func (h *AppointmentHandler) session(c *gin.Context) *domain.Session {
	token, err := c.Cookie(h.cookieName)
	if err != nil {
		return nil
	}

	session, err := h.authority.Resolve(c.Request.Context(), token)
	if err != nil {
		log.Printf("session lookup error: %v", err)
		return nil
	}
	return session
}

func (h *AppointmentHandler) create(c *gin.Context) {
	var input appointments.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if _, err := h.service.Submit(c.Request.Context(), input); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Required fields missing"})
			return
		}
		log.Printf("appointment create error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server failed to save appointment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Appointment booked successfully!"})
}

func (h *AppointmentHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.session(c))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		log.Printf("appointment list error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch appointments"})
		return
	}

	response := make([]appointmentResponse, 0, len(result))
	for i := range result {
		response = append(response, toResponse(&result[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *AppointmentHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	err := h.service.UpdateStatus(c.Request.Context(), h.session(c), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		default:
			log.Printf("status update error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Update failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *AppointmentHandler) delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), h.session(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		log.Printf("appointment delete error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted"})
}

func toResponse(a *domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:             a.ID,
		FullName:       a.FullName,
		MobileNumber:   a.MobileNumber,
		EmailAddress:   a.EmailAddress,
		Department:     a.Department,
		DoctorName:     a.DoctorName,
		ReasonForVisit: a.ReasonForVisit,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}
