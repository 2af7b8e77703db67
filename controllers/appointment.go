package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"crudclinic/models"
	"crudclinic/utils"
)

type AppointmentController struct {
	DB *sql.DB
}

func NewAppointmentController(db *sql.DB) *AppointmentController {
	return &AppointmentController{DB: db}
}

// appointmentRequest keeps the datetime a string so browser formats without
// a zone or seconds are accepted.
type appointmentRequest struct {
	PatientID       int      `json:"patient_id"`
	DoctorID        int      `json:"doctor_id"`
	DateTime        string   `json:"datetime"`
	DurationMinutes int      `json:"duration_minutes"`
	Reason          *string  `json:"reason"`
	Status          string   `json:"status"`
	PaymentMethodID *int     `json:"payment_method_id"`
	Amount          *float64 `json:"amount"`
	Notes           *string  `json:"notes"`
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime format: %q", value)
}

func (req *appointmentRequest) toAppointment() (*models.Appointment, error) {
	when, err := parseDateTime(req.DateTime)
	if err != nil {
		return nil, err
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = 30
	}
	return &models.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		DateTime:        when,
		DurationMinutes: duration,
		Reason:          req.Reason,
		Status:          req.Status,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          req.Amount,
		Notes:           req.Notes,
	}, nil
}

func (c *AppointmentController) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := models.GetAllAppointments(c.DB)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, appointments)
}

func (c *AppointmentController) Count(w http.ResponseWriter, r *http.Request) {
	count, err := models.CountAppointments(c.DB)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (c *AppointmentController) Upcoming(w http.ResponseWriter, r *http.Request) {
	appointments, err := models.GetUpcomingAppointments(c.DB, time.Now())
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, appointments)
}

func (c *AppointmentController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	appointment, err := models.GetAppointmentByID(c.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, appointment)
}

func (c *AppointmentController) Create(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PatientID == 0 || req.DoctorID == 0 || req.DateTime == "" {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Patient, doctor and datetime are required")
		return
	}

	appointment, err := req.toAppointment()
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := models.CreateAppointment(c.DB, appointment); err != nil {
		if models.IsMissingReference(err) {
			utils.RespondWithError(w, http.StatusBadRequest,
				"Patient, doctor or payment method does not exist")
			return
		}
		serverError(w, r, err)
		return
	}

	created, err := models.GetAppointmentByID(c.DB, appointment.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Appointment created successfully",
		"appointment": created,
	})
}

func (c *AppointmentController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PatientID == 0 || req.DoctorID == 0 || req.DateTime == "" {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Patient, doctor and datetime are required")
		return
	}

	appointment, err := req.toAppointment()
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	appointment.ID = id
	if appointment.Status == "" {
		appointment.Status = models.StatusScheduled
	}

	if _, err := models.GetAppointmentByID(c.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Appointment not found")
			return
		}
		serverError(w, r, err)
		return
	}

	if err := models.UpdateAppointment(c.DB, appointment); err != nil {
		if models.IsMissingReference(err) {
			utils.RespondWithError(w, http.StatusBadRequest,
				"Patient, doctor or payment method does not exist")
			return
		}
		serverError(w, r, err)
		return
	}

	updated, err := models.GetAppointmentByID(c.DB, id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Appointment updated successfully",
		"appointment": updated,
	})
}

func (c *AppointmentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	if err := models.DeleteAppointment(c.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Appointment not found")
			return
		}
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Appointment deleted successfully",
	})
}
