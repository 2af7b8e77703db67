package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"crudclinic/models"
	"crudclinic/utils"
)

type PatientController struct {
	DB *sql.DB
}

func NewPatientController(db *sql.DB) *PatientController {
	return &PatientController{DB: db}
}

func (c *PatientController) List(w http.ResponseWriter, r *http.Request) {
	patients, err := models.GetAllPatients(c.DB)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, patients)
}

func (c *PatientController) Count(w http.ResponseWriter, r *http.Request) {
	count, err := models.CountPatients(c.DB)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (c *PatientController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	patient, err := models.GetPatientByID(c.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Patient not found")
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, patient)
}

func (c *PatientController) Create(w http.ResponseWriter, r *http.Request) {
	var patient models.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if patient.Name == "" || patient.Surname == "" || patient.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, surname and email are required")
		return
	}
	if !utils.ValidateEmail(patient.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	if err := models.CreatePatient(c.DB, &patient); err != nil {
		serverError(w, r, err)
		return
	}

	created, err := models.GetPatientByID(c.DB, patient.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Patient created successfully",
		"patient": created,
	})
}

func (c *PatientController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	var patient models.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if patient.Name == "" || patient.Surname == "" || patient.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, surname and email are required")
		return
	}
	patient.ID = id

	if _, err := models.GetPatientByID(c.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Patient not found")
			return
		}
		serverError(w, r, err)
		return
	}

	if err := models.UpdatePatient(c.DB, &patient); err != nil {
		serverError(w, r, err)
		return
	}

	updated, err := models.GetPatientByID(c.DB, id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Patient updated successfully",
		"patient": updated,
	})
}

func (c *PatientController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	if err := models.DeletePatient(c.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Patient not found")
			return
		}
		if models.IsRowReferenced(err) {
			utils.RespondWithError(w, http.StatusBadRequest,
				"Cannot delete the patient because appointments reference them")
			return
		}
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Patient deleted successfully",
	})
}
