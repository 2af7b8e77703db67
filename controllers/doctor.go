package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"crudclinic/models"
	"crudclinic/utils"
)

type DoctorController struct {
	DB *sql.DB
}

func NewDoctorController(db *sql.DB) *DoctorController {
	return &DoctorController{DB: db}
}

func (c *DoctorController) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := models.GetAllDoctors(c.DB)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doctors)
}

func (c *DoctorController) Count(w http.ResponseWriter, r *http.Request) {
	count, err := models.CountDoctors(c.DB)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (c *DoctorController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	doctor, err := models.GetDoctorByID(c.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doctor)
}

func (c *DoctorController) Create(w http.ResponseWriter, r *http.Request) {
	var doctor models.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if doctor.Name == "" || doctor.Surname == "" || doctor.Email == "" || doctor.LicenseNumber == "" {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Name, surname, email and license number are required")
		return
	}
	if !utils.ValidateEmail(doctor.Email) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	if err := models.CreateDoctor(c.DB, &doctor); err != nil {
		if models.IsMissingReference(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Specialty does not exist")
			return
		}
		serverError(w, r, err)
		return
	}

	created, err := models.GetDoctorByID(c.DB, doctor.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Doctor created successfully",
		"doctor":  created,
	})
}

func (c *DoctorController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	var doctor models.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if doctor.Name == "" || doctor.Surname == "" || doctor.Email == "" || doctor.LicenseNumber == "" {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Name, surname, email and license number are required")
		return
	}
	doctor.ID = id

	if _, err := models.GetDoctorByID(c.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
			return
		}
		serverError(w, r, err)
		return
	}

	if err := models.UpdateDoctor(c.DB, &doctor); err != nil {
		if models.IsMissingReference(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Specialty does not exist")
			return
		}
		serverError(w, r, err)
		return
	}

	updated, err := models.GetDoctorByID(c.DB, id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Doctor updated successfully",
		"doctor":  updated,
	})
}

func (c *DoctorController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	if err := models.DeleteDoctor(c.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Doctor not found")
			return
		}
		if models.IsRowReferenced(err) {
			utils.RespondWithError(w, http.StatusBadRequest,
				"Cannot delete the doctor because appointments reference them")
			return
		}
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Doctor deleted successfully",
	})
}
