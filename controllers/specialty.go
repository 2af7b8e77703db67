package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"crudclinic/models"
	"crudclinic/utils"
)

type SpecialtyController struct {
	DB *sql.DB
}

func NewSpecialtyController(db *sql.DB) *SpecialtyController {
	return &SpecialtyController{DB: db}
}

func (c *SpecialtyController) List(w http.ResponseWriter, r *http.Request) {
	specialties, err := models.GetAllSpecialties(c.DB)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, specialties)
}

func (c *SpecialtyController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid specialty ID")
		return
	}

	specialty, err := models.GetSpecialtyByID(c.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Specialty not found")
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, specialty)
}

func (c *SpecialtyController) Create(w http.ResponseWriter, r *http.Request) {
	var specialty models.Specialty
	if err := json.NewDecoder(r.Body).Decode(&specialty); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if specialty.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := models.CreateSpecialty(c.DB, &specialty); err != nil {
		serverError(w, r, err)
		return
	}

	created, err := models.GetSpecialtyByID(c.DB, specialty.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Specialty created successfully",
		"specialty": created,
	})
}

func (c *SpecialtyController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid specialty ID")
		return
	}

	var specialty models.Specialty
	if err := json.NewDecoder(r.Body).Decode(&specialty); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if specialty.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}
	specialty.ID = id

	if _, err := models.GetSpecialtyByID(c.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Specialty not found")
			return
		}
		serverError(w, r, err)
		return
	}

	if err := models.UpdateSpecialty(c.DB, &specialty); err != nil {
		serverError(w, r, err)
		return
	}

	updated, err := models.GetSpecialtyByID(c.DB, id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Specialty updated successfully",
		"specialty": updated,
	})
}

// Delete refuses to remove a specialty while any doctor references it.
func (c *SpecialtyController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid specialty ID")
		return
	}

	count, err := models.CountDoctorsBySpecialty(c.DB, id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Cannot delete the specialty because it is in use by doctors")
		return
	}

	if err := models.DeleteSpecialty(c.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Specialty not found")
			return
		}
		if models.IsRowReferenced(err) {
			utils.RespondWithError(w, http.StatusBadRequest,
				"Cannot delete the specialty because it is in use by doctors")
			return
		}
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Specialty deleted successfully",
	})
}
