package controllers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"crudclinic/models"
	"crudclinic/utils"
)

type PaymentMethodController struct {
	DB *sql.DB
}

func NewPaymentMethodController(db *sql.DB) *PaymentMethodController {
	return &PaymentMethodController{DB: db}
}

func (c *PaymentMethodController) List(w http.ResponseWriter, r *http.Request) {
	methods, err := models.GetAllPaymentMethods(c.DB)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, methods)
}

func (c *PaymentMethodController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment method ID")
		return
	}

	method, err := models.GetPaymentMethodByID(c.DB, id)
	if errors.Is(err, models.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Payment method not found")
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, method)
}

func (c *PaymentMethodController) Create(w http.ResponseWriter, r *http.Request) {
	var method models.PaymentMethod
	if err := json.NewDecoder(r.Body).Decode(&method); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if method.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := models.CreatePaymentMethod(c.DB, &method); err != nil {
		serverError(w, r, err)
		return
	}

	created, err := models.GetPaymentMethodByID(c.DB, method.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":        "Payment method created successfully",
		"payment_method": created,
	})
}

func (c *PaymentMethodController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment method ID")
		return
	}

	var method models.PaymentMethod
	if err := json.NewDecoder(r.Body).Decode(&method); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if method.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}
	method.ID = id

	if _, err := models.GetPaymentMethodByID(c.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Payment method not found")
			return
		}
		serverError(w, r, err)
		return
	}

	if err := models.UpdatePaymentMethod(c.DB, &method); err != nil {
		serverError(w, r, err)
		return
	}

	updated, err := models.GetPaymentMethodByID(c.DB, id)
	if err != nil {
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":        "Payment method updated successfully",
		"payment_method": updated,
	})
}

func (c *PaymentMethodController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromRequest(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment method ID")
		return
	}

	if err := models.DeletePaymentMethod(c.DB, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Payment method not found")
			return
		}
		if models.IsRowReferenced(err) {
			utils.RespondWithError(w, http.StatusBadRequest,
				"Cannot delete the payment method because appointments reference it")
			return
		}
		serverError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Payment method deleted successfully",
	})
}
