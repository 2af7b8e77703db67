package controllers

import (
	"net/http"
	"time"

	"crudclinic/utils"
)

type HealthController struct {
	Environment string
}

func NewHealthController(environment string) *HealthController {
	return &HealthController{Environment: environment}
}

func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":      "OK",
		"message":     "CrudClinic API is running",
		"timestamp":   time.Now().Format(time.RFC3339),
		"environment": c.Environment,
	})
}
