package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"crudclinic/utils"
)

func idFromRequest(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// serverError logs the triggering error and answers with a generic message.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("request failed")
	utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}
