package controllers

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"crudclinic/models"
	"crudclinic/utils"
)

type UploadController struct {
	DB            *sql.DB
	UploadDir     string
	MaxUploadSize int64
}

func NewUploadController(db *sql.DB, uploadDir string, maxUploadSize int64) *UploadController {
	return &UploadController{DB: db, UploadDir: uploadDir, MaxUploadSize: maxUploadSize}
}

type importResponse struct {
	Message  string   `json:"message"`
	Inserted int      `json:"inserted"`
	Errors   []string `json:"errors,omitempty"`
}

// UploadCSV accepts a multipart form with a delimited-text file and a type
// tag, runs the bulk import and reports partial success inline.
func (c *UploadController) UploadCSV(w http.ResponseWriter, r *http.Request) {
	c.handleUpload(w, r, func(path string) ([]models.Row, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return models.ParseCSV(f)
	})
}

// UploadExcel is the same flow for .xlsx workbooks; only the parser differs.
func (c *UploadController) UploadExcel(w http.ResponseWriter, r *http.Request) {
	c.handleUpload(w, r, models.ParseExcel)
}

func (c *UploadController) handleUpload(w http.ResponseWriter, r *http.Request, parse func(path string) ([]models.Row, error)) {
	if err := r.ParseMultipartForm(c.MaxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "File too large or invalid form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	typeTag := r.FormValue("type")
	if typeTag == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Data type not specified")
		return
	}

	path, err := utils.SaveImportFile(file, header, c.UploadDir, c.MaxUploadSize)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer func() {
		if err := utils.RemoveImportFile(path); err != nil {
			log.WithError(err).Warn("could not remove import file")
		}
	}()

	rows, err := parse(path)
	if err != nil {
		serverError(w, r, err)
		return
	}

	result := models.ImportRows(c.DB, typeTag, rows)

	utils.RespondWithJSON(w, http.StatusOK, importResponse{
		Message: fmt.Sprintf("File processed successfully. %d records inserted.",
			result.Inserted),
		Inserted: result.Inserted,
		Errors:   result.Errors,
	})
}
