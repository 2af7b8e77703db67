package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func patientRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "nombre", "apellido", "email", "telefono", "fecha_nacimiento",
		"genero", "direccion", "documento_identidad", "activo", "created_at"}).
		AddRow(7, "Maria", "Gonzalez", "maria@example.com", "555-0101",
			sampleTime(), "F", nil, "CC-1001", true, sampleTime())
}

func TestPatientCreate(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewPatientController(db)

	mock.ExpectExec("INSERT INTO pacientes").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("FROM pacientes WHERE id").
		WithArgs(7).
		WillReturnRows(patientRow())

	req := httptest.NewRequest(http.MethodPost, "/api/patients",
		strings.NewReader(`{"name":"Maria","surname":"Gonzalez","email":"maria@example.com","identity_document":"CC-1001"}`))
	rec := serve(ctrl.Create, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Patient created successfully", body["message"])
	patient := body["patient"].(map[string]interface{})
	assert.Equal(t, float64(7), patient["id"])
	assert.Equal(t, "maria@example.com", patient["email"])
	assert.Equal(t, "2026-06-01", patient["birth_date"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientCreateMissingFields(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewPatientController(db)

	req := httptest.NewRequest(http.MethodPost, "/api/patients",
		strings.NewReader(`{"name":"Maria"}`))
	rec := serve(ctrl.Create, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name, surname and email are required", decodeBody(t, rec)["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientCreateInvalidEmail(t *testing.T) {
	db, _ := newMockDB(t)
	ctrl := NewPatientController(db)

	req := httptest.NewRequest(http.MethodPost, "/api/patients",
		strings.NewReader(`{"name":"Maria","surname":"Gonzalez","email":"not-an-email"}`))
	rec := serve(ctrl.Create, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email address", decodeBody(t, rec)["message"])
}

func TestPatientGet(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewPatientController(db)

	mock.ExpectQuery("FROM pacientes WHERE id").
		WithArgs(7).
		WillReturnRows(patientRow())

	req := mux.SetURLVars(
		httptest.NewRequest(http.MethodGet, "/api/patients/7", nil),
		map[string]string{"id": "7"})
	rec := serve(ctrl.Get, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Maria", body["name"])
	assert.Equal(t, "Gonzalez", body["surname"])
}

func TestPatientGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewPatientController(db)

	mock.ExpectQuery("FROM pacientes WHERE id").
		WithArgs(99).
		WillReturnError(errNoRows())

	req := mux.SetURLVars(
		httptest.NewRequest(http.MethodGet, "/api/patients/99", nil),
		map[string]string{"id": "99"})
	rec := serve(ctrl.Get, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Patient not found", decodeBody(t, rec)["message"])
}

func TestPatientCount(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewPatientController(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM pacientes").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	req := httptest.NewRequest(http.MethodGet, "/api/patients/count", nil)
	rec := serve(ctrl.Count, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(42), decodeBody(t, rec)["count"])
}
