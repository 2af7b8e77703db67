package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newUploadController(t *testing.T) (*UploadController, sqlmock.Sqlmock, string) {
	t.Helper()
	db, mock := newMockDB(t)
	dir := t.TempDir()
	return NewUploadController(db, dir, 10<<20), mock, dir
}

func multipartBody(t *testing.T, filename, content, typeTag string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if typeTag != "" {
		require.NoError(t, writer.WriteField("type", typeTag))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadCSV(t *testing.T) {
	ctrl, mock, dir := newUploadController(t)

	mock.ExpectExec("INSERT INTO pacientes").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO pacientes").
		WillReturnResult(sqlmock.NewResult(2, 1))

	csv := "name,surname,email,identity_document\n" +
		"Maria,Gonzalez,maria@example.com,CC-1\n" +
		"Carlos,Ramirez,carlos@example.com,CC-2\n"
	body, contentType := multipartBody(t, "patients.csv", csv, "patients")

	req := httptest.NewRequest(http.MethodPost, "/api/upload/csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := serve(ctrl.UploadCSV, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "File processed successfully. 2 records inserted.", resp["message"])
	assert.Equal(t, float64(2), resp["inserted"])
	assert.Nil(t, resp["errors"])
	assert.NoError(t, mock.ExpectationsWereMet())

	// The saved copy is removed once processing finishes.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadCSVPartialFailure(t *testing.T) {
	ctrl, mock, _ := newUploadController(t)

	mock.ExpectExec("INSERT INTO pacientes").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO pacientes").
		WillReturnError(assert.AnError)

	csv := "name,surname,email,identity_document\n" +
		"Maria,Gonzalez,maria@example.com,CC-1\n" +
		"Carlos,Ramirez,carlos@example.com,CC-2\n"
	body, contentType := multipartBody(t, "patients.csv", csv, "patients")

	req := httptest.NewRequest(http.MethodPost, "/api/upload/csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := serve(ctrl.UploadCSV, req)

	// Partial success still answers 200 with the failures listed inline.
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, float64(1), resp["inserted"])
	errs := resp["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].(string), "carlos@example.com")
}

func TestUploadCSVUnsupportedType(t *testing.T) {
	ctrl, mock, _ := newUploadController(t)

	csv := "name\nMaria\n"
	body, contentType := multipartBody(t, "data.csv", csv, "invoices")

	req := httptest.NewRequest(http.MethodPost, "/api/upload/csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := serve(ctrl.UploadCSV, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, float64(0), resp["inserted"])
	errs := resp["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].(string), "unsupported data type: invoices")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadCSVMissingFile(t *testing.T) {
	ctrl, _, _ := newUploadController(t)

	body, contentType := multipartBody(t, "", "", "patients")

	req := httptest.NewRequest(http.MethodPost, "/api/upload/csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := serve(ctrl.UploadCSV, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file provided", decodeBody(t, rec)["message"])
}

func TestUploadCSVMissingType(t *testing.T) {
	ctrl, _, _ := newUploadController(t)

	body, contentType := multipartBody(t, "patients.csv", "name\nMaria\n", "")

	req := httptest.NewRequest(http.MethodPost, "/api/upload/csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := serve(ctrl.UploadCSV, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Data type not specified", decodeBody(t, rec)["message"])
}

func TestUploadCSVRejectsExtension(t *testing.T) {
	ctrl, _, dir := newUploadController(t)

	body, contentType := multipartBody(t, "patients.txt", "name\nMaria\n", "patients")

	req := httptest.NewRequest(http.MethodPost, "/api/upload/csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := serve(ctrl.UploadCSV, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["message"], "unsupported file type")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadExcel(t *testing.T) {
	ctrl, mock, _ := newUploadController(t)

	mock.ExpectExec("INSERT INTO pacientes").
		WillReturnResult(sqlmock.NewResult(1, 1))

	workbook := buildWorkbook(t, [][]interface{}{
		{"Name", "Surname", "Email", "Identity_Document"},
		{"Maria", "Gonzalez", "maria@example.com", "CC-1"},
	})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "patients.xlsx")
	require.NoError(t, err)
	_, err = part.Write(workbook)
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("type", "patients"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/excel", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := serve(ctrl.UploadExcel, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, float64(1), resp["inserted"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workbook.xlsx")

	f := newWorkbookFile(t, rows)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func newWorkbookFile(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	return f
}
