package models

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSpecialtyByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM especialidades WHERE LOWER").
		WithArgs("cardiology").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "nombre", "descripcion", "created_at"}).
			AddRow(4, "Cardiology", "Heart care", sampleTime()))

	s, err := GetSpecialtyByName(db, "cardiology")
	require.NoError(t, err)
	assert.Equal(t, 4, s.ID)
	assert.Equal(t, "Cardiology", s.Name)
	require.NotNil(t, s.Description)
	assert.Equal(t, "Heart care", *s.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSpecialtyByNameNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM especialidades WHERE LOWER").
		WillReturnError(errNoRows())

	_, err = GetSpecialtyByName(db, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSpecialtySetsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO especialidades").
		WithArgs("Neurology", nil).
		WillReturnResult(sqlmock.NewResult(9, 1))

	s := Specialty{Name: "Neurology"}
	require.NoError(t, CreateSpecialty(db, &s))
	assert.Equal(t, 9, s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSpecialtyNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM especialidades").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = DeleteSpecialty(db, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountDoctorsBySpecialty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM medicos WHERE especialidad_id").
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := CountDoctorsBySpecialty(db, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
