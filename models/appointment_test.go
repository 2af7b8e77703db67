package models

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appointmentColumns() []string {
	return []string{
		"id", "paciente_id", "medico_id", "fecha_cita", "duracion_minutos",
		"motivo_consulta", "estado", "metodo_pago_id", "monto", "notas",
		"created_at", "paciente_nombre", "paciente_apellido", "medico_nombre",
		"medico_apellido", "especialidad_nombre", "metodo_pago_nombre"}
}

func TestGetUpcomingAppointments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	when := from.Add(9 * time.Hour)

	mock.ExpectQuery("FROM citas c").
		WithArgs("2026-09-01", StatusCancelled).
		WillReturnRows(sqlmock.NewRows(appointmentColumns()).
			AddRow(1, 10, 20, when, 30, "Checkup", StatusScheduled, nil, nil, nil,
				sampleTime(), "Maria", "Gonzalez", "Laura", "Perez", "Cardiology", nil))

	appointments, err := GetUpcomingAppointments(db, from)
	require.NoError(t, err)
	require.Len(t, appointments, 1)

	a := appointments[0]
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, StatusScheduled, a.Status)
	require.NotNil(t, a.PatientName)
	assert.Equal(t, "Maria", *a.PatientName)
	require.NotNil(t, a.SpecialtyName)
	assert.Equal(t, "Cardiology", *a.SpecialtyName)
	assert.Nil(t, a.PaymentMethodName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentForcesScheduled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	when := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO citas").
		WithArgs(10, 20, when, 30, nil, nil, nil, nil, StatusScheduled).
		WillReturnResult(sqlmock.NewResult(5, 1))

	a := Appointment{
		PatientID:       10,
		DoctorID:        20,
		DateTime:        when,
		DurationMinutes: 30,
		Status:          StatusCompleted,
	}
	require.NoError(t, CreateAppointment(db, &a))
	assert.Equal(t, 5, a.ID)
	assert.Equal(t, StatusScheduled, a.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAppointmentNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM citas").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, DeleteAppointment(db, 99), ErrNotFound)
}
