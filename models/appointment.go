package models

import (
	"database/sql"
	"time"
)

// Appointment status values. The server never enforces transitions; status
// changes only through explicit updates.
const (
	StatusScheduled  = "scheduled"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type Appointment struct {
	ID                int       `json:"id"`
	PatientID         int       `json:"patient_id"`
	DoctorID          int       `json:"doctor_id"`
	DateTime          time.Time `json:"datetime"`
	DurationMinutes   int       `json:"duration_minutes"`
	Reason            *string   `json:"reason,omitempty"`
	Status            string    `json:"status"`
	PaymentMethodID   *int      `json:"payment_method_id"`
	Amount            *float64  `json:"amount,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	PatientName       *string   `json:"patient_name,omitempty"`
	PatientSurname    *string   `json:"patient_surname,omitempty"`
	DoctorName        *string   `json:"doctor_name,omitempty"`
	DoctorSurname     *string   `json:"doctor_surname,omitempty"`
	SpecialtyName     *string   `json:"specialty_name,omitempty"`
	PaymentMethodName *string   `json:"payment_method_name,omitempty"`
}

const appointmentSelect = `SELECT c.id, c.paciente_id, c.medico_id, c.fecha_cita,
        c.duracion_minutos, c.motivo_consulta, c.estado, c.metodo_pago_id,
        c.monto, c.notas, c.created_at,
        p.nombre AS paciente_nombre, p.apellido AS paciente_apellido,
        m.nombre AS medico_nombre, m.apellido AS medico_apellido,
        e.nombre AS especialidad_nombre,
        mp.nombre AS metodo_pago_nombre
        FROM citas c
        LEFT JOIN pacientes p ON c.paciente_id = p.id
        LEFT JOIN medicos m ON c.medico_id = m.id
        LEFT JOIN especialidades e ON m.especialidad_id = e.id
        LEFT JOIN metodos_pago mp ON c.metodo_pago_id = mp.id`

func scanAppointment(s interface{ Scan(...interface{}) error }) (*Appointment, error) {
	var a Appointment
	var reason, notes sql.NullString
	var paymentMethodID sql.NullInt64
	var amount sql.NullFloat64
	var patientName, patientSurname, doctorName, doctorSurname sql.NullString
	var specialtyName, paymentMethodName sql.NullString
	err := s.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.DateTime,
		&a.DurationMinutes, &reason, &a.Status, &paymentMethodID,
		&amount, &notes, &a.CreatedAt,
		&patientName, &patientSurname, &doctorName, &doctorSurname,
		&specialtyName, &paymentMethodName)
	if err != nil {
		return nil, err
	}
	if reason.Valid {
		a.Reason = &reason.String
	}
	if paymentMethodID.Valid {
		id := int(paymentMethodID.Int64)
		a.PaymentMethodID = &id
	}
	if amount.Valid {
		a.Amount = &amount.Float64
	}
	if notes.Valid {
		a.Notes = &notes.String
	}
	if patientName.Valid {
		a.PatientName = &patientName.String
	}
	if patientSurname.Valid {
		a.PatientSurname = &patientSurname.String
	}
	if doctorName.Valid {
		a.DoctorName = &doctorName.String
	}
	if doctorSurname.Valid {
		a.DoctorSurname = &doctorSurname.String
	}
	if specialtyName.Valid {
		a.SpecialtyName = &specialtyName.String
	}
	if paymentMethodName.Valid {
		a.PaymentMethodName = &paymentMethodName.String
	}
	return &a, nil
}

func GetAllAppointments(db SQLExecutor) ([]Appointment, error) {
	rows, err := db.Query(appointmentSelect + ` ORDER BY c.fecha_cita DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := []Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *a)
	}
	return appointments, rows.Err()
}

// GetUpcomingAppointments returns the next ten non-cancelled appointments
// from the given day onward.
func GetUpcomingAppointments(db SQLExecutor, from time.Time) ([]Appointment, error) {
	rows, err := db.Query(appointmentSelect+`
        WHERE c.fecha_cita >= ? AND c.estado != ?
        ORDER BY c.fecha_cita ASC
        LIMIT 10`, from.Format("2006-01-02"), StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := []Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *a)
	}
	return appointments, rows.Err()
}

func GetAppointmentByID(db SQLExecutor, id int) (*Appointment, error) {
	a, err := scanAppointment(db.QueryRow(appointmentSelect+` WHERE c.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return a, err
}

func CountAppointments(db SQLExecutor) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM citas`).Scan(&count)
	return count, err
}

// CreateAppointment inserts a new appointment with status forced to
// "scheduled". Patient and doctor existence is left to the foreign keys.
func CreateAppointment(db SQLExecutor, a *Appointment) error {
	res, err := db.Exec(`INSERT INTO citas
        (paciente_id, medico_id, fecha_cita, duracion_minutos, motivo_consulta,
         metodo_pago_id, monto, notas, estado)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.PatientID, a.DoctorID, a.DateTime, a.DurationMinutes, a.Reason,
		a.PaymentMethodID, a.Amount, a.Notes, StatusScheduled)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = int(id)
	a.Status = StatusScheduled
	return nil
}

func UpdateAppointment(db SQLExecutor, a *Appointment) error {
	_, err := db.Exec(`UPDATE citas
        SET paciente_id = ?, medico_id = ?, fecha_cita = ?, duracion_minutos = ?,
            motivo_consulta = ?, metodo_pago_id = ?, monto = ?, notas = ?,
            estado = ?
        WHERE id = ?`,
		a.PatientID, a.DoctorID, a.DateTime, a.DurationMinutes, a.Reason,
		a.PaymentMethodID, a.Amount, a.Notes, a.Status, a.ID)
	return err
}

func DeleteAppointment(db SQLExecutor, id int) error {
	res, err := db.Exec(`DELETE FROM citas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
