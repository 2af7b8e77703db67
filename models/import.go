package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ImportKind is the closed set of entity types a bulk-import file may target.
type ImportKind int

const (
	ImportUnknown ImportKind = iota
	ImportPatients
	ImportDoctors
	ImportAppointments
)

// ParseImportKind maps the request's type tag onto the enum. Unknown tags map
// to ImportUnknown; the pipeline reports them per row instead of rejecting
// the request.
func ParseImportKind(tag string) ImportKind {
	switch tag {
	case "patients":
		return ImportPatients
	case "doctors":
		return ImportDoctors
	case "appointments":
		return ImportAppointments
	default:
		return ImportUnknown
	}
}

// Row is one record of an uploaded file, keyed by lower-cased header name.
type Row map[string]string

// Get returns the named field, empty when absent.
func (r Row) Get(key string) string {
	return r[key]
}

// ImportResult aggregates a bulk import: rows inserted and the error for
// every row that failed. Failures never abort the batch.
type ImportResult struct {
	Inserted int
	Errors   []string
}

const defaultAppointmentDuration = 30

// ImportRows runs the bulk-import loop: each row gets at most one insert
// attempt, each failure is recorded with the row's raw values, and the loop
// always continues to the next row. Rows are their own implicit transactions;
// there is no multi-row atomicity.
func ImportRows(db SQLExecutor, typeTag string, rows []Row) ImportResult {
	kind := ParseImportKind(typeTag)

	var res ImportResult
	for _, row := range rows {
		var err error
		switch kind {
		case ImportPatients:
			err = importPatientRow(db, row)
		case ImportDoctors:
			err = importDoctorRow(db, row)
		case ImportAppointments:
			err = importAppointmentRow(db, row)
		case ImportUnknown:
			res.Errors = append(res.Errors,
				fmt.Sprintf("unsupported data type: %s", typeTag))
			continue
		}
		if err != nil {
			res.Errors = append(res.Errors, describeRowError(row, err))
			continue
		}
		res.Inserted++
	}
	return res
}

func importPatientRow(db SQLExecutor, row Row) error {
	_, err := db.Exec(`INSERT INTO pacientes
        (nombre, apellido, email, telefono, fecha_nacimiento, genero, direccion,
         documento_identidad, activo)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, true)`,
		row.Get("name"), row.Get("surname"), row.Get("email"),
		nullIfEmpty(row.Get("phone")), nullIfEmpty(row.Get("birth_date")),
		nullIfEmpty(row.Get("gender")), nullIfEmpty(row.Get("address")),
		nullIfEmpty(row.Get("identity_document")))
	return err
}

// importDoctorRow resolves the specialty by name, creating it when the
// lookup misses. Two concurrent imports can both miss; the store's unique
// index turns the loser's insert into a row-level error.
func importDoctorRow(db SQLExecutor, row Row) error {
	var specialtyID *int
	if name := row.Get("specialty"); name != "" {
		specialty, err := GetSpecialtyByName(db, name)
		switch {
		case err == nil:
			specialtyID = &specialty.ID
		case errors.Is(err, ErrNotFound):
			created := Specialty{Name: name}
			if err := CreateSpecialty(db, &created); err != nil {
				return err
			}
			specialtyID = &created.ID
		default:
			return err
		}
	}

	_, err := db.Exec(`INSERT INTO medicos
        (nombre, apellido, email, telefono, especialidad_id, licencia_medica, activo)
        VALUES (?, ?, ?, ?, ?, ?, true)`,
		row.Get("name"), row.Get("surname"), row.Get("email"),
		nullIfEmpty(row.Get("phone")), specialtyID, row.Get("license_number"))
	return err
}

// importAppointmentRow resolves both foreign keys by email. Either miss
// skips the row without attempting an insert.
func importAppointmentRow(db SQLExecutor, row Row) error {
	patientEmail := row.Get("patient_email")
	doctorEmail := row.Get("doctor_email")

	patientID, perr := GetPatientIDByEmail(db, patientEmail)
	doctorID, derr := GetDoctorIDByEmail(db, doctorEmail)
	if errors.Is(perr, ErrNotFound) || errors.Is(derr, ErrNotFound) {
		return fmt.Errorf("appointment: patient or doctor not found for %s - %s",
			patientEmail, doctorEmail)
	}
	if perr != nil {
		return perr
	}
	if derr != nil {
		return derr
	}

	duration := defaultAppointmentDuration
	if v := row.Get("duration_minutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid duration_minutes %q", v)
		}
		duration = n
	}

	var amount interface{}
	if v := row.Get("amount"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", v)
		}
		amount = f
	}

	_, err := db.Exec(`INSERT INTO citas
        (paciente_id, medico_id, fecha_cita, duracion_minutos, motivo_consulta,
         monto, estado)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		patientID, doctorID, row.Get("datetime"), duration,
		nullIfEmpty(row.Get("reason")), amount, StatusScheduled)
	return err
}

// describeRowError includes the offending row's raw field values so the
// caller can locate the record in the source file.
func describeRowError(row Row, err error) string {
	raw, marshalErr := json.Marshal(row)
	if marshalErr != nil {
		return fmt.Sprintf("error in row: %v", err)
	}
	return fmt.Sprintf("error in row %s: %v", raw, err)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
