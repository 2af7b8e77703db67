package models

import (
	"database/sql"
	"time"
)

type Patient struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Surname          string    `json:"surname"`
	Email            string    `json:"email"`
	Phone            *string   `json:"phone,omitempty"`
	BirthDate        *string   `json:"birth_date,omitempty"`
	Gender           *string   `json:"gender,omitempty"`
	Address          *string   `json:"address,omitempty"`
	IdentityDocument string    `json:"identity_document"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

const patientColumns = `id, nombre, apellido, email, telefono, fecha_nacimiento,
        genero, direccion, documento_identidad, activo, created_at`

func scanPatient(s interface{ Scan(...interface{}) error }) (*Patient, error) {
	var p Patient
	var phone, gender, address, document sql.NullString
	var birthDate sql.NullTime
	err := s.Scan(&p.ID, &p.Name, &p.Surname, &p.Email, &phone, &birthDate,
		&gender, &address, &document, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if document.Valid {
		p.IdentityDocument = document.String
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	if birthDate.Valid {
		d := birthDate.Time.Format("2006-01-02")
		p.BirthDate = &d
	}
	if gender.Valid {
		p.Gender = &gender.String
	}
	if address.Valid {
		p.Address = &address.String
	}
	return &p, nil
}

func GetAllPatients(db SQLExecutor) ([]Patient, error) {
	rows, err := db.Query(`SELECT ` + patientColumns + `
        FROM pacientes ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := []Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, *p)
	}
	return patients, rows.Err()
}

func GetPatientByID(db SQLExecutor, id int) (*Patient, error) {
	p, err := scanPatient(db.QueryRow(`SELECT `+patientColumns+`
        FROM pacientes WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

// GetPatientIDByEmail resolves a patient for the import pipeline.
func GetPatientIDByEmail(db SQLExecutor, email string) (int, error) {
	var id int
	err := db.QueryRow(`SELECT id FROM pacientes WHERE email = ?`, email).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return id, err
}

func CountPatients(db SQLExecutor) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM pacientes`).Scan(&count)
	return count, err
}

// CreatePatient inserts a new patient with the active flag forced true. An
// absent identity document is stored as NULL so the unique index only binds
// patients that actually carry one.
func CreatePatient(db SQLExecutor, p *Patient) error {
	res, err := db.Exec(`INSERT INTO pacientes
        (nombre, apellido, email, telefono, fecha_nacimiento, genero, direccion,
         documento_identidad, activo)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, true)`,
		p.Name, p.Surname, p.Email, p.Phone, p.BirthDate, p.Gender, p.Address,
		nullIfEmpty(p.IdentityDocument))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	p.Active = true
	return nil
}

func UpdatePatient(db SQLExecutor, p *Patient) error {
	_, err := db.Exec(`UPDATE pacientes
        SET nombre = ?, apellido = ?, email = ?, telefono = ?,
            fecha_nacimiento = ?, genero = ?, direccion = ?,
            documento_identidad = ?, activo = ?
        WHERE id = ?`,
		p.Name, p.Surname, p.Email, p.Phone, p.BirthDate, p.Gender, p.Address,
		nullIfEmpty(p.IdentityDocument), p.Active, p.ID)
	return err
}

func DeletePatient(db SQLExecutor, id int) error {
	res, err := db.Exec(`DELETE FROM pacientes WHERE id = ?`, id)
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
