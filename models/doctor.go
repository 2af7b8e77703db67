package models

import (
	"database/sql"
	"time"
)

type Doctor struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Surname       string    `json:"surname"`
	Email         string    `json:"email"`
	Phone         *string   `json:"phone,omitempty"`
	SpecialtyID   *int      `json:"specialty_id"`
	LicenseNumber string    `json:"license_number"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	SpecialtyName *string   `json:"specialty_name,omitempty"`
}

const doctorColumns = `m.id, m.nombre, m.apellido, m.email, m.telefono,
        m.especialidad_id, m.licencia_medica, m.activo, m.created_at,
        e.nombre AS especialidad_nombre`

func scanDoctor(s interface{ Scan(...interface{}) error }) (*Doctor, error) {
	var d Doctor
	var phone, specialtyName sql.NullString
	var specialtyID sql.NullInt64
	err := s.Scan(&d.ID, &d.Name, &d.Surname, &d.Email, &phone,
		&specialtyID, &d.LicenseNumber, &d.Active, &d.CreatedAt, &specialtyName)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		d.Phone = &phone.String
	}
	if specialtyID.Valid {
		id := int(specialtyID.Int64)
		d.SpecialtyID = &id
	}
	if specialtyName.Valid {
		d.SpecialtyName = &specialtyName.String
	}
	return &d, nil
}

func GetAllDoctors(db SQLExecutor) ([]Doctor, error) {
	rows, err := db.Query(`SELECT ` + doctorColumns + `
        FROM medicos m
        LEFT JOIN especialidades e ON m.especialidad_id = e.id
        ORDER BY m.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doctors := []Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, *d)
	}
	return doctors, rows.Err()
}

func GetDoctorByID(db SQLExecutor, id int) (*Doctor, error) {
	d, err := scanDoctor(db.QueryRow(`SELECT `+doctorColumns+`
        FROM medicos m
        LEFT JOIN especialidades e ON m.especialidad_id = e.id
        WHERE m.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return d, err
}

// GetDoctorIDByEmail resolves a doctor for the import pipeline.
func GetDoctorIDByEmail(db SQLExecutor, email string) (int, error) {
	var id int
	err := db.QueryRow(`SELECT id FROM medicos WHERE email = ?`, email).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return id, err
}

func CountDoctors(db SQLExecutor) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM medicos`).Scan(&count)
	return count, err
}

// CreateDoctor inserts a new doctor with the active flag forced true.
func CreateDoctor(db SQLExecutor, d *Doctor) error {
	res, err := db.Exec(`INSERT INTO medicos
        (nombre, apellido, email, telefono, especialidad_id, licencia_medica, activo)
        VALUES (?, ?, ?, ?, ?, ?, true)`,
		d.Name, d.Surname, d.Email, d.Phone, d.SpecialtyID, d.LicenseNumber)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = int(id)
	d.Active = true
	return nil
}

func UpdateDoctor(db SQLExecutor, d *Doctor) error {
	_, err := db.Exec(`UPDATE medicos
        SET nombre = ?, apellido = ?, email = ?, telefono = ?,
            especialidad_id = ?, licencia_medica = ?, activo = ?
        WHERE id = ?`,
		d.Name, d.Surname, d.Email, d.Phone, d.SpecialtyID, d.LicenseNumber,
		d.Active, d.ID)
	return err
}

func DeleteDoctor(db SQLExecutor, id int) error {
	res, err := db.Exec(`DELETE FROM medicos WHERE id = ?`, id)
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
