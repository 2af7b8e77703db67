package models

import (
	"database/sql"
	"time"
)

type Specialty struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func GetAllSpecialties(db SQLExecutor) ([]Specialty, error) {
	rows, err := db.Query(`SELECT id, nombre, descripcion, created_at
        FROM especialidades ORDER BY nombre ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specialties := []Specialty{}
	for rows.Next() {
		var s Specialty
		var desc sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &desc, &s.CreatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			s.Description = &desc.String
		}
		specialties = append(specialties, s)
	}
	return specialties, rows.Err()
}

func GetSpecialtyByID(db SQLExecutor, id int) (*Specialty, error) {
	var s Specialty
	var desc sql.NullString
	err := db.QueryRow(`SELECT id, nombre, descripcion, created_at
        FROM especialidades WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &desc, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		s.Description = &desc.String
	}
	return &s, nil
}

// GetSpecialtyByName resolves a specialty by case-insensitive name.
func GetSpecialtyByName(db SQLExecutor, name string) (*Specialty, error) {
	var s Specialty
	var desc sql.NullString
	err := db.QueryRow(`SELECT id, nombre, descripcion, created_at
        FROM especialidades WHERE LOWER(nombre) = LOWER(?)`, name).
		Scan(&s.ID, &s.Name, &desc, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		s.Description = &desc.String
	}
	return &s, nil
}

func CreateSpecialty(db SQLExecutor, s *Specialty) error {
	res, err := db.Exec(`INSERT INTO especialidades (nombre, descripcion)
        VALUES (?, ?)`, s.Name, s.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = int(id)
	return nil
}

func UpdateSpecialty(db SQLExecutor, s *Specialty) error {
	_, err := db.Exec(`UPDATE especialidades SET nombre = ?, descripcion = ?
        WHERE id = ?`, s.Name, s.Description, s.ID)
	return err
}

func DeleteSpecialty(db SQLExecutor, id int) error {
	res, err := db.Exec(`DELETE FROM especialidades WHERE id = ?`, id)
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

// CountDoctorsBySpecialty tells whether a specialty may be deleted.
func CountDoctorsBySpecialty(db SQLExecutor, id int) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM medicos WHERE especialidad_id = ?`, id).
		Scan(&count)
	return count, err
}
