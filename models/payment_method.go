package models

import (
	"database/sql"
	"time"
)

type PaymentMethod struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func GetAllPaymentMethods(db SQLExecutor) ([]PaymentMethod, error) {
	rows, err := db.Query(`SELECT id, nombre, descripcion, activo, created_at
        FROM metodos_pago ORDER BY nombre ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	methods := []PaymentMethod{}
	for rows.Next() {
		var m PaymentMethod
		var desc sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &desc, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			m.Description = &desc.String
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}

func GetPaymentMethodByID(db SQLExecutor, id int) (*PaymentMethod, error) {
	var m PaymentMethod
	var desc sql.NullString
	err := db.QueryRow(`SELECT id, nombre, descripcion, activo, created_at
        FROM metodos_pago WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &desc, &m.Active, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		m.Description = &desc.String
	}
	return &m, nil
}

// CreatePaymentMethod inserts a new method with the active flag forced true.
func CreatePaymentMethod(db SQLExecutor, m *PaymentMethod) error {
	res, err := db.Exec(`INSERT INTO metodos_pago (nombre, descripcion, activo)
        VALUES (?, ?, true)`, m.Name, m.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = int(id)
	m.Active = true
	return nil
}

func UpdatePaymentMethod(db SQLExecutor, m *PaymentMethod) error {
	_, err := db.Exec(`UPDATE metodos_pago
        SET nombre = ?, descripcion = ?, activo = ?
        WHERE id = ?`, m.Name, m.Description, m.Active, m.ID)
	return err
}

func DeletePaymentMethod(db SQLExecutor, id int) error {
	res, err := db.Exec(`DELETE FROM metodos_pago WHERE id = ?`, id)
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
