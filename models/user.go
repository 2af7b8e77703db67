package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetActiveUserByUsername looks up an account eligible to log in. Disabled
// accounts are indistinguishable from missing ones.
func GetActiveUserByUsername(db SQLExecutor, username string) (*User, error) {
	var u User
	err := db.QueryRow(`SELECT id, username, email, password_hash, rol, activo, created_at
        FROM usuarios WHERE username = ? AND activo = true`, username).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(db SQLExecutor, u *User) error {
	res, err := db.Exec(`INSERT INTO usuarios (username, email, password_hash, rol, activo)
        VALUES (?, ?, ?, ?, true)`, u.Username, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = int(id)
	u.Active = true
	return nil
}
