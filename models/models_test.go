package models

import (
	"database/sql"
	"time"
)

func errNoRows() error {
	return sql.ErrNoRows
}

func sampleTime() time.Time {
	return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
}
