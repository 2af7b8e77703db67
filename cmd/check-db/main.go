// Command check-db verifies database connectivity and reports row counts per
// table. Useful as a quick smoke test after setup or deployment.
package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"crudclinic/config"
)

var tables = []string{
	"especialidades",
	"metodos_pago",
	"usuarios",
	"medicos",
	"pacientes",
	"citas",
}

func main() {
	cfg := config.Load()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	log.WithFields(log.Fields{
		"host":     cfg.DBHost,
		"port":     cfg.DBPort,
		"database": cfg.DBName,
	}).Info("connected")

	for _, table := range tables {
		var count int
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			log.WithError(err).Errorf("table %s is missing or unreadable", table)
			continue
		}
		log.Infof("%-15s %d rows", table, count)
	}
}
