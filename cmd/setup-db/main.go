// Command setup-db drops and recreates the CrudClinic schema, then seeds the
// admin account and the reference specialties and payment methods.
package main

import (
	"database/sql"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"crudclinic/config"
	"crudclinic/models"
)

var dropStatements = []string{
	`DROP TABLE IF EXISTS citas`,
	`DROP TABLE IF EXISTS medicos`,
	`DROP TABLE IF EXISTS pacientes`,
	`DROP TABLE IF EXISTS usuarios`,
	`DROP TABLE IF EXISTS metodos_pago`,
	`DROP TABLE IF EXISTS especialidades`,
}

var createStatements = []string{
	`CREATE TABLE especialidades (
        id INT AUTO_INCREMENT PRIMARY KEY,
        nombre VARCHAR(100) NOT NULL UNIQUE,
        descripcion TEXT,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    ) ENGINE=InnoDB`,

	`CREATE TABLE metodos_pago (
        id INT AUTO_INCREMENT PRIMARY KEY,
        nombre VARCHAR(100) NOT NULL UNIQUE,
        descripcion TEXT,
        activo BOOLEAN NOT NULL DEFAULT TRUE,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    ) ENGINE=InnoDB`,

	`CREATE TABLE usuarios (
        id INT AUTO_INCREMENT PRIMARY KEY,
        username VARCHAR(50) NOT NULL UNIQUE,
        email VARCHAR(100) NOT NULL UNIQUE,
        password_hash VARCHAR(255) NOT NULL,
        rol VARCHAR(20) NOT NULL DEFAULT 'user',
        activo BOOLEAN NOT NULL DEFAULT TRUE,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    ) ENGINE=InnoDB`,

	`CREATE TABLE medicos (
        id INT AUTO_INCREMENT PRIMARY KEY,
        nombre VARCHAR(100) NOT NULL,
        apellido VARCHAR(100) NOT NULL,
        email VARCHAR(100) NOT NULL UNIQUE,
        telefono VARCHAR(20),
        especialidad_id INT,
        licencia_medica VARCHAR(50) NOT NULL UNIQUE,
        activo BOOLEAN NOT NULL DEFAULT TRUE,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
        FOREIGN KEY (especialidad_id) REFERENCES especialidades(id)
    ) ENGINE=InnoDB`,

	`CREATE TABLE pacientes (
        id INT AUTO_INCREMENT PRIMARY KEY,
        nombre VARCHAR(100) NOT NULL,
        apellido VARCHAR(100) NOT NULL,
        email VARCHAR(100) NOT NULL UNIQUE,
        telefono VARCHAR(20),
        fecha_nacimiento DATE,
        genero VARCHAR(10),
        direccion TEXT,
        documento_identidad VARCHAR(20) UNIQUE,
        activo BOOLEAN NOT NULL DEFAULT TRUE,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    ) ENGINE=InnoDB`,

	`CREATE TABLE citas (
        id INT AUTO_INCREMENT PRIMARY KEY,
        paciente_id INT NOT NULL,
        medico_id INT NOT NULL,
        fecha_cita DATETIME NOT NULL,
        duracion_minutos INT NOT NULL DEFAULT 30,
        motivo_consulta TEXT,
        estado ENUM('scheduled','confirmed','in_progress','completed','cancelled')
            NOT NULL DEFAULT 'scheduled',
        metodo_pago_id INT,
        monto DECIMAL(10,2),
        notas TEXT,
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
        FOREIGN KEY (paciente_id) REFERENCES pacientes(id),
        FOREIGN KEY (medico_id) REFERENCES medicos(id),
        FOREIGN KEY (metodo_pago_id) REFERENCES metodos_pago(id)
    ) ENGINE=InnoDB`,
}

var referenceSpecialties = []string{
	"General Medicine", "Cardiology", "Dermatology", "Gynecology", "Pediatrics",
}

var referencePaymentMethods = []string{
	"Cash", "Credit Card", "Debit Card", "Insurance",
}

func main() {
	cfg := config.Load()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("could not connect to the database")
	}
	defer db.Close()

	log.Info("setting up the CrudClinic database")

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			log.WithError(err).Fatal("dropping tables failed")
		}
	}
	for _, stmt := range createStatements {
		if _, err := db.Exec(stmt); err != nil {
			log.WithError(err).Fatal("creating tables failed")
		}
	}
	log.Info("tables created")

	seedReferenceData(db)
	seedAdminUser(db)

	log.Info("database configured successfully")
	log.Info("admin account: admin / admin123")
}

func seedReferenceData(db *sql.DB) {
	for _, name := range referenceSpecialties {
		if _, err := db.Exec(
			`INSERT IGNORE INTO especialidades (nombre) VALUES (?)`, name); err != nil {
			log.WithError(err).Fatalf("seeding specialty %s failed", name)
		}
	}
	for _, name := range referencePaymentMethods {
		if _, err := db.Exec(
			`INSERT IGNORE INTO metodos_pago (nombre, activo) VALUES (?, true)`, name); err != nil {
			log.WithError(err).Fatalf("seeding payment method %s failed", name)
		}
	}
	log.Info("reference data inserted")
}

func seedAdminUser(db *sql.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("hashing admin password failed")
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@crudclinic.local",
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := models.CreateUser(db, &admin); err != nil {
		if models.IsDuplicateEntry(err) {
			log.Info("admin account already exists")
			return
		}
		log.WithError(err).Fatal("creating admin account failed")
	}
	log.Info("admin account created")
}
