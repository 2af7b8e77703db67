// Command seed loads a small demo data set so the console has something to
// show right after setup. It is idempotent: rerunning it leaves existing rows
// untouched.
package main

import (
	"database/sql"
	"time"

	log "github.com/sirupsen/logrus"

	"crudclinic/config"
)

type demoPatient struct {
	name, surname, email, phone, birthDate, gender, address, document string
}

type demoDoctor struct {
	name, surname, email, phone, specialty, license string
}

type demoAppointment struct {
	patientEmail, doctorEmail string
	daysAhead                 int
	hour                      int
	duration                  int
	reason                    string
	paymentMethod             string
	amount                    float64
}

var demoPatients = []demoPatient{
	{"Maria", "Gonzalez", "maria.gonzalez@example.com", "555-0101", "1985-03-12", "F", "Av. Central 120", "CC-1001"},
	{"Carlos", "Ramirez", "carlos.ramirez@example.com", "555-0102", "1990-07-25", "M", "Calle 45 #10", "CC-1002"},
	{"Lucia", "Fernandez", "lucia.fernandez@example.com", "555-0103", "1978-11-02", "F", "Carrera 8 #22", "CC-1003"},
	{"Andres", "Moreno", "andres.moreno@example.com", "555-0104", "2001-01-30", "M", "Av. Norte 34", "CC-1004"},
}

var demoDoctors = []demoDoctor{
	{"Laura", "Perez", "laura.perez@crudclinic.local", "555-0201", "Cardiology", "LIC-2001"},
	{"Jorge", "Salazar", "jorge.salazar@crudclinic.local", "555-0202", "Pediatrics", "LIC-2002"},
	{"Elena", "Vargas", "elena.vargas@crudclinic.local", "555-0203", "General Medicine", "LIC-2003"},
}

var demoAppointments = []demoAppointment{
	{"maria.gonzalez@example.com", "laura.perez@crudclinic.local", 1, 9, 30, "Chest pain follow-up", "Credit Card", 80},
	{"carlos.ramirez@example.com", "elena.vargas@crudclinic.local", 2, 10, 30, "Annual checkup", "Cash", 50},
	{"lucia.fernandez@example.com", "laura.perez@crudclinic.local", 3, 11, 45, "Blood pressure review", "Insurance", 0},
	{"andres.moreno@example.com", "jorge.salazar@crudclinic.local", 5, 15, 30, "Vaccination", "Cash", 25},
}

func main() {
	cfg := config.Load()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("could not connect to the database")
	}
	defer db.Close()

	log.Info("seeding demo data")

	seedPatients(db)
	seedDoctors(db)
	seedAppointments(db)

	log.Info("demo data loaded")
}

func seedPatients(db *sql.DB) {
	for _, p := range demoPatients {
		_, err := db.Exec(`INSERT IGNORE INTO pacientes
            (nombre, apellido, email, telefono, fecha_nacimiento, genero, direccion, documento_identidad, activo)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, true)`,
			p.name, p.surname, p.email, p.phone, p.birthDate, p.gender, p.address, p.document)
		if err != nil {
			log.WithError(err).Fatalf("seeding patient %s failed", p.email)
		}
	}
	log.Infof("%d patients ready", len(demoPatients))
}

func seedDoctors(db *sql.DB) {
	for _, d := range demoDoctors {
		_, err := db.Exec(`INSERT IGNORE INTO medicos
            (nombre, apellido, email, telefono, especialidad_id, licencia_medica, activo)
            VALUES (?, ?, ?, ?, (SELECT id FROM especialidades WHERE nombre = ?), ?, true)`,
			d.name, d.surname, d.email, d.phone, d.specialty, d.license)
		if err != nil {
			log.WithError(err).Fatalf("seeding doctor %s failed", d.email)
		}
	}
	log.Infof("%d doctors ready", len(demoDoctors))
}

func seedAppointments(db *sql.DB) {
	now := time.Now()
	for _, a := range demoAppointments {
		when := time.Date(now.Year(), now.Month(), now.Day(), a.hour, 0, 0, 0, time.Local).
			AddDate(0, 0, a.daysAhead)

		// Re-seeding must not duplicate appointments, so skip slots that
		// already exist for the same patient and time.
		var exists int
		err := db.QueryRow(`SELECT COUNT(*) FROM citas c
            JOIN pacientes p ON p.id = c.paciente_id
            WHERE p.email = ? AND c.fecha_cita = ?`, a.patientEmail, when).Scan(&exists)
		if err != nil {
			log.WithError(err).Fatal("checking existing appointments failed")
		}
		if exists > 0 {
			continue
		}

		_, err = db.Exec(`INSERT INTO citas
            (paciente_id, medico_id, fecha_cita, duracion_minutos, motivo_consulta, estado, metodo_pago_id, monto)
            VALUES (
                (SELECT id FROM pacientes WHERE email = ?),
                (SELECT id FROM medicos WHERE email = ?),
                ?, ?, ?, 'scheduled',
                (SELECT id FROM metodos_pago WHERE nombre = ?), ?)`,
			a.patientEmail, a.doctorEmail, when, a.duration, a.reason, a.paymentMethod, a.amount)
		if err != nil {
			log.WithError(err).Fatalf("seeding appointment for %s failed", a.patientEmail)
		}
	}
	log.Infof("%d appointments ready", len(demoAppointments))
}
