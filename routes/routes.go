package routes

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"crudclinic/config"
	"crudclinic/controllers"
	"crudclinic/utils"
)

// SetupRoutes registers the API on router and returns the CORS-wrapped
// handler. All routes are public; auth endpoints exist for the console login
// flow, not as a gate on the API.
func SetupRoutes(router *mux.Router, db *sql.DB, cfg config.Config) http.Handler {
	sessionStore := utils.NewSessionStore(cfg.SessionSecret, cfg.SessionMaxAge)

	health := controllers.NewHealthController(cfg.Environment)
	auth := controllers.NewAuthController(db, sessionStore, cfg.JWTSecret, cfg.JWTExpiry)
	patients := controllers.NewPatientController(db)
	doctors := controllers.NewDoctorController(db)
	appointments := controllers.NewAppointmentController(db)
	specialties := controllers.NewSpecialtyController(db)
	paymentMethods := controllers.NewPaymentMethodController(db)
	upload := controllers.NewUploadController(db, cfg.UploadDir, cfg.MaxUploadSize)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", health.Health).Methods("GET")

	// Auth routes
	api.HandleFunc("/auth/login", auth.Login).Methods("POST")
	api.HandleFunc("/auth/logout", auth.Logout).Methods("POST")
	api.HandleFunc("/auth/me", auth.Me).Methods("GET")
	api.HandleFunc("/auth/verify", auth.Verify).Methods("GET")

	// Patient routes
	api.HandleFunc("/patients", patients.List).Methods("GET")
	api.HandleFunc("/patients", patients.Create).Methods("POST")
	api.HandleFunc("/patients/count", patients.Count).Methods("GET")
	api.HandleFunc("/patients/{id:[0-9]+}", patients.Get).Methods("GET")
	api.HandleFunc("/patients/{id:[0-9]+}", patients.Update).Methods("PUT")
	api.HandleFunc("/patients/{id:[0-9]+}", patients.Delete).Methods("DELETE")

	// Doctor routes
	api.HandleFunc("/doctors", doctors.List).Methods("GET")
	api.HandleFunc("/doctors", doctors.Create).Methods("POST")
	api.HandleFunc("/doctors/count", doctors.Count).Methods("GET")
	api.HandleFunc("/doctors/{id:[0-9]+}", doctors.Get).Methods("GET")
	api.HandleFunc("/doctors/{id:[0-9]+}", doctors.Update).Methods("PUT")
	api.HandleFunc("/doctors/{id:[0-9]+}", doctors.Delete).Methods("DELETE")

	// Appointment routes
	api.HandleFunc("/appointments", appointments.List).Methods("GET")
	api.HandleFunc("/appointments", appointments.Create).Methods("POST")
	api.HandleFunc("/appointments/count", appointments.Count).Methods("GET")
	api.HandleFunc("/appointments/upcoming", appointments.Upcoming).Methods("GET")
	api.HandleFunc("/appointments/{id:[0-9]+}", appointments.Get).Methods("GET")
	api.HandleFunc("/appointments/{id:[0-9]+}", appointments.Update).Methods("PUT")
	api.HandleFunc("/appointments/{id:[0-9]+}", appointments.Delete).Methods("DELETE")

	// Specialty routes
	api.HandleFunc("/specialties", specialties.List).Methods("GET")
	api.HandleFunc("/specialties", specialties.Create).Methods("POST")
	api.HandleFunc("/specialties/{id:[0-9]+}", specialties.Get).Methods("GET")
	api.HandleFunc("/specialties/{id:[0-9]+}", specialties.Update).Methods("PUT")
	api.HandleFunc("/specialties/{id:[0-9]+}", specialties.Delete).Methods("DELETE")

	// Payment method routes
	api.HandleFunc("/payment-methods", paymentMethods.List).Methods("GET")
	api.HandleFunc("/payment-methods", paymentMethods.Create).Methods("POST")
	api.HandleFunc("/payment-methods/{id:[0-9]+}", paymentMethods.Get).Methods("GET")
	api.HandleFunc("/payment-methods/{id:[0-9]+}", paymentMethods.Update).Methods("PUT")
	api.HandleFunc("/payment-methods/{id:[0-9]+}", paymentMethods.Delete).Methods("DELETE")

	// Bulk import routes
	api.HandleFunc("/upload/csv", upload.UploadCSV).Methods("POST")
	api.HandleFunc("/upload/excel", upload.UploadExcel).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Origin", "Accept"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
	})

	return c.Handler(router)
}
