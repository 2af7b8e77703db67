package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"crudclinic/config"
	"crudclinic/routes"
)

// spaHandler serves the browser console: static assets when they exist,
// index.html for everything else so client-side routing works.
type spaHandler struct {
	staticDir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}

func main() {
	cfg := config.Load()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("could not connect to the database")
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.WithError(err).Fatal("could not create upload directory")
	}

	router := mux.NewRouter()
	handler := routes.SetupRoutes(router, db, cfg)
	router.PathPrefix("/").Handler(spaHandler{staticDir: "static"})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
		// Generous timeouts so large import uploads survive.
		ReadTimeout:       300 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 60 * time.Second,
	}

	go func() {
		log.Infof("CrudClinic API running on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server is shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("server stopped")
}
