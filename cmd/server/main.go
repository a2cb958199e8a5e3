package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"

	"ridesim/internal/api"
	"ridesim/internal/api/handlers"
	"ridesim/internal/config"
	"ridesim/internal/dispatch"
	"ridesim/internal/repository/memory"
	"ridesim/internal/repository/sqlite"
	"ridesim/internal/services"
)

// main is the application composition root: it wires the repositories,
// dispatcher, services and handlers together and starts the HTTP server.
func main() {
	cfg := config.Load()

	db, err := openDB(cfg.Database.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := sqlite.InitSchema(db); err != nil {
		log.Fatal(err)
	}

	riderRepo := memory.NewRiderRepository()
	driverRepo := memory.NewDriverRepository()
	runRepo := sqlite.NewRunRepository(db)
	dispatcher := dispatch.NewDispatcher()

	dispatchService := services.NewDispatchService(dispatcher, riderRepo, driverRepo, cfg)
	simulationService := services.NewSimulationService(runRepo)

	router := api.NewRouter(
		handlers.NewRiderHandler(dispatchService),
		handlers.NewDriverHandler(dispatchService),
		handlers.NewSimulationHandler(simulationService),
	)

	engine := gin.New()
	router.Setup(engine)

	log.Printf("Starting ridesim server on %s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func openDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}
