package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creatorum.org/internal/adminauth"
	"creatorum.org/internal/httpapi"
	"creatorum.org/internal/obs"
	"creatorum.org/internal/store/pg"
	"creatorum.org/internal/waitlist"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	// Waitlist entries live in the external database; administrator accounts
	// are in-process only and vanish on restart by design.
	var (
		store waitlist.Service
		probe httpapi.ReadyProbe
	)
	if dsn := os.Getenv("CREATORUM_PG_DSN"); dsn != "" {
		pgStore, err := pg.Open(dsn)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer pgStore.Close()
		store = pgStore
		probe = httpapi.ReadyProbe{DB: pgStore.DB()}
	} else {
		log.Println("CREATORUM_PG_DSN not set, using in-memory waitlist store")
		store = waitlist.NewInMemory()
	}

	auth := adminauth.NewService()
	if err := auth.SeedDefault(); err != nil {
		log.Fatalf("seed default admin: %v", err)
	}
	// The seeded account is a documented bootstrap convenience. Rotate it
	// immediately anywhere beyond local development.
	log.Printf("seeded bootstrap admin %s", auth.BootstrapCredentials().Email)

	api := httpapi.New(probe, version, auth, store)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting creatorum-api %s on %s", version, srv.Addr)

	// graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}
