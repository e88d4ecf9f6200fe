package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	adapthttp "rollcall/internal/adapter/http"
	"rollcall/internal/adapter/memory"
	"rollcall/internal/adapter/postgres"
	"rollcall/internal/app"
	"rollcall/internal/config"
	"rollcall/internal/domain"
)

func main() {
	configPath := flag.String("config", os.Getenv("ROLLCALL_CONFIG"), "path to YAML config file")
	dev := flag.Bool("dev", false, "run against the in-memory store")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var (
		students domain.StudentRepository
		records  domain.AttendanceRepository
		sessions domain.SessionRepository
	)
	if *dev {
		mem := memory.New()
		students, records, sessions = mem, mem, mem.NewSessionRepo()
		log.Print("using in-memory store; data will not survive a restart")
	} else {
		if cfg.DatabaseURL == "" {
			log.Fatal("database_url is required (or run with -dev)")
		}
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()
		students, records, sessions = db, db, postgres.NewSessionRepo(db)
	}

	authSvc := app.NewAuthService(students, sessions, cfg.Lifetime())
	attendanceSvc := app.NewAttendanceService(records, cfg.Attendance.WindowDays, cfg.Attendance.Threshold)

	sso, err := adapthttp.NewOIDC(context.Background(), cfg.SSO)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	h := adapthttp.New(authSvc, attendanceSvc, sso, cfg.WebDir, cfg.Lifetime()).Handler()
	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
