package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/innboard/innboard/internal/config"
	"github.com/innboard/innboard/internal/database"
	"github.com/innboard/innboard/internal/database/repository"
	"github.com/innboard/innboard/internal/logging"
	"github.com/innboard/innboard/internal/service"
	"github.com/innboard/innboard/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
			log.Fatalf("mkdir log dir: %v", err)
		}
	}
	logger, err := logging.New(cfg.Log.Path)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open()
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}

	// repositories
	propRepo := repository.NewPropertyRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	guestRepo := repository.NewGuestRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	modeRepo := repository.NewPaymentModeRepo(db)
	acctRepo := repository.NewPaymentAccountRepo(db)
	integrationRepo := repository.NewIntegrationRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	saasRepo := repository.NewSaaSRepo(db)

	importer := &service.ImportService{
		Properties: propRepo,
		Rooms:      roomRepo,
		Guests:     guestRepo,
		Bookings:   bookingRepo,
		Audit:      auditRepo,
		Log:        logger,
	}
	reports := &service.ReportsService{DB: db}

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		logger.Sugar().Warnf("using local timezone, load failed: %v", err)
		loc = time.Local
	}

	p := tea.NewProgram(tui.New(ctx, cfg, logger,
		tui.Repos{
			Properties:      propRepo,
			Rooms:           roomRepo,
			Guests:          guestRepo,
			Bookings:        bookingRepo,
			Users:           userRepo,
			PaymentModes:    modeRepo,
			PaymentAccounts: acctRepo,
			Integrations:    integrationRepo,
			Audit:           auditRepo,
			SaaS:            saasRepo,
		},
		tui.Services{Importer: importer, Reports: reports},
		loc,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
