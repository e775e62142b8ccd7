package main

import (
	"log"
	"os"

	"github.com/droplet-hq/jibble-export/internal/cli"
	"github.com/droplet-hq/jibble-export/internal/client"
	"github.com/droplet-hq/jibble-export/internal/service"
	"github.com/droplet-hq/jibble-export/pkg/config"
	"github.com/droplet-hq/jibble-export/pkg/logger"
	"github.com/droplet-hq/jibble-export/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	store, err := storage.NewLocalStorage(cfg.ReportsDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init reports directory", "error", err)
	}

	api := client.New(client.Config{
		Domain:       cfg.Domain,
		IdentityHost: cfg.IdentityHost,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Timeout:      cfg.HTTPTimeout,
	}, logr)

	tracked := service.NewTrackedTimeService(api, logr)
	holidays := service.NewHolidayService(api, logr)
	timeOffs := service.NewTimeOffService(api, logr)
	clocking := service.NewClockingService(api, logr)
	reports := service.NewReportService(tracked, holidays, timeOffs, store,
		service.ReportConfig{CalendarName: cfg.HolidayCalendar}, logr, nil, nil, nil)

	app := &cli.App{
		Config:   cfg,
		Logger:   logr,
		Reports:  reports,
		Clocking: clocking,
		Holidays: holidays,
		Storage:  store,
	}

	if err := cli.NewRootCommand(app).Execute(); err != nil {
		os.Exit(1)
	}
}
