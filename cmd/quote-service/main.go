package main

import (
	"fmt"
	"os"

	"github.com/skylinegeo/quote-service/internal/config"
	"github.com/skylinegeo/quote-service/internal/excel"
	"github.com/skylinegeo/quote-service/internal/geo"
	httphandler "github.com/skylinegeo/quote-service/internal/http"
	"github.com/skylinegeo/quote-service/internal/logger"
	"github.com/skylinegeo/quote-service/internal/model"
	"github.com/skylinegeo/quote-service/internal/notify"
	"github.com/skylinegeo/quote-service/internal/pdf"
	"github.com/skylinegeo/quote-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	serviceArea, err := geo.LoadServiceArea(cfg.Geo.ServiceAreaPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Geo.ServiceAreaPath).Msg("failed to load service area")
	}

	pdfGenerator := pdf.NewGenerator()
	excelGenerator := excel.NewGenerator()

	mailer := notify.NewMailer(notify.SMTPConfig{
		Host:       cfg.Notify.SMTP.Host,
		Port:       cfg.Notify.SMTP.Port,
		Username:   cfg.Notify.SMTP.Username,
		Password:   cfg.Notify.SMTP.Password,
		From:       cfg.Notify.SMTP.From,
		SalesInbox: cfg.Notify.SMTP.SalesInbox,
	}, pdfGenerator, excelGenerator, log)
	webhook := notify.NewWebhook(cfg.Notify.WebhookURL, log)

	depot := model.Coordinate{Lng: cfg.Depot.Lng, Lat: cfg.Depot.Lat}
	quoteService := service.NewQuoteService(serviceArea, depot, []service.Notifier{mailer, webhook}, log)

	handler := httphandler.NewHandler(quoteService, log)
	router := httphandler.NewRouter(handler, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting quote service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
