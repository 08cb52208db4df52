package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/config"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/handler"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/repository"
	"github.com/matanshamai/kassa-viral-fundraiser/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	// The original frontend served the share links from arbitrary origins.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
	}))

	accountRepo := repository.NewAccountRepository(db)
	donationRepo := repository.NewDonationRepository(db)

	accountSvc := service.NewAccountService(accountRepo)
	donationSvc := service.NewDonationService(donationRepo, accountRepo)
	summarySvc := service.NewSummaryService(accountRepo, donationRepo)

	authHandler := handler.NewAuthHandler(accountSvc, cfg.PublicBaseURL)
	donationHandler := handler.NewDonationHandler(donationSvc)
	summaryHandler := handler.NewSummaryHandler(summarySvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/auth/login", authHandler.Login)
	e.GET("/accounts/:id", authHandler.GetAccount)
	e.POST("/donations", donationHandler.Create)
	e.GET("/donations/:userId", donationHandler.ListByAccount)
	e.GET("/summary/:userId", summaryHandler.Get)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
