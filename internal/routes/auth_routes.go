package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"github.com/Oasis-NEU/s26-group-3/internal/auth"
	"github.com/Oasis-NEU/s26-group-3/internal/config"
	"github.com/Oasis-NEU/s26-group-3/internal/handlers"
	"github.com/Oasis-NEU/s26-group-3/internal/services"
)

func RegisterAuthRoutes(router chi.Router, db *sql.DB, cfg *config.Config, tokens *auth.TokenCodec) {
	mailer := &services.SMTPSender{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPassword,
		From:   cfg.SMTPFrom,
		UseTLS: cfg.SMTPUseTLS,
	}
	authHandler := handlers.NewAuthHandler(db, cfg, tokens, mailer)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
	})
}
