package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"github.com/Oasis-NEU/s26-group-3/internal/auth"
	"github.com/Oasis-NEU/s26-group-3/internal/handlers"
	appmiddleware "github.com/Oasis-NEU/s26-group-3/internal/middleware"
	"github.com/Oasis-NEU/s26-group-3/internal/repository"
)

func RegisterUserRoutes(router chi.Router, db *sql.DB, tokens *auth.TokenCodec) {
	userHandler := handlers.NewUserHandler(repository.NewUserRepository(db))

	router.Route("/users", func(r chi.Router) {
		r.Use(appmiddleware.JWTAuth(tokens))
		r.Get("/me", userHandler.Me)
	})
}
