package setup

import (
	"kanban/internal/config"
	"kanban/internal/handler"
	"kanban/internal/jwt"
	"kanban/internal/middleware"
	"kanban/internal/service"
	"kanban/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *middleware.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService)
	board := service.NewBoard(storage)
	card := service.NewCard(storage, cfg.Public.CardsPageLimit)

	h := handler.New(auth, board, card, cfg, storage)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: middleware.NewAuth(jwtService),
	}, nil
}
