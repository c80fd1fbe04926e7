package app

import (
	"net/http"

	"foodshare-go/internal/auth"
	"foodshare-go/internal/config"
	"foodshare-go/internal/db"
	carouseldomain "foodshare-go/internal/domain/carousel"
	donationdomain "foodshare-go/internal/domain/donation"
	statsdomain "foodshare-go/internal/domain/stats"
	userdomain "foodshare-go/internal/domain/user"
	carouselrepo "foodshare-go/internal/repository/postgres/carousel"
	donationrepo "foodshare-go/internal/repository/postgres/donation"
	statsrepo "foodshare-go/internal/repository/postgres/stats"
	userrepo "foodshare-go/internal/repository/postgres/user"
	"foodshare-go/internal/transport/httpserver"
	"foodshare-go/internal/transport/httpserver/handler"
	"foodshare-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg := config.Load(log)

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokens(cfg.Auth)
	if err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn), tokens)
	donations := donationdomain.NewService(donationrepo.NewPostgres(dbConn))
	carousel := carouseldomain.NewService(carouselrepo.NewPostgres(dbConn))
	stats := statsdomain.NewService(statsrepo.NewPostgres(dbConn))

	handlers := handler.New(users, donations, carousel, stats, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, tokens)

	return &App{
		cfg:        cfg,
		httpServer: httpserver.New(cfg, router),
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
