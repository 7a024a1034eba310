package container

import (
	"log/slog"

	"github.com/bikebay/server/internal/config"
	"github.com/bikebay/server/internal/helpers"
	"github.com/bikebay/server/internal/mailer"
	"github.com/bikebay/server/internal/models"
	"github.com/bikebay/server/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	MongoDBClient  *mongo.Client
	Repo           *models.MongodbRepo
	TokenSigner    *helpers.TokenSigner
	UserService    *services.UserService
	BikeService    *services.BikeService
	BookingService *services.BookingService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, cfg *config.Config, mongoDBClient *mongo.Client) *Container {
	repo := models.MongodbNewRepo(mongoDBClient)
	tokens := helpers.NewTokenSigner(cfg.JWTSecret)

	var m mailer.Mailer
	if cfg.SendgridAPIKey != "" {
		m = mailer.NewSendgridMailer(cfg.SendgridAPIKey, cfg.SendgridFromMail)
	} else {
		m = mailer.NewLogMailer(logger)
	}

	userService := services.NewUserService(repo, m, tokens, cfg.FrontendURL)
	bikeService := services.NewBikeService(repo)
	bookingService := services.NewBookingService(repo, repo)

	return &Container{
		Logger:         logger,
		MongoDBClient:  mongoDBClient,
		Repo:           repo,
		TokenSigner:    tokens,
		UserService:    userService,
		BikeService:    bikeService,
		BookingService: bookingService,
	}
}
