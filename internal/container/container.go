package container

import (
	"notes-api/internal/config"
	"notes-api/internal/repository"
	"notes-api/internal/service"
	"notes-api/internal/session"
	"notes-api/internal/verifier"
	"notes-api/pkg/database"
	"notes-api/pkg/logger"
	"notes-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.PostgresDB
	RedisClient *redis.Client
	Sessions    *session.Service
	Services    *service.Services
}

// New creates a new dependency injection container. Redis is optional: when
// no URL is configured, or the connection fails, the services run without
// caching.
func New(cfg *config.Config, log *logger.Logger, db *database.PostgresDB) (*Container, error) {
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	sessions := session.NewService(cfg.JWTSecret, cfg.JWTExpiresIn, log)

	var oauth service.CodeExchanger
	if cfg.OAuthFlowEnabled() {
		oauth = verifier.NewOAuthFlow(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, log)
		log.Info("Google OAuth code flow enabled")
	}

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	userService := service.NewUserService(userRepo, redisClient, log)
	noteService := service.NewNoteService(noteRepo, redisClient, log)
	authService := service.NewAuthService(
		verifier.NewVerifier(cfg.GoogleClientID, log),
		oauth,
		userService,
		sessions,
		log,
	)

	return &Container{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		RedisClient: redisClient,
		Sessions:    sessions,
		Services: &service.Services{
			Auth:  authService,
			Users: userService,
			Notes: noteService,
		},
	}, nil
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Services.Auth
}

// GetUserService returns the user service
func (c *Container) GetUserService() service.UserService {
	return c.Services.Users
}

// GetNoteService returns the note service
func (c *Container) GetNoteService() service.NoteService {
	return c.Services.Notes
}

// GetSessions returns the session service
func (c *Container) GetSessions() *session.Service {
	return c.Sessions
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}
