package app

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/jyutcollab/internal/infrastructure/config"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/server"
	"github.com/eslsoft/jyutcollab/internal/repository"
	"github.com/eslsoft/jyutcollab/internal/usecase"
	"github.com/eslsoft/jyutcollab/internal/usecase/backup"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Logger *logrus.Logger
	Server *server.Server
	Backup *backup.Service
}

// provideFieldLogger adapts the concrete logger to the interface the
// usecases consume.
func provideFieldLogger(logger *logrus.Logger) logrus.FieldLogger {
	return logger
}

func provideAuthUsecase(cfg *config.Config, users repository.UserRepository) usecase.AuthUsecase {
	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return usecase.NewAuthUsecase(users, cfg.Auth.Secret, ttl)
}

func provideTextConverter() usecase.TextConverter {
	return usecase.PassthroughConverter{}
}
