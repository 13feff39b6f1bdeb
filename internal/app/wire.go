//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/jyutcollab/internal/adapter/ai"
	"github.com/eslsoft/jyutcollab/internal/adapter/httpapi"
	adapterrepo "github.com/eslsoft/jyutcollab/internal/adapter/repository"
	"github.com/eslsoft/jyutcollab/internal/editor"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/config"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/database"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/server"
	"github.com/eslsoft/jyutcollab/internal/taxonomy"
	"github.com/eslsoft/jyutcollab/internal/usecase"
	"github.com/eslsoft/jyutcollab/internal/usecase/backup"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.Connect,
)

var repositorySet = wire.NewSet(
	adapterrepo.NewEntryRepository,
	adapterrepo.NewUserRepository,
	adapterrepo.NewHistoryRepository,
)

var usecaseSet = wire.NewSet(
	provideTextConverter,
	usecase.NewEntryUsecase,
	usecase.NewReviewUsecase,
	usecase.NewHistoryUsecase,
	provideAuthUsecase,
	backup.NewService,
)

var serviceSet = wire.NewSet(
	taxonomy.New,
	ai.NewClient,
	wire.Bind(new(editor.SuggestionService), new(*ai.Client)),
	httpapi.NewRouter,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	provideFieldLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		serviceSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server", "Backup"),
	)
	return nil, nil, nil
}
