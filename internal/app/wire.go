//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/expreal/internal/adapter/repository"
	"github.com/eslsoft/expreal/internal/infrastructure/config"
	"github.com/eslsoft/expreal/internal/infrastructure/database"
	"github.com/eslsoft/expreal/internal/infrastructure/logging"
	"github.com/eslsoft/expreal/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
	logging.NewLogger,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	repository.NewLexiconRepository,
)

var usecaseSet = wire.NewSet(
	usecase.NewLexiconUsecase,
)

var realizerSet = wire.NewSet(
	ProvideLexicon,
	ProvideTemplates,
	ProvideRealizer,
)

// Initialize builds the realizer container using Wire.
func Initialize() (*Container, error) {
	wire.Build(
		configSet,
		realizerSet,
		wire.Struct(new(Container), "Config", "Logger", "Realizer"),
	)
	return nil, nil
}

// InitializeLexicon builds the lexicon store container using Wire.
func InitializeLexicon() (*LexiconContainer, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		wire.Struct(new(LexiconContainer), "Config", "Logger", "Lexicons"),
	)
	return nil, nil, nil
}
