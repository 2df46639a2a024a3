package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/expreal/internal/infrastructure/config"
	"github.com/eslsoft/expreal/internal/usecase"
	"github.com/eslsoft/expreal/internal/usecase/realizer"
)

// Container aggregates the realizer dependencies produced by Wire.
type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Realizer realizer.Realizer
}

// LexiconContainer aggregates the lexicon store dependencies.
type LexiconContainer struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Lexicons usecase.LexiconUsecase
}
