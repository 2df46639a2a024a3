package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/expreal/internal/adapter/repository"
	"github.com/eslsoft/expreal/internal/infrastructure/config"
	"github.com/eslsoft/expreal/internal/infrastructure/database"
	"github.com/eslsoft/expreal/internal/surface"
	"github.com/eslsoft/expreal/internal/usecase"
	"github.com/eslsoft/expreal/internal/usecase/realizer"
)

// ProvideLexicon loads the lexicon of the configured language from the
// bundled data or the sqlite store.
func ProvideLexicon(cfg *config.Config, logger *logrus.Logger) (*surface.Lexicon, error) {
	if cfg.Lexicon.Source != config.LexiconSQLite {
		return surface.LoadLexicon(cfg.Language())
	}

	db, cleanup, err := database.NewConnection(cfg)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	lex, err := usecase.NewLexiconUsecase(repository.NewLexiconRepository(db)).Lexicon(context.Background(), cfg.Language())
	if err != nil {
		return nil, fmt.Errorf("load stored lexicon: %w", err)
	}
	logger.WithField("words", lex.Size()).Debug("lexicon loaded from store")
	return lex, nil
}

// ProvideTemplates reads the configured template sheet.
func ProvideTemplates(cfg *config.Config, logger *logrus.Logger) (*realizer.TemplateStore, error) {
	return realizer.LoadTemplateFile(cfg.Realizer.Templates, cfg.Language(), logger)
}

// ProvideRealizer builds the realizer with the configured seed and depth.
func ProvideRealizer(cfg *config.Config, store *realizer.TemplateStore, lex *surface.Lexicon, logger *logrus.Logger) (realizer.Realizer, error) {
	opts := []realizer.Option{realizer.WithMaxDepth(cfg.Realizer.MaxDepth)}
	if cfg.Realizer.Seed != 0 {
		opts = append(opts, realizer.WithSeed(cfg.Realizer.Seed))
	}
	return realizer.New(store, lex, logger, opts...)
}
