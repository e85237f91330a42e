package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Fbari2002/side-quest/internal/config"
	"github.com/Fbari2002/side-quest/internal/fallback"
	"github.com/Fbari2002/side-quest/internal/generator"
	"github.com/Fbari2002/side-quest/internal/quest"
	"github.com/Fbari2002/side-quest/internal/state"
)

// app is the process-wide set of collaborators shared by every command.
type app struct {
	service *quest.Service
	state   *state.Memory
	catalog *fallback.Catalog
	online  bool
}

func buildApp(c *config.Config, log *zap.Logger) (*app, error) {
	catalog, err := fallback.LoadCatalog(c.Fallback.CatalogPath)
	if err != nil {
		return nil, err
	}

	mem := state.NewMemory(c.Fallback.RecentSize)
	selector := fallback.NewSelector(catalog, mem, c.Fallback.Rerolls)

	var attempter quest.Attempter
	if c.LLM.APIKey != "" {
		client, err := generator.NewClient(c.LLM.APIKey, c.LLM.BaseURL, c.LLM.Model, c.LLM.Temperature)
		if err != nil {
			return nil, fmt.Errorf("creating LLM client: %w", err)
		}
		client.Limiter = generator.NewRateLimiter(c.LLM.RequestsPerSecond)
		attempter = &generator.Generator{Completer: client}
	} else {
		log.Warn("OPENAI_API_KEY is not set, quests will come from the offline catalog",
			zap.String("environment", c.Server.Environment))
	}

	svc := quest.NewService(attempter, selector, mem, log, c.Production())
	if d := c.Timeout(); d > 0 {
		svc.Timeout = d
	}
	if d := c.Cooldown(); d > 0 {
		svc.Cooldown = d
	}

	log.Debug("app ready",
		zap.Bool("online", attempter != nil),
		zap.String("model", c.LLM.Model),
		zap.Int("catalog_quests", len(catalog.Quests)),
		zap.Duration("timeout", svc.Timeout),
		zap.Duration("cooldown", svc.Cooldown))

	return &app{service: svc, state: mem, catalog: catalog, online: attempter != nil}, nil
}
