package cmd

import (
	"fmt"
	"os"

	"themesim/api"
	"themesim/internal/config"
	"themesim/internal/repository"
	"themesim/internal/service"
	"themesim/internal/util"

	"github.com/shopspring/decimal"
)

const defaultConfigPath = "portfolio.yaml"

func ConfigPath() string {
	if path := os.Getenv("THEMESIM_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// InitializeDependencies wires the whole app: config, price source adapters,
// the price cache service, the simulation service, and the API handler.
// Alpaca and the describe endpoint are only enabled when their credentials
// are present in the secrets file.
func InitializeDependencies(configPath string) (*api.ApiHandler, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	priceRepository := repository.NewYahooRepository()
	snapshotRepository := repository.NewSnapshotRepository()

	var alpacaRepository repository.AlpacaRepository
	if secrets.Alpaca.ApiKey != "" {
		alpacaRepository = repository.NewAlpacaRepository(
			secrets.Alpaca.ApiKey,
			secrets.Alpaca.ApiSecret,
			secrets.Alpaca.Endpoint,
		)
	}

	var gptRepository repository.GptRepository
	if secrets.OpenAIApiKey != "" {
		gptRepository, err = repository.NewGptRepository(secrets.OpenAIApiKey)
		if err != nil {
			return nil, err
		}
	}

	priceService := service.NewPriceService(
		priceRepository,
		snapshotRepository,
		alpacaRepository,
		cfg.SnapshotPath,
	)

	simulationService := service.NewSimulationService(
		cfg.AssetDefinitions(),
		decimal.NewFromFloat(cfg.MinCapital),
		priceService,
	)

	return &api.ApiHandler{
		SimulationService: simulationService,
		GptRepository:     gptRepository,
		Config:            cfg,
	}, nil
}
