package services

import (
	"github.com/KirkDiggler/sevenknights-calc/internal/clients/gamedata"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/calculator"
	"github.com/KirkDiggler/sevenknights-calc/internal/repositories/userconfigs"
	"github.com/KirkDiggler/sevenknights-calc/internal/services/damage"
)

// Provider holds all service instances
type Provider struct {
	DamageService     damage.Service
	ProfileRepository userconfigs.Repository
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	GameData          gamedata.Client
	ProfileRepository userconfigs.Repository
	Registry          *calculator.Registry
	Workers           int
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repository if none provided
	profileRepo := cfg.ProfileRepository
	if profileRepo == nil {
		profileRepo = userconfigs.NewInMemoryRepository(nil)
	}

	calc := calculator.NewCalculator(&calculator.CalculatorConfig{
		Registry: cfg.Registry,
	})

	damageService := damage.NewService(&damage.ServiceConfig{
		GameData:   cfg.GameData,
		Profiles:   profileRepo,
		Calculator: calc,
		Workers:    cfg.Workers,
	})

	return &Provider{
		DamageService:     damageService,
		ProfileRepository: profileRepo,
	}
}
