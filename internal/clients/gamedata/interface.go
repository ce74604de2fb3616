package gamedata

//go:generate mockgen -destination=mock/mock_client.go -package=mockgamedata -source=interface.go

import (
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/character"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
)

// Client loads game data files
type Client interface {
	// ListCharacters returns character ids in sorted order
	ListCharacters() ([]string, error)
	LoadCharacter(id string) (*character.Meta, stats.Mapping, error)
	// LoadMonsterPreset accepts the preset name with or without .json
	LoadMonsterPreset(name string) (stats.Mapping, error)
	// LoadUserConfig returns an empty mapping when no config file exists
	LoadUserConfig() (stats.Mapping, error)
}
