package testutils

import (
	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/character"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
)

// CreateTestCharacter creates a legend magic character with one single-hit skill
func CreateTestCharacter(id, name string, skillDmg int64) *character.Meta {
	return &character.Meta{
		ID:      id,
		Name:    name,
		Rarity:  character.RarityLegend,
		Class:   character.ClassMagic,
		Element: "Fire",
		Skills: []character.Skill{
			{Key: "skill1", Name: name + " Strike", SkillDmg: decimal.NewFromInt(skillDmg), Hits: 1},
		},
	}
}

// CreateTestUserStats returns a typical endgame user config
func CreateTestUserStats() stats.Mapping {
	return stats.Mapping{
		stats.KeyWeaponSet:    decimal.NewFromInt(1),
		stats.KeyFormation:    decimal.NewFromInt(42),
		stats.KeyAtkChar:      decimal.NewFromInt(5000),
		stats.KeyAtkPet:       decimal.NewFromInt(400),
		stats.KeyCritDmg:      decimal.NewFromInt(288),
		stats.KeyWeakDmg:      decimal.NewFromInt(30),
		stats.KeyDmgReduction: decimal.NewFromInt(10),
		stats.KeyDefTarget:    decimal.NewFromInt(1461),
	}
}

// CreateCastlePreset returns the castle room 1 monster preset
func CreateCastlePreset() stats.Mapping {
	return stats.Mapping{
		stats.KeyDefTarget: decimal.NewFromInt(689),
		stats.KeyHPTarget:  decimal.NewFromInt(8650),
	}
}
