package main

import (
	"context"
	"os"
	"testing"
	"testing/fstest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/sevenknights-calc/internal/clients/gamedata"
	"github.com/KirkDiggler/sevenknights-calc/internal/config"
	"github.com/KirkDiggler/sevenknights-calc/internal/services"
)

func newTestRun(t *testing.T) (*services.Provider, gamedata.Client, *config.Config) {
	t.Helper()

	gameData, err := gamedata.New(&gamedata.Config{FS: fstest.MapFS{
		"characters/miho.json": {Data: []byte(`{
			"_character": "Miho", "_rarity": "legend", "_class": "magic",
			"_skills": {"skill1": {"_name": "Fox Fire", "SKILL_DMG": 160, "SKILL_HITS": 1}}
		}`)},
		"config.json": {Data: []byte(`{"ATK_CHAR": 4488, "Formation": 42, "CRIT_DMG": 288, "DEF_Target": 1461}`)},
	}})
	require.NoError(t, err)

	cfg := &config.Config{Export: config.ExportConfig{Dir: t.TempDir()}}
	provider := services.NewProvider(&services.ProviderConfig{GameData: gameData})
	return provider, gameData, cfg
}

func TestRunSaveProfileNeedsPersistentStore(t *testing.T) {
	provider, gameData, cfg := newTestRun(t)

	code := run(context.Background(), provider, gameData, cfg, &runOptions{
		saveProfile: "main",
		inline:      statFlags{},
	})
	assert.Equal(t, 1, code)

	profiles, err := provider.ProfileRepository.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestRunSaveProfileOverlaysConfig(t *testing.T) {
	provider, gameData, cfg := newTestRun(t)

	code := run(context.Background(), provider, gameData, cfg, &runOptions{
		saveProfile: "main",
		inline:      statFlags{"ATK_CHAR": "5000"},
		persistent:  true,
	})
	require.Equal(t, 0, code)

	profiles, err := provider.ProfileRepository.List(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "main", profiles[0].Name)
	assert.True(t, decimal.NewFromInt(5000).Equal(profiles[0].Stats["ATK_CHAR"]))
	assert.True(t, decimal.NewFromInt(1461).Equal(profiles[0].Stats["DEF_Target"]))
}

func TestRunSingleCalculationWithExport(t *testing.T) {
	provider, gameData, cfg := newTestRun(t)

	code := run(context.Background(), provider, gameData, cfg, &runOptions{
		characterID: "miho",
		inline:      statFlags{"DEF_Target": "0"},
		xlsxName:    "-",
	})
	require.Equal(t, 0, code)

	entries, err := os.ReadDir(cfg.Export.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunRejectsBadInput(t *testing.T) {
	provider, gameData, cfg := newTestRun(t)

	assert.Equal(t, 2, run(context.Background(), provider, gameData, cfg, &runOptions{
		characterID: "miho",
		inline:      statFlags{"ATK_CHAR": "lots"},
	}))
	assert.Equal(t, 1, run(context.Background(), provider, gameData, cfg, &runOptions{
		characterID: "nobody",
		inline:      statFlags{},
	}))
}
