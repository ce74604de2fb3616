// Package gamedata reads character, monster preset and user config JSON
// from a data directory laid out as
//
//	characters/<id>.json
//	monsters/<preset>.json
//	config.json
package gamedata

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/character"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
)

const (
	charactersDir  = "characters"
	monstersDir    = "monsters"
	userConfigFile = "config.json"
	jsonExt        = ".json"
)

type client struct {
	fsys fs.FS
}

// Config selects the data source. FS takes precedence over DataDir.
type Config struct {
	DataDir string
	FS      fs.FS
}

// New creates a file backed client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, calcerr.InvalidArgument("gamedata config is required")
	}

	fsys := cfg.FS
	if fsys == nil {
		if cfg.DataDir == "" {
			return nil, calcerr.InvalidArgument("gamedata data dir is required")
		}
		fsys = os.DirFS(cfg.DataDir)
	}

	return &client{fsys: fsys}, nil
}

func (c *client) ListCharacters() ([]string, error) {
	entries, err := fs.ReadDir(c.fsys, charactersDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to list characters")
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, jsonExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, jsonExt))
	}
	sort.Strings(ids)

	return ids, nil
}

func (c *client) LoadCharacter(id string) (*character.Meta, stats.Mapping, error) {
	if id == "" {
		return nil, nil, calcerr.InvalidArgument("character id is required")
	}

	id = strings.ToLower(strings.TrimSuffix(id, jsonExt))
	if err := checkName(id); err != nil {
		return nil, nil, err
	}
	data, err := c.read(path.Join(charactersDir, id+jsonExt))
	if err != nil {
		return nil, nil, calcerr.Wrapf(err, "character %s", id).WithMeta("character", id)
	}

	return character.Decode(id, data)
}

func (c *client) LoadMonsterPreset(name string) (stats.Mapping, error) {
	if name == "" {
		return nil, calcerr.InvalidArgument("monster preset name is required")
	}

	if err := checkName(name); err != nil {
		return nil, err
	}

	file := name
	if !strings.HasSuffix(file, jsonExt) {
		file += jsonExt
	}

	data, err := c.read(path.Join(monstersDir, file))
	if err != nil {
		return nil, calcerr.Wrapf(err, "monster preset %s", name).WithMeta("preset", name)
	}

	return decodeStats(data)
}

func (c *client) LoadUserConfig() (stats.Mapping, error) {
	data, err := c.read(userConfigFile)
	if err != nil {
		if calcerr.IsNotFound(err) {
			return stats.Mapping{}, nil
		}
		return nil, err
	}

	return decodeStats(data)
}

// checkName keeps lookups inside their directory
func checkName(name string) error {
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return calcerr.InvalidArgumentf("invalid name %q", name).WithMeta("name", name)
	}
	return nil
}

func (c *client) read(name string) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, calcerr.NotFoundf("%s not found", name)
		}
		return nil, calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to read "+name)
	}
	return data, nil
}

// decodeStats reads a flat stat object. Underscore keys are annotations.
func decodeStats(data []byte) (stats.Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, calcerr.WrapWithCode(err, calcerr.CodeValidation, "stat file is not a JSON object")
	}

	for k := range raw {
		if strings.HasPrefix(k, "_") {
			delete(raw, k)
		}
	}

	return stats.FromRaw(raw)
}
