package character

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/numeric"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
)

const (
	fieldName    = "_character"
	fieldRarity  = "_rarity"
	fieldClass   = "_class"
	fieldElement = "_element"
	fieldSkills  = "_skills"
)

type skillData struct {
	Name     string      `json:"_name"`
	SkillDmg json.Number `json:"SKILL_DMG"`
	Hits     json.Number `json:"SKILL_HITS"`
}

// Decode parses a character file. Underscore keys are metadata, every other
// key is a character-intrinsic stat. Skills keep the order of the file.
func Decode(id string, data []byte) (*Meta, stats.Mapping, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, nil, calcerr.WrapWithCode(err, calcerr.CodeValidation,
			fmt.Sprintf("character %s is not a JSON object", id))
	}

	meta := &Meta{ID: id}
	intrinsic := make(stats.Mapping)

	for key, raw := range fields {
		var err error
		switch key {
		case fieldName:
			err = json.Unmarshal(raw, &meta.Name)
		case fieldRarity:
			var s string
			err = json.Unmarshal(raw, &s)
			meta.Rarity = Rarity(strings.ToLower(s))
		case fieldClass:
			var s string
			err = json.Unmarshal(raw, &s)
			meta.Class = Class(strings.ToLower(s))
		case fieldElement:
			err = json.Unmarshal(raw, &meta.Element)
		case fieldSkills:
			meta.Skills, err = decodeSkills(raw)
		default:
			if strings.HasPrefix(key, "_") {
				continue
			}
			err = decodeStat(intrinsic, key, raw)
		}
		if err != nil {
			return nil, nil, calcerr.WrapWithCode(err, codeOf(err),
				fmt.Sprintf("character %s field %s", id, key)).WithMeta("field", key)
		}
	}

	return meta, intrinsic, nil
}

// DecodeReader reads and parses a character file
func DecodeReader(id string, r io.Reader) (*Meta, stats.Mapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, calcerr.Wrapf(err, "failed to read character %s", id)
	}
	return Decode(id, data)
}

func decodeStat(into stats.Mapping, key string, raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	d, err := numeric.FromAny(v)
	if err != nil {
		return err
	}
	into[key] = d
	return nil
}

// decodeSkills walks the object token by token; a map would lose the order
func decodeSkills(raw json.RawMessage) ([]Skill, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, calcerr.Validationf("skills must be an object")
	}

	var skills []Skill
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, calcerr.Validationf("unexpected skill key %v", tok)
		}

		var sd skillData
		if err := dec.Decode(&sd); err != nil {
			return nil, calcerr.WrapWithCode(err, calcerr.CodeValidation, "skill "+key)
		}

		skill, err := sd.toSkill(key)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return skills, nil
}

func (sd skillData) toSkill(key string) (Skill, error) {
	skill := Skill{Key: key, Name: sd.Name, Hits: 1}

	if sd.SkillDmg != "" {
		dmg, err := numeric.FromString(sd.SkillDmg.String())
		if err != nil {
			return Skill{}, calcerr.Wrapf(err, "skill %s SKILL_DMG", key)
		}
		skill.SkillDmg = dmg
	}

	if sd.Hits != "" {
		hits, err := sd.Hits.Int64()
		if err != nil || hits < 1 {
			return Skill{}, calcerr.Validationf("skill %s SKILL_HITS must be a positive integer, got %s", key, sd.Hits).
				WithMeta("skill", key)
		}
		skill.Hits = int(hits)
	}

	return skill, nil
}

func codeOf(err error) calcerr.Code {
	if code := calcerr.GetCode(err); code != calcerr.CodeUnknown {
		return code
	}
	return calcerr.CodeValidation
}
