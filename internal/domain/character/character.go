// Package character describes a playable character: identity, rarity, class
// and the ordered list of skills it can use.
package character

import (
	"strings"

	"github.com/shopspring/decimal"

	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
)

// Rarity is the character's rarity tier
type Rarity string

const (
	RarityLegend Rarity = "legend"
	RarityRare   Rarity = "rare"
)

// Class is the character's combat class
type Class string

const (
	ClassMagic   Class = "magic"
	ClassAttack  Class = "attack"
	ClassSupport Class = "support"
	ClassDefense Class = "defense"
	ClassBalance Class = "balance"
)

// atkBase is the base attack stat granted by rarity and class
var atkBase = map[Rarity]map[Class]decimal.Decimal{
	RarityLegend: {
		ClassMagic:   decimal.NewFromInt(1500),
		ClassAttack:  decimal.NewFromInt(1500),
		ClassSupport: decimal.NewFromInt(1095),
		ClassDefense: decimal.NewFromInt(727),
		ClassBalance: decimal.NewFromInt(1306),
	},
	RarityRare: {
		ClassMagic:   decimal.NewFromInt(1389),
		ClassAttack:  decimal.NewFromInt(1389),
		ClassSupport: decimal.NewFromInt(1035),
		ClassDefense: decimal.NewFromInt(704),
		ClassBalance: decimal.NewFromInt(1238),
	},
}

// AtkBase returns the base attack for a rarity and class pair
func AtkBase(rarity Rarity, class Class) (decimal.Decimal, error) {
	byClass, ok := atkBase[Rarity(strings.ToLower(string(rarity)))]
	if !ok {
		return decimal.Zero, calcerr.InvalidArgumentf("unknown rarity %q", rarity).
			WithMeta("rarity", string(rarity))
	}

	value, ok := byClass[Class(strings.ToLower(string(class)))]
	if !ok {
		return decimal.Zero, calcerr.InvalidArgumentf("unknown class %q for rarity %s", class, rarity).
			WithMeta("class", string(class))
	}

	return value, nil
}

// Skill is one usable skill. SkillDmg is a whole-number percentage of ATK.
type Skill struct {
	Key      string
	Name     string
	SkillDmg decimal.Decimal
	Hits     int
}

// Meta is the descriptive part of a character file
type Meta struct {
	ID      string
	Name    string
	Rarity  Rarity
	Class   Class
	Element string
	Skills  []Skill
}

// AtkBase looks up the base attack for this character's rarity and class
func (m *Meta) AtkBase() (decimal.Decimal, error) {
	return AtkBase(m.Rarity, m.Class)
}

// Skill returns the skill with the given key
func (m *Meta) Skill(key string) (Skill, bool) {
	for _, s := range m.Skills {
		if s.Key == key {
			return s, true
		}
	}
	return Skill{}, false
}

// PrimarySkill returns the first skill listed in the character file
func (m *Meta) PrimarySkill() (Skill, bool) {
	if len(m.Skills) == 0 {
		return Skill{}, false
	}
	return m.Skills[0], true
}

// SkillKeys returns skill keys in file order
func (m *Meta) SkillKeys() []string {
	keys := make([]string, len(m.Skills))
	for i, s := range m.Skills {
		keys[i] = s.Key
	}
	return keys
}
