package stats

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MergePolicy decides per key how character and user values combine.
// Keys that are neither additive nor remapped are overrides: the user value
// wins when present.
type MergePolicy struct {
	additive map[string]struct{}
	remap    map[string]string
}

// NewMergePolicy builds a policy from an explicit additive key list and an
// alias -> target remap table. Remapped values are always added to their target.
func NewMergePolicy(additive []string, remap map[string]string) *MergePolicy {
	p := &MergePolicy{
		additive: make(map[string]struct{}, len(additive)),
		remap:    make(map[string]string, len(remap)),
	}
	for _, k := range additive {
		p.additive[k] = struct{}{}
	}
	for alias, target := range remap {
		p.remap[alias] = target
	}
	return p
}

// DefaultMergePolicy is the game's fixed merge table
var DefaultMergePolicy = NewMergePolicy(
	[]string{
		KeyBuffAtk,
		KeyBuffAtkPet,
		KeyCritDmg,
		KeyWeakDmg,
		KeyDmgAmpBuff,
		KeyDmgAmpDebuff,
		KeyDefReduce,
		KeyIgnoreDef,
	},
	map[string]string{
		KeyBonusCritDmg: KeyCritDmg,
	},
)

// IsAdditive reports whether key sums both sides
func (p *MergePolicy) IsAdditive(key string) bool {
	_, ok := p.additive[key]
	return ok
}

// RemapTarget returns the additive key an alias folds into
func (p *MergePolicy) RemapTarget(key string) (string, bool) {
	target, ok := p.remap[key]
	return target, ok
}

// AdditiveKeys returns the additive keys in sorted order
func (p *MergePolicy) AdditiveKeys() []string {
	keys := make([]string, 0, len(p.additive))
	for k := range p.additive {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge combines character-intrinsic stats with user stats. Neither input is
// modified. Keys missing from both sides stay missing.
func (p *MergePolicy) Merge(character, user Mapping) Mapping {
	out := make(Mapping, len(character)+len(user))

	for k, v := range character {
		p.mergeKey(out, k, v, !user.Has(k))
	}
	for k, v := range user {
		p.mergeKey(out, k, v, true)
	}

	return out
}

func (p *MergePolicy) mergeKey(out Mapping, key string, value decimal.Decimal, overrideWins bool) {
	if target, ok := p.remap[key]; ok {
		out[target] = out.Get(target, decimal.Zero).Add(value)
		return
	}
	if p.IsAdditive(key) {
		out[key] = out.Get(key, decimal.Zero).Add(value)
		return
	}
	if overrideWins {
		out[key] = value
	}
}

// Merge applies DefaultMergePolicy
func Merge(character, user Mapping) Mapping {
	return DefaultMergePolicy.Merge(character, user)
}
