// Package calculator produces final damage numbers. Each calculation runs
// exactly one of the standard pipeline or a registered character handler,
// chosen by character id.
package calculator

import (
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/character"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
)

// overrideSkillKey names the synthetic skill used when a character has no
// skills but the stats carry SKILL_DMG
const overrideSkillKey = "custom"

// SkillResult is the damage of one skill
type SkillResult struct {
	Key    string
	Name   string
	Hits   int
	PerHit int64
	Total  int64
}

// Result is one evaluated skill with the path that produced it
type Result struct {
	Skill SkillResult
	// Special is true when a registered handler ran instead of the standard pipeline
	Special bool
	// Breakdown is set for the standard pipeline and for handlers that run it
	// on adjusted inputs
	Breakdown *Breakdown
}

// Calculator dispatches damage calculations through a Registry
type Calculator struct {
	registry *Registry
}

// CalculatorConfig holds the calculator's collaborators
type CalculatorConfig struct {
	// Registry defaults to DefaultRegistry when nil
	Registry *Registry
}

// NewCalculator creates a calculator
func NewCalculator(cfg *CalculatorConfig) *Calculator {
	registry := DefaultRegistry
	if cfg != nil && cfg.Registry != nil {
		registry = cfg.Registry
	}
	return &Calculator{registry: registry}
}

// Registry returns the registry used for dispatch
func (c *Calculator) Registry() *Registry {
	return c.registry
}

// ComputeDamage returns the per-hit damage of the character's first skill
func (c *Calculator) ComputeDamage(id string, meta *character.Meta, merged stats.Mapping) (int64, error) {
	skill, err := primarySkill(meta, merged)
	if err != nil {
		return 0, err
	}

	res, err := c.evaluate(id, meta, skill, merged)
	if err != nil {
		return 0, err
	}
	return res.Skill.PerHit, nil
}

// Evaluate computes one skill and reports how it was computed. An empty
// skillKey selects the first skill.
func (c *Calculator) Evaluate(id string, meta *character.Meta, merged stats.Mapping, skillKey string) (*Result, error) {
	if skillKey == "" {
		skill, err := primarySkill(meta, merged)
		if err != nil {
			return nil, err
		}
		return c.evaluate(id, meta, skill, merged)
	}

	skill, ok := meta.Skill(skillKey)
	if !ok {
		return nil, calcerr.NotFoundf("character %s has no skill %q", id, skillKey).
			WithMeta("skill", skillKey)
	}
	return c.evaluate(id, meta, skill, merged)
}

// ComputeSkill computes the named skill
func (c *Calculator) ComputeSkill(id string, meta *character.Meta, merged stats.Mapping, skillKey string) (*SkillResult, error) {
	res, err := c.Evaluate(id, meta, merged, skillKey)
	if err != nil {
		return nil, err
	}
	return &res.Skill, nil
}

// ComputeAll computes every skill in file order. A SKILL_DMG stat is ignored
// here so each skill uses its own percentage.
func (c *Calculator) ComputeAll(id string, meta *character.Meta, merged stats.Mapping) ([]SkillResult, error) {
	perSkill := merged
	if merged.Has(stats.KeySkillDmg) {
		perSkill = merged.Clone()
		delete(perSkill, stats.KeySkillDmg)
	}

	results := make([]SkillResult, 0, len(meta.Skills))
	for _, skill := range meta.Skills {
		res, err := c.evaluate(id, meta, skill, perSkill)
		if err != nil {
			return nil, calcerr.Wrapf(err, "skill %s", skill.Key)
		}
		results = append(results, res.Skill)
	}
	return results, nil
}

func (c *Calculator) evaluate(id string, meta *character.Meta, skill character.Skill, merged stats.Mapping) (*Result, error) {
	if meta == nil {
		return nil, calcerr.InvalidArgumentf("character %s has no metadata", id)
	}

	res := &Result{
		Skill: SkillResult{
			Key:  skill.Key,
			Name: skill.Name,
			Hits: skill.Hits,
		},
	}
	if res.Skill.Hits < 1 {
		res.Skill.Hits = 1
	}

	if handler, ok := c.registry.Lookup(id); ok {
		res.Special = true
		if err := runHandler(handler, meta, skill, merged, res); err != nil {
			return nil, calcerr.Wrapf(err, "%s handler", handler.Key())
		}
		return res, nil
	}

	in, err := ResolveInputs(meta, skill, merged)
	if err != nil {
		return nil, err
	}
	b, err := StandardPipeline(in)
	if err != nil {
		return nil, err
	}
	res.Breakdown = b
	res.Skill.PerHit = b.Final
	res.Skill.Total = res.Skill.PerHit * int64(res.Skill.Hits)
	return res, nil
}

// runHandler fills res from handler. Multi-hit handlers report the exact sum
// of their hits as Total and the floored average as PerHit.
func runHandler(handler Handler, meta *character.Meta, skill character.Skill, merged stats.Mapping, res *Result) error {
	switch h := handler.(type) {
	case MultiHitHandler:
		hits, err := h.ComputeHits(meta, skill, merged)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			return calcerr.Internalf("%s handler returned no hits", h.Key())
		}
		res.Skill.Hits = len(hits)
		res.Skill.Total = sumHits(hits)
		res.Skill.PerHit = floorDiv(res.Skill.Total, int64(len(hits)))
	case BreakdownHandler:
		b, err := h.Breakdown(meta, skill, merged)
		if err != nil {
			return err
		}
		res.Breakdown = b
		res.Skill.PerHit = b.Final
		res.Skill.Total = b.Final * int64(res.Skill.Hits)
	default:
		perHit, err := handler.Compute(meta, skill, merged)
		if err != nil {
			return err
		}
		res.Skill.PerHit = perHit
		res.Skill.Total = perHit * int64(res.Skill.Hits)
	}
	return nil
}

func primarySkill(meta *character.Meta, merged stats.Mapping) (character.Skill, error) {
	if meta == nil {
		return character.Skill{}, calcerr.InvalidArgument("missing character metadata")
	}
	if skill, ok := meta.PrimarySkill(); ok {
		return skill, nil
	}
	if dmg, ok := merged[stats.KeySkillDmg]; ok {
		return character.Skill{Key: overrideSkillKey, SkillDmg: dmg, Hits: 1}, nil
	}
	return character.Skill{}, calcerr.InvalidArgumentf("character %s has no skills and no %s", meta.ID, stats.KeySkillDmg)
}

var defaultCalculator = NewCalculator(nil)

// ComputeDamage dispatches through DefaultRegistry
func ComputeDamage(id string, meta *character.Meta, merged stats.Mapping) (int64, error) {
	return defaultCalculator.ComputeDamage(id, meta, merged)
}
