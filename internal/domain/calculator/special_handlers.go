package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/character"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/formula"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/numeric"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
)

// BiscuitHandler scales the skill off target max HP. The HP share is capped
// by Cap_ATK_Percent of Total ATK and there is no ATK term.
type BiscuitHandler struct{}

func NewBiscuitHandler() *BiscuitHandler {
	return &BiscuitHandler{}
}

func (h *BiscuitHandler) Key() string {
	return "biscuit"
}

func (h *BiscuitHandler) Compute(meta *character.Meta, skill character.Skill, merged stats.Mapping) (int64, error) {
	in, err := ResolveInputs(meta, skill, merged)
	if err != nil {
		return 0, err
	}

	totalATK := in.TotalATK()
	dmgHP := formula.DmgHP(in.HPTarget, in.SkillDmg)
	finalDmgHP := formula.FinalDmgHP(dmgHP, formula.CapATK(totalATK, in.CapAtkPercent))

	raw := in.rawDmgInput(totalATK, finalDmgHP)
	raw.SkillDmg = numeric.Zero

	return formula.FinalDamage(formula.RawDmg(raw), in.effectiveDEF())
}

// EspadaHandler ignores the target's damage reduction
type EspadaHandler struct{}

func NewEspadaHandler() *EspadaHandler {
	return &EspadaHandler{}
}

func (h *EspadaHandler) Key() string {
	return "espada"
}

func (h *EspadaHandler) Compute(meta *character.Meta, skill character.Skill, merged stats.Mapping) (int64, error) {
	b, err := h.Breakdown(meta, skill, merged)
	if err != nil {
		return 0, err
	}
	return b.Final, nil
}

func (h *EspadaHandler) Breakdown(meta *character.Meta, skill character.Skill, merged stats.Mapping) (*Breakdown, error) {
	in, err := ResolveInputs(meta, skill, merged)
	if err != nil {
		return nil, err
	}
	in.DmgReduction = numeric.Zero

	return StandardPipeline(in)
}

// freyjaIgnoreDef is the passive defense penetration
var freyjaIgnoreDef = decimal.NewFromInt(30)

// FreyjaHandler adds a passive 30% defense penetration to Effective DEF. The
// passive never lifts Ignore_DEF past 100; values already above 100 pass
// through unchanged.
type FreyjaHandler struct{}

func NewFreyjaHandler() *FreyjaHandler {
	return &FreyjaHandler{}
}

func (h *FreyjaHandler) Key() string {
	return "freyja"
}

func (h *FreyjaHandler) Compute(meta *character.Meta, skill character.Skill, merged stats.Mapping) (int64, error) {
	b, err := h.Breakdown(meta, skill, merged)
	if err != nil {
		return 0, err
	}
	return b.Final, nil
}

func (h *FreyjaHandler) Breakdown(meta *character.Meta, skill character.Skill, merged stats.Mapping) (*Breakdown, error) {
	in, err := ResolveInputs(meta, skill, merged)
	if err != nil {
		return nil, err
	}

	if in.IgnoreDef.LessThanOrEqual(numeric.Hundred) {
		in.IgnoreDef = decimal.Min(in.IgnoreDef.Add(freyjaIgnoreDef), numeric.Hundred)
	}

	return StandardPipeline(in)
}

// ryanRampPerHit is the skill percentage gained by each hit after the first
var ryanRampPerHit = decimal.NewFromInt(10)

// RyanHandler ramps skill damage on every hit. Compute reports the floored
// average per hit; ComputeHits keeps each hit so totals stay exact.
type RyanHandler struct{}

func NewRyanHandler() *RyanHandler {
	return &RyanHandler{}
}

func (h *RyanHandler) Key() string {
	return "ryan"
}

func (h *RyanHandler) Compute(meta *character.Meta, skill character.Skill, merged stats.Mapping) (int64, error) {
	hits, err := h.ComputeHits(meta, skill, merged)
	if err != nil {
		return 0, err
	}
	return floorDiv(sumHits(hits), int64(len(hits))), nil
}

func (h *RyanHandler) ComputeHits(meta *character.Meta, skill character.Skill, merged stats.Mapping) ([]int64, error) {
	in, err := ResolveInputs(meta, skill, merged)
	if err != nil {
		return nil, err
	}

	hits := skill.Hits
	if hits < 1 {
		hits = 1
	}

	base := in.SkillDmg
	out := make([]int64, hits)
	for i := range out {
		in.SkillDmg = base.Add(ryanRampPerHit.Mul(decimal.NewFromInt(int64(i))))

		b, err := StandardPipeline(in)
		if err != nil {
			return nil, err
		}
		out[i] = b.Final
	}
	return out, nil
}

func sumHits(hits []int64) int64 {
	var sum int64
	for _, h := range hits {
		sum += h
	}
	return sum
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
