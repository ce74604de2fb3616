package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/character"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/formula"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/numeric"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
)

var (
	defaultCritDmg = numeric.Hundred

	// hpConditionThreshold splits the above and below 50% target HP bonuses
	hpConditionThreshold = decimal.NewFromInt(50)
)

// Inputs are the resolved pipeline values for one skill
type Inputs struct {
	AtkChar          decimal.Decimal
	AtkPet           decimal.Decimal
	AtkBase          decimal.Decimal
	Formation        decimal.Decimal
	PotentialPet     decimal.Decimal
	BuffAtk          decimal.Decimal
	BuffAtkPet       decimal.Decimal
	SkillDmg         decimal.Decimal
	CritDmg          decimal.Decimal
	WeakDmg          decimal.Decimal
	DmgAmpBuff       decimal.Decimal
	DmgAmpDebuff     decimal.Decimal
	DmgReduction     decimal.Decimal
	DefTarget        decimal.Decimal
	DefBuff          decimal.Decimal
	DefReduce        decimal.Decimal
	IgnoreDef        decimal.Decimal
	HPTarget         decimal.Decimal
	BonusDmgHPTarget decimal.Decimal
	CapAtkPercent    decimal.Decimal
	// HPConditionBonus is the amplification picked by the target's HP share
	HPConditionBonus decimal.Decimal
}

// ResolveInputs reads every pipeline stat from merged with its default.
// ATK_BASE falls back to the rarity/class table and SKILL_DMG to the skill.
func ResolveInputs(meta *character.Meta, skill character.Skill, merged stats.Mapping) (Inputs, error) {
	atkBase, ok := merged[stats.KeyAtkBase]
	if !ok {
		var err error
		atkBase, err = meta.AtkBase()
		if err != nil {
			return Inputs{}, calcerr.Wrapf(err, "no %s for character %s", stats.KeyAtkBase, meta.ID)
		}
	}

	zero := numeric.Zero
	return Inputs{
		AtkChar:          merged.Get(stats.KeyAtkChar, zero),
		AtkPet:           merged.Get(stats.KeyAtkPet, zero),
		AtkBase:          atkBase,
		Formation:        merged.Get(stats.KeyFormation, zero),
		PotentialPet:     merged.Get(stats.KeyPotentialPet, zero),
		BuffAtk:          merged.Get(stats.KeyBuffAtk, zero),
		BuffAtkPet:       merged.Get(stats.KeyBuffAtkPet, zero),
		SkillDmg:         merged.Get(stats.KeySkillDmg, skill.SkillDmg),
		CritDmg:          merged.Get(stats.KeyCritDmg, defaultCritDmg),
		WeakDmg:          merged.Get(stats.KeyWeakDmg, zero),
		DmgAmpBuff:       merged.Get(stats.KeyDmgAmpBuff, zero),
		DmgAmpDebuff:     merged.Get(stats.KeyDmgAmpDebuff, zero),
		DmgReduction:     merged.Get(stats.KeyDmgReduction, zero),
		DefTarget:        merged.Get(stats.KeyDefTarget, zero),
		DefBuff:          merged.Get(stats.KeyDefBuff, zero),
		DefReduce:        merged.Get(stats.KeyDefReduce, zero),
		IgnoreDef:        merged.Get(stats.KeyIgnoreDef, zero),
		HPTarget:         merged.Get(stats.KeyHPTarget, zero),
		BonusDmgHPTarget: merged.Get(stats.KeyBonusDmgHPTarget, zero),
		CapAtkPercent:    merged.Get(stats.KeyCapAtkPercent, zero),
		HPConditionBonus: hpConditionBonus(merged),
	}, nil
}

// hpConditionBonus returns HP_Above_50_Bonus when Target_HP_Percent is over
// 50 and HP_Below_50_Bonus otherwise. A missing Target_HP_Percent is a full
// HP target.
func hpConditionBonus(merged stats.Mapping) decimal.Decimal {
	pct := merged.Get(stats.KeyTargetHPPercent, numeric.Hundred)
	if pct.GreaterThan(hpConditionThreshold) {
		return merged.Get(stats.KeyHPAbove50Bonus, numeric.Zero)
	}
	return merged.Get(stats.KeyHPBelow50Bonus, numeric.Zero)
}

// Breakdown keeps every intermediate value of one pipeline run
type Breakdown struct {
	TotalATK     decimal.Decimal
	DmgHP        decimal.Decimal
	CapATK       decimal.Decimal
	FinalDmgHP   decimal.Decimal
	RawDmg       decimal.Decimal
	EffectiveDEF decimal.Decimal
	Final        int64
}

// TotalATK runs the attack step alone
func (in Inputs) TotalATK() decimal.Decimal {
	return formula.TotalATK(in.AtkChar, in.AtkPet, in.AtkBase, in.Formation, in.PotentialPet, in.BuffAtk, in.BuffAtkPet)
}

func (in Inputs) rawDmgInput(totalATK, finalDmgHP decimal.Decimal) formula.RawDmgInput {
	return formula.RawDmgInput{
		TotalATK:     totalATK,
		SkillDmg:     in.SkillDmg,
		CritDmg:      in.CritDmg,
		WeakDmg:      in.WeakDmg,
		DmgAmpBuff:   in.DmgAmpBuff.Add(in.HPConditionBonus),
		DmgAmpDebuff: in.DmgAmpDebuff,
		DmgReduction: in.DmgReduction,
		FinalDmgHP:   finalDmgHP,
	}
}

func (in Inputs) effectiveDEF() decimal.Decimal {
	return formula.EffectiveDEF(in.DefTarget, in.DefBuff, in.DefReduce, in.IgnoreDef)
}

// StandardPipeline runs TotalATK, the optional HP addend, RawDmg,
// EffectiveDEF and FinalDamage in that order
func StandardPipeline(in Inputs) (*Breakdown, error) {
	b := &Breakdown{TotalATK: in.TotalATK()}

	b.DmgHP = formula.DmgHP(in.HPTarget, in.BonusDmgHPTarget)
	b.CapATK = formula.CapATK(b.TotalATK, in.CapAtkPercent)
	b.FinalDmgHP = formula.FinalDmgHP(b.DmgHP, b.CapATK)
	b.RawDmg = formula.RawDmg(in.rawDmgInput(b.TotalATK, b.FinalDmgHP))
	b.EffectiveDEF = in.effectiveDEF()

	final, err := formula.FinalDamage(b.RawDmg, b.EffectiveDEF)
	if err != nil {
		return nil, err
	}
	b.Final = final

	return b, nil
}
