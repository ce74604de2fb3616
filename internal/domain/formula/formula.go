// Package formula holds the damage pipeline primitives. Every percentage
// argument is a whole number (42 means 42%) and no step rounds except the
// ones that say so.
package formula

import (
	"github.com/shopspring/decimal"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/numeric"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
)

// DefModifier converts target defense into the damage divisor
var DefModifier = numeric.MustString("0.00214135")

// TotalATK returns
// (atkChar + atkPet + atkBase*formation%) * (1 + potentialPet%) * (1 + (buffAtk + buffAtkPet)%)
func TotalATK(atkChar, atkPet, atkBase, formation, potentialPet, buffAtk, buffAtkPet decimal.Decimal) decimal.Decimal {
	base := atkChar.Add(atkPet).Add(atkBase.Mul(numeric.Percent(formation)))
	pet := numeric.One.Add(numeric.Percent(potentialPet))
	buff := numeric.One.Add(numeric.Percent(buffAtk.Add(buffAtkPet)))
	return base.Mul(pet).Mul(buff)
}

// DmgHP returns the share of target HP dealt by HP-based skills
func DmgHP(hpTarget, bonusDmgHPTarget decimal.Decimal) decimal.Decimal {
	return hpTarget.Mul(numeric.Percent(bonusDmgHPTarget))
}

// CapATK returns the ATK-derived ceiling for HP-based damage
func CapATK(totalATK, capATKPercent decimal.Decimal) decimal.Decimal {
	return totalATK.Mul(numeric.Percent(capATKPercent))
}

// FinalDmgHP caps dmgHP at capATK and truncates. A zero cap means uncapped
// and returns dmgHP as is.
func FinalDmgHP(dmgHP, capATK decimal.Decimal) decimal.Decimal {
	if capATK.IsZero() {
		return dmgHP
	}
	return decimal.Min(dmgHP, capATK).Truncate(0)
}

// RawDmgInput carries the raw damage multipliers. FinalDmgHP is optional.
type RawDmgInput struct {
	TotalATK     decimal.Decimal
	SkillDmg     decimal.Decimal
	CritDmg      decimal.Decimal
	WeakDmg      decimal.Decimal
	DmgAmpBuff   decimal.Decimal
	DmgAmpDebuff decimal.Decimal
	DmgReduction decimal.Decimal
	FinalDmgHP   decimal.Decimal
}

// RawDmg returns the ATK term plus the HP addend. The HP addend takes crit,
// weakness and reduction but not skill damage or amplification.
func RawDmg(in RawDmgInput) decimal.Decimal {
	crit := numeric.Percent(in.CritDmg)
	weak := numeric.One.Add(numeric.Percent(in.WeakDmg))
	amp := numeric.One.Add(numeric.Percent(in.DmgAmpBuff)).Sub(numeric.Percent(in.DmgAmpDebuff))
	reduction := numeric.One.Sub(numeric.Percent(in.DmgReduction))

	atkTerm := in.TotalATK.
		Mul(numeric.Percent(in.SkillDmg)).
		Mul(crit).
		Mul(weak).
		Mul(amp).
		Mul(reduction)

	hpTerm := in.FinalDmgHP.Mul(crit).Mul(weak).Mul(reduction)

	return atkTerm.Add(hpTerm)
}

// EffectiveDEF returns 1 + def * (1 + defBuff% - defReduce%) * (1 - ignoreDef%) * DefModifier.
// Zero defense short-circuits to exactly 1.
func EffectiveDEF(defTarget, defBuff, defReduce, ignoreDef decimal.Decimal) decimal.Decimal {
	if defTarget.IsZero() {
		return numeric.One
	}

	modifier := numeric.One.Add(numeric.Percent(defBuff)).Sub(numeric.Percent(defReduce))
	ignore := numeric.One.Sub(numeric.Percent(ignoreDef))

	return numeric.One.Add(defTarget.Mul(modifier).Mul(ignore).Mul(DefModifier))
}

// FinalDamage returns floor(rawDmg / effectiveDEF) from an exact quotient
func FinalDamage(rawDmg, effectiveDEF decimal.Decimal) (int64, error) {
	if effectiveDEF.IsZero() {
		return 0, calcerr.InvalidArgumentf("effective DEF is zero (raw damage %s)", rawDmg)
	}

	q, r := rawDmg.QuoRem(effectiveDEF, 0)
	if !r.IsZero() && rawDmg.Sign()*effectiveDEF.Sign() < 0 {
		q = q.Sub(numeric.One)
	}
	return q.IntPart(), nil
}
