package stats

import (
	"github.com/shopspring/decimal"

	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
)

// WeaponSetBonus is the additive delta granted by an equipment set
type WeaponSetBonus struct {
	ID    int
	Name  string
	Key   string
	Delta decimal.Decimal
}

var weaponSets = [...]WeaponSetBonus{
	{ID: 0, Name: "None"},
	{ID: 1, Name: "Weakness", Key: KeyWeakDmg, Delta: decimal.NewFromInt(35)},
	{ID: 2, Name: "Crit", Key: KeyIgnoreDef, Delta: decimal.NewFromInt(15)},
	{ID: 3, Name: "Hydra", Key: KeyDmgAmpBuff, Delta: decimal.NewFromInt(70)},
	{ID: 4, Name: "Hydra Castle", Key: KeyDmgAmpBuff, Delta: decimal.NewFromInt(30)},
}

// LookupWeaponSet returns the bonus for id. Ids outside the table are an error.
func LookupWeaponSet(id int) (WeaponSetBonus, error) {
	if id < 0 || id >= len(weaponSets) {
		return WeaponSetBonus{}, calcerr.UnknownWeaponSetf("weapon set %d is not defined (valid 0-%d)", id, len(weaponSets)-1).
			WithMeta("weapon_set", id)
	}
	return weaponSets[id], nil
}

// WeaponSets returns a copy of the bonus table
func WeaponSets() []WeaponSetBonus {
	out := make([]WeaponSetBonus, len(weaponSets))
	copy(out, weaponSets[:])
	return out
}

// WeaponSetName returns the display name or "" for unknown ids
func WeaponSetName(id int) string {
	bonus, err := LookupWeaponSet(id)
	if err != nil {
		return ""
	}
	return bonus.Name
}

// WeaponSetID reads Weapon_Set from m. A missing key is set 0.
func WeaponSetID(m Mapping) (int, error) {
	raw, ok := m[KeyWeaponSet]
	if !ok {
		return 0, nil
	}
	if !raw.Equal(raw.Truncate(0)) {
		return 0, calcerr.UnknownWeaponSetf("weapon set %s is not an integer", raw).
			WithMeta("weapon_set", raw.String())
	}
	if raw.IsNegative() || raw.GreaterThanOrEqual(decimal.NewFromInt(int64(len(weaponSets)))) {
		return 0, calcerr.UnknownWeaponSetf("weapon set %s is not defined (valid 0-%d)", raw, len(weaponSets)-1).
			WithMeta("weapon_set", raw.String())
	}
	return int(raw.IntPart()), nil
}

// ApplyWeaponSet returns a copy of m with the Weapon_Set bonus added to its
// target stat. Run it on user stats before Merge.
func ApplyWeaponSet(m Mapping) (Mapping, error) {
	id, err := WeaponSetID(m)
	if err != nil {
		return nil, err
	}

	bonus, err := LookupWeaponSet(id)
	if err != nil {
		return nil, err
	}

	out := m.Clone()
	if bonus.Key != "" {
		out[bonus.Key] = out.Get(bonus.Key, decimal.Zero).Add(bonus.Delta)
	}
	return out, nil
}
