package formula_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/formula"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestTotalATK(t *testing.T) {
	tests := []struct {
		name     string
		args     [7]string
		expected string
	}{
		{"formation share of base", [7]string{"5000", "400", "1500", "42", "0", "0", "0"}, "6030"},
		{"no formation", [7]string{"5000", "400", "1500", "0", "0", "0", "0"}, "5400"},
		{"half formation", [7]string{"5000", "0", "1500", "50", "0", "0", "0"}, "5750"},
		{"buff is multiplicative", [7]string{"5000", "0", "1500", "42", "0", "50", "0"}, "8445"},
		{"pet buff joins atk buff", [7]string{"5000", "0", "1500", "42", "0", "25", "25"}, "8445"},
		{"pet potential", [7]string{"5000", "0", "1500", "42", "10", "0", "0"}, "6193"},
		{"all zero", [7]string{"0", "0", "0", "0", "0", "0", "0"}, "0"},
		{"new character", [7]string{"100", "0", "1500", "0", "0", "0", "0"}, "100"},
		{"negative atk propagates", [7]string{"-100", "0", "1500", "0", "0", "0", "0"}, "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.args
			got := formula.TotalATK(d(a[0]), d(a[1]), d(a[2]), d(a[3]), d(a[4]), d(a[5]), d(a[6]))
			assertDecimal(t, tt.expected, got)
		})
	}
}

func TestTotalATKKeepsSmallValues(t *testing.T) {
	got := formula.TotalATK(d("0.01"), d("0.01"), d("0.01"), d("0.01"), d("0.01"), d("0.01"), d("0.01"))
	assert.True(t, got.IsPositive())
	assert.True(t, got.LessThan(d("1")))
}

func TestDmgHP(t *testing.T) {
	assertDecimal(t, "700", formula.DmgHP(d("10000"), d("7")))
	assertDecimal(t, "0", formula.DmgHP(d("1000000000"), d("0")))
	assertDecimal(t, "70000000", formula.DmgHP(d("1000000000"), d("7")))
	assertDecimal(t, "35", formula.DmgHP(d("1000"), d("3.5")))
	assertDecimal(t, "605.5", formula.DmgHP(d("8650"), d("7")))
	assertDecimal(t, "0", formula.DmgHP(d("0"), d("7")))
}

func TestCapATK(t *testing.T) {
	assertDecimal(t, "5000", formula.CapATK(d("5000"), d("100")))
	assertDecimal(t, "2500", formula.CapATK(d("5000"), d("50")))
	assertDecimal(t, "0", formula.CapATK(d("5000"), d("0")))
}

func TestFinalDmgHP(t *testing.T) {
	tests := []struct {
		name     string
		dmgHP    string
		capATK   string
		expected string
	}{
		{"under cap", "700", "1000", "700"},
		{"over cap", "1500", "1000", "1000"},
		{"equal to cap", "1000", "1000", "1000"},
		{"zero cap means uncapped", "700", "0", "700"},
		{"truncates damage", "1000.9", "2000", "1000"},
		{"truncates cap", "1500", "1000.9", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, formula.FinalDmgHP(d(tt.dmgHP), d(tt.capATK)))
		})
	}
}

func TestRawDmg(t *testing.T) {
	tests := []struct {
		name     string
		input    formula.RawDmgInput
		expected string
	}{
		{
			name:     "plain hit",
			input:    formula.RawDmgInput{TotalATK: d("5000"), SkillDmg: d("100"), CritDmg: d("100")},
			expected: "5000",
		},
		{
			name:     "crit",
			input:    formula.RawDmgInput{TotalATK: d("5000"), SkillDmg: d("100"), CritDmg: d("288")},
			expected: "14400",
		},
		{
			name:     "weakness base only",
			input:    formula.RawDmgInput{TotalATK: d("5000"), SkillDmg: d("100"), CritDmg: d("288"), WeakDmg: d("30")},
			expected: "18720",
		},
		{
			name: "crit weakness reduction",
			input: formula.RawDmgInput{
				TotalATK: d("5400"), SkillDmg: d("160"), CritDmg: d("288"),
				WeakDmg: d("65"), DmgReduction: d("10"),
			},
			expected: "36951.552",
		},
		{
			name:     "double skill damage",
			input:    formula.RawDmgInput{TotalATK: d("5000"), SkillDmg: d("200"), CritDmg: d("100")},
			expected: "10000",
		},
		{
			name:     "zero skill damage",
			input:    formula.RawDmgInput{TotalATK: d("5000"), CritDmg: d("288"), WeakDmg: d("65")},
			expected: "0",
		},
		{
			name:     "zero crit damage",
			input:    formula.RawDmgInput{TotalATK: d("5000"), SkillDmg: d("100")},
			expected: "0",
		},
		{
			name: "amp buff and debuff",
			input: formula.RawDmgInput{
				TotalATK: d("1000"), SkillDmg: d("100"), CritDmg: d("100"),
				DmgAmpBuff: d("70"), DmgAmpDebuff: d("20"),
			},
			expected: "1500",
		},
		{
			name:     "negative skill damage propagates",
			input:    formula.RawDmgInput{TotalATK: d("5000"), SkillDmg: d("-10"), CritDmg: d("100")},
			expected: "-500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, formula.RawDmg(tt.input))
		})
	}
}

func TestRawDmgHPAddend(t *testing.T) {
	base := formula.RawDmgInput{
		TotalATK: d("5000"), SkillDmg: d("100"), CritDmg: d("288"),
		WeakDmg: d("65"), DmgReduction: d("10"),
	}
	withHP := base
	withHP.FinalDmgHP = d("1000")

	diff := formula.RawDmg(withHP).Sub(formula.RawDmg(base))
	// 1000 * 2.88 * 1.65 * 0.9
	assertDecimal(t, "4276.8", diff)
}

func TestRawDmgHPAddendIgnoresSkillAndAmp(t *testing.T) {
	hpOnly := formula.RawDmgInput{
		TotalATK: d("5000"), CritDmg: d("288"), WeakDmg: d("65"),
		DmgReduction: d("10"), FinalDmgHP: d("1000"),
	}
	amplified := hpOnly
	amplified.DmgAmpBuff = d("70")
	amplified.DmgAmpDebuff = d("24")

	assertDecimal(t, "4276.8", formula.RawDmg(hpOnly))
	assert.True(t, formula.RawDmg(hpOnly).Equal(formula.RawDmg(amplified)))

	noCrit := hpOnly
	noCrit.CritDmg = d("100")
	assertDecimal(t, "1485", formula.RawDmg(noCrit))
}

func TestEffectiveDEF(t *testing.T) {
	assertDecimal(t, "4.12851235", formula.EffectiveDEF(d("1461"), d("0"), d("0"), d("0")))
	assertDecimal(t, "1", formula.EffectiveDEF(d("0"), d("50"), d("0"), d("0")))
	assertDecimal(t, "1", formula.EffectiveDEF(d("1461"), d("0"), d("0"), d("100")))

	base := formula.EffectiveDEF(d("1461"), d("0"), d("0"), d("0"))
	assert.True(t, formula.EffectiveDEF(d("1461"), d("50"), d("0"), d("0")).GreaterThan(base))
	assert.True(t, formula.EffectiveDEF(d("1461"), d("0"), d("24"), d("0")).LessThan(base))
	assert.True(t, formula.EffectiveDEF(d("1461"), d("0"), d("0"), d("40")).LessThan(base))
	assert.True(t, formula.EffectiveDEF(d("1461"), d("50"), d("50"), d("0")).Equal(base))

	combined := formula.EffectiveDEF(d("1461"), d("0"), d("24"), d("40"))
	assert.True(t, combined.LessThan(base))
	assert.True(t, combined.GreaterThan(d("1")))

	assert.True(t, formula.EffectiveDEF(d("784"), d("0"), d("0"), d("0")).
		GreaterThan(formula.EffectiveDEF(d("689"), d("0"), d("0"), d("0"))))
}

func TestEffectiveDEFNeverBelowOne(t *testing.T) {
	for _, def := range []string{"0", "1", "100", "689", "1000", "1461", "5000"} {
		for _, ignore := range []string{"0", "40", "100"} {
			got := formula.EffectiveDEF(d(def), d("0"), d("24"), d(ignore))
			assert.True(t, got.GreaterThanOrEqual(d("1")), "def %s ignore %s -> %s", def, ignore, got)
		}
	}
}

func TestEffectiveDEFNegativeDefense(t *testing.T) {
	assert.True(t, formula.EffectiveDEF(d("-100"), d("0"), d("0"), d("0")).LessThan(d("1")))
}

func TestFinalDamage(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		def      string
		expected int64
	}{
		{"even division", "5000", "2", 2500},
		{"floors thirds", "5000", "3", 1666},
		{"exact half", "1000", "2", 500},
		{"half floors down", "1001", "2", 500},
		{"half floors down large", "5001", "2", 2500},
		{"point nine floors", "5000.9", "1", 5000},
		{"zero raw", "0", "2", 0},
		{"def of one", "5000", "1", 5000},
		{"def close to one", "5000", "1.0001", 4999},
		{"large values", "100000000", "4.2", 23809523},
		{"negative raw floors down", "-5", "2", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formula.FinalDamage(d(tt.raw), d(tt.def))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFinalDamageZeroDivisor(t *testing.T) {
	_, err := formula.FinalDamage(d("100"), d("0"))
	require.Error(t, err)
	assert.True(t, calcerr.IsInvalidArgument(err))
}

func TestStandardScenario(t *testing.T) {
	totalATK := formula.TotalATK(d("4488"), d("391"), d("1500"), d("42"), d("0"), d("0"), d("19"))
	raw := formula.RawDmg(formula.RawDmgInput{
		TotalATK: totalATK, SkillDmg: d("100"), CritDmg: d("288"), WeakDmg: d("65"),
	})
	effDef := formula.EffectiveDEF(d("1461"), d("0"), d("0"), d("0"))

	final, err := formula.FinalDamage(raw, effDef)
	require.NoError(t, err)

	assert.True(t, totalATK.GreaterThan(d("5000")))
	assert.True(t, raw.GreaterThan(totalATK))
	assert.Greater(t, final, int64(0))
	assert.True(t, decimal.NewFromInt(final).LessThan(raw))
}

func TestFormulasAreDeterministic(t *testing.T) {
	in := formula.RawDmgInput{
		TotalATK: d("5400"), SkillDmg: d("160"), CritDmg: d("288"),
		WeakDmg: d("65"), DmgReduction: d("10"), FinalDmgHP: d("123.4"),
	}
	first := formula.RawDmg(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first.String(), formula.RawDmg(in).String())
	}
}
