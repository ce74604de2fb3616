// Package export writes calculation results to spreadsheets.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
	"github.com/KirkDiggler/sevenknights-calc/internal/services/damage"
)

const (
	ResultsSheet = "Results"
	SkillsSheet  = "Skills"
)

var resultsHeader = []string{
	"Label", "Character", "Skill", "Hits", "Per Hit", "Total",
	"Weapon Set", "Monster", "Special",
	"Total ATK", "Final DMG HP", "Raw DMG", "Effective DEF",
}

var skillsHeader = []string{"Label", "Character", "Skill Key", "Skill", "Hits", "Per Hit", "Total"}

// ExportXLSX writes results to <dir>/<date>_<name>.xlsx and returns the path
func ExportXLSX(dir, name string, results []*damage.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to create export directory")
	}

	fileBase := fmt.Sprintf("%s_%s.xlsx", time.Now().Format("20060102"), sanitizeFilenamePart(name))
	outPath := filepath.Join(dir, fileBase)

	if err := WriteXLSX(outPath, results); err != nil {
		return "", err
	}
	return outPath, nil
}

// WriteXLSX writes results to path. The Results sheet has one row per
// request; the Skills sheet lists every skill of every request.
func WriteXLSX(path string, results []*damage.Result) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to name results sheet")
	}
	if _, err := f.NewSheet(SkillsSheet); err != nil {
		return calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to create skills sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to create header style")
	}

	if err := writeHeader(f, ResultsSheet, resultsHeader, headerStyle); err != nil {
		return err
	}
	if err := writeHeader(f, SkillsSheet, skillsHeader, headerStyle); err != nil {
		return err
	}

	row := 2
	skillRow := 2
	for _, r := range results {
		if r == nil {
			continue
		}
		values := []any{
			r.Label, displayName(r), r.Skill.Name, r.Skill.Hits, r.Skill.PerHit, r.Skill.Total,
			r.WeaponSet, r.MonsterPreset, yesNo(r.Special),
		}
		if b := r.Breakdown; b != nil {
			values = append(values,
				b.TotalATK.String(), b.FinalDmgHP.String(), b.RawDmg.String(), b.EffectiveDEF.String())
		}
		if err := writeRow(f, ResultsSheet, row, values); err != nil {
			return err
		}
		row++

		for _, s := range r.Skills {
			if err := writeRow(f, SkillsSheet, skillRow, []any{
				r.Label, displayName(r), s.Key, s.Name, s.Hits, s.PerHit, s.Total,
			}); err != nil {
				return err
			}
			skillRow++
		}
	}

	if err := f.SetColWidth(ResultsSheet, "A", colName(len(resultsHeader)), 14); err != nil {
		return calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to set column width")
	}
	if err := f.SetColWidth(SkillsSheet, "A", colName(len(skillsHeader)), 14); err != nil {
		return calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to set column width")
	}

	if err := f.SaveAs(path); err != nil {
		return calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to save workbook").
			WithMeta("path", path)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string, style int) error {
	values := make([]any, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := writeRow(f, sheet, 1, values); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", colName(len(header))+"1", style); err != nil {
		return calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to style header")
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell := fmt.Sprintf("%s%d", colName(i+1), row)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to set cell").
				WithMeta("cell", sheet+"!"+cell)
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func displayName(r *damage.Result) string {
	if r.CharacterName != "" {
		return r.CharacterName
	}
	return r.CharacterID
}

// colName converts a 1-based column index to its letters (1 -> A, 27 -> AA)
func colName(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

func sanitizeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "results"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, s)
}
