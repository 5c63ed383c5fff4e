package services

import (
	"strings"

	"editorial-cms/models"
)

// DiffEngine exposes the two content comparators. ComputeChanges feeds the
// change-tracking ledger; CompareLines backs the read-only version compare
// endpoint. The two are deliberately separate operations with separate
// output shapes and must not be unified.
type DiffEngine interface {
	ComputeChanges(oldContent, newContent string) []models.ChangeRecord
	CompareLines(oldContent, newContent string) []models.LineDiff
}

type diffEngine struct{}

func NewDiffEngine() DiffEngine {
	return &diffEngine{}
}

// ComputeChanges is whole-document and length-based: a longer replacement is
// one add covering the new text, a shorter one is one delete covering the old
// text, an equal-length rewrite is one modify, identical content yields
// nothing. Position is always 0.
func (d *diffEngine) ComputeChanges(oldContent, newContent string) []models.ChangeRecord {
	if oldContent == newContent {
		return nil
	}

	switch {
	case len(newContent) > len(oldContent):
		return []models.ChangeRecord{{
			ChangeType: models.ChangeAdd,
			NewText:    &newContent,
			Position:   0,
			Status:     models.ChangePending,
		}}
	case len(newContent) < len(oldContent):
		return []models.ChangeRecord{{
			ChangeType: models.ChangeDelete,
			OldText:    &oldContent,
			Position:   0,
			Status:     models.ChangePending,
		}}
	default:
		return []models.ChangeRecord{{
			ChangeType: models.ChangeModify,
			OldText:    &oldContent,
			NewText:    &newContent,
			Position:   0,
			Status:     models.ChangePending,
		}}
	}
}

// CompareLines walks both contents line by line and reports every index where
// they differ, with 1-based line numbers. A side that runs out of lines
// contributes empty strings.
func (d *diffEngine) CompareLines(oldContent, newContent string) []models.LineDiff {
	oldLines := strings.Split(oldContent, "\n")
	newLines := strings.Split(newContent, "\n")

	max := len(oldLines)
	if len(newLines) > max {
		max = len(newLines)
	}

	var diffs []models.LineDiff
	for i := 0; i < max; i++ {
		oldLine := ""
		if i < len(oldLines) {
			oldLine = oldLines[i]
		}
		newLine := ""
		if i < len(newLines) {
			newLine = newLines[i]
		}
		if oldLine != newLine {
			diffs = append(diffs, models.LineDiff{
				Line: i + 1,
				Old:  oldLine,
				New:  newLine,
			})
		}
	}

	return diffs
}
