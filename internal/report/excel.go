// Package report exports a snapshot as an XLSX workbook for offline review.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
)

const overviewSheet = "概要"

// sheetWriter accumulates the first error so cell writes can be chained
// without checking each one.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, value)
}

// BuildFile renders the snapshot into a workbook: an overview sheet with
// population, scores, and rankings per ward, plus one sheet per category
// listing the underlying metric values.
func BuildFile(snap *domain.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return nil, fmt.Errorf("renaming overview sheet: %w", err)
	}

	if err := writeOverview(f, snap); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing overview sheet: %w", err)
	}
	for _, kind := range domain.CategoryKinds {
		if err := writeCategory(f, snap, kind); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing %s sheet: %w", kind, err)
		}
	}
	return f, nil
}

func writeOverview(f *excelize.File, snap *domain.Snapshot) error {
	w := &sheetWriter{f: f, sheet: overviewSheet}

	w.set(1, 1, "生成日時")
	w.set(2, 1, snap.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	w.set(1, 3, "コード")
	w.set(2, 3, "区名")
	w.set(3, 3, "人口")
	for i, kind := range domain.CategoryKinds {
		def := domain.Categories[kind]
		w.set(4+i, 3, def.Label+"スコア")
		w.set(4+len(domain.CategoryKinds)+i, 3, def.Label+"順位")
	}

	for i := range snap.Wards {
		ward := &snap.Wards[i]
		row := 4 + i
		w.set(1, row, ward.City.Code)
		w.set(2, row, ward.City.Name)
		w.set(3, row, ward.City.Population.Total)
		for j, kind := range domain.CategoryKinds {
			w.set(4+j, row, ward.Scores.Get(kind))
			w.set(4+len(domain.CategoryKinds)+j, row, ward.Rankings.Get(kind))
		}
	}

	avgRow := 4 + len(snap.Wards)
	w.set(2, avgRow, "23区平均")
	for j, kind := range domain.CategoryKinds {
		w.set(4+j, avgRow, snap.Avg23Scores.Get(kind))
	}

	if w.err == nil {
		w.err = f.SetColWidth(overviewSheet, "A", "B", 14)
	}
	return w.err
}

func writeCategory(f *excelize.File, snap *domain.Snapshot, kind domain.CategoryKind) error {
	def := domain.Categories[kind]
	if _, err := f.NewSheet(def.Label); err != nil {
		return err
	}
	w := &sheetWriter{f: f, sheet: def.Label}

	w.set(1, 1, "コード")
	w.set(2, 1, "区名")
	headerCols := 0
	if len(snap.Wards) > 0 {
		items := snap.Wards[0].City.Category(kind).Items
		headerCols = len(items)
		for i, item := range items {
			label := item.Label
			if item.Unit != "" {
				label = fmt.Sprintf("%s (%s)", item.Label, item.Unit)
			}
			w.set(3+i, 1, label)
		}
	}
	w.set(3+headerCols, 1, "スコア")
	w.set(4+headerCols, 1, "順位")

	for i := range snap.Wards {
		ward := &snap.Wards[i]
		row := 2 + i
		w.set(1, row, ward.City.Code)
		w.set(2, row, ward.City.Name)
		for j, item := range ward.City.Category(kind).Items {
			w.set(3+j, row, item.Value)
		}
		w.set(3+headerCols, row, ward.Scores.Get(kind))
		w.set(4+headerCols, row, ward.Rankings.Get(kind))
	}
	return w.err
}

// Write renders the snapshot workbook to w.
func Write(w io.Writer, snap *domain.Snapshot) error {
	f, err := BuildFile(snap)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteFile renders the snapshot workbook and saves it at path.
func WriteFile(path string, snap *domain.Snapshot) error {
	f, err := BuildFile(snap)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
