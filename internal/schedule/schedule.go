// Package schedule turns the bars of a document into a bar bending
// schedule and exports it as XLSX or PDF.
package schedule

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexiusacademia/gorebar/internal/document"
	"github.com/alexiusacademia/gorebar/internal/units"
)

// Line is one bar of the schedule.
type Line struct {
	Mark       int
	ID         string
	BarType    string
	Segments   int
	Length     units.Millimeters
	UnitWeight units.KgPerMeter
	Weight     float64 // kg
	Copy       bool
}

// TypeTotal sums the lines of one bar type.
type TypeTotal struct {
	BarType string
	Count   int
	Length  float64 // m
	Weight  float64 // kg
}

// Schedule is the full bar list plus per-type totals.
type Schedule struct {
	Title   string
	Lines   []Line
	Totals  []TypeTotal
	Missing []string // bar types without a unit weight
}

// TotalWeight returns the weight of every bar in kg.
func (s *Schedule) TotalWeight() float64 {
	var w float64
	for _, t := range s.Totals {
		w += t.Weight
	}
	return w
}

// Build lists rebars in creation order. Bars whose type has no entry in
// weights are scheduled with zero weight and reported in Missing.
func Build(title string, rebars []document.Rebar, weights map[string]units.KgPerMeter) *Schedule {
	s := &Schedule{Title: title}
	totals := make(map[string]*TypeTotal)
	missing := make(map[string]bool)

	for i, r := range rebars {
		lengthM := r.Path.Length() * units.MMPerFoot / 1000
		uw, ok := weights[r.TypeName]
		if !ok {
			missing[r.TypeName] = true
		}
		line := Line{
			Mark:       i + 1,
			ID:         string(r.ID),
			BarType:    r.TypeName,
			Segments:   len(r.Path.Segments),
			Length:     units.Feet(r.Path.Length()).Millimeters(),
			UnitWeight: uw,
			Weight:     lengthM * float64(uw),
			Copy:       !r.SourceID.IsZero(),
		}
		s.Lines = append(s.Lines, line)

		t, ok := totals[r.TypeName]
		if !ok {
			t = &TypeTotal{BarType: r.TypeName}
			totals[r.TypeName] = t
		}
		t.Count++
		t.Length += lengthM
		t.Weight += line.Weight
	}

	for _, t := range totals {
		s.Totals = append(s.Totals, *t)
	}
	sort.Slice(s.Totals, func(i, j int) bool { return s.Totals[i].BarType < s.Totals[j].BarType })
	for name := range missing {
		s.Missing = append(s.Missing, name)
	}
	sort.Strings(s.Missing)
	return s
}

// Export writes s to path, choosing the format from the extension.
func Export(path string, s *Schedule) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		data, err = BuildXLSX(s)
	case ".pdf":
		data, err = BuildPDF(s)
	default:
		return fmt.Errorf("unsupported schedule format %q, use .xlsx or .pdf", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
