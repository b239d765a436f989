package scenario

import (
	"fmt"

	"github.com/alexiusacademia/gorebar/internal/host"
)

// Report is the outcome of one scenario run, in the order things happened.
type Report struct {
	Name    string
	Lines   []string
	Created []host.ElementID
	Failed  int
	Skipped int
}

func newReport(name string) *Report {
	return &Report{Name: name}
}

func (r *Report) addf(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

func (r *Report) created(ids ...host.ElementID) {
	r.Created = append(r.Created, ids...)
}

func (r *Report) failf(format string, args ...any) {
	r.Failed++
	r.addf(format, args...)
}

func (r *Report) skipf(format string, args ...any) {
	r.Skipped++
	r.addf(format, args...)
}

// OK reports whether nothing failed or was skipped.
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Skipped == 0
}
