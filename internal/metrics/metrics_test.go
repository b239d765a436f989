package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveUnit("create_bar", true)
	m.ObserveUnit("create_bar", true)
	m.ObserveUnit("replicate", false)
	m.ObserveCreated("copy", 4)
	m.ObserveCreated("copy", 0)
	m.ObserveLookupMiss("surface")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.unitsOfWork.WithLabelValues("create_bar", ResultCommitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.unitsOfWork.WithLabelValues("replicate", ResultRolledBack)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.elementsCreated.WithLabelValues("copy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookupMisses.WithLabelValues("surface")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveUnit("create_bar", true)
	m.ObserveCreated("bar", 1)
	m.ObserveLookupMiss("bar_type")
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveUnit("mirror", true)

	path := filepath.Join(t.TempDir(), "gorebar.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `gorebar_units_of_work_total{kind="mirror",result="committed"} 1`))
}
