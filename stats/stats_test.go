package stats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.RecordProcessed("iso2709")
	p.RecordProcessed("iso2709")
	p.RecordProcessed("marcxml")
	p.RecordFailed("decode")
	p.Fallback()
	p.Warnings(3)
	p.Warnings(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.processed.WithLabelValues("iso2709")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.processed.WithLabelValues("marcxml")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.failed.WithLabelValues("decode")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.fallbacks))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.warnings))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestNopSatisfiesCollector(t *testing.T) {
	var c Collector = Nop{}
	c.RecordProcessed("iso2709")
	c.Warnings(1)
}
