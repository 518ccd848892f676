package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestListingMetricsNilSafe(t *testing.T) {
	var m *ListingMetrics
	assert.NotPanics(t, func() {
		m.RecordCreated()
		m.RecordArchived()
		m.RecordSlugCollision()
	})
}

func TestListingMetricsRegister(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newListingMetrics(registry)
	m.RecordCreated()
	m.RecordSlugCollision()

	families, err := registry.Gather()
	assert.NoError(t, err)
	assert.Len(t, families, 3)
}
