package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordValidation("PETR4", true)
	r.RecordValidation("PETR4", true)
	r.RecordValidation("PETR4", false)
	r.RecordCacheLookup(true)
	r.RecordCacheLookup(false)
	r.RecordCacheLookup(false)
	r.RecordBasket("PETR4", 3, 30000)
	r.RecordError("market_data")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.validations.WithLabelValues("PETR4", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.validations.WithLabelValues("PETR4", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.baskets.WithLabelValues("PETR4")))
	assert.Equal(t, 30000.0, testutil.ToFloat64(r.invested.WithLabelValues("PETR4")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("market_data")))
}
