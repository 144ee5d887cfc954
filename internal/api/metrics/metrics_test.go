package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersAreRegistered(t *testing.T) {
	before := testutil.ToFloat64(SigninsTotal.WithLabelValues(ResultSuccess))
	SigninsTotal.WithLabelValues(ResultSuccess).Inc()
	if got := testutil.ToFloat64(SigninsTotal.WithLabelValues(ResultSuccess)); got != before+1 {
		t.Fatalf("expected counter to advance by one, got %v -> %v", before, got)
	}

	CatalogMutationsTotal.WithLabelValues(OperationSeed).Inc()
	if n := testutil.CollectAndCount(CatalogMutationsTotal); n < 1 {
		t.Fatalf("expected at least one catalog series, got %d", n)
	}
}
