package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	success := testutil.ToFloat64(generationTotal.WithLabelValues("success"))
	failure := testutil.ToFloat64(generationTotal.WithLabelValues("error"))

	ObserveGeneration(10*time.Millisecond, nil)
	ObserveGeneration(time.Millisecond, errors.New("boom"))

	assert.Equal(t, success+1, testutil.ToFloat64(generationTotal.WithLabelValues("success")))
	assert.Equal(t, failure+1, testutil.ToFloat64(generationTotal.WithLabelValues("error")))
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/health", "200"))

	ObserveRequest("/health", 200)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/health", "200")))
}

func TestRateLimited(t *testing.T) {
	before := testutil.ToFloat64(rateLimitedTotal)
	RateLimited()
	assert.Equal(t, before+1, testutil.ToFloat64(rateLimitedTotal))
}

func TestObserveArchive(t *testing.T) {
	ObserveArchive(42 << 10)
	assert.Equal(t, 1, testutil.CollectAndCount(archiveBytes))
}
