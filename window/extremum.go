// Package window tracks the rolling maximum or minimum of a timestamped
// series over a fixed time span.
//
// The tracker keeps its samples in a cyclic deque ordered by timestamp and
// maintains it monotonic: a new sample evicts every older sample it dominates
// from the back, and reads drop expired samples from the front. The front
// sample is therefore always the current extremum, both ends move O(1)
// amortized, and the deque only ever holds samples that may still become the
// extremum later.
package window

import (
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"cyclicdeque/deque"
	"cyclicdeque/pkg/apperror"
	"cyclicdeque/pkg/metrics"
)

// sample pairs an observed value with its timestamp.
type sample[V constraints.Ordered] struct {
	ts    time.Time
	value V
}

// Extremum tracks the rolling maximum or minimum over the span. Like the
// deque it is built on, an Extremum is single-owner; wrap it in a mutex to
// share it across goroutines.
type Extremum[V constraints.Ordered] struct {
	name string
	span time.Duration
	// dominates reports whether a new observation makes an older sample
	// irrelevant for the rest of its lifetime.
	dominates func(incoming, old V) bool

	samples *deque.CyclicDeque[sample[V]]
	lastTs  time.Time

	metricSamples    prometheus.Gauge
	metricExpired    prometheus.Counter
	metricOutOfOrder prometheus.Counter
}

// NewMax creates a tracker for the rolling maximum over span. The name labels
// the tracker's metrics and log lines.
func NewMax[V constraints.Ordered](name string, span time.Duration) (*Extremum[V], error) {
	return newExtremum[V](name, span, func(incoming, old V) bool { return incoming >= old })
}

// NewMin creates a tracker for the rolling minimum over span.
func NewMin[V constraints.Ordered](name string, span time.Duration) (*Extremum[V], error) {
	return newExtremum[V](name, span, func(incoming, old V) bool { return incoming <= old })
}

func newExtremum[V constraints.Ordered](
	name string,
	span time.Duration,
	dominates func(incoming, old V) bool,
) (*Extremum[V], error) {
	if span <= 0 {
		return nil, apperror.ErrInvalidWindowSpan.GenWithStackByArgs(span)
	}
	return &Extremum[V]{
		name:             name,
		span:             span,
		dominates:        dominates,
		samples:          deque.NewCyclicDequeDefault[sample[V]](),
		metricSamples:    metrics.WindowSampleCount.WithLabelValues(name),
		metricExpired:    metrics.WindowExpiredTotal.WithLabelValues(name),
		metricOutOfOrder: metrics.WindowOutOfOrderTotal.WithLabelValues(name),
	}, nil
}

// Observe feeds one sample. Timestamps must be non-decreasing across calls;
// a sample older than the latest one is dropped, because inserting it would
// break the timestamp order the deque relies on.
func (e *Extremum[V]) Observe(ts time.Time, v V) {
	if ts.Before(e.lastTs) {
		log.Warn("dropping out-of-order sample",
			zap.String("window", e.name),
			zap.Time("ts", ts),
			zap.Time("lastTs", e.lastTs))
		e.metricOutOfOrder.Inc()
		return
	}
	e.lastTs = ts

	// Samples dominated by the new one can never be the extremum again,
	// their lifetime ends strictly before the new sample's.
	for {
		back, err := e.samples.Back()
		if err != nil || !e.dominates(v, back.value) {
			break
		}
		if _, err := e.samples.PopBack(); err != nil {
			panic("unreachable")
		}
	}
	e.samples.PushBack(sample[V]{ts: ts, value: v})

	e.expire(ts)
	e.metricSamples.Set(float64(e.samples.Length()))
}

// Value returns the extremum among the samples still inside the span ending
// at now. It fails with the empty-deque error when every sample has expired
// or none was ever observed.
func (e *Extremum[V]) Value(now time.Time) (V, error) {
	e.expire(now)
	e.metricSamples.Set(float64(e.samples.Length()))

	front, err := e.samples.Front()
	if err != nil {
		var zero V
		return zero, errors.Trace(err)
	}
	return front.value, nil
}

// Len returns the number of samples currently held. It is at most the number
// of observed samples still inside the span, dominated ones are evicted
// early.
func (e *Extremum[V]) Len() int {
	return e.samples.Length()
}

// Metrics is a point-in-time snapshot of the tracker internals.
type Metrics struct {
	SampleCount   int
	DequeCapacity int
	DequeGrowths  int
}

func (e *Extremum[V]) GetMetrics() Metrics {
	return Metrics{
		SampleCount:   e.samples.Length(),
		DequeCapacity: e.samples.Capacity(),
		DequeGrowths:  e.samples.GrowthCount(),
	}
}

// expire drops the samples observed at or before now-span off the front. A
// sample observed exactly span ago is already expired.
func (e *Extremum[V]) expire(now time.Time) {
	cutoff := now.Add(-e.span)
	for {
		front, err := e.samples.Front()
		if err != nil || front.ts.After(cutoff) {
			break
		}
		e.samples.PopFront()
		e.metricExpired.Inc()
	}
}
