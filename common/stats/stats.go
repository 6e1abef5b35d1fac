// Minimal scoped stats, backed by go-metrics. The wrapper process lives for
// milliseconds, so there is no reporting loop; instruments accumulate in a
// registry and the final snapshot is rendered once, right before exec.
package stats

import (
	"encoding/json"
	"strings"

	"github.com/rcrowley/go-metrics"
)

type Counter interface {
	Inc(int64)
	Count() int64
}

type Gauge interface {
	Update(int64)
	Value() int64
}

// StatsReceiver can be passed down a call tree, scoped at each level.
type StatsReceiver interface {
	Scope(scope ...string) StatsReceiver

	Counter(name ...string) Counter

	Gauge(name ...string) Gauge

	// Render returns a JSON snapshot of every instrument touched so far.
	Render() []byte
}

func DefaultStatsReceiver() StatsReceiver {
	return &defaultStatsReceiver{registry: metrics.NewRegistry()}
}

// NilStatsReceiver records nothing and renders an empty snapshot.
func NilStatsReceiver(scope ...string) StatsReceiver {
	return &defaultStatsReceiver{registry: nil, scope: scope}
}

type defaultStatsReceiver struct {
	registry metrics.Registry
	scope    []string
}

func (s *defaultStatsReceiver) Scope(scope ...string) StatsReceiver {
	return &defaultStatsReceiver{registry: s.registry, scope: append(append([]string{}, s.scope...), scope...)}
}

func (s *defaultStatsReceiver) Counter(name ...string) Counter {
	if s.registry == nil {
		return metrics.NilCounter{}
	}
	return s.registry.GetOrRegister(s.scoped(name...), metrics.NewCounter).(metrics.Counter)
}

func (s *defaultStatsReceiver) Gauge(name ...string) Gauge {
	if s.registry == nil {
		return metrics.NilGauge{}
	}
	return s.registry.GetOrRegister(s.scoped(name...), metrics.NewGauge).(metrics.Gauge)
}

func (s *defaultStatsReceiver) Render() []byte {
	out := map[string]interface{}{}
	if s.registry != nil {
		s.registry.Each(func(name string, i interface{}) {
			switch m := i.(type) {
			case metrics.Counter:
				out[name] = m.Count()
			case metrics.Gauge:
				out[name] = m.Value()
			}
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return []byte("{}")
	}
	return b
}

func (s *defaultStatsReceiver) scoped(name ...string) string {
	return strings.Join(append(append([]string{}, s.scope...), name...), "/")
}
