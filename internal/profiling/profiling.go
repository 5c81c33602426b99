package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Process-wide timing accumulator for generation stages. Workers record into it
// concurrently; the CLI reads it once a run is done.

// Stat is the accumulated time and call count for one tracked name.
type Stat struct {
	Total time.Duration
	Calls int64
}

// Mean returns the average duration of one call.
func (s Stat) Mean() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

var (
	mu     sync.Mutex
	totals = make(map[string]Stat)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("world.Sampler.Fill")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := totals[name]
		s.Total += d
		s.Calls++
		totals[name] = s
		mu.Unlock()
	}
}

// Reset clears all totals.
func Reset() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns a copy of current totals.
func Snapshot() map[string]Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Stat, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up the totals of every name starting with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, v := range totals {
		if strings.HasPrefix(k, prefix) {
			sum += v.Total
		}
	}
	return sum
}

// TopN formats the n names with the largest totals.
// Example: "world.Sampler.Fill:412.5ms/96, world.Update:3.1ms/4"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		stat Stat
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, stat: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].stat.Total != list[j].stat.Total {
			return list[i].stat.Total > list[j].stat.Total
		}
		return list[i].name < list[j].name
	})
	n = max(min(n, len(list)), 0)
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.stat.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms/%d", p.name, ms, p.stat.Calls))
	}
	return strings.Join(parts, ", ")
}
