package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker"
)

var (
	// MaxNumOfFailingRequests ...
	MaxNumOfFailingRequests = 10
	// FailingRatio ...
	FailingRatio = 0.6
	// DefaultOpenTimeout is long enough to keep an open breaker open for the
	// whole lifetime of a generation run.
	DefaultOpenTimeout = 24 * time.Hour
)

// Opts ...
type Opts struct {
	Name string
	// MaxConsecutiveFailures trips the breaker as soon as the given number of
	// requests in a row have failed. Zero disables the check.
	MaxConsecutiveFailures uint32
	OpenTimeout            time.Duration
	OnStateChange          func(name string, from, to gobreaker.State)
}

// NewCircuitBreaker is a factory function returning a *gobreaker.CircuitBreaker
// with a default state-changing function that activates either when
// MaxConsecutiveFailures requests in a row have failed, or if the overall
// number of failing requests have reached a tweakable MaxNumOfFailingRequests
// cap and the failing ratio has met the FailingRatio.
func NewCircuitBreaker(opts Opts) *gobreaker.CircuitBreaker {
	name := opts.Name
	if name == "" {
		name = "circuitbreaker"
	}
	timeout := opts.OpenTimeout
	if timeout <= 0 {
		timeout = DefaultOpenTimeout
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:          name,
		Timeout:       timeout,
		OnStateChange: opts.OnStateChange,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if opts.MaxConsecutiveFailures > 0 &&
				counts.ConsecutiveFailures >= opts.MaxConsecutiveFailures {
				return true
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests && ratio >= FailingRatio
		},
	})
}
