package stats

import (
	"bufio"
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	BYTE = 1 << (10 * iota)
	KILOBYTE
	MEGABYTE
	GIGABYTE
	TERABYTE
)

var (
	// KeysGenerated counts the derived key/address pairs, by converter.
	KeysGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "keygen",
		Name:      "keys_generated_total",
		Help:      "Number of key/address pairs generated.",
	}, []string{"converter"})
	// AcceleratorFallbacks counts the keys converted in process because the
	// address accelerator failed or was disabled.
	AcceleratorFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "keygen",
		Name:      "accelerator_fallbacks_total",
		Help:      "Number of keys converted without the address accelerator.",
	})
)

func init() {
	prometheus.MustRegister(KeysGenerated, AcceleratorFallbacks)
}

// EnableMemoryStatistics enables go routine that periodically prints memory
// usage of the go process. Prometheus metrics are dumped to statsFile, if
// defined, once the context is done.
func EnableMemoryStatistics(
	ctx context.Context, interval time.Duration, statsFile string,
) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				PrintMemoryStatistics()
				PrintNumOfRoutines()
			case <-ctx.Done():
				if statsFile == "" {
					return
				}
				if err := DumpPrometheusDefaults(statsFile); err != nil {
					log.WithError(err).Warn("failed to dump statistics")
				}
				return
			}
		}
	}()
}

// toGigabytes returns given memory in bytes to gigabytes.
func toGigabytes(bytes uint64) float64 {
	return float64(bytes) / GIGABYTE
}

// PrintMemoryStatistics prints memory statistics using go runtime library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Debugf(
		"Total allocated: %.3fGB, Heap allocated: %.3fGB, "+
			"Allocated objects count: %v, Freed objects count: %v",
		toGigabytes(memStats.TotalAlloc),
		toGigabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
	)
}

// DumpPrometheusDefaults appends the default Prometheus metrics to the given
// file.
func DumpPrometheusDefaults(path string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	metricFamily, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(file)
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// PrintNumOfRoutines prints number of go routines currently running
func PrintNumOfRoutines() {
	log.Debugf("Num of go routines: %v", runtime.NumGoroutine())
}
