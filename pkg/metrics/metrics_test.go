package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var testCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "issuegaze_metrics_test_total",
	Help: "Test counter for the dump path",
})

func TestDump(t *testing.T) {
	testCounter.Add(3)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	if err := Dump(logger); err != nil {
		t.Fatalf("Dump() failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "issuegaze_metrics_test_total") {
		t.Errorf("dump output missing test counter, got %q", out)
	}
	if !strings.Contains(out, `"value":3`) {
		t.Errorf("dump output missing counter value, got %q", out)
	}
}
