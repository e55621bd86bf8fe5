package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestBookingMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewBookingMetrics(reg)
	metrics.IncFinalized("razorpay")
	metrics.IncConflict()
	metrics.IncNotificationFailure()
	metrics.ObserveFinalizeDuration(150 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "booking_finalized_total", "method", "razorpay"); err != nil {
		t.Fatalf("fetch finalized: %v", err)
	} else if got != 1 {
		t.Fatalf("expected finalized=1, got %f", got)
	}

	if got := fetchPlainCounter(t, mfs, "booking_conflict_total"); got != 1 {
		t.Fatalf("expected conflicts=1, got %f", got)
	}

	if got := fetchPlainCounter(t, mfs, "booking_notification_failure_total"); got != 1 {
		t.Fatalf("expected notification failures=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "booking_finalize_duration_seconds")
	if mf == nil || len(mf.GetMetric()) == 0 {
		t.Fatal("finalize duration histogram not found")
	}
	if sum := mf.GetMetric()[0].GetHistogram().GetSampleSum(); sum <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", sum)
	}
}

func TestBookingMetricsNilReceiverIsSafe(t *testing.T) {
	var metrics *BookingMetrics
	metrics.IncFinalized("razorpay")
	metrics.IncConflict()
	metrics.IncNotificationFailure()
	metrics.ObserveFinalizeDuration(time.Second)

	empty := NewBookingMetrics(nil)
	empty.IncFinalized("")
	empty.IncConflict()
}

func fetchPlainCounter(t *testing.T, mfs []*dto.MetricFamily, name string) float64 {
	t.Helper()
	mf := findMetricFamily(mfs, name)
	if mf == nil || len(mf.GetMetric()) == 0 {
		t.Fatalf("metric %q not found", name)
	}
	return mf.GetMetric()[0].GetCounter().GetValue()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
