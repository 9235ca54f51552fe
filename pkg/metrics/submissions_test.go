package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestSubmissionMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewSubmissionMetrics(reg)

	metrics.IncReceived("contact")
	metrics.IncCompleted("contact")
	metrics.IncRejected("quote", "validation")
	metrics.IncProviderSend()
	metrics.ObserveDuration("contact", 120*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "submission_received", "action", "contact"); err != nil {
		t.Fatalf("fetch received: %v", err)
	} else if got != 1 {
		t.Fatalf("expected received=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "submission_rejected", "reason", "validation"); err != nil {
		t.Fatalf("fetch rejected: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejected=1, got %f", got)
	}

	if mf := findMetricFamily(mfs, "notification_provider_sends"); mf == nil {
		t.Fatal("provider send counter not registered")
	} else if mf.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one provider send, got %f", mf.GetMetric()[0].GetCounter().GetValue())
	}
}

func TestSubmissionMetricsNilReceiverIsSafe(t *testing.T) {
	var metrics *SubmissionMetrics
	metrics.IncReceived("contact")
	metrics.IncCompleted("contact")
	metrics.IncRejected("contact", "rate_limit")
	metrics.IncProviderSend()
	metrics.ObserveDuration("contact", time.Millisecond)
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
	return 0, fmt.Errorf("metric %q with %s=%s not found", name, label, value)
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
