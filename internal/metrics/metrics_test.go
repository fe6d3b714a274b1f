package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/venues/:id", "200"))
	ObserveRequest(http.MethodGet, "/venues/:id", http.StatusOK, 15*time.Millisecond)
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/venues/:id", "200")) - before; got != 1 {
		t.Fatalf("request counter moved by %v, want 1", got)
	}

	unmatched := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")) - unmatched; got != 1 {
		t.Fatalf("unmatched counter moved by %v, want 1", got)
	}
}

func TestRecordMutation(t *testing.T) {
	c := MutationsTotal.WithLabelValues("venue", "delete", "not_found")
	before := testutil.ToFloat64(c)
	RecordMutation("venue", "delete", "not_found")
	RecordMutation("venue", "delete", "not_found")
	if got := testutil.ToFloat64(c) - before; got != 2 {
		t.Fatalf("mutation counter moved by %v, want 2", got)
	}
}
