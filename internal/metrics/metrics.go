// Package metrics provides application-level counters using stdlib expvar.
// Counters are automatically exported on the /debug/vars HTTP endpoint
// when net/http/pprof is imported in the main binary.
package metrics

import "expvar"

// Operation counters.
var (
	LoadTotal         = expvar.NewInt("catalogctl_load_total")
	CreateTotal       = expvar.NewInt("catalogctl_create_total")
	UpdateTotal       = expvar.NewInt("catalogctl_update_total")
	DeleteTotal       = expvar.NewInt("catalogctl_delete_total")
	ValidationFailed  = expvar.NewInt("catalogctl_validation_failed_total")
	ImportBatches     = expvar.NewInt("catalogctl_import_batches_total")
	ImportAborted     = expvar.NewInt("catalogctl_import_aborted_total")
	PollTicks         = expvar.NewInt("catalogctl_poll_ticks_total")
	ConflictResponses = expvar.NewInt("catalogctl_conflict_responses_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }
