package worktime

import "errors"

// Work-time engine errors. Lookup and policy failures are fatal: the
// orchestrator aborts before writing anything, and the caller is expected to
// retry. Everything else is absorbed into the summary's work_status_tag.
var (
	ErrLookupUnavailable   = errors.New("holiday or leave lookup unavailable")
	ErrPolicyConfigMissing = errors.New("no compensation policy configured for date")
	ErrSummaryNotFound     = errors.New("day summary not found")
	ErrManuallyOverridden  = errors.New("summary was manually overridden; explicit recompute required")
)
