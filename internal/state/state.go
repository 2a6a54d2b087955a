// Package state persists the single RunState record consulted and updated
// once per upswitch invocation.
package state

// counterCap saturates the down-notification counter well above any sane
// threshold so the persisted value cannot grow without bound.
const counterCap = 1000

// RunState is the only entity with a lifecycle beyond a single run: the last
// observed overall status plus the notification counters that debounce
// alerting. Exactly one record exists per deployment.
type RunState struct {
	// LastOverallReachable records whether the previous run found any
	// reachable candidate.
	LastOverallReachable bool `toml:"last_overall_reachable"`

	// ConsecutiveDownNotifications counts runs since the current
	// down-episode began, saturating at counterCap.
	ConsecutiveDownNotifications int `toml:"consecutive_down_notifications"`

	// RecoveryPending is set when a down-episode starts and cleared when
	// the recovery notification for it has been dispatched.
	RecoveryPending bool `toml:"recovery_pending"`
}

// Default returns the cold-start state. LastOverallReachable defaults to
// true so a fresh or corrupt state file cannot trigger a spurious recovery
// alert storm.
func Default() RunState {
	return RunState{LastOverallReachable: true}
}

// MarkDown records an all-down run. It increments the down counter (with
// saturation), opens a down-episode when the previous status was up, and
// reports whether an all_down notification should be dispatched given the
// configured threshold.
func (r *RunState) MarkDown(threshold int) (notify bool) {
	if r.LastOverallReachable {
		r.RecoveryPending = true
	}
	if r.ConsecutiveDownNotifications < counterCap {
		r.ConsecutiveDownNotifications++
	}
	r.LastOverallReachable = false
	return r.ConsecutiveDownNotifications <= threshold
}

// MarkUp records a run that found a reachable candidate. It reports whether
// this run closes a down-episode, in which case exactly one recovery
// notification is owed and the counters reset.
func (r *RunState) MarkUp() (recovered bool) {
	recovered = !r.LastOverallReachable && r.RecoveryPending
	r.ConsecutiveDownNotifications = 0
	r.RecoveryPending = false
	r.LastOverallReachable = true
	return recovered
}
