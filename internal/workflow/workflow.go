// Package workflow drives the two user-triggered flows that mutate remote
// state: voucher creation and payment initiation. Each flow is a small
// state machine (idle/submitting) that performs exactly one remote
// mutation and reconciles by triggering a reload.
package workflow

import "errors"

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// ErrSubmitInProgress is returned when a submission is requested while
// another one for the same workflow is still in flight. Exactly one
// outbound request ever results from overlapping submits.
var ErrSubmitInProgress = errors.New("submission already in progress")
