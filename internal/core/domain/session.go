package domain

// LockState is the session lock state machine's current state.
type LockState string

const (
	// Unlocked grants access to the data surfaces.
	Unlocked LockState = "unlocked"
	// LockedVerify waits for the stored PIN to be entered.
	LockedVerify LockState = "locked_verify"
	// LockedSet waits for a new PIN to be chosen (no PIN registered yet,
	// or a reset/change is in progress).
	LockedSet LockState = "locked_set"
)

// LockStatus is the externally visible snapshot of one session's lock.
type LockStatus struct {
	State LockState `json:"state"`
	// PendingChange is set while a change-PIN flow is waiting for the old
	// PIN to be verified before a new one may be set.
	PendingChange bool `json:"pendingChange"`
}
