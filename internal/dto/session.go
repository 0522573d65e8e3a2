package dto

import "github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"

// VerifyPinRequest carries a 6-digit PIN attempt.
type VerifyPinRequest struct {
	Pin string `json:"pin" binding:"required,len=6,numeric"`
}

// SetPinRequest carries a new PIN with its confirmation entry.
type SetPinRequest struct {
	Pin     string `json:"pin" binding:"required,len=6,numeric"`
	Confirm string `json:"confirm" binding:"required,len=6,numeric"`
}

// ResetPinRequest requires an explicit confirmation flag; resetting is
// destructive (clears the stored PIN and forces re-authentication).
type ResetPinRequest struct {
	Confirm bool `json:"confirm" binding:"required"`
}

// LockStatusResponse is the session lock snapshot returned by every
// lock-screen operation.
type LockStatusResponse struct {
	State         string `json:"state"`
	PendingChange bool   `json:"pendingChange,omitempty"`
}

// ToLockStatusResponse converts a domain lock status to its DTO.
func ToLockStatusResponse(s domain.LockStatus) LockStatusResponse {
	return LockStatusResponse{
		State:         string(s.State),
		PendingChange: s.PendingChange,
	}
}
