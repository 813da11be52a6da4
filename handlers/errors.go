package handlers

import "github.com/pkg/errors"

// Validation errors. They reject the transaction instance at hand without
// mutating any wallet; a corrected transaction may be submitted again.
var (
	ErrUnregisteredType    = errors.New("handlers: no handler registered")
	ErrNonceMismatch       = errors.New("handlers: transaction nonce does not follow wallet nonce")
	ErrInsufficientBalance = errors.New("handlers: insufficient wallet balance")
	ErrAlreadyDelegate     = errors.New("handlers: wallet is already a delegate")
	ErrUsernameTaken       = errors.New("handlers: delegate username already registered")
	ErrLockNotFound        = errors.New("handlers: htlc lock not found")
	ErrLockDuration        = errors.New("handlers: htlc lock duration out of bounds")
	ErrLockExpired         = errors.New("handlers: htlc lock expired")
	ErrLockNotExpired      = errors.New("handlers: htlc lock not yet expired")
	ErrSecretMismatch      = errors.New("handlers: unlock secret does not match lock secret hash")
	ErrNotLockRecipient    = errors.New("handlers: claim sender is not the lock recipient")
	ErrNotLockOwner        = errors.New("handlers: refund sender did not create the lock")
	ErrFeeExceedsLock      = errors.New("handlers: fee exceeds locked amount")
)

// State machine errors.
var (
	ErrNotValidated = errors.New("handlers: transaction has not been validated")
	ErrNotApplied   = errors.New("handlers: transaction has not been applied")
)
