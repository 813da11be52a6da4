package config

// HTLC lock duration bounds, in seconds, measured from the lock transaction's
// timestamp to its expiration. Locks outside these bounds are rejected during
// validation.
const (
	MinLockDuration = 60 * 60 // one hour
	MaxLockDuration = 30 * 24 * 60 * 60
)
