package store

// Storage prefices
const (
	WalletPrefix      = "wa-"
	TransactionPrefix = "tx-"
	TxTypePrefix      = "ty-"
	LockIndexPrefix   = "lk-"
)
