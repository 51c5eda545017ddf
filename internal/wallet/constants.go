package wallet

// Error context strings
const (
	ErrContextCreditFailed  = "failed to credit wallet"
	ErrContextDebitFailed   = "failed to debit wallet"
	ErrContextBalanceFailed = "failed to read wallet balance"
	ErrContextHistoryFailed = "failed to list wallet transactions"
)

// Log messages
const (
	LogMsgWalletCredited = "Wallet credited"
	LogMsgWalletDebited  = "Wallet debited"
	LogMsgDebitRefused   = "Wallet debit refused"
)

// History limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)
