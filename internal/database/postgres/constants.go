package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Rooms
const (
	ErrMsgFailedToEncodeRoom = "failed to encode room"
	ErrMsgFailedToDecodeRoom = "failed to decode room"
	ErrMsgFailedToQueryRoom  = "failed to query room"
	ErrMsgFailedToInsertRoom = "failed to insert room"
	ErrMsgFailedToUpdateRoom = "failed to update room"
)

// Error Messages - Wallets
const (
	ErrMsgFailedToQueryMember       = "failed to query member"
	ErrMsgFailedToInsertMember      = "failed to insert member"
	ErrMsgFailedToUpdateBalance     = "failed to update balance"
	ErrMsgFailedToInsertTransaction = "failed to insert wallet transaction"
	ErrMsgFailedToQueryTransactions = "failed to query wallet transactions"
)

// Log Messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
)

// OpeningBalanceReason is recorded when a member starts with tickets
const OpeningBalanceReason = "Opening balance"
