package domain

import "time"

// TransactionType is the direction of a wallet mutation
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Member is a participant with a ticket wallet
type Member struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	TicketBalance int64     `json:"ticket_balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// Transaction is one append-only wallet record
type Transaction struct {
	ID               string          `json:"id"`
	MemberID         string          `json:"member_id"`
	Type             TransactionType `json:"type"`
	Amount           int64           `json:"amount"`
	ResultingBalance int64           `json:"resulting_balance"`
	Reason           string          `json:"reason"`
	CreatedAt        time.Time       `json:"created_at"`
}
