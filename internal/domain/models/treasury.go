package models

import "time"

// BankAccount is a linked account exposed by the banking aggregator.
type BankAccount struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	IBAN     string  `json:"iban"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

// BankTransaction is one booked movement on an aggregated account.
type BankTransaction struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	BookingDate time.Time `json:"booking_date"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
}

// AccountBalance pairs an account with its reduced movement totals.
type AccountBalance struct {
	Account BankAccount `json:"account"`
	Inflow  float64     `json:"inflow"`
	Outflow float64     `json:"outflow"`
}

// TreasurySummary is the reduced view of all synced bank activity for the
// treasury card of the dashboard.
type TreasurySummary struct {
	SyncedAt     time.Time        `json:"synced_at"`
	TotalBalance float64          `json:"total_balance"`
	Inflow       float64          `json:"inflow"`
	Outflow      float64          `json:"outflow"`
	Net          float64          `json:"net"`
	Accounts     []AccountBalance `json:"accounts"`
	Transactions int              `json:"transactions"`
}
