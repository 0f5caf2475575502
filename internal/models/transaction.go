package models

import "time"

// Direction represents the direction of money movement
type Direction string

const (
	DirectionInflow   Direction = "inflow"
	DirectionOutflow  Direction = "outflow"
	DirectionTransfer Direction = "transfer"
)

// Transaction represents a financial transaction. Amount is always a
// positive number of cents; Direction carries the sign. An inflow with
// ToBudget set counts toward Ready-to-Assign for its month.
type Transaction struct {
	Base
	AccountID  uint      `gorm:"not null;index" json:"account_id"`
	Date       time.Time `gorm:"not null;index" json:"date"`
	Amount     int64     `gorm:"not null" json:"amount"`
	Direction  Direction `gorm:"not null" json:"direction"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	ToBudget   bool      `gorm:"not null;default:false" json:"to_budget"`
	Memo       string    `json:"memo"`

	// For transfers
	ToAccountID *uint `json:"to_account_id,omitempty"`

	// Splits sub-allocate the amount across categories; when present they
	// must sum to Amount and take precedence over CategoryID.
	Splits []TransactionSplit `gorm:"foreignKey:TransactionID" json:"splits,omitempty"`

	Account   Account   `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	ToAccount *Account  `gorm:"foreignKey:ToAccountID" json:"to_account,omitempty"`
	Category  *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TransactionSplit allocates part of a transaction to a category.
type TransactionSplit struct {
	Base
	TransactionID uint  `gorm:"not null;index" json:"transaction_id"`
	CategoryID    uint  `gorm:"not null;index" json:"category_id"`
	Amount        int64 `gorm:"not null" json:"amount"`
}

// MonthKey returns the YYYY-MM bucket the transaction falls in.
func (t *Transaction) MonthKey() Month {
	return t.Date.Format("2006-01")
}
