package models

import "time"

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCredit   AccountType = "credit"
)

// Account is a cash or credit account. Balance is kept current in cents by
// the transaction service; edits reverse the old transaction's effect and
// apply the new one. BalanceAsOf records the last adjustment time.
type Account struct {
	Base
	Name        string      `gorm:"not null" json:"name"`
	Type        AccountType `gorm:"not null" json:"type"`
	OnBudget    bool        `gorm:"not null;default:true" json:"on_budget"`
	Balance     int64       `gorm:"not null;default:0" json:"balance"`
	BalanceAsOf time.Time   `json:"balance_as_of"`

	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
