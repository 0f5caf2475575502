package services

import (
	"time"

	"zerosum/internal/engine"
	"zerosum/internal/models"
	"zerosum/internal/pagination"
)

// CategoryServicer defines the contract for category and group management.
type CategoryServicer interface {
	CreateGroup(name string) (*models.CategoryGroup, error)
	GetGroups() ([]models.CategoryGroup, error)
	RenameGroup(groupID uint, name string) (*models.CategoryGroup, error)
	DeleteGroup(groupID uint) error
	CreateCategory(groupID uint, name string, priority int, rollover models.RolloverPolicy, negative models.RolloverNegative, targetAmount *int64, targetMonth *models.Month) (*models.Category, error)
	GetCategories(page pagination.PageRequest, includeArchived bool) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(categoryID uint) (*models.Category, error)
	UpdateCategory(categoryID uint, name *string, groupID *uint, priority *int, rollover *models.RolloverPolicy, negative *models.RolloverNegative, targetAmount *int64, targetMonth *models.Month) (*models.Category, error)
	ArchiveCategory(categoryID uint) error
	DeleteCategory(categoryID uint) error
}

// BudgetServicer defines the contract for assigning funds and reading
// derived monthly figures.
type BudgetServicer interface {
	Assign(categoryID uint, month models.Month, amount int64) (*models.BudgetEntry, error)
	GetMonthSummary(month models.Month) (*engine.MonthSummary, error)
	GetCategoryLedger(categoryID uint, month models.Month) (*engine.CategoryLedger, error)
	GetGroupRollup(groupID uint, month models.Month) (*engine.GroupRollup, error)
}

// AccountServicer defines the contract for account management.
type AccountServicer interface {
	CreateAccount(name string, accountType models.AccountType, onBudget bool, openingBalance int64) (*models.Account, error)
	GetAccounts() ([]models.Account, error)
	GetAccountByID(accountID uint) (*models.Account, error)
	UpdateAccount(accountID uint, name *string, onBudget *bool) (*models.Account, error)
	ReconcileBalance(accountID uint, balance int64) (*models.Account, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Direction  *models.Direction
	CategoryID *uint
	AccountID  *uint
}

// SplitInput is one requested split allocation.
type SplitInput struct {
	CategoryID uint
	Amount     int64
}

// TransactionServicer defines the contract for recording money movement.
type TransactionServicer interface {
	CreateTransaction(accountID uint, direction models.Direction, amount int64, date time.Time, categoryID *uint, toBudget bool, memo string, splits []SplitInput) (*models.Transaction, error)
	CreateTransfer(fromAccountID, toAccountID uint, amount int64, date time.Time, memo string) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID uint) (*models.Transaction, error)
	UpdateTransaction(transactionID uint, amount *int64, date *time.Time, categoryID *uint, clearCategory bool, memo *string, splits []SplitInput) (*models.Transaction, error)
	DeleteTransaction(transactionID uint) error
}

// UpcomingBill is a bill with its next due date resolved against today.
type UpcomingBill struct {
	Bill    models.Bill  `json:"bill"`
	DueDate time.Time    `json:"due_date"`
	DueIn   int          `json:"due_in_days"`
	Month   models.Month `json:"month"`
}

// BillServicer defines the contract for bill management.
type BillServicer interface {
	CreateBill(name string, amount int64, cadence models.Cadence, nextDue time.Time, categoryID uint, flexible, autopay bool) (*models.Bill, error)
	GetBills() ([]models.Bill, error)
	GetBillByID(billID uint) (*models.Bill, error)
	UpdateBill(billID uint, name *string, amount *int64, nextDue *time.Time, flexible, autopay *bool) (*models.Bill, error)
	DeleteBill(billID uint) error
	GetDueSoon(withinDays int, asOf time.Time) ([]UpcomingBill, error)
	GetOverdue(asOf time.Time) ([]UpcomingBill, error)
	MarkPaid(billID uint, asOf time.Time) (*models.Bill, error)
	RecordTrailingAverage(billID uint, months int, asOf time.Time) (*models.Bill, error)
}

// PayoffComparison holds one schedule per method for the same debts.
type PayoffComparison struct {
	Avalanche *engine.PayoffSchedule `json:"avalanche"`
	Snowball  *engine.PayoffSchedule `json:"snowball"`
}

// DebtServicer defines the contract for debt management and payoff planning.
type DebtServicer interface {
	CreateDebt(name string, balance int64, apr float64, minimum int64, promoAPR *float64, promoEnds *models.Month) (*models.Debt, error)
	GetDebts() ([]models.Debt, error)
	GetDebtByID(debtID uint) (*models.Debt, error)
	UpdateDebt(debtID uint, name *string, balance *int64, apr *float64, minimum *int64) (*models.Debt, error)
	DeleteDebt(debtID uint) error
	SimulatePayoff(opts engine.PayoffOptions) (*engine.PayoffSchedule, error)
	ComparePayoffMethods(opts engine.PayoffOptions) (*PayoffComparison, error)
}

// GoalProgress reports how a goal tracks against its target.
type GoalProgress struct {
	Goal            models.Goal   `json:"goal"`
	Saved           int64         `json:"saved"`
	Remaining       int64         `json:"remaining"`
	PercentComplete float64       `json:"percent_complete"`
	MonthsRemaining *int          `json:"months_remaining,omitempty"`
	RequiredMonthly *int64        `json:"required_monthly,omitempty"`
	OnTrack         *bool         `json:"on_track,omitempty"`
	ProjectedFinish *models.Month `json:"projected_finish,omitempty"`
}

// GoalServicer defines the contract for savings goal management.
type GoalServicer interface {
	CreateGoal(name string, target int64, targetMonth *models.Month, priority int, plannedMonthly int64) (*models.Goal, error)
	GetGoals(status *models.GoalStatus) ([]models.Goal, error)
	GetGoalByID(goalID uint) (*models.Goal, error)
	UpdateGoal(goalID uint, name *string, target *int64, targetMonth *models.Month, priority *int, plannedMonthly *int64) (*models.Goal, error)
	DeleteGoal(goalID uint) error
	SetGoalStatus(goalID uint, status models.GoalStatus) (*models.Goal, error)
	Contribute(goalID uint, amount int64, date time.Time, note string) (*models.GoalContribution, error)
	GetProgress(goalID uint, asOf time.Time) (*GoalProgress, error)
}

// IncomeServicer defines the contract for planned income sources.
type IncomeServicer interface {
	CreateIncomeSource(name string, amount int64, cadence models.Cadence) (*models.IncomeSource, error)
	GetIncomeSources() ([]models.IncomeSource, error)
	UpdateIncomeSource(sourceID uint, name *string, amount *int64, cadence *models.Cadence) (*models.IncomeSource, error)
	DeleteIncomeSource(sourceID uint) error
}

// ForecastServicer defines the contract for runway and cash-flow projection.
type ForecastServicer interface {
	GetRunway(mode engine.ForecastMode, asOf time.Time) (*engine.SavingsRunway, error)
	GetProjection(mode engine.ForecastMode, months int, asOf time.Time) (*engine.CashFlowForecast, error)
}

// RebalanceServicer defines the contract for overspend rebalancing.
type RebalanceServicer interface {
	Suggest(month models.Month, asOf time.Time) (*engine.RebalancePlan, error)
	Apply(month models.Month, moves []engine.Move) (*models.Reassignment, error)
	Reverse(reassignmentID uint) (*models.Reassignment, error)
	GetReassignments(month *models.Month) ([]models.Reassignment, error)
}

// AdjustmentInput is one requested scenario adjustment.
type AdjustmentInput struct {
	CategoryID *uint
	Type       models.AdjustmentType
	Percent    float64
	Amount     int64
	StartMonth *models.Month
	EndMonth   *models.Month
}

// ScenarioServicer defines the contract for what-if planning.
type ScenarioServicer interface {
	CreateScenario(name string, adjustments []AdjustmentInput, shocks []string) (*models.Scenario, error)
	GetScenarios() ([]models.Scenario, error)
	GetScenarioByID(scenarioID uint) (*models.Scenario, error)
	DeleteScenario(scenarioID uint) error
	GetShockTemplates() []engine.ShockTemplate
	ForecastScenario(scenarioID uint, mode engine.ForecastMode, months int, asOf time.Time) (*engine.AdjustedForecast, error)
	CompareScenarios(scenarioIDs []uint, mode engine.ForecastMode, months int, asOf time.Time) (*engine.ScenarioComparison, error)
	ApplyToPlan(scenarioID uint, fromMonth models.Month, confirm bool, asOf time.Time) ([]models.BudgetEntry, error)
}
