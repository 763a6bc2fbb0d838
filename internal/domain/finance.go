package domain

// Goal is a savings goal tracked toward a target amount.
type Goal struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	Deadline      string  `json:"deadline"`
}

// Debt is an outstanding liability with a monthly EMI schedule.
type Debt struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Principal      float64 `json:"principal"`
	CurrentBalance float64 `json:"current_balance"`
	InterestRate   float64 `json:"interest_rate"`
	EMIAmount      float64 `json:"emi_amount"`
	EMIDay         int     `json:"emi_day"`
	Status         string  `json:"status,omitempty"`
}

// Investment is one active holding created from an accepted allocation plan.
type Investment struct {
	ID                   string  `json:"id"`
	Type                 string  `json:"type"`
	AssetClass           string  `json:"asset_class"`
	FundName             string  `json:"fund_name"`
	RiskLevel            string  `json:"risk_level"`
	AllocationPercentage float64 `json:"allocation_percentage"`
	Status               string  `json:"status"`
}

// Transaction is a single income or expense entry.
type Transaction struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"` // income|expense
	Amount          float64 `json:"amount"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	TransactionDate string  `json:"transaction_date"`
}

// CategorySpend aggregates spend against budget for one expense category.
type CategorySpend struct {
	Spent  float64 `json:"spent"`
	Budget float64 `json:"budget"`
}

// DashboardSummary is the aggregated state rendered on the home screen.
type DashboardSummary struct {
	CurrentBalance float64                  `json:"current_balance"`
	TotalIncome    float64                  `json:"total_income"`
	TotalExpense   float64                  `json:"total_expense"`
	DailyEssential float64                  `json:"daily_essential"`
	Categories     map[string]CategorySpend `json:"categories"`
}
