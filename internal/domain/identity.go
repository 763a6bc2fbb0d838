package domain

// Identity is the authenticated user's minimal profile held client-side after
// login or signup. A zero ID means unauthenticated.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// IsZero reports whether no user is signed in.
func (i Identity) IsZero() bool {
	return i.ID == ""
}

// Profile is the server-side record of the onboarding answers.
type Profile struct {
	UserID            string  `json:"user_id"`
	IncomeType        string  `json:"income_type"`
	IncomePattern     string  `json:"income_pattern"`
	MonthlyIncomeMin  float64 `json:"monthly_income_min"`
	MonthlyIncomeMax  float64 `json:"monthly_income_max"`
	MonthlyRent       float64 `json:"monthly_rent"`
	MonthlyEMITotal   float64 `json:"monthly_emi_total"`
	MonthlyFixedOther float64 `json:"monthly_fixed_other"`
	SupportsFamily    bool    `json:"supports_family"`
	AgeGroup          string  `json:"age_group"`
	PrimaryGoal       string  `json:"primary_goal"`
	RiskTolerance     string  `json:"risk_tolerance"`
	LiteracyLevel     int     `json:"literacy_level"`
}
