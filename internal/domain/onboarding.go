package domain

// Draft is the in-progress onboarding profile assembled screen by screen
// before submission. Every field is optional; a nil field was never answered.
// Keys accumulate monotonically until the final submit.
type Draft struct {
	IncomeType        *string  `json:"income_type,omitempty"`
	IncomePattern     *string  `json:"income_pattern,omitempty"`
	MonthlyIncomeMin  *float64 `json:"monthly_income_min,omitempty"`
	MonthlyIncomeMax  *float64 `json:"monthly_income_max,omitempty"`
	MonthlyRent       *float64 `json:"monthly_rent,omitempty"`
	MonthlyEMITotal   *float64 `json:"monthly_emi_total,omitempty"`
	MonthlyFixedOther *float64 `json:"monthly_fixed_other,omitempty"`
	SupportsFamily    *bool    `json:"supports_family,omitempty"`
	AgeGroup          *string  `json:"age_group,omitempty"`
	PrimaryGoal       *string  `json:"primary_goal,omitempty"`
	RiskTolerance     *string  `json:"risk_tolerance,omitempty"`
	LiteracyLevel     *int     `json:"literacy_level,omitempty"`
}

// Documented submission defaults for fields never visited during onboarding.
const (
	DefaultIncomeType    = "salaried"
	DefaultIncomePattern = "monthly"
	DefaultAgeGroup      = "26-35"
	DefaultPrimaryGoal   = "wealth"
	DefaultRiskTolerance = "moderate"
	DefaultLiteracyLevel = 2
)

// Merge overlays the answered fields of partial onto d and returns the result.
// A later answer for the same field wins; unanswered fields never erase
// earlier answers.
func (d Draft) Merge(partial Draft) Draft {
	if partial.IncomeType != nil {
		d.IncomeType = partial.IncomeType
	}
	if partial.IncomePattern != nil {
		d.IncomePattern = partial.IncomePattern
	}
	if partial.MonthlyIncomeMin != nil {
		d.MonthlyIncomeMin = partial.MonthlyIncomeMin
	}
	if partial.MonthlyIncomeMax != nil {
		d.MonthlyIncomeMax = partial.MonthlyIncomeMax
	}
	if partial.MonthlyRent != nil {
		d.MonthlyRent = partial.MonthlyRent
	}
	if partial.MonthlyEMITotal != nil {
		d.MonthlyEMITotal = partial.MonthlyEMITotal
	}
	if partial.MonthlyFixedOther != nil {
		d.MonthlyFixedOther = partial.MonthlyFixedOther
	}
	if partial.SupportsFamily != nil {
		d.SupportsFamily = partial.SupportsFamily
	}
	if partial.AgeGroup != nil {
		d.AgeGroup = partial.AgeGroup
	}
	if partial.PrimaryGoal != nil {
		d.PrimaryGoal = partial.PrimaryGoal
	}
	if partial.RiskTolerance != nil {
		d.RiskTolerance = partial.RiskTolerance
	}
	if partial.LiteracyLevel != nil {
		d.LiteracyLevel = partial.LiteracyLevel
	}
	return d
}

// Finalize builds the submission payload, filling the documented default for
// every field that was never answered. The income ceiling falls back to the
// floor when only one bound was given.
func (d Draft) Finalize() Profile {
	p := Profile{
		IncomeType:        stringOr(d.IncomeType, DefaultIncomeType),
		IncomePattern:     stringOr(d.IncomePattern, DefaultIncomePattern),
		MonthlyIncomeMin:  floatOr(d.MonthlyIncomeMin, 0),
		MonthlyRent:       floatOr(d.MonthlyRent, 0),
		MonthlyEMITotal:   floatOr(d.MonthlyEMITotal, 0),
		MonthlyFixedOther: floatOr(d.MonthlyFixedOther, 0),
		SupportsFamily:    boolOr(d.SupportsFamily, false),
		AgeGroup:          stringOr(d.AgeGroup, DefaultAgeGroup),
		PrimaryGoal:       stringOr(d.PrimaryGoal, DefaultPrimaryGoal),
		RiskTolerance:     stringOr(d.RiskTolerance, DefaultRiskTolerance),
		LiteracyLevel:     intOr(d.LiteracyLevel, DefaultLiteracyLevel),
	}
	p.MonthlyIncomeMax = floatOr(d.MonthlyIncomeMax, p.MonthlyIncomeMin)
	return p
}

func stringOr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
