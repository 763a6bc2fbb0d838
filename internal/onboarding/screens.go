// Package onboarding implements the multi-screen profile wizard: per-screen
// validation, the draft accumulator, and final submission.
package onboarding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fundpal/clientcore/internal/domain"
)

// ScreenID names one wizard screen.
type ScreenID string

const (
	ScreenWelcome       ScreenID = "welcome"
	ScreenIncomeType    ScreenID = "income_type"
	ScreenIncomeDetails ScreenID = "income_details"
	ScreenFixedExpenses ScreenID = "fixed_expenses"
	ScreenPrimaryGoal   ScreenID = "primary_goal"
	ScreenRiskLiteracy  ScreenID = "risk_literacy"
	ScreenSummary       ScreenID = "summary"
)

// Sequence is the wizard's screen order.
func Sequence() []ScreenID {
	return []ScreenID{
		ScreenWelcome,
		ScreenIncomeType,
		ScreenIncomeDetails,
		ScreenFixedExpenses,
		ScreenPrimaryGoal,
		ScreenRiskLiteracy,
		ScreenSummary,
	}
}

// ErrRequired flags an empty required field.
var ErrRequired = errors.New("required field is empty")

// IncomeTypes are the selectable earning styles.
var IncomeTypes = []string{"salaried", "gig", "business", "mixed"}

// PrimaryGoals are the selectable primary goals.
var PrimaryGoals = []string{"emergency", "debt", "purchase", "wealth"}

// RiskTolerances are the selectable risk profiles.
var RiskTolerances = []string{"conservative", "moderate", "aggressive"}

// AnswerIncomeType validates the income-type selection and returns the
// screen's merge payload.
func AnswerIncomeType(value string) (domain.Draft, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return domain.Draft{}, fmt.Errorf("income type: %w", ErrRequired)
	}
	if !contains(IncomeTypes, value) {
		return domain.Draft{}, fmt.Errorf("income type %q: must be one of %s", value, strings.Join(IncomeTypes, ", "))
	}
	return domain.Draft{IncomeType: &value}, nil
}

// AnswerIncomeDetails validates the monthly income range. Both bounds are
// required and the ceiling must not be below the floor.
func AnswerIncomeDetails(minIncome, maxIncome string) (domain.Draft, error) {
	minVal, err := parseAmount("minimum income", minIncome, true)
	if err != nil {
		return domain.Draft{}, err
	}
	maxVal, err := parseAmount("maximum income", maxIncome, true)
	if err != nil {
		return domain.Draft{}, err
	}
	if maxVal < minVal {
		return domain.Draft{}, fmt.Errorf("maximum income %.2f is below minimum %.2f", maxVal, minVal)
	}
	return domain.Draft{MonthlyIncomeMin: &minVal, MonthlyIncomeMax: &maxVal}, nil
}

// AnswerFixedExpenses records the fixed monthly costs. Blank entries count as
// zero; entered values must parse as numbers.
func AnswerFixedExpenses(rent, emi, other string) (domain.Draft, error) {
	rentVal, err := parseAmount("monthly rent", rent, false)
	if err != nil {
		return domain.Draft{}, err
	}
	emiVal, err := parseAmount("monthly EMI total", emi, false)
	if err != nil {
		return domain.Draft{}, err
	}
	otherVal, err := parseAmount("other fixed expenses", other, false)
	if err != nil {
		return domain.Draft{}, err
	}
	return domain.Draft{
		MonthlyRent:       &rentVal,
		MonthlyEMITotal:   &emiVal,
		MonthlyFixedOther: &otherVal,
	}, nil
}

// AnswerPrimaryGoal validates the primary-goal selection.
func AnswerPrimaryGoal(value string) (domain.Draft, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return domain.Draft{}, fmt.Errorf("primary goal: %w", ErrRequired)
	}
	if !contains(PrimaryGoals, value) {
		return domain.Draft{}, fmt.Errorf("primary goal %q: must be one of %s", value, strings.Join(PrimaryGoals, ", "))
	}
	return domain.Draft{PrimaryGoal: &value}, nil
}

// AnswerRiskLiteracy records risk tolerance and literacy level. The screen is
// pre-seeded with defaults, so an empty answer falls back rather than blocks.
func AnswerRiskLiteracy(risk string, literacy int) (domain.Draft, error) {
	risk = strings.TrimSpace(strings.ToLower(risk))
	if risk == "" {
		risk = domain.DefaultRiskTolerance
	}
	if !contains(RiskTolerances, risk) {
		return domain.Draft{}, fmt.Errorf("risk tolerance %q: must be one of %s", risk, strings.Join(RiskTolerances, ", "))
	}
	if literacy == 0 {
		literacy = domain.DefaultLiteracyLevel
	}
	if literacy < 1 || literacy > 3 {
		return domain.Draft{}, fmt.Errorf("literacy level %d: must be 1, 2 or 3", literacy)
	}
	return domain.Draft{RiskTolerance: &risk, LiteracyLevel: &literacy}, nil
}

func parseAmount(field, value string, required bool) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return 0, fmt.Errorf("%s: %w", field, ErrRequired)
		}
		return 0, nil
	}
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: not a number", field, value)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%s: must not be negative", field)
	}
	return amount, nil
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
