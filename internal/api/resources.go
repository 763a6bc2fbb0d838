package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fundpal/clientcore/internal/domain"
)

// Login authenticates with phone and password.
func (c *Client) Login(ctx context.Context, phone, password string) (domain.Identity, error) {
	body := struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}{phone, password}

	var identity domain.Identity
	if err := c.post(ctx, "/auth/login", "", nil, body, &identity); err != nil {
		return domain.Identity{}, err
	}
	return identity, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, name, phone, password string) (domain.Identity, error) {
	body := struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}{name, phone, password}

	var identity domain.Identity
	if err := c.post(ctx, "/auth/signup", "", nil, body, &identity); err != nil {
		return domain.Identity{}, err
	}
	return identity, nil
}

// SubmitOnboarding sends the finalized profile. userID is explicit because
// the sign-up-less path submits before any identity is stored.
func (c *Client) SubmitOnboarding(ctx context.Context, userID string, profile domain.Profile) error {
	return c.post(ctx, "/onboarding", c.scoped(userID), nil, profile, nil)
}

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	Response string       `json:"response"`
	Alerts   []string     `json:"alerts,omitempty"`
	Card     *domain.Card `json:"card,omitempty"`
}

// Chat sends one user message and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, userID, message string) (ChatReply, error) {
	body := struct {
		Message string `json:"message"`
	}{message}

	var reply ChatReply
	if err := c.post(ctx, "/chat", c.scoped(userID), nil, body, &reply); err != nil {
		return ChatReply{}, err
	}
	return reply, nil
}

// Dashboard fetches the aggregated home-screen summary.
func (c *Client) Dashboard(ctx context.Context) (domain.DashboardSummary, error) {
	var summary domain.DashboardSummary
	if err := c.get(ctx, "/dashboard", c.scoped(""), nil, &summary); err != nil {
		return domain.DashboardSummary{}, err
	}
	return summary, nil
}

// ListGoals fetches the user's savings goals.
func (c *Client) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	var goals []domain.Goal
	if err := c.get(ctx, "/goals", c.scoped(""), nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// GoalInput is the payload for creating a goal.
type GoalInput struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     string  `json:"deadline"`
}

// CreateResult reports a create call's server-assigned id.
type CreateResult struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// CreateGoal creates a savings goal and returns the server-assigned id.
func (c *Client) CreateGoal(ctx context.Context, goal GoalInput) (CreateResult, error) {
	var res CreateResult
	if err := c.post(ctx, "/goals", c.scoped(""), nil, goal, &res); err != nil {
		return CreateResult{}, err
	}
	return res, nil
}

// ListDebts fetches the user's tracked debts.
func (c *Client) ListDebts(ctx context.Context) ([]domain.Debt, error) {
	var debts []domain.Debt
	if err := c.get(ctx, "/debts", c.scoped(""), nil, &debts); err != nil {
		return nil, err
	}
	return debts, nil
}

// DebtInput is the payload for creating a debt. The server seeds the running
// balance from the principal.
type DebtInput struct {
	Name         string  `json:"name"`
	Principal    float64 `json:"principal"`
	InterestRate float64 `json:"interest_rate"`
	EMIAmount    float64 `json:"emi_amount"`
	EMIDay       int     `json:"emi_day"`
}

// CreateDebt registers a debt and returns the server-assigned id.
func (c *Client) CreateDebt(ctx context.Context, debt DebtInput) (CreateResult, error) {
	var res CreateResult
	if err := c.post(ctx, "/debts", c.scoped(""), nil, debt, &res); err != nil {
		return CreateResult{}, err
	}
	return res, nil
}

// ListInvestments fetches the user's active investments.
func (c *Client) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	var investments []domain.Investment
	if err := c.get(ctx, "/investments", c.scoped(""), nil, &investments); err != nil {
		return nil, err
	}
	return investments, nil
}

// InvestmentPlan is an accepted allocation recommendation.
type InvestmentPlan struct {
	Allocation  map[string]domain.AllocationDetail `json:"allocation"`
	RiskProfile string                             `json:"risk_profile"`
}

// SaveInvestmentPlan stores an allocation plan as active investments.
func (c *Client) SaveInvestmentPlan(ctx context.Context, userID string, plan InvestmentPlan) error {
	return c.post(ctx, "/investments", c.scoped(userID), nil, plan, nil)
}

// ListTransactions fetches recent transactions, newest first. A non-positive
// limit leaves the server default in place.
func (c *Client) ListTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}

	var txs []domain.Transaction
	if err := c.get(ctx, "/transactions", c.scoped(""), query, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// GetProfile fetches the stored onboarding profile.
func (c *Client) GetProfile(ctx context.Context) (domain.Profile, error) {
	var profile domain.Profile
	if err := c.get(ctx, "/profile", c.scoped(""), nil, &profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// Order is a created payment order awaiting completion.
type Order struct {
	PaymentLink string `json:"payment_link"`
	OrderID     string `json:"order_id"`
}

// CreateOrder opens a payment order for the given amount.
func (c *Client) CreateOrder(ctx context.Context, amount float64) (Order, error) {
	body := struct {
		Amount float64 `json:"amount"`
		UserID string  `json:"user_id"`
	}{amount, c.identity()}

	var order Order
	if err := c.post(ctx, "/payment/create-order", "", nil, body, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// VerifyPayment confirms a completed payment order.
func (c *Client) VerifyPayment(ctx context.Context, orderID string) error {
	query := url.Values{"order_id": []string{orderID}}
	return c.post(ctx, "/payment/verify", "", query, nil, nil)
}
