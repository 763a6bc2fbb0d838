// Command stubserver serves the FundPal backend's wire shapes with canned
// data, for developing the client shells without a live backend.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/fundpal/clientcore/internal/config"
	"github.com/fundpal/clientcore/internal/domain"
	"github.com/fundpal/clientcore/internal/logging"
)

func main() {
	addr := flag.String("addr", ":8000", "Listen address")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging).With("component", "stubserver")

	srv := newStub(logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/auth/login", srv.handleLogin)
	r.Post("/auth/signup", srv.handleSignup)
	r.Post("/onboarding", srv.handleOnboarding)
	r.Post("/chat", srv.handleChat)
	r.Get("/dashboard", srv.handleDashboard)
	r.Get("/goals", srv.handleListGoals)
	r.Post("/goals", srv.handleCreateGoal)
	r.Get("/debts", srv.handleListDebts)
	r.Post("/debts", srv.handleCreateDebt)
	r.Get("/investments", srv.handleListInvestments)
	r.Post("/investments", srv.handleSavePlan)
	r.Get("/transactions", srv.handleListTransactions)
	r.Get("/profile", srv.handleProfile)
	r.Post("/payment/create-order", srv.handleCreateOrder)
	r.Post("/payment/verify", srv.handleVerifyPayment)

	logger.Info("stub backend listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type stub struct {
	logger *slog.Logger

	mu          sync.Mutex
	profiles    map[string]domain.Profile
	goals       []domain.Goal
	debts       []domain.Debt
	investments []domain.Investment
	orders      map[string]bool
}

func newStub(logger *slog.Logger) *stub {
	return &stub{
		logger:   logger,
		profiles: make(map[string]domain.Profile),
		goals: []domain.Goal{
			{ID: "goal_1", Name: "Emergency fund", TargetAmount: 100000, CurrentAmount: 35000, Deadline: "2026-12-31"},
		},
		debts: []domain.Debt{
			{ID: "debt_1", Name: "Bike loan", Principal: 80000, CurrentBalance: 42000, InterestRate: 11.5, EMIAmount: 3600, EMIDay: 5, Status: "active"},
		},
		orders: make(map[string]bool),
	}
}

func (s *stub) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *stub) writeError(w http.ResponseWriter, status int, detail string) {
	s.respondJSON(w, status, map[string]string{"detail": detail})
}

func (s *stub) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// userID accepts either identity convention so both shells work unchanged.
func userID(r *http.Request) string {
	if id := r.Header.Get("user-id"); id != "" {
		return id
	}
	return r.URL.Query().Get("user_id")
}

func (s *stub) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Password == "wrong" {
		s.writeError(w, http.StatusUnauthorized, "Incorrect phone number or password")
		return
	}
	s.respondJSON(w, http.StatusOK, domain.Identity{ID: "user_" + req.Phone, Name: "Asha", Phone: req.Phone})
}

func (s *stub) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Phone == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "Phone number is required")
		return
	}
	s.respondJSON(w, http.StatusOK, domain.Identity{ID: uuid.NewString(), Name: req.Name, Phone: req.Phone})
}

func (s *stub) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if !s.decode(w, r, &profile) {
		return
	}
	id := userID(r)
	if id == "" {
		s.writeError(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}
	s.mu.Lock()
	s.profiles[id] = profile
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *stub) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	reply := map[string]any{
		"response": fmt.Sprintf("You said %q. I'd suggest keeping an emergency buffer of 3 months of expenses first.", req.Message),
		"alerts":   []string{},
	}
	if req.Message == "invest" {
		reply["response"] = "Here's an allocation matched to a moderate risk profile."
		reply["card"] = domain.Card{
			Type:     domain.CardInvestmentAllocation,
			Title:    "Suggested allocation",
			Subtitle: "moderate risk",
			Data: domain.CardData{
				Allocation: map[string]domain.AllocationDetail{
					"equity": {Pct: 60, Fund: "Nifty 50 Index Fund", ExpectedReturn: "12%"},
					"debt":   {Pct: 30, Fund: "Corporate Bond Fund", ExpectedReturn: "7%"},
					"gold":   {Pct: 10, Fund: "Gold ETF", ExpectedReturn: "6%"},
				},
				Projections: &domain.Projections{Corpus10Y: 1160000, MonthlyInvestment: 5000},
				Steps:       []string{"Set up a monthly SIP", "Review allocation yearly"},
			},
		}
	}
	s.respondJSON(w, http.StatusOK, reply)
}

func (s *stub) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, domain.DashboardSummary{
		CurrentBalance: 48230,
		TotalIncome:    62000,
		TotalExpense:   41500,
		DailyEssential: 950,
		Categories: map[string]domain.CategorySpend{
			"food":      {Spent: 9800, Budget: 9000},
			"transport": {Spent: 3200, Budget: 4000},
			"rent":      {Spent: 18000, Budget: 18000},
			"leisure":   {Spent: 4100, Budget: 5000},
		},
	})
}

func (s *stub) handleListGoals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	goals := append([]domain.Goal(nil), s.goals...)
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, goals)
}

func (s *stub) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name"`
		TargetAmount float64 `json:"target_amount"`
		Deadline     string  `json:"deadline"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.TargetAmount <= 0 {
		s.writeError(w, http.StatusUnprocessableEntity, "A goal needs a name and a positive target")
		return
	}
	goal := domain.Goal{ID: uuid.NewString(), Name: req.Name, TargetAmount: req.TargetAmount, Deadline: req.Deadline}
	s.mu.Lock()
	s.goals = append(s.goals, goal)
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "created", "id": goal.ID})
}

func (s *stub) handleListDebts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	debts := append([]domain.Debt(nil), s.debts...)
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, debts)
}

func (s *stub) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name"`
		Principal    float64 `json:"principal"`
		InterestRate float64 `json:"interest_rate"`
		EMIAmount    float64 `json:"emi_amount"`
		EMIDay       int     `json:"emi_day"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	debt := domain.Debt{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Principal:      req.Principal,
		CurrentBalance: req.Principal,
		InterestRate:   req.InterestRate,
		EMIAmount:      req.EMIAmount,
		EMIDay:         req.EMIDay,
		Status:         "active",
	}
	s.mu.Lock()
	s.debts = append(s.debts, debt)
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "created", "id": debt.ID})
}

func (s *stub) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	investments := append([]domain.Investment(nil), s.investments...)
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, investments)
}

func (s *stub) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string                             `json:"user_id"`
		RiskProfile string                             `json:"risk_profile"`
		Allocation  map[string]domain.AllocationDetail `json:"allocation"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	for asset, detail := range req.Allocation {
		s.investments = append(s.investments, domain.Investment{
			ID:                   uuid.NewString(),
			Type:                 "sip",
			AssetClass:           asset,
			FundName:             detail.Fund,
			RiskLevel:            req.RiskProfile,
			AllocationPercentage: detail.Pct,
			Status:               "active",
		})
	}
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *stub) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := []domain.Transaction{
		{ID: "tx_3", Type: "expense", Amount: 450, Category: "food", Description: "Groceries", TransactionDate: "2026-08-29"},
		{ID: "tx_2", Type: "expense", Amount: 1200, Category: "transport", Description: "Fuel", TransactionDate: "2026-08-27"},
		{ID: "tx_1", Type: "income", Amount: 62000, Category: "salary", Description: "August salary", TransactionDate: "2026-08-25"},
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit < len(txs) {
		txs = txs[:limit]
	}
	s.respondJSON(w, http.StatusOK, txs)
}

func (s *stub) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	profile, ok := s.profiles[userID(r)]
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	s.respondJSON(w, http.StatusOK, profile)
}

func (s *stub) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
		UserID string  `json:"user_id"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	orderID := uuid.NewString()
	s.mu.Lock()
	s.orders[orderID] = true
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, map[string]string{
		"payment_link": "https://pay.example.test/order/" + orderID,
		"order_id":     orderID,
	})
}

func (s *stub) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	s.mu.Lock()
	known := s.orders[orderID]
	s.mu.Unlock()
	if !known {
		s.writeError(w, http.StatusNotFound, "Unknown order")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}
