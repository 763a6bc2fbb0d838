// Command fundpal is a terminal front end over the shared client core: the
// same session, onboarding, chat, and gating logic the graphical shells use,
// behind a line-based prompt.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fundpal/clientcore/internal/api"
	"github.com/fundpal/clientcore/internal/chat"
	"github.com/fundpal/clientcore/internal/config"
	"github.com/fundpal/clientcore/internal/domain"
	"github.com/fundpal/clientcore/internal/goals"
	"github.com/fundpal/clientcore/internal/insights"
	"github.com/fundpal/clientcore/internal/logging"
	"github.com/fundpal/clientcore/internal/onboarding"
	"github.com/fundpal/clientcore/internal/routing"
	"github.com/fundpal/clientcore/internal/session"
	"github.com/fundpal/clientcore/internal/storage"
)

func main() {
	envFile := flag.String("env", "", "Optional .env file to load before reading configuration")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *envFile, err)
			os.Exit(1)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	backend, err := buildBackend(ctx, cfg.Session)
	if err != nil {
		logger.Error("failed to open session storage", "error", err)
		os.Exit(1)
	}

	store, err := session.Open(ctx, backend, logger)
	if err != nil {
		logger.Error("failed to rehydrate session", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing session storage failed", "error", err)
		}
	}()

	client, err := api.New(api.Options{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout,
		IdentityMode: cfg.API.IdentityMode,
		Identity:     store.UserID,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("failed to build API client", "error", err)
		os.Exit(1)
	}

	shell := &shell{
		in:     bufio.NewScanner(os.Stdin),
		store:  store,
		client: client,
		logger: logger,
	}
	if err := shell.run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("session ended unexpectedly", "error", err)
		os.Exit(1)
	}
}

func buildBackend(ctx context.Context, cfg config.SessionConfig) (storage.Store, error) {
	switch cfg.Backend {
	case config.SessionBackendMemory:
		return storage.NewMemoryStore(), nil
	case config.SessionBackendRedis:
		return storage.NewRedisStore(ctx, storage.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return storage.NewFileStore(cfg.FilePath)
	}
}

type shell struct {
	in     *bufio.Scanner
	store  *session.Store
	client *api.Client
	logger *slog.Logger
	quit   bool
}

// run re-evaluates the route gate after every region and drives the one it
// permits. Deep-linking is impossible from a prompt, so the gate alone
// decides what is reachable.
func (s *shell) run(ctx context.Context) error {
	for !s.quit && ctx.Err() == nil {
		_, hasIdentity := s.store.Identity()
		region := routing.Resolve(hasIdentity, s.store.IsOnboarded())

		var err error
		switch region {
		case routing.RegionAuth:
			err = s.runAuth(ctx)
		case routing.RegionOnboarding:
			err = s.runOnboarding(ctx)
		case routing.RegionMain:
			err = s.runMain(ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *shell) runAuth(ctx context.Context) error {
	fmt.Println("\nFundPal — sign in")
	fmt.Println("  login | signup | start (try without an account) | quit")

	switch s.prompt("> ") {
	case "start":
		// Submit assigns a generated identity once the wizard completes.
		return s.runOnboarding(ctx)
	case "login":
		phone := s.prompt("phone: ")
		password := s.prompt("password: ")
		identity, err := s.client.Login(ctx, phone, password)
		if err != nil {
			fmt.Println("! " + api.UserMessage(err))
			return nil
		}
		return s.store.SetIdentity(ctx, identity)
	case "signup":
		name := s.prompt("name: ")
		phone := s.prompt("phone: ")
		password := s.prompt("password: ")
		identity, err := s.client.Signup(ctx, name, phone, password)
		if err != nil {
			fmt.Println("! " + api.UserMessage(err))
			return nil
		}
		return s.store.SetIdentity(ctx, identity)
	case "quit":
		s.quit = true
	}
	return nil
}

func (s *shell) runOnboarding(ctx context.Context) error {
	flow := onboarding.NewFlow(s.store, s.client, s.logger)

	for !s.quit {
		switch flow.Current() {
		case onboarding.ScreenWelcome:
			fmt.Println("\nWelcome to FundPal! A few questions to personalize your advice.")
			if err := flow.Advance(ctx, domain.Draft{}); err != nil {
				return err
			}

		case onboarding.ScreenIncomeType:
			draft, ok := s.ask(func() (domain.Draft, error) {
				return onboarding.AnswerIncomeType(s.prompt("how do you earn? (salaried/gig/business/mixed): "))
			})
			if !ok {
				continue
			}
			if err := flow.Advance(ctx, draft); err != nil {
				return err
			}

		case onboarding.ScreenIncomeDetails:
			draft, ok := s.ask(func() (domain.Draft, error) {
				return onboarding.AnswerIncomeDetails(
					s.prompt("monthly income, low estimate: "),
					s.prompt("monthly income, high estimate: "),
				)
			})
			if !ok {
				continue
			}
			if err := flow.Advance(ctx, draft); err != nil {
				return err
			}

		case onboarding.ScreenFixedExpenses:
			draft, ok := s.ask(func() (domain.Draft, error) {
				return onboarding.AnswerFixedExpenses(
					s.prompt("monthly rent (blank for 0): "),
					s.prompt("monthly EMI total (blank for 0): "),
					s.prompt("other fixed costs (blank for 0): "),
				)
			})
			if !ok {
				continue
			}
			if err := flow.Advance(ctx, draft); err != nil {
				return err
			}

		case onboarding.ScreenPrimaryGoal:
			draft, ok := s.ask(func() (domain.Draft, error) {
				return onboarding.AnswerPrimaryGoal(s.prompt("primary goal (emergency/debt/purchase/wealth): "))
			})
			if !ok {
				continue
			}
			if err := flow.Advance(ctx, draft); err != nil {
				return err
			}

		case onboarding.ScreenRiskLiteracy:
			draft, ok := s.ask(func() (domain.Draft, error) {
				risk := s.prompt("risk tolerance (conservative/moderate/aggressive, blank for moderate): ")
				level, _ := strconv.Atoi(s.prompt("how comfortable with finance, 1-3 (blank for 2): "))
				return onboarding.AnswerRiskLiteracy(risk, level)
			})
			if !ok {
				continue
			}
			if err := flow.Advance(ctx, draft); err != nil {
				return err
			}

		case onboarding.ScreenSummary:
			profile := s.store.Draft().Finalize()
			fmt.Printf("\nAll set! Income: %s, goal: %s, risk: %s\n",
				profile.IncomeType, profile.PrimaryGoal, profile.RiskTolerance)
			switch s.prompt("start using FundPal? (yes/back): ") {
			case "back":
				flow.Back()
				continue
			case "yes":
			default:
				continue
			}
			if err := flow.Submit(ctx); err != nil {
				// Draft is retained; the user may retry indefinitely.
				fmt.Println("! " + api.UserMessage(err))
				continue
			}
			return nil
		}
	}
	return nil
}

func (s *shell) runMain(ctx context.Context) error {
	controller := chat.NewController(s.client, s.store.UserID, s.logger)
	tracker := goals.NewTracker(s.client, s.logger)

	fmt.Println("\nFundPal — type a message, or one of: dashboard goals newgoal newdebt invest transactions profile pay logout quit")

	for !s.quit {
		input := s.prompt("> ")
		switch input {
		case "":
			continue
		case "quit":
			s.quit = true
		case "logout":
			if err := s.store.Logout(ctx); err != nil {
				return err
			}
			return nil
		case "dashboard":
			s.showDashboard(ctx)
		case "goals":
			s.showGoals(ctx, tracker)
		case "newgoal":
			s.createGoal(ctx, tracker)
		case "newdebt":
			s.createDebt(ctx)
		case "pay":
			s.payPremium(ctx)
		case "invest":
			s.showInvestments(ctx)
		case "transactions":
			s.showTransactions(ctx)
		case "profile":
			s.showProfile(ctx)
		default:
			s.chatTurn(ctx, controller, input)
		}
	}
	return nil
}

func (s *shell) chatTurn(ctx context.Context, controller *chat.Controller, text string) {
	before := len(controller.Messages())
	if err := controller.SendMessage(ctx, text); err != nil {
		fmt.Println("! " + err.Error())
		return
	}
	for _, msg := range controller.Messages()[before:] {
		if msg.Sender != domain.SenderBot {
			continue
		}
		fmt.Println("fundpal: " + msg.Text)
		for _, alert := range msg.Alerts {
			fmt.Println("  ⚠ " + alert)
		}
		if msg.Card != nil && msg.Card.Type == domain.CardInvestmentAllocation {
			s.renderInvestmentCard(ctx, controller, msg)
		}
	}
}

func (s *shell) renderInvestmentCard(ctx context.Context, controller *chat.Controller, msg domain.Message) {
	card := msg.Card
	fmt.Printf("  [%s — %s]\n", card.Title, card.Subtitle)
	for asset, detail := range card.Data.Allocation {
		fmt.Printf("    %-12s %3.0f%%  %s (~%s)\n", asset, detail.Pct, detail.Fund, detail.ExpectedReturn)
	}
	if card.Data.Projections != nil {
		fmt.Printf("    projected corpus in 10y: %.0f from %.0f/mo\n",
			card.Data.Projections.Corpus10Y, card.Data.Projections.MonthlyInvestment)
	}
	if s.prompt("  start this plan? (yes/no): ") == "yes" {
		if err := controller.Invest(ctx, msg); err != nil {
			fmt.Println("  ! " + api.UserMessage(err))
			return
		}
		fmt.Println("  plan saved, see `invest`")
	}
}

func (s *shell) showDashboard(ctx context.Context) {
	summary, err := s.client.Dashboard(ctx)
	if err != nil {
		fmt.Println("! " + api.UserMessage(err))
		return
	}
	fmt.Printf("balance %.2f | income %.2f | expense %.2f | savings %.2f\n",
		summary.CurrentBalance, summary.TotalIncome, summary.TotalExpense, insights.Savings(summary))
	fmt.Printf("runway: %d days at your essential spend rate\n", insights.RunwayDays(summary))
	for _, share := range insights.CategoryShares(summary.Categories) {
		marker := ""
		if share.OverBud {
			marker = " (over budget)"
		}
		fmt.Printf("  %-12s %5.1f%% of spend%s\n", share.Name, share.Percent, marker)
	}
}

func (s *shell) showGoals(ctx context.Context, tracker *goals.Tracker) {
	if err := tracker.Refresh(ctx); err != nil {
		fmt.Println("! " + api.UserMessage(err))
	}
	list := tracker.Goals()
	if len(list) == 0 {
		fmt.Println("no goals yet. create one with `newgoal`")
		return
	}
	for _, g := range list {
		note := ""
		switch g.Sync {
		case goals.SyncPending:
			note = " (saving...)"
		case goals.SyncFailed:
			note = " (not saved)"
		}
		fmt.Printf("  %-20s %.0f / %.0f  %3.0f%%%s\n",
			g.Name, g.CurrentAmount, g.TargetAmount, goals.Progress(g.Goal), note)
	}

	debts, err := s.client.ListDebts(ctx)
	if err != nil {
		s.logger.Debug("debt fetch failed", "error", err)
		return
	}
	for _, d := range debts {
		fmt.Printf("  debt: %-14s balance %.0f  %.0f%% interest  EMI %.0f on day %d\n",
			d.Name, d.CurrentBalance, d.InterestRate, d.EMIAmount, d.EMIDay)
	}
}

func (s *shell) createGoal(ctx context.Context, tracker *goals.Tracker) {
	name := s.prompt("goal name: ")
	target, err := strconv.ParseFloat(s.prompt("target amount: "), 64)
	if err != nil || name == "" {
		fmt.Println("! a name and a numeric target are required")
		return
	}
	deadline := s.prompt("deadline (YYYY-MM-DD): ")

	created, err := tracker.Create(ctx, api.GoalInput{Name: name, TargetAmount: target, Deadline: deadline})
	if err != nil {
		// The entry stays listed locally; see `goals`.
		fmt.Println("! " + api.UserMessage(err))
		return
	}
	fmt.Printf("created %q (id %s)\n", created.Name, created.ID)
}

func (s *shell) createDebt(ctx context.Context) {
	name := s.prompt("debt name: ")
	principal, err := strconv.ParseFloat(s.prompt("principal: "), 64)
	if err != nil || name == "" {
		fmt.Println("! a name and a numeric principal are required")
		return
	}
	rate, _ := strconv.ParseFloat(s.prompt("interest rate %: "), 64)
	emi, _ := strconv.ParseFloat(s.prompt("monthly EMI: "), 64)
	day, _ := strconv.Atoi(s.prompt("EMI day of month: "))

	created, err := s.client.CreateDebt(ctx, api.DebtInput{
		Name:         name,
		Principal:    principal,
		InterestRate: rate,
		EMIAmount:    emi,
		EMIDay:       day,
	})
	if err != nil {
		fmt.Println("! " + api.UserMessage(err))
		return
	}
	fmt.Printf("tracking %q (id %s)\n", name, created.ID)
}

func (s *shell) payPremium(ctx context.Context) {
	amount, err := strconv.ParseFloat(s.prompt("amount: "), 64)
	if err != nil {
		fmt.Println("! a numeric amount is required")
		return
	}
	order, err := s.client.CreateOrder(ctx, amount)
	if err != nil {
		fmt.Println("! " + api.UserMessage(err))
		return
	}
	fmt.Println("complete the payment at: " + order.PaymentLink)
	if s.prompt("paid? (yes/no): ") != "yes" {
		return
	}
	if err := s.client.VerifyPayment(ctx, order.OrderID); err != nil {
		fmt.Println("! " + api.UserMessage(err))
		return
	}
	fmt.Println("payment confirmed")
}

func (s *shell) showInvestments(ctx context.Context) {
	investments, err := s.client.ListInvestments(ctx)
	if err != nil {
		fmt.Println("! " + api.UserMessage(err))
		return
	}
	if len(investments) == 0 {
		fmt.Println("no active investments. ask the assistant for an allocation plan")
		return
	}
	for _, inv := range investments {
		fmt.Printf("  %-12s %3.0f%%  %s [%s]\n", inv.AssetClass, inv.AllocationPercentage, inv.FundName, inv.Status)
	}
}

func (s *shell) showTransactions(ctx context.Context) {
	txs, err := s.client.ListTransactions(ctx, 20)
	if err != nil {
		fmt.Println("! " + api.UserMessage(err))
		return
	}
	for _, tx := range txs {
		sign := "-"
		if tx.Type == "income" {
			sign = "+"
		}
		fmt.Printf("  %s  %s%.2f  %-12s %s\n", tx.TransactionDate, sign, tx.Amount, tx.Category, tx.Description)
	}
}

func (s *shell) showProfile(ctx context.Context) {
	profile, err := s.client.GetProfile(ctx)
	if err != nil {
		fmt.Println("! " + api.UserMessage(err))
		return
	}
	fmt.Printf("income: %s (%s), %.0f–%.0f/mo\n",
		profile.IncomeType, profile.IncomePattern, profile.MonthlyIncomeMin, profile.MonthlyIncomeMax)
	fmt.Printf("fixed costs: rent %.0f, EMI %.0f, other %.0f\n",
		profile.MonthlyRent, profile.MonthlyEMITotal, profile.MonthlyFixedOther)
	fmt.Printf("goal: %s | risk: %s | literacy: %d | age: %s\n",
		profile.PrimaryGoal, profile.RiskTolerance, profile.LiteracyLevel, profile.AgeGroup)
}

// ask runs a screen's validation, echoing the error and signalling the caller
// to re-prompt instead of advancing.
func (s *shell) ask(fn func() (domain.Draft, error)) (domain.Draft, bool) {
	draft, err := fn()
	if err != nil {
		fmt.Println("! " + err.Error())
		return domain.Draft{}, false
	}
	return draft, true
}

func (s *shell) prompt(label string) string {
	fmt.Print(label)
	if !s.in.Scan() {
		s.quit = true
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}
