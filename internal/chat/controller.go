// Package chat owns the message log for one chat session and the send /
// reply protocol against the assistant backend.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fundpal/clientcore/internal/api"
	"github.com/fundpal/clientcore/internal/domain"
)

// Greeting seeds every fresh session; the log is not persisted across
// restarts.
const Greeting = "Hi! I'm FundPal. How can I help you today?"

// FallbackReply is appended as a bot message when the chat request fails.
const FallbackReply = "Sorry, I'm having trouble connecting right now. Please try again."

// FallbackUserID scopes chat requests issued before sign-in.
const FallbackUserID = "demo_user"

// ErrBusy is returned when a send is attempted while another is in flight.
// The input surface normally prevents this by disabling itself.
var ErrBusy = errors.New("a message is already in flight")

// ErrNoCard is returned when an invest action targets a message without an
// investment card.
var ErrNoCard = errors.New("message carries no investment card")

// Gateway is the API surface the controller needs.
type Gateway interface {
	Chat(ctx context.Context, userID, message string) (api.ChatReply, error)
	SaveInvestmentPlan(ctx context.Context, userID string, plan api.InvestmentPlan) error
}

// Controller maintains the ordered, append-only message log for one session.
type Controller struct {
	gateway  Gateway
	identity api.IdentityProvider
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	messages []domain.Message
	busy     bool
}

// NewController creates a session seeded with the greeting.
func NewController(gateway Gateway, identity api.IdentityProvider, logger *slog.Logger) *Controller {
	c := &Controller{
		gateway:  gateway,
		identity: identity,
		logger:   logger,
		now:      time.Now,
	}
	c.messages = []domain.Message{{
		ID:        "welcome",
		Text:      Greeting,
		Sender:    domain.SenderBot,
		Timestamp: c.now(),
	}}
	return c
}

// Messages returns a snapshot of the log in display order.
func (c *Controller) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Message(nil), c.messages...)
}

// Busy reports whether a request is in flight. The input surface disables
// submission while true.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// SendMessage appends the user's message immediately, issues the chat
// request, and appends the reply (or the fixed fallback on failure). Blank
// input is a no-op. Only one request is in flight at a time.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.busy = true
	c.appendLocked(domain.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    domain.SenderUser,
		Timestamp: c.now(),
	})
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	userID := c.identity()
	if userID == "" {
		userID = FallbackUserID
	}

	reply, err := c.gateway.Chat(ctx, userID, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Warn("chat request failed", "error", err)
		c.appendLocked(domain.Message{
			ID:        uuid.NewString(),
			Text:      FallbackReply,
			Sender:    domain.SenderBot,
			Timestamp: c.now(),
			IsError:   true,
		})
		return nil
	}

	c.appendLocked(domain.Message{
		ID:        uuid.NewString(),
		Text:      reply.Response,
		Sender:    domain.SenderBot,
		Timestamp: c.now(),
		Alerts:    reply.Alerts,
		Card:      reply.Card,
	})
	return nil
}

// Invest posts the allocation carried by a rendered investment card as a new
// investment plan. Invoking it twice creates two records; the backend offers
// no idempotency key.
func (c *Controller) Invest(ctx context.Context, msg domain.Message) error {
	if msg.Card == nil || msg.Card.Type != domain.CardInvestmentAllocation || len(msg.Card.Data.Allocation) == 0 {
		return ErrNoCard
	}

	userID := c.identity()
	if userID == "" {
		userID = FallbackUserID
	}

	plan := api.InvestmentPlan{
		Allocation:  msg.Card.Data.Allocation,
		RiskProfile: msg.Card.Subtitle,
	}
	return c.gateway.SaveInvestmentPlan(ctx, userID, plan)
}

func (c *Controller) appendLocked(msg domain.Message) {
	c.messages = append(c.messages, msg)
}
