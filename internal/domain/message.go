package domain

import "time"

// Sender identifies the author of a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry in a chat session log. Messages are immutable once
// appended; insertion order is display order.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Alerts    []string  `json:"alerts,omitempty"`
	Card      *Card     `json:"card,omitempty"`
	IsError   bool      `json:"isError,omitempty"`
}

// CardType tags the structured payload variant attached to a bot message.
type CardType string

const (
	CardInvestmentAllocation    CardType = "investment_allocation"
	CardTransactionConfirmation CardType = "transaction_confirmation"
)

// Card is a structured payload attached to a bot message for rich rendering.
// Which Data fields are populated depends on Type.
type Card struct {
	Type     CardType `json:"type"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Data     CardData `json:"data"`
}

// CardData carries the variant-specific fields of a Card.
type CardData struct {
	// investment_allocation
	Allocation  map[string]AllocationDetail `json:"allocation,omitempty"`
	Projections *Projections                `json:"projections,omitempty"`
	Steps       []string                    `json:"steps,omitempty"`

	// transaction_confirmation
	Amount   float64 `json:"amount,omitempty"`
	Category string  `json:"category,omitempty"`
	Status   string  `json:"status,omitempty"`
}

// AllocationDetail describes one asset slice of a recommended allocation.
type AllocationDetail struct {
	Pct            float64 `json:"pct"`
	Fund           string  `json:"fund"`
	ExpectedReturn string  `json:"expected_return"`
}

// Projections summarizes the long-horizon outcome of an allocation.
type Projections struct {
	Corpus10Y         float64 `json:"corpus_10y"`
	MonthlyInvestment float64 `json:"monthly_investment"`
}
