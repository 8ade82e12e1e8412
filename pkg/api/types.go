package api

// Money fields are decimal strings. Responses always carry two fraction
// digits ("37.50"); requests accept any non-negative decimal.

// ParticipantType values.
const (
	ParticipantTypeAdult = "ADULT"
	ParticipantTypeChild = "CHILD"
)

// User is the public view of an account.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// Event is the full representation of an event including its participants,
// payments and the computed budget figures.
type Event struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	AdultBudget    string         `json:"adult_budget"`
	ChildBudget    string         `json:"child_budget"`
	GeneralCosts   string         `json:"general_costs"`
	CreatorID      string         `json:"creator_id"`
	CreatedAt      int64          `json:"created_at"`
	Participants   []*Participant `json:"participants"`
	Payments       []*Payment     `json:"payments"`
	TotalBudget    string         `json:"total_budget"`
	BudgetPerPayer string         `json:"budget_per_payer"`
	NumberOfPayers int32          `json:"number_of_payers"`
}

type Participant struct {
	ID               string `json:"id"`
	EventID          string `json:"event_id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	CustomBudget     string `json:"custom_budget,omitempty"`
	IsCouple         bool   `json:"is_couple"`
	PartnerID        string `json:"partner_id,omitempty"`
	UserID           string `json:"user_id,omitempty"`
	CalculatedBudget string `json:"calculated_budget"`
}

type Payment struct {
	ID              string `json:"id"`
	EventID         string `json:"event_id"`
	Amount          string `json:"amount"`
	PayerName       string `json:"payer_name"`
	ParticipantID   string `json:"participant_id,omitempty"`
	ParticipantName string `json:"participant_name,omitempty"`
	PartnerName     string `json:"partner_name,omitempty"`
	Note            string `json:"note,omitempty"`
	CreatedAt       int64  `json:"created_at"`
}

// BudgetSummary is the outcome of a budget calculation.
type BudgetSummary struct {
	ParticipantBudgets []*ParticipantBudget `json:"participant_budgets"`
	TotalBudget        string               `json:"total_budget"`
	BudgetPerPayer     string               `json:"budget_per_payer"`
	NumberOfPayers     int32                `json:"number_of_payers"`
}

type ParticipantBudget struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name,omitempty"`
	Budget        string `json:"budget"`
}

type CreateEventRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	AdultBudget  string `json:"adult_budget"`
	ChildBudget  string `json:"child_budget"`
	GeneralCosts string `json:"general_costs"`
}

type CreateEventResponse struct {
	Event *Event `json:"event"`
}

type GetEventRequest struct {
	EventID string `json:"event_id"`
}

type GetEventResponse struct {
	Event *Event `json:"event"`
}

type ListEventsRequest struct{}

type ListEventsResponse struct {
	Events []*Event `json:"events"`
}

type UpdateEventRequest struct {
	EventID      string `json:"event_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	AdultBudget  string `json:"adult_budget"`
	ChildBudget  string `json:"child_budget"`
	GeneralCosts string `json:"general_costs"`
}

type UpdateEventResponse struct {
	Event *Event `json:"event"`
}

type DeleteEventRequest struct {
	EventID string `json:"event_id"`
}

type DeleteEventResponse struct{}

// GetEventBudgetRequest computes the budget of a stored event. When PayerIDs
// is empty every adult participant pays.
type GetEventBudgetRequest struct {
	EventID  string   `json:"event_id"`
	PayerIDs []string `json:"payer_ids,omitempty"`
}

type GetEventBudgetResponse struct {
	Budget *BudgetSummary `json:"budget"`
}

// BudgetParticipant is an inline participant for CalculateBudget.
type BudgetParticipant struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	Type         string `json:"type"`
	CustomBudget string `json:"custom_budget,omitempty"`
	IsCouple     bool   `json:"is_couple"`
	PartnerID    string `json:"partner_id,omitempty"`
}

// CalculateBudgetRequest runs the calculation without touching storage.
type CalculateBudgetRequest struct {
	AdultBudget  string               `json:"adult_budget"`
	ChildBudget  string               `json:"child_budget"`
	GeneralCosts string               `json:"general_costs"`
	Participants []*BudgetParticipant `json:"participants"`
	PayerIDs     []string             `json:"payer_ids,omitempty"`
}

type CalculateBudgetResponse struct {
	Budget *BudgetSummary `json:"budget"`
}

type CreateParticipantRequest struct {
	EventID      string `json:"event_id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	CustomBudget string `json:"custom_budget,omitempty"`
	PartnerID    string `json:"partner_id,omitempty"`
	UserID       string `json:"user_id,omitempty"`
}

type CreateParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type UpdateParticipantRequest struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	CustomBudget  string `json:"custom_budget,omitempty"`
	PartnerID     string `json:"partner_id,omitempty"`
	UserID        string `json:"user_id,omitempty"`
}

type UpdateParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type DeleteParticipantRequest struct {
	ParticipantID string `json:"participant_id"`
}

type DeleteParticipantResponse struct{}

type ListParticipantsRequest struct {
	EventID string `json:"event_id"`
}

type ListParticipantsResponse struct {
	Participants []*Participant `json:"participants"`
}

type CreatePaymentRequest struct {
	EventID       string `json:"event_id"`
	Amount        string `json:"amount"`
	PayerName     string `json:"payer_name,omitempty"`
	ParticipantID string `json:"participant_id,omitempty"`
	Note          string `json:"note,omitempty"`
}

type CreatePaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type UpdatePaymentRequest struct {
	PaymentID     string `json:"payment_id"`
	Amount        string `json:"amount"`
	PayerName     string `json:"payer_name,omitempty"`
	ParticipantID string `json:"participant_id,omitempty"`
	Note          string `json:"note,omitempty"`
}

type UpdatePaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type DeletePaymentRequest struct {
	PaymentID string `json:"payment_id"`
}

type DeletePaymentResponse struct{}

type ListPaymentsRequest struct {
	EventID string `json:"event_id"`
}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}
