package dtos

import (
	"strconv"
	"strings"
	"time"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
)

type Expense struct {
	ID          int       `json:"id"`
	ApartmentID int       `json:"apartmentId"`
	TypeID      int       `json:"typeId"`
	StatusID    int       `json:"statusId"`
	Amount      float64   `json:"amount"`
	PaidAmount  float64   `json:"paidAmount"`
	Period      string    `json:"period"` // "YYYY-MM"
	DueDate     time.Time `json:"dueDate"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EntityID implements manager.Entity.
func (e Expense) EntityID() int { return e.ID }

type ExpensePayment struct {
	ID        int       `json:"id"`
	ExpenseID int       `json:"expenseId"`
	Amount    float64   `json:"amount"`
	MethodID  int       `json:"methodId"`
	PaidAt    time.Time `json:"paidAt"`
}

// EntityID implements manager.Entity.
func (p ExpensePayment) EntityID() int { return p.ID }

// Catalog entries served by /admin/expenses/{types,statuses,payment-methods}.
type ExpenseType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ExpenseStatus struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PaymentMethod struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ExpenseSummary is the resident-facing /expenses/summary payload.
type ExpenseSummary struct {
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
	Overdue float64 `json:"overdue"`
}

type ExpenseRequest struct {
	ApartmentID int     `json:"apartmentId" validate:"required,gt=0"`
	TypeID      int     `json:"typeId" validate:"required,gt=0"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Period      string  `json:"period" validate:"required"`
	DueDate     string  `json:"dueDate" validate:"required"` // "YYYY-MM-DD"
	Description string  `json:"description,omitempty" validate:"omitempty,max=300"`
}

// ExpenseDraft mirrors the billing form inputs one to one.
type ExpenseDraft struct {
	ApartmentID string
	TypeID      string
	Amount      string
	Period      string
	DueDate     string
	Description string
}

func (d ExpenseDraft) ToRequest() (ExpenseRequest, error) {
	apartmentID, err := strconv.Atoi(strings.TrimSpace(d.ApartmentID))
	if err != nil || apartmentID <= 0 {
		return ExpenseRequest{}, apierr.Validation("Debe seleccionar un departamento.")
	}
	typeID, err := strconv.Atoi(strings.TrimSpace(d.TypeID))
	if err != nil || typeID <= 0 {
		return ExpenseRequest{}, apierr.Validation("Debe seleccionar un tipo de expensa.")
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(d.Amount), 64)
	if err != nil || amount <= 0 {
		return ExpenseRequest{}, apierr.Validation("El monto debe ser un número positivo.")
	}
	period := strings.TrimSpace(d.Period)
	if _, err := time.Parse("2006-01", period); err != nil {
		return ExpenseRequest{}, apierr.Validation("El período debe tener formato AAAA-MM.")
	}
	dueDate := strings.TrimSpace(d.DueDate)
	if _, err := time.Parse("2006-01-02", dueDate); err != nil {
		return ExpenseRequest{}, apierr.Validation("La fecha de vencimiento debe tener formato AAAA-MM-DD.")
	}
	req := ExpenseRequest{
		ApartmentID: apartmentID,
		TypeID:      typeID,
		Amount:      amount,
		Period:      period,
		DueDate:     dueDate,
		Description: strings.TrimSpace(d.Description),
	}
	if vErr := checkStruct(req); vErr != nil {
		return ExpenseRequest{}, vErr
	}
	return req, nil
}

func DraftFromExpense(e Expense) ExpenseDraft {
	return ExpenseDraft{
		ApartmentID: strconv.Itoa(e.ApartmentID),
		TypeID:      strconv.Itoa(e.TypeID),
		Amount:      strconv.FormatFloat(e.Amount, 'f', 2, 64),
		Period:      e.Period,
		DueDate:     e.DueDate.Format("2006-01-02"),
		Description: e.Description,
	}
}

type PaymentRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	MethodID int     `json:"methodId" validate:"required,gt=0"`
}

type PaymentDraft struct {
	Amount   string
	MethodID string
}

func (d PaymentDraft) ToRequest() (PaymentRequest, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(d.Amount), 64)
	if err != nil || amount <= 0 {
		return PaymentRequest{}, apierr.Validation("El monto del pago debe ser un número positivo.")
	}
	methodID, err := strconv.Atoi(strings.TrimSpace(d.MethodID))
	if err != nil || methodID <= 0 {
		return PaymentRequest{}, apierr.Validation("Debe seleccionar un método de pago.")
	}
	req := PaymentRequest{Amount: amount, MethodID: methodID}
	if vErr := checkStruct(req); vErr != nil {
		return PaymentRequest{}, vErr
	}
	return req, nil
}
