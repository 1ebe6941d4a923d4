package testhelpers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

// ListShape controls how the fake backend wraps list responses, so tests can
// exercise every historical response shape the real backend has shipped.
type ListShape int

const (
	ShapeEnvelope ListShape = iota // {"amenities": [...]}
	ShapeBare                      // [...]
	ShapeBroken                    // {} — neither envelope nor array
)

// RecordedRequest is one request the fake backend saw.
type RecordedRequest struct {
	Method string
	Path   string
}

// FakeBackend is the in-memory condominium API used by tests. Handlers mirror
// the real backend's routes and error envelopes.
type FakeBackend struct {
	mu sync.Mutex

	// Expected bearer token; anything else gets a 401.
	ValidToken string
	// When true, every admin route answers 403 regardless of token.
	DenyAdmin bool

	Shape ListShape

	Users          []dtos.User
	Apartments     []dtos.Apartment
	Amenities      []dtos.Amenity
	Reservations   []dtos.Reservation
	Expenses       []dtos.Expense
	Payments       []dtos.ExpensePayment
	Types          []dtos.ExpenseType
	Statuses       []dtos.ExpenseStatus
	PaymentMethods []dtos.PaymentMethod
	Stats          dtos.AdminStats
	Claims         dtos.ClaimStats

	// Forced failure for DELETE /admin/amenities/{id}: when non-zero, the
	// handler answers this status with AmenityDeleteBody as the message.
	AmenityDeleteStatus int
	AmenityDeleteBody   string

	nextID   int
	requests []RecordedRequest
}

func NewFakeBackend(validToken string) *FakeBackend {
	return &FakeBackend{
		ValidToken: validToken,
		Shape:      ShapeEnvelope,
		nextID:     1000,
	}
}

func (b *FakeBackend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *FakeBackend) RequestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func (b *FakeBackend) nextEntityID() int {
	b.nextID++
	return b.nextID
}

// Router builds the mux router with every route the console consumes.
func (b *FakeBackend) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(b.recordAndAuth)

	r.HandleFunc("/admin/stats", b.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/admin/claims/stats", b.handleClaimStats).Methods(http.MethodGet)

	r.HandleFunc("/admin/users", b.handleListUsers).Methods(http.MethodGet)
	r.HandleFunc("/admin/users/{id}/role", b.handleUpdateUserRole).Methods(http.MethodPut)

	r.HandleFunc("/admin/apartments", b.handleListApartments).Methods(http.MethodGet)
	r.HandleFunc("/admin/apartments", b.handleCreateApartment).Methods(http.MethodPost)
	r.HandleFunc("/admin/apartments/{id}", b.handleUpdateApartment).Methods(http.MethodPut)
	r.HandleFunc("/admin/apartments/{id}", b.handleDeleteApartment).Methods(http.MethodDelete)

	r.HandleFunc("/admin/amenities", b.handleListAmenities).Methods(http.MethodGet)
	r.HandleFunc("/admin/amenities", b.handleCreateAmenity).Methods(http.MethodPost)
	r.HandleFunc("/admin/amenities/{id}", b.handleUpdateAmenity).Methods(http.MethodPut)
	r.HandleFunc("/admin/amenities/{id}", b.handleDeleteAmenity).Methods(http.MethodDelete)
	r.HandleFunc("/admin/amenities/{id}/reservations", b.handleAmenityReservations).Methods(http.MethodGet)

	r.HandleFunc("/admin/reservations", b.handleListReservations).Methods(http.MethodGet)
	r.HandleFunc("/admin/reservations/pending", b.handleListPending).Methods(http.MethodGet)
	r.HandleFunc("/admin/reservations/{id}/approve", b.handleReservationDecision(dtos.ReservationApproved)).Methods(http.MethodPut)
	r.HandleFunc("/admin/reservations/{id}/reject", b.handleReservationDecision(dtos.ReservationRejected)).Methods(http.MethodPut)
	r.HandleFunc("/admin/reservations/{id}/cancel", b.handleCancelReservation).Methods(http.MethodDelete)

	r.HandleFunc("/admin/expenses", b.handleListExpenses).Methods(http.MethodGet)
	r.HandleFunc("/admin/expenses", b.handleCreateExpense).Methods(http.MethodPost)
	r.HandleFunc("/admin/expenses/types", b.handleExpenseTypes).Methods(http.MethodGet)
	r.HandleFunc("/admin/expenses/statuses", b.handleExpenseStatuses).Methods(http.MethodGet)
	r.HandleFunc("/admin/expenses/payment-methods", b.handlePaymentMethods).Methods(http.MethodGet)
	r.HandleFunc("/admin/expenses/{id}", b.handleUpdateExpense).Methods(http.MethodPut)
	r.HandleFunc("/admin/expenses/{id}", b.handleDeleteExpense).Methods(http.MethodDelete)
	r.HandleFunc("/admin/expenses/{id}/payments", b.handleListPayments).Methods(http.MethodGet)
	r.HandleFunc("/admin/expenses/{id}/payments", b.handleAddPayment).Methods(http.MethodPost)

	r.HandleFunc("/expenses", b.handleMyExpenses).Methods(http.MethodGet)
	r.HandleFunc("/expenses/summary", b.handleExpenseSummary).Methods(http.MethodGet)
	r.HandleFunc("/expenses/{id}", b.handleGetExpense).Methods(http.MethodGet)

	return r
}

func (b *FakeBackend) recordAndAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, RecordedRequest{Method: r.Method, Path: r.URL.Path})
		validToken := b.ValidToken
		denyAdmin := b.DenyAdmin
		b.mu.Unlock()

		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+validToken {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Token inválido")
			return
		}
		if denyAdmin && len(r.URL.Path) >= 6 && r.URL.Path[:6] == "/admin" {
			writeError(w, http.StatusForbidden, "forbidden", "Acceso denegado")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeList honors the configured response shape.
func (b *FakeBackend) writeList(w http.ResponseWriter, envelopeKey string, items any) {
	b.mu.Lock()
	shape := b.Shape
	b.mu.Unlock()

	switch shape {
	case ShapeBare:
		writeJSON(w, http.StatusOK, items)
	case ShapeBroken:
		writeJSON(w, http.StatusOK, map[string]any{})
	default:
		writeJSON(w, http.StatusOK, map[string]any{envelopeKey: items})
	}
}

func pathID(r *http.Request) (int, bool) {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
