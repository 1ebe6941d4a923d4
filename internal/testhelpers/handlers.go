package testhelpers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

func (b *FakeBackend) handleStats(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	stats := b.Stats
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

func (b *FakeBackend) handleClaimStats(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	claims := b.Claims
	b.mu.Unlock()
	claims.Period = r.URL.Query().Get("period")
	writeJSON(w, http.StatusOK, claims)
}

func (b *FakeBackend) handleListUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	users := append([]dtos.User(nil), b.Users...)
	b.mu.Unlock()
	b.writeList(w, "users", users)
}

func (b *FakeBackend) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}
	var req dtos.UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Users {
		if b.Users[i].ID == id {
			b.Users[i].Role = req.Role
			writeJSON(w, http.StatusOK, b.Users[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "Usuario no encontrado")
}

func (b *FakeBackend) handleListApartments(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	apartments := append([]dtos.Apartment(nil), b.Apartments...)
	b.mu.Unlock()
	b.writeList(w, "apartments", apartments)
}

func (b *FakeBackend) handleCreateApartment(w http.ResponseWriter, r *http.Request) {
	var req dtos.ApartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	apartment := dtos.Apartment{
		ID:        b.nextEntityID(),
		Number:    req.Number,
		Floor:     req.Floor,
		OwnerName: req.OwnerName,
		CreatedAt: time.Now().UTC(),
	}
	b.Apartments = append(b.Apartments, apartment)
	writeJSON(w, http.StatusCreated, apartment)
}

func (b *FakeBackend) handleUpdateApartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}
	var req dtos.ApartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Apartments {
		if b.Apartments[i].ID == id {
			b.Apartments[i].Number = req.Number
			b.Apartments[i].Floor = req.Floor
			b.Apartments[i].OwnerName = req.OwnerName
			writeJSON(w, http.StatusOK, b.Apartments[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "Departamento no encontrado")
}

func (b *FakeBackend) handleDeleteApartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Apartments {
		if b.Apartments[i].ID == id {
			b.Apartments = append(b.Apartments[:i], b.Apartments[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "Departamento no encontrado")
}

func (b *FakeBackend) handleListAmenities(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	amenities := append([]dtos.Amenity(nil), b.Amenities...)
	b.mu.Unlock()
	b.writeList(w, "amenities", amenities)
}

func (b *FakeBackend) handleCreateAmenity(w http.ResponseWriter, r *http.Request) {
	var req dtos.AmenityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	amenity := dtos.Amenity{
		ID:               b.nextEntityID(),
		Name:             req.Name,
		Description:      req.Description,
		Capacity:         req.Capacity,
		OpensAt:          req.OpensAt,
		ClosesAt:         req.ClosesAt,
		RequiresApproval: req.RequiresApproval,
		CreatedAt:        time.Now().UTC(),
	}
	b.Amenities = append(b.Amenities, amenity)
	writeJSON(w, http.StatusCreated, amenity)
}

func (b *FakeBackend) handleUpdateAmenity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}
	var req dtos.AmenityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Amenities {
		if b.Amenities[i].ID == id {
			b.Amenities[i].Name = req.Name
			b.Amenities[i].Description = req.Description
			b.Amenities[i].Capacity = req.Capacity
			b.Amenities[i].OpensAt = req.OpensAt
			b.Amenities[i].ClosesAt = req.ClosesAt
			b.Amenities[i].RequiresApproval = req.RequiresApproval
			writeJSON(w, http.StatusOK, b.Amenities[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "Amenity no encontrado")
}

func (b *FakeBackend) handleDeleteAmenity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}

	b.mu.Lock()
	forcedStatus, forcedBody := b.AmenityDeleteStatus, b.AmenityDeleteBody
	b.mu.Unlock()
	if forcedStatus != 0 {
		// Legacy deployments answer with a bare text message and no code.
		writeError(w, forcedStatus, "", forcedBody)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Amenities {
		if b.Amenities[i].ID == id {
			if b.Amenities[i].ActiveReservations > 0 {
				writeError(w, http.StatusConflict, "", "el amenity tiene reservas activas")
				return
			}
			b.Amenities = append(b.Amenities[:i], b.Amenities[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "Amenity no encontrado")
}

func (b *FakeBackend) handleAmenityReservations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}

	b.mu.Lock()
	var reservations []dtos.Reservation
	for _, res := range b.Reservations {
		if res.AmenityID == id {
			reservations = append(reservations, res)
		}
	}
	b.mu.Unlock()
	b.writeList(w, "reservations", reservations)
}

func (b *FakeBackend) handleListReservations(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	reservations := append([]dtos.Reservation(nil), b.Reservations...)
	b.mu.Unlock()
	b.writeList(w, "reservations", reservations)
}

func (b *FakeBackend) handleListPending(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	var pending []dtos.Reservation
	for _, res := range b.Reservations {
		if res.Status == dtos.ReservationPending {
			pending = append(pending, res)
		}
	}
	b.mu.Unlock()
	b.writeList(w, "reservations", pending)
}

func (b *FakeBackend) handleReservationDecision(status dtos.ReservationStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.Reservations {
			if b.Reservations[i].ID == id {
				if b.Reservations[i].Status != dtos.ReservationPending {
					writeError(w, http.StatusConflict, "", "La reserva ya fue procesada")
					return
				}
				b.Reservations[i].Status = status
				writeJSON(w, http.StatusOK, b.Reservations[i])
				return
			}
		}
		writeError(w, http.StatusNotFound, "", "Reserva no encontrada")
	}
}

func (b *FakeBackend) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Reservations {
		if b.Reservations[i].ID == id {
			b.Reservations[i].Status = dtos.ReservationCancelled
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "Reserva no encontrada")
}

func (b *FakeBackend) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	expenses := append([]dtos.Expense(nil), b.Expenses...)
	b.mu.Unlock()
	b.writeList(w, "expenses", expenses)
}

func (b *FakeBackend) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req dtos.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "JSON inválido")
		return
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "fecha inválida")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	expense := dtos.Expense{
		ID:          b.nextEntityID(),
		ApartmentID: req.ApartmentID,
		TypeID:      req.TypeID,
		Amount:      req.Amount,
		Period:      req.Period,
		DueDate:     dueDate,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	b.Expenses = append(b.Expenses, expense)
	writeJSON(w, http.StatusCreated, expense)
}

func (b *FakeBackend) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}
	var req dtos.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Expenses {
		if b.Expenses[i].ID == id {
			b.Expenses[i].ApartmentID = req.ApartmentID
			b.Expenses[i].TypeID = req.TypeID
			b.Expenses[i].Amount = req.Amount
			b.Expenses[i].Period = req.Period
			b.Expenses[i].Description = req.Description
			if dueDate, err := time.Parse("2006-01-02", req.DueDate); err == nil {
				b.Expenses[i].DueDate = dueDate
			}
			writeJSON(w, http.StatusOK, b.Expenses[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "Expensa no encontrada")
}

func (b *FakeBackend) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.Payments {
		if p.ExpenseID == id {
			writeError(w, http.StatusConflict, "", "la expensa tiene pagos registrados")
			return
		}
	}
	for i := range b.Expenses {
		if b.Expenses[i].ID == id {
			b.Expenses = append(b.Expenses[:i], b.Expenses[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "Expensa no encontrada")
}

func (b *FakeBackend) handleExpenseTypes(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	types := append([]dtos.ExpenseType(nil), b.Types...)
	b.mu.Unlock()
	b.writeList(w, "types", types)
}

func (b *FakeBackend) handleExpenseStatuses(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	statuses := append([]dtos.ExpenseStatus(nil), b.Statuses...)
	b.mu.Unlock()
	b.writeList(w, "statuses", statuses)
}

func (b *FakeBackend) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	methods := append([]dtos.PaymentMethod(nil), b.PaymentMethods...)
	b.mu.Unlock()
	b.writeList(w, "paymentMethods", methods)
}

func (b *FakeBackend) handleListPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}

	b.mu.Lock()
	var payments []dtos.ExpensePayment
	for _, p := range b.Payments {
		if p.ExpenseID == id {
			payments = append(payments, p)
		}
	}
	b.mu.Unlock()
	b.writeList(w, "payments", payments)
}

func (b *FakeBackend) handleAddPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}
	var req dtos.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "JSON inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.Expenses {
		if b.Expenses[i].ID == id {
			payment := dtos.ExpensePayment{
				ID:        b.nextEntityID(),
				ExpenseID: id,
				Amount:    req.Amount,
				MethodID:  req.MethodID,
				PaidAt:    time.Now().UTC(),
			}
			b.Payments = append(b.Payments, payment)
			b.Expenses[i].PaidAmount += req.Amount
			writeJSON(w, http.StatusCreated, payment)
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "Expensa no encontrada")
}

func (b *FakeBackend) handleMyExpenses(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	expenses := append([]dtos.Expense(nil), b.Expenses...)
	b.mu.Unlock()
	b.writeList(w, "expenses", expenses)
}

func (b *FakeBackend) handleExpenseSummary(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var summary dtos.ExpenseSummary
	now := time.Now()
	for _, e := range b.Expenses {
		summary.Total += e.Amount
		summary.Paid += e.PaidAmount
		remaining := e.Amount - e.PaidAmount
		if remaining > 0 {
			summary.Pending += remaining
			if e.DueDate.Before(now) {
				summary.Overdue += remaining
			}
		}
	}
	writeJSON(w, http.StatusOK, summary)
}

func (b *FakeBackend) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_payload", "id inválido")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.Expenses {
		if e.ID == id {
			writeJSON(w, http.StatusOK, e)
			return
		}
	}
	writeError(w, http.StatusNotFound, "", "Expensa no encontrada")
}
