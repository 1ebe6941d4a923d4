package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MatiasdeBuren/consorcio-console/internal/apierr"
	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
)

// Admin-side expense billing.

func (c *Client) ListExpenses(ctx context.Context, token string) ([]dtos.Expense, error) {
	return getList[dtos.Expense](ctx, c, token, AdminExpensesPath, "expenses", apierr.ResourceExpenses)
}

func (c *Client) CreateExpense(ctx context.Context, token string, draft dtos.ExpenseDraft) (dtos.Expense, error) {
	req, err := draft.ToRequest()
	if err != nil {
		return dtos.Expense{}, err
	}
	return getOne[dtos.Expense](ctx, c, token, http.MethodPost, AdminExpensesPath, req, apierr.ResourceExpenses)
}

func (c *Client) UpdateExpense(ctx context.Context, token string, id int, draft dtos.ExpenseDraft) (dtos.Expense, error) {
	req, err := draft.ToRequest()
	if err != nil {
		return dtos.Expense{}, err
	}
	path := fmt.Sprintf("%s/%d", AdminExpensesPath, id)
	return getOne[dtos.Expense](ctx, c, token, http.MethodPut, path, req, apierr.ResourceExpenses)
}

func (c *Client) DeleteExpense(ctx context.Context, token string, id int) error {
	path := fmt.Sprintf("%s/%d", AdminExpensesPath, id)
	_, err := c.doRaw(ctx, token, http.MethodDelete, path, nil, apierr.ResourceExpenses)
	if err != nil {
		return apierr.RefineDeleteError(apierr.ResourceExpenses, err)
	}
	return nil
}

// Catalog endpoints used to populate the filter pickers.

func (c *Client) ExpenseTypes(ctx context.Context, token string) ([]dtos.ExpenseType, error) {
	return getList[dtos.ExpenseType](ctx, c, token, AdminExpenseTypesPath, "types", apierr.ResourceExpenses)
}

func (c *Client) ExpenseStatuses(ctx context.Context, token string) ([]dtos.ExpenseStatus, error) {
	return getList[dtos.ExpenseStatus](ctx, c, token, AdminExpenseStatusesPath, "statuses", apierr.ResourceExpenses)
}

func (c *Client) PaymentMethods(ctx context.Context, token string) ([]dtos.PaymentMethod, error) {
	return getList[dtos.PaymentMethod](ctx, c, token, AdminExpensePaymentMethodsPath, "paymentMethods", apierr.ResourceExpenses)
}

// Payments on one expense.

func (c *Client) ExpensePayments(ctx context.Context, token string, expenseID int) ([]dtos.ExpensePayment, error) {
	path := fmt.Sprintf("%s/%d/payments", AdminExpensesPath, expenseID)
	return getList[dtos.ExpensePayment](ctx, c, token, path, "payments", apierr.ResourcePayments)
}

func (c *Client) AddExpensePayment(ctx context.Context, token string, expenseID int, draft dtos.PaymentDraft) (dtos.ExpensePayment, error) {
	req, err := draft.ToRequest()
	if err != nil {
		return dtos.ExpensePayment{}, err
	}
	path := fmt.Sprintf("%s/%d/payments", AdminExpensesPath, expenseID)
	return getOne[dtos.ExpensePayment](ctx, c, token, http.MethodPost, path, req, apierr.ResourcePayments)
}

// Resident-facing expense views.

func (c *Client) MyExpenses(ctx context.Context, token string) ([]dtos.Expense, error) {
	return getList[dtos.Expense](ctx, c, token, ExpensesPath, "expenses", apierr.ResourceExpenses)
}

func (c *Client) MyExpensesSummary(ctx context.Context, token string) (dtos.ExpenseSummary, error) {
	return getOne[dtos.ExpenseSummary](ctx, c, token, http.MethodGet, ExpensesSummaryPath, nil, apierr.ResourceExpenses)
}

func (c *Client) GetExpense(ctx context.Context, token string, id int) (dtos.Expense, error) {
	path := fmt.Sprintf("%s/%d", ExpensesPath, id)
	return getOne[dtos.Expense](ctx, c, token, http.MethodGet, path, nil, apierr.ResourceExpenses)
}
