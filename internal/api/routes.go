package api

// Backend paths, relative to the configured base URL.
const (
	AdminStatsPath      = "/admin/stats"
	AdminClaimStatsPath = "/admin/claims/stats"

	AdminUsersPath = "/admin/users"

	AdminApartmentsPath = "/admin/apartments"

	AdminAmenitiesPath = "/admin/amenities"

	AdminReservationsPath        = "/admin/reservations"
	AdminReservationsPendingPath = "/admin/reservations/pending"

	AdminExpensesPath              = "/admin/expenses"
	AdminExpenseTypesPath          = "/admin/expenses/types"
	AdminExpenseStatusesPath       = "/admin/expenses/statuses"
	AdminExpensePaymentMethodsPath = "/admin/expenses/payment-methods"

	ExpensesPath        = "/expenses"
	ExpensesSummaryPath = "/expenses/summary"
)
