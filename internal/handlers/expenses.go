package handlers

import (
	"net/http"

	"divvy/internal/auth"
	"divvy/internal/middleware"
	"divvy/internal/service"
)

// ExpenseHandler owns the expense and balance-sheet endpoints.
type ExpenseHandler struct {
	expenses   *service.ExpenseService
	jwtManager *auth.JWTManager
}

// NewExpenseHandler constructs the handler.
func NewExpenseHandler(expenses *service.ExpenseService, jwtManager *auth.JWTManager) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, jwtManager: jwtManager}
}

// Register attaches the expense routes to the mux. All routes require auth.
func (h *ExpenseHandler) Register(mux *http.ServeMux) {
	protect := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h.jwtManager, fn)
	}
	mux.Handle("POST /expenses/{groupId}", protect(h.handleCreate))
	mux.Handle("GET /expenses/{groupId}", protect(h.handleList))
	mux.Handle("GET /expenses/{groupId}/balance-sheet", protect(h.handleBalanceSheet))
}

type createExpenseRequest struct {
	Description  string   `json:"description"`
	Amount       float64  `json:"amount"`
	PaidBy       string   `json:"paidBy"`
	SplitBetween []string `json:"splitBetween"`
}

func (h *ExpenseHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	expense, err := h.expenses.CreateExpense(
		r.Context(),
		middleware.GetUserID(r.Context()),
		r.PathValue("groupId"),
		service.CreateExpenseInput{
			Description:  req.Description,
			Amount:       req.Amount,
			PaidBy:       req.PaidBy,
			SplitBetween: req.SplitBetween,
		},
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) handleList(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.ListExpenses(r.Context(), r.PathValue("groupId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	balances, err := h.expenses.BalanceSheet(r.Context(), r.PathValue("groupId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balances)
}
