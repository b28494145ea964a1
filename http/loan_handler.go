package http

import (
	"net/http"

	"debt-planner/domain"
	"debt-planner/repository"
	"debt-planner/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

type historyResponse struct {
	Calculations []repository.Calculation `json:"calculations"`
}

// History lists recent single-loan calculations.
func (h *LoanHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Calculations: h.service.History()})
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.CalculationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.CalculateLoan(input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
