package http

import (
	"net/http"

	"debt-planner/domain"
	"debt-planner/service"
)

type DebtStrategyHandler struct {
	service *service.DebtStrategyService
}

func NewDebtStrategyHandler(service *service.DebtStrategyService) *DebtStrategyHandler {
	return &DebtStrategyHandler{service: service}
}

type normalizeRequest struct {
	Loans []domain.LoanInput `json:"loans"`
}

type normalizeResponse struct {
	Loans []domain.LoanDetail `json:"loans"`
}

type planRequest struct {
	domain.MultiLoanInput
	Strategy string `json:"strategy"`
}

// Normalize expands terse loans (principal, rate, remaining months) into
// fully specified loans with a computed EMI.
func (h *DebtStrategyHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	loans, err := h.service.Synthesize(req.Loans)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, normalizeResponse{Loans: loans})
}

func (h *DebtStrategyHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.Plan(r.Context(), req.MultiLoanInput, req.Strategy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *DebtStrategyHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.MultiLoanInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Compare(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
