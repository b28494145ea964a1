package repository

import (
	"sync"

	"debt-planner/domain"
)

// Calculation is a single stored EMI calculation.
type Calculation struct {
	Input  domain.CalculationInput  `json:"input"`
	Result domain.CalculationResult `json:"result"`
}

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
// It keeps at most limit calculations, dropping the oldest.
type LoanRepositoryMemory struct {
	mu    sync.Mutex
	limit int
	data  []Calculation
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory(limit int) *LoanRepositoryMemory {
	if limit <= 0 {
		limit = 1000
	}
	return &LoanRepositoryMemory{
		limit: limit,
		data:  []Calculation{},
	}
}

// Save stores the calculation in memory.
func (r *LoanRepositoryMemory) Save(
	input domain.CalculationInput,
	result domain.CalculationResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, Calculation{Input: input, Result: result})
	if len(r.data) > r.limit {
		r.data = r.data[len(r.data)-r.limit:]
	}
	return nil
}

// Recent returns a copy of the stored calculations, oldest first.
func (r *LoanRepositoryMemory) Recent() []Calculation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Calculation, len(r.data))
	copy(out, r.data)
	return out
}
