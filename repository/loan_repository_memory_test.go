package repository

import (
	"testing"

	"debt-planner/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanRepositoryMemory_KeepsMostRecent(t *testing.T) {
	repo := NewLoanRepositoryMemory(2)

	for i := 1; i <= 3; i++ {
		input := domain.CalculationInput{Amount: decimal.NewFromInt(int64(i * 1000)), TermMonths: 12}
		require.NoError(t, repo.Save(input, domain.CalculationResult{}))
	}

	recent := repo.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "2000", recent[0].Input.Amount.String())
	assert.Equal(t, "3000", recent[1].Input.Amount.String())
}
