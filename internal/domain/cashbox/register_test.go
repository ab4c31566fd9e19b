package cashbox

import (
	"testing"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/salonkit/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func money(value string) valueobject.Money {
	m, err := valueobject.NewMoneyUSDFromString(value)
	if err != nil {
		panic(err)
	}
	return m
}

func createTestRegister(t *testing.T) *Register {
	r, err := NewRegister(uuid.New(), "front desk")
	require.NoError(t, err)
	return r
}

func TestNewRegister(t *testing.T) {
	r := createTestRegister(t)
	assert.True(t, r.Balance.IsZero())
	assert.Equal(t, "front desk", r.Name)

	_, err := NewRegister(uuid.New(), "")
	assert.Error(t, err)
}

func TestRegister_ApplyTransaction_TipIncreases(t *testing.T) {
	r := createTestRegister(t)

	tx, err := r.ApplyTransaction(TransactionTypeTip, DirectionDefault, money("20"), uuid.New(), "")
	require.NoError(t, err)

	assert.True(t, d("20").Equal(r.Balance))
	assert.Equal(t, DirectionIncrease, tx.Direction)
	assert.True(t, tx.PreviousBalance.IsZero())
	assert.True(t, d("20").Equal(tx.NewBalance))
	assert.True(t, d("20").Equal(tx.BalanceChange()))
	assert.Len(t, r.GetDomainEvents(), 1)
}

func TestRegister_ApplyTransaction_InsufficientBalance(t *testing.T) {
	r := createTestRegister(t)
	_, err := r.ApplyTransaction(TransactionTypeTip, DirectionDefault, money("20"), uuid.New(), "")
	require.NoError(t, err)

	_, err = r.ApplyTransaction(TransactionTypeChange, DirectionDefault, money("50"), uuid.New(), "")
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeInsufficientBalance, de.Code)
	assert.True(t, d("20").Equal(r.Balance), "failed transaction must not move the balance")

	// A covered withdrawal still works
	tx, err := r.ApplyTransaction(TransactionTypeChange, DirectionDefault, money("15"), uuid.New(), "")
	require.NoError(t, err)
	assert.True(t, d("5").Equal(r.Balance))
	assert.True(t, d("-15").Equal(tx.SignedAmount()))
}

func TestRegister_ApplyTransaction_BalanceChain(t *testing.T) {
	r := createTestRegister(t)

	steps := []struct {
		txType  TransactionType
		dir     Direction
		amount  string
		balance string
	}{
		{TransactionTypeTip, DirectionDefault, "100", "100"},
		{TransactionTypeChange, DirectionDefault, "30", "70"},
		{TransactionTypeAdjustment, DirectionIncrease, "5.50", "75.50"},
		{TransactionTypeRefund, DirectionDefault, "25.50", "50"},
	}

	previous := decimal.Zero
	for _, step := range steps {
		tx, err := r.ApplyTransaction(step.txType, step.dir, money(step.amount), uuid.New(), "")
		require.NoError(t, err)
		assert.True(t, previous.Equal(tx.PreviousBalance), "%s: previous balance broken", step.txType)
		assert.True(t, d(step.balance).Equal(tx.NewBalance), "%s: got %s", step.txType, tx.NewBalance)
		previous = tx.NewBalance
	}
	assert.True(t, d("50").Equal(r.Balance))
}

func TestRegister_ApplyTransaction_Validation(t *testing.T) {
	r := createTestRegister(t)

	_, err := r.ApplyTransaction("DEPOSIT", DirectionDefault, money("10"), uuid.New(), "")
	assert.Error(t, err)

	_, err = r.ApplyTransaction(TransactionTypeTip, DirectionDefault, money("0"), uuid.New(), "")
	assert.Error(t, err)

	// Adjustments need an explicit direction
	_, err = r.ApplyTransaction(TransactionTypeAdjustment, DirectionDefault, money("10"), uuid.New(), "")
	assert.Error(t, err)
}

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		txType    TransactionType
		requested Direction
		want      Direction
		wantErr   bool
	}{
		{TransactionTypeTip, DirectionDefault, DirectionIncrease, false},
		{TransactionTypeTip, DirectionDecrease, DirectionIncrease, false}, // Inherent direction wins
		{TransactionTypeChange, DirectionDefault, DirectionDecrease, false},
		{TransactionTypeRefund, DirectionIncrease, DirectionDecrease, false},
		{TransactionTypeAdjustment, DirectionIncrease, DirectionIncrease, false},
		{TransactionTypeAdjustment, DirectionDecrease, DirectionDecrease, false},
		{TransactionTypeAdjustment, DirectionDefault, "", true},
	}

	for _, tt := range tests {
		got, err := tt.txType.ResolveDirection(tt.requested)
		if tt.wantErr {
			assert.Error(t, err, "%s/%s", tt.txType, tt.requested)
			continue
		}
		require.NoError(t, err, "%s/%s", tt.txType, tt.requested)
		assert.Equal(t, tt.want, got, "%s/%s", tt.txType, tt.requested)
	}
}

func TestNewCashTransaction_RejectsNegativeBalances(t *testing.T) {
	_, err := NewCashTransaction(uuid.New(), uuid.New(), TransactionTypeChange, DirectionDecrease,
		d("10"), d("5"), d("-5"))
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeInsufficientBalance, de.Code)
}
