package sale

import (
	"testing"

	"github.com/google/uuid"
	"github.com/salonkit/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func createTestSale(t *testing.T) *Sale {
	s, err := NewSale(uuid.New(), "SALE-001", uuid.New())
	require.NoError(t, err)
	return s
}

func addServiceItem(t *testing.T, s *Sale, gross string, inputs ...string) *LineItem {
	var costs []InputCost
	for _, amount := range inputs {
		c, err := NewInputCost("product", d(amount))
		require.NoError(t, err)
		costs = append(costs, c)
	}
	item, err := NewServiceLine(s.ID, uuid.New(), "haircut", d(gross), costs)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(item))
	return item
}

func TestNewSale(t *testing.T) {
	s := createTestSale(t)

	assert.Equal(t, StatusOpen, s.Status)
	assert.Empty(t, s.Items)
	assert.True(t, s.TotalAmount.IsZero())
	assert.Nil(t, s.InvoiceNumber)
	assert.Len(t, s.GetDomainEvents(), 1)
	assert.Equal(t, "SaleOpened", s.GetDomainEvents()[0].EventType())
}

func TestNewSale_Validation(t *testing.T) {
	_, err := NewSale(uuid.New(), "", uuid.New())
	assert.Error(t, err)

	_, err = NewSale(uuid.New(), "SALE-001", uuid.Nil)
	assert.Error(t, err)
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusOpen, StatusInProcess, true},
		{StatusOpen, StatusCancelled, true},
		{StatusOpen, StatusClosed, false},
		{StatusInProcess, StatusClosed, true},
		{StatusInProcess, StatusCancelled, true},
		{StatusInProcess, StatusOpen, false},
		{StatusClosed, StatusCancelled, false},
		{StatusClosed, StatusOpen, false},
		{StatusCancelled, StatusOpen, false},
		{StatusCancelled, StatusClosed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestSale_AddItem(t *testing.T) {
	s := createTestSale(t)

	addServiceItem(t, s, "120", "40")
	retail, err := NewRetailLine(s.ID, uuid.New(), "shampoo", d("30"))
	require.NoError(t, err)
	require.NoError(t, s.AddItem(retail))

	assert.Len(t, s.Items, 2)
	assert.True(t, d("150").Equal(s.TotalAmount))
	assert.Len(t, s.ServiceLines(), 1)
	assert.Len(t, s.RetailLines(), 1)
}

func TestSale_AddItemRejectedOnTerminalStates(t *testing.T) {
	s := createTestSale(t)
	addServiceItem(t, s, "50")
	require.NoError(t, s.StartProcessing(""))
	require.NoError(t, s.Close(1001, uuid.New()))

	item, err := NewRetailLine(s.ID, uuid.New(), "late", d("5"))
	require.NoError(t, err)
	assert.Error(t, s.AddItem(item))
	assert.True(t, d("50").Equal(s.TotalAmount), "closed total must stay frozen")
}

func TestSale_Close(t *testing.T) {
	s := createTestSale(t)
	addServiceItem(t, s, "120", "40")

	require.NoError(t, s.StartProcessing("client arrived"))
	assert.Equal(t, StatusInProcess, s.Status)
	assert.NotNil(t, s.InProcessAt)

	actor := uuid.New()
	require.NoError(t, s.Close(1001, actor))

	assert.Equal(t, StatusClosed, s.Status)
	require.NotNil(t, s.InvoiceNumber)
	assert.Equal(t, int64(1001), *s.InvoiceNumber)
	assert.NotNil(t, s.ClosedAt)
	require.NotNil(t, s.ClosedBy)
	assert.Equal(t, actor, *s.ClosedBy)
	assert.True(t, s.IsClosed())
}

func TestSale_CloseFromOpenFails(t *testing.T) {
	s := createTestSale(t)
	addServiceItem(t, s, "50")

	err := s.Close(1001, uuid.New())
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeSaleNotClosable, de.Code)
}

func TestSale_CloseWithoutItemsFails(t *testing.T) {
	s := createTestSale(t)
	require.NoError(t, s.StartProcessing(""))

	err := s.Close(1001, uuid.New())
	require.Error(t, err)

	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, shared.CodeSaleNotClosable, de.Code)
}

func TestSale_CloseTwiceFails(t *testing.T) {
	s := createTestSale(t)
	addServiceItem(t, s, "50")
	require.NoError(t, s.StartProcessing(""))
	require.NoError(t, s.Close(1001, uuid.New()))

	err := s.Close(1002, uuid.New())
	require.Error(t, err)
	assert.Equal(t, int64(1001), *s.InvoiceNumber, "invoice number must not change")
}

func TestSale_Cancel(t *testing.T) {
	t.Run("from open", func(t *testing.T) {
		s := createTestSale(t)
		require.NoError(t, s.Cancel("client left"))
		assert.Equal(t, StatusCancelled, s.Status)
		assert.Equal(t, "client left", s.CancelReason)
		assert.NotNil(t, s.CancelledAt)
	})

	t.Run("from in-process", func(t *testing.T) {
		s := createTestSale(t)
		addServiceItem(t, s, "50")
		require.NoError(t, s.StartProcessing(""))
		require.NoError(t, s.Cancel("walkout"))
		assert.Equal(t, StatusCancelled, s.Status)
	})

	t.Run("closed sale cannot be cancelled", func(t *testing.T) {
		s := createTestSale(t)
		addServiceItem(t, s, "50")
		require.NoError(t, s.StartProcessing(""))
		require.NoError(t, s.Close(1001, uuid.New()))
		assert.Error(t, s.Cancel("too late"))
		assert.Equal(t, StatusClosed, s.Status)
	})

	t.Run("requires reason", func(t *testing.T) {
		s := createTestSale(t)
		assert.Error(t, s.Cancel(""))
		assert.Equal(t, StatusOpen, s.Status)
	})
}

func TestLineItem_InputCostsExceedGross(t *testing.T) {
	s := createTestSale(t)

	ok := addServiceItem(t, s, "120", "40")
	assert.False(t, ok.InputCostsExceedGross())
	assert.True(t, d("40").Equal(ok.TotalInputCosts()))

	// Accepted but flagged: the caller decides whether to log it
	flagged := addServiceItem(t, s, "50", "60", "20")
	assert.True(t, flagged.InputCostsExceedGross())
	assert.True(t, d("80").Equal(flagged.TotalInputCosts()))
	assert.Len(t, s.Items, 2)
}

func TestNewLineItem_Validation(t *testing.T) {
	_, err := NewServiceLine(uuid.New(), uuid.Nil, "haircut", d("50"), nil)
	assert.Error(t, err)

	_, err = NewRetailLine(uuid.New(), uuid.New(), "shampoo", d("-1"))
	assert.Error(t, err)

	_, err = NewInputCost("", d("5"))
	assert.Error(t, err)

	_, err = NewInputCost("dye", d("-5"))
	assert.Error(t, err)
}
