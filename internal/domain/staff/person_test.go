package staff

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

func validConfig() CommissionConfig {
	return CommissionConfig{
		ServicePercent:    d("25"),
		RetailPercent:     d("15"),
		CalculationMethod: CalculationAfterInputs,
		MinimumService:    d("10"),
	}
}

func TestCommissionConfig_Validate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	t.Run("boundary rates are valid", func(t *testing.T) {
		c := validConfig()
		c.ServicePercent = d("0")
		c.RetailPercent = d("100")
		assert.NoError(t, c.Validate())
	})

	t.Run("minimum equal to maximum is valid", func(t *testing.T) {
		c := validConfig()
		maximum := d("10")
		c.MaximumService = &maximum
		assert.NoError(t, c.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*CommissionConfig)
	}{
		{"service percent above 100", func(c *CommissionConfig) { c.ServicePercent = d("100.01") }},
		{"negative retail percent", func(c *CommissionConfig) { c.RetailPercent = d("-0.01") }},
		{"invalid method", func(c *CommissionConfig) { c.CalculationMethod = "DURING_INPUTS" }},
		{"negative minimum", func(c *CommissionConfig) { c.MinimumService = d("-1") }},
		{"minimum above maximum", func(c *CommissionConfig) {
			maximum := d("9.99")
			c.MaximumService = &maximum
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)

			err := c.Validate()
			require.Error(t, err)

			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, shared.CodeInvalidCommissionConfig, de.Code)
		})
	}
}

func TestCommissionConfig_Rates(t *testing.T) {
	c := validConfig()

	service, err := c.ServiceRate()
	require.NoError(t, err)
	assert.True(t, d("25").Equal(service.Value()))
	assert.True(t, service.ApplyTo(d("100")).Equal(d("25")))

	retail, err := c.RetailRate()
	require.NoError(t, err)
	assert.True(t, d("15").Equal(retail.Value()))

	t.Run("out-of-range service rate", func(t *testing.T) {
		bad := validConfig()
		bad.ServicePercent = d("100.01")

		_, err := bad.ServiceRate()
		require.Error(t, err)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidCommissionConfig, de.Code)
	})

	t.Run("negative retail rate", func(t *testing.T) {
		bad := validConfig()
		bad.RetailPercent = d("-1")

		_, err := bad.RetailRate()
		assert.Error(t, err)
	})
}

func TestNewExpert(t *testing.T) {
	p, err := NewExpert(uuid.New(), "Ana", validConfig())
	require.NoError(t, err)

	assert.Equal(t, RoleExpert, p.Role)
	assert.True(t, p.Active)
	assert.True(t, p.IsActiveExpert())
	require.NotNil(t, p.CommissionConfig)

	_, err = NewExpert(uuid.New(), "", validConfig())
	assert.Error(t, err)

	bad := validConfig()
	bad.ServicePercent = d("200")
	_, err = NewExpert(uuid.New(), "Ana", bad)
	assert.Error(t, err)
}

func TestPerson_ExpertConfig(t *testing.T) {
	p, err := NewExpert(uuid.New(), "Ana", validConfig())
	require.NoError(t, err)

	config, err := p.ExpertConfig()
	require.NoError(t, err)
	assert.True(t, d("25").Equal(config.ServicePercent))

	t.Run("non-expert role", func(t *testing.T) {
		client := &Person{Role: RoleClient}
		_, err := client.ExpertConfig()
		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidCommissionConfig, de.Code)
	})

	t.Run("missing config", func(t *testing.T) {
		expert := &Person{Role: RoleExpert}
		_, err := expert.ExpertConfig()
		assert.Error(t, err)
	})

	t.Run("config mutated invalid after creation", func(t *testing.T) {
		p, err := NewExpert(uuid.New(), "Ana", validConfig())
		require.NoError(t, err)
		p.CommissionConfig.ServicePercent = d("150")
		_, err = p.ExpertConfig()
		assert.Error(t, err)
	})
}

func TestPerson_Deactivate(t *testing.T) {
	p, err := NewExpert(uuid.New(), "Ana", validConfig())
	require.NoError(t, err)

	p.Deactivate()

	assert.False(t, p.Active)
	assert.False(t, p.IsActiveExpert())
	// Config stays: historical commissions still reference it
	assert.NotNil(t, p.CommissionConfig)
}
