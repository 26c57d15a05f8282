package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceTable_AmountFor(t *testing.T) {
	table := PriceTable{
		Hours3Cents:  1500,
		Hours12Cents: 4500,
		NightCents:   4000,
		HourlyCents:  600,
	}

	t.Run("FixedTier", func(t *testing.T) {
		amount, err := table.AmountFor(3, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(1500), amount)

		amount, err = table.AmountFor(12, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(4500), amount)
	})

	t.Run("UnpricedTierFallsBackToHourly", func(t *testing.T) {
		// 6h tier not set, so six hours are priced per hour.
		amount, err := table.AmountFor(6, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(3600), amount)
	})

	t.Run("OddDurationUsesHourly", func(t *testing.T) {
		amount, err := table.AmountFor(5, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(3000), amount)
	})

	t.Run("NightTierIgnoresHours", func(t *testing.T) {
		amount, err := table.AmountFor(3, true)
		assert.NoError(t, err)
		assert.Equal(t, int64(4000), amount)
	})

	t.Run("NightNotOffered", func(t *testing.T) {
		noNight := PriceTable{HourlyCents: 600}
		_, err := noNight.AmountFor(3, true)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("NonPositiveHours", func(t *testing.T) {
		_, err := table.AmountFor(0, false)
		assert.Equal(t, KindValidation, KindOf(err))
	})

	t.Run("NoApplicableRate", func(t *testing.T) {
		fixedOnly := PriceTable{Hours3Cents: 1500}
		_, err := fixedOnly.AmountFor(7, false)
		assert.Equal(t, KindValidation, KindOf(err))
	})
}

func TestPriceTable_Validate(t *testing.T) {
	assert.NoError(t, PriceTable{HourlyCents: 600}.Validate())
	assert.Error(t, PriceTable{}.Validate())
	assert.Error(t, PriceTable{Hours3Cents: -1, HourlyCents: 600}.Validate())
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusActive.Terminal())
}
