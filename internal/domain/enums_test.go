package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, Category(""), got)

	_, err = ParseCategory("gramophone")
	assert.Error(t, err)
}

func TestCategoryDisplayIsTotal(t *testing.T) {
	for _, c := range append(Categories(), Category("something-new")) {
		assert.NotEmpty(t, c.Label())
		assert.NotEmpty(t, c.Badge())
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses() {
		got, err := ParseOrderStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseOrderStatus("")
	require.NoError(t, err)
	assert.Equal(t, OrderStatus(""), got)

	_, err = ParseOrderStatus("teleported")
	assert.Error(t, err)
}

func TestStatusDisplayIsTotal(t *testing.T) {
	for _, s := range append(OrderStatuses(), OrderStatus("backordered")) {
		assert.NotEmpty(t, s.Label())
		assert.NotEmpty(t, s.Badge())
	}
	for _, p := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentStatus("refunded")} {
		assert.NotEmpty(t, p.Badge())
	}
}

func TestOrderReference(t *testing.T) {
	o := Order{ID: "64a1f2e3d4c5b6a798081920"}
	assert.Equal(t, "#98081920", o.Reference())

	assert.Equal(t, "#AB12", Order{ID: "ab12"}.Reference())
}

func TestCartDerivedValues(t *testing.T) {
	c := Cart{
		{ProductID: "p1", UnitPricePaise: 100, Quantity: 2},
		{ProductID: "p2", UnitPricePaise: 50, Quantity: 1},
	}
	assert.Equal(t, int64(250), c.Total())
	assert.Equal(t, 3, c.Count())

	line, ok := c.Find("p2")
	require.True(t, ok)
	assert.Equal(t, int64(50), line.UnitPricePaise)

	_, ok = c.Find("p3")
	assert.False(t, ok)

	assert.Zero(t, Cart{}.Total())
}
