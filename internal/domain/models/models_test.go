package models_test

import (
	"encoding/json"
	"testing"

	"github.com/linemk/shop-dashboard/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_RecalculateStock(t *testing.T) {
	p := &models.Product{
		TotalStock: 100,
		Variants: models.Variants{
			{ID: "red", Name: "Red", Stock: 3},
			{ID: "blue", Name: "Blue", Stock: 4},
		},
	}
	p.RecalculateStock()
	assert.Equal(t, 7, p.TotalStock)

	// без вариантов остаётся ручное значение
	manual := &models.Product{TotalStock: 12}
	manual.RecalculateStock()
	assert.Equal(t, 12, manual.TotalStock)
}

func TestProduct_DecrementStock_Variant(t *testing.T) {
	p := &models.Product{
		Variants: models.Variants{
			{ID: "red", Stock: 3},
			{ID: "blue", Stock: 4},
		},
	}
	p.RecalculateStock()

	require.NoError(t, p.DecrementStock("red", 2))
	assert.Equal(t, 1, p.Variants[0].Stock)
	assert.Equal(t, 5, p.TotalStock)

	err := p.DecrementStock("red", 2)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
	assert.Equal(t, 1, p.Variants[0].Stock, "stock must not change on failure")

	err = p.DecrementStock("green", 1)
	assert.ErrorIs(t, err, models.ErrVariantNotFound)

	// общий остаток товара с вариантами напрямую не списывается
	err = p.DecrementStock("", 1)
	assert.ErrorIs(t, err, models.ErrVariantRequired)
	assert.Equal(t, 5, p.TotalStock)
	p.RecalculateStock()
	assert.Equal(t, 5, p.TotalStock)
}

func TestProduct_DecrementStock_Total(t *testing.T) {
	p := &models.Product{TotalStock: 2}

	require.NoError(t, p.DecrementStock("", 2))
	assert.Equal(t, 0, p.TotalStock)
	assert.ErrorIs(t, p.DecrementStock("", 1), models.ErrInsufficientStock)
}

func TestProduct_AvailableStock(t *testing.T) {
	plain := &models.Product{TotalStock: 9}
	n, err := plain.AvailableStock("")
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	p := &models.Product{TotalStock: 2, Variants: models.Variants{{ID: "v1", Stock: 2}}}
	_, err = p.AvailableStock("")
	assert.ErrorIs(t, err, models.ErrVariantRequired)

	n, err = p.AvailableStock("v1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = p.AvailableStock("nope")
	assert.ErrorIs(t, err, models.ErrVariantNotFound)
}

func TestProduct_CloneIsDeep(t *testing.T) {
	cat := "c1"
	p := &models.Product{Images: []string{"a.png"}, Variants: models.Variants{{ID: "v", Stock: 1}}, CategoryID: &cat}
	cp := p.Clone()
	cp.Images[0] = "b.png"
	cp.Variants[0].Stock = 50
	*cp.CategoryID = "c2"

	assert.Equal(t, "a.png", p.Images[0])
	assert.Equal(t, 1, p.Variants[0].Stock)
	assert.Equal(t, "c1", *p.CategoryID)
}

func TestOrder_CalculateTotal(t *testing.T) {
	o := &models.Order{
		DeliveryType: models.DeliveryTypeDelivery,
		Items: models.OrderItems{
			{ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("10.50")},
			{ProductID: "p2", Quantity: 1, Price: decimal.RequireFromString("3")},
		},
	}
	fee := decimal.RequireFromString("5")

	o.CalculateTotal(fee)
	assert.True(t, decimal.RequireFromString("29").Equal(o.Total), "got %s", o.Total)

	o.DeliveryType = models.DeliveryTypePickup
	o.CalculateTotal(fee)
	assert.True(t, decimal.RequireFromString("24").Equal(o.Total), "got %s", o.Total)
}

func TestOrderItems_ScanValue(t *testing.T) {
	items := models.OrderItems{{ProductID: "p1", VariantID: "v1", Quantity: 3, Price: decimal.NewFromInt(7)}}
	raw, err := items.Value()
	require.NoError(t, err)

	var scanned models.OrderItems
	require.NoError(t, scanned.Scan(raw))
	require.Len(t, scanned, 1)
	assert.Equal(t, "v1", scanned[0].VariantID)
	assert.True(t, decimal.NewFromInt(7).Equal(scanned[0].Price))

	assert.Error(t, scanned.Scan(42))
}

func TestPriceMarshalsAsNumber(t *testing.T) {
	p := models.Product{Price: decimal.RequireFromString("12.5")}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":12.5`)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, models.ValidStatus(models.StatusPickedUp))
	assert.False(t, models.ValidStatus("cancelled"))
}
