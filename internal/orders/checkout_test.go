package orders

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCheckLines(t *testing.T) {
	price := decimal.RequireFromString("15.00")

	t.Run("all good", func(t *testing.T) {
		err := checkLines([]cartLine{
			{productID: "a", qty: 3, stock: 3, price: price, approved: true},
			{productID: "b", qty: 1, stock: 9, price: price, approved: true},
		})
		require.NoError(t, err)
	})

	t.Run("every short line is named", func(t *testing.T) {
		err := checkLines([]cartLine{
			{productID: "a", title: "Dombra", qty: 4, stock: 3, approved: true},
			{productID: "b", qty: 1, stock: 9, approved: true},
			{productID: "c", qty: 2, stock: 0, approved: true},
		})
		var se *InsufficientStockError
		require.True(t, errors.As(err, &se))
		require.Equal(t, []StockShortage{
			{ProductID: "a", Title: "Dombra", Requested: 4, Available: 3},
			{ProductID: "c", Requested: 2, Available: 0},
		}, se.Shortages)
	})

	t.Run("unavailable wins over shortage", func(t *testing.T) {
		err := checkLines([]cartLine{
			{productID: "a", qty: 4, stock: 3, approved: true},
			{productID: "b", qty: 1, stock: 9, approved: false},
		})
		require.ErrorIs(t, err, ErrProductUnavailable)
		var ue *UnavailableError
		require.True(t, errors.As(err, &ue))
		require.Equal(t, []string{"b"}, ue.ProductIDs)
	})
}
