package mailer

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cometcontrol/comet-backend/pkg/types"
)

// noPricePlaceholder replaces the line total when a product has no list price.
const noPricePlaceholder = "—"

var pricePrinter = message.NewPrinter(language.English)

// lineTotal computes and formats the amount owed for one cart item: the
// discounted unit price when present, otherwise the list price, multiplied by
// quantity. Items without a price render the placeholder dash.
func lineTotal(item types.CartItem) string {
	if item.UnitPrice == nil {
		return noPricePlaceholder
	}

	unit := item.UnitPrice.Amount
	if item.UnitPrice.DiscountedAmount != nil {
		unit = *item.UnitPrice.DiscountedAmount
	}

	total := decimal.NewFromFloat(unit).Mul(decimal.NewFromInt(int64(item.Quantity)))
	return formatPrice(total, item.UnitPrice.Currency.Symbol())
}

func formatPrice(amount decimal.Decimal, symbol string) string {
	value, _ := amount.Round(2).Float64()
	return symbol + pricePrinter.Sprintf("%.2f", value)
}
