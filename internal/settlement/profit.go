package settlement

import "github.com/shashanknagariya/NagariyaTradersBilling/internal/models"

// CostBreakdown itemizes everything that eats into a sale's realization.
// Labour, transport and mandi are internal expenses: they reduce profit
// but never the party-facing invoice total.
type CostBreakdown struct {
	ShortageCost       float64
	DeductionCost      float64
	LabourCostTotal    float64
	TransportCostTotal float64
	MandiCost          float64
}

func Costs(trx models.Transaction) CostBreakdown {
	return CostBreakdown{
		ShortageCost:       trx.ShortageQuantity * trx.RatePerQuintal,
		DeductionCost:      trx.DeductionAmount,
		LabourCostTotal:    float64(trx.NumberOfBags) * trx.LabourCostPerBag,
		TransportCostTotal: trx.QuantityQuintal * trx.TransportCostPerQtl,
		MandiCost:          trx.MandiCost,
	}
}

// NetRealized is what a sale actually brings in after every itemized
// cost. Purchases are cost events, not margin events, so their net is
// just the invoice total.
func NetRealized(trx models.Transaction) float64 {
	if trx.Type != models.TransactionTypeSale {
		return trx.TotalAmount
	}
	c := Costs(trx)
	return trx.TotalAmount - c.ShortageCost - c.DeductionCost - c.LabourCostTotal - c.TransportCostTotal - c.MandiCost
}

// Profit is the realized margin of a sale against its acquisition cost.
// Zero for purchases. Profit figures are internal; invoice view models
// must never carry them.
func Profit(trx models.Transaction) float64 {
	if trx.Type != models.TransactionTypeSale {
		return 0
	}
	return NetRealized(trx) - trx.CostPricePerQuintal*trx.QuantityQuintal
}
