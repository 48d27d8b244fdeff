package settlement

// QuantityFromBags converts the bag count to quintals via the bharti
// (kg packed per bag), plus any loose kilograms weighed outside bags.
// 1 quintal = 100 kg.
func QuantityFromBags(bags int, bhartiKg, extraLooseKg float64) float64 {
	return (float64(bags)*bhartiKg + extraLooseKg) / 100
}

// PurchaseTotal is the net payout to the supplier: gross grain value
// minus the labour charged per bag.
func PurchaseTotal(qtyQuintal, ratePerQuintal float64, bags int, labourPerBag float64) float64 {
	return qtyQuintal*ratePerQuintal - float64(bags)*labourPerBag
}

// SaleTotal is the gross invoice amount billed to the buyer.
func SaleTotal(qtyQuintal, ratePerQuintal float64) float64 {
	return qtyQuintal * ratePerQuintal
}
