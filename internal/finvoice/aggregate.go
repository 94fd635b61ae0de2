package finvoice

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/finvoice/internal/model"
)

// VATBucket accumulates the tax base and tax amount of all rows sharing one
// VAT rate.
type VATBucket struct {
	RatePercent int
	Base        decimal.Decimal // sum of row net amounts
	Amount      decimal.Decimal // sum of row vat amounts
}

// Aggregate is the result of rolling up invoice rows: one bucket per VAT
// rate in first-seen order, plus grand totals. All sums are unrounded;
// rounding happens only when an amount is rendered.
type Aggregate struct {
	buckets []*VATBucket
	byRate  map[int]*VATBucket

	TotalNet   decimal.Decimal
	TotalVAT   decimal.Decimal
	TotalGross decimal.Decimal
}

// Buckets returns the VAT buckets in the order their rates first appeared
// in the row sequence. Downstream output is presentation-order-sensitive,
// so this ordering is part of the contract, not an implementation accident.
func (a *Aggregate) Buckets() []*VATBucket {
	return a.buckets
}

// Bucket returns the bucket for a rate, or nil if no row carried it.
func (a *Aggregate) Bucket(ratePercent int) *VATBucket {
	return a.byRate[ratePercent]
}

// CheckTotals compares the caller-supplied invoice-level totals against the
// sums aggregated from the rows. The generation path never calls this; the
// totals are caller responsibility and rendered as-is. It exists for
// callers that want the reconciliation before handing a document out.
func CheckTotals(inv model.Invoice) error {
	agg := AggregateRows(inv.Rows)
	if !agg.TotalNet.Equal(inv.PriceNet) {
		return model.NewValidationError("price_net", inv.PriceNet.String(),
			"does not match sum of rows "+agg.TotalNet.String())
	}
	if !agg.TotalGross.Equal(inv.PriceGross) {
		return model.NewValidationError("price_gross", inv.PriceGross.String(),
			"does not match sum of rows "+agg.TotalGross.String())
	}
	return nil
}

// AggregateRows rolls up invoice rows into VAT buckets and grand totals.
// Per row: net = amount × price_net, gross = amount × price_gross,
// vat = gross − net. An empty row sequence yields empty buckets and zero
// totals; rate 0 is valid and forms its own bucket.
func AggregateRows(rows []model.InvoiceLine) *Aggregate {
	agg := &Aggregate{
		byRate:     make(map[int]*VATBucket),
		TotalNet:   decimal.Zero,
		TotalVAT:   decimal.Zero,
		TotalGross: decimal.Zero,
	}

	for _, row := range rows {
		net := row.Amount.Mul(row.PriceNet)
		gross := row.Amount.Mul(row.PriceGross)
		vat := gross.Sub(net)

		bucket, ok := agg.byRate[row.VAT]
		if !ok {
			bucket = &VATBucket{
				RatePercent: row.VAT,
				Base:        decimal.Zero,
				Amount:      decimal.Zero,
			}
			agg.byRate[row.VAT] = bucket
			agg.buckets = append(agg.buckets, bucket)
		}

		bucket.Base = bucket.Base.Add(net)
		bucket.Amount = bucket.Amount.Add(vat)

		agg.TotalNet = agg.TotalNet.Add(net)
		agg.TotalVAT = agg.TotalVAT.Add(vat)
		agg.TotalGross = agg.TotalGross.Add(gross)
	}

	return agg
}
