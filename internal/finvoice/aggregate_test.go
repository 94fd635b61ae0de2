package finvoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/finvoice/internal/finvoice"
	"github.com/rezonia/finvoice/internal/model"
)

func line(amount, priceNet, priceGross string, vat int) model.InvoiceLine {
	return model.InvoiceLine{
		Name:       "row",
		Amount:     decimal.RequireFromString(amount),
		Unit:       "kpl",
		PriceNet:   decimal.RequireFromString(priceNet),
		PriceGross: decimal.RequireFromString(priceGross),
		VAT:        vat,
	}
}

func TestAggregateRows_Empty(t *testing.T) {
	agg := finvoice.AggregateRows(nil)

	assert.Empty(t, agg.Buckets())
	assert.True(t, agg.TotalNet.IsZero())
	assert.True(t, agg.TotalVAT.IsZero())
	assert.True(t, agg.TotalGross.IsZero())
}

func TestAggregateRows_SingleBucket(t *testing.T) {
	// Two VAT-24 lines: 5.5 h at 50/62 and 1 kpl at 20/24.8.
	rows := []model.InvoiceLine{
		line("5.5", "50", "62", 24),
		line("1", "20", "24.8", 24),
	}

	agg := finvoice.AggregateRows(rows)

	require.Len(t, agg.Buckets(), 1)
	bucket := agg.Bucket(24)
	require.NotNil(t, bucket)

	// vatBase = 5.5*50 + 1*20 = 295, vatAmount = 5.5*12 + 1*4.8 = 70.8
	assert.True(t, bucket.Base.Equal(decimal.NewFromInt(295)), "base = %s", bucket.Base)
	assert.True(t, bucket.Amount.Equal(decimal.RequireFromString("70.8")), "amount = %s", bucket.Amount)

	assert.True(t, agg.TotalNet.Equal(decimal.NewFromInt(295)))
	assert.True(t, agg.TotalVAT.Equal(decimal.RequireFromString("70.8")))
	assert.True(t, agg.TotalGross.Equal(decimal.RequireFromString("365.8")))
}

func TestAggregateRows_FirstSeenOrder(t *testing.T) {
	rows := []model.InvoiceLine{
		line("1", "100", "124", 24),
		line("1", "50", "55", 10),
		line("2", "10", "12.4", 24),
		line("1", "30", "30", 0),
	}

	agg := finvoice.AggregateRows(rows)

	buckets := agg.Buckets()
	require.Len(t, buckets, 3)
	// Presentation order is first-seen, not numeric.
	assert.Equal(t, 24, buckets[0].RatePercent)
	assert.Equal(t, 10, buckets[1].RatePercent)
	assert.Equal(t, 0, buckets[2].RatePercent)
}

func TestAggregateRows_ZeroRateBucket(t *testing.T) {
	agg := finvoice.AggregateRows([]model.InvoiceLine{line("2", "10", "10", 0)})

	bucket := agg.Bucket(0)
	require.NotNil(t, bucket)
	assert.True(t, bucket.Base.Equal(decimal.NewFromInt(20)))
	assert.True(t, bucket.Amount.IsZero())
}

// Totals equal the sums of each line's independently computed figures, and
// each bucket's base+amount equals the gross contribution of its rate.
func TestAggregateRows_Reconciles(t *testing.T) {
	rows := []model.InvoiceLine{
		line("3", "19.99", "24.79", 24),
		line("0.5", "120", "148.8", 24),
		line("7", "5", "5.5", 10),
	}

	agg := finvoice.AggregateRows(rows)

	net, vat, gross := decimal.Zero, decimal.Zero, decimal.Zero
	grossByRate := map[int]decimal.Decimal{}
	for _, r := range rows {
		n := r.Amount.Mul(r.PriceNet)
		g := r.Amount.Mul(r.PriceGross)
		net = net.Add(n)
		gross = gross.Add(g)
		vat = vat.Add(g.Sub(n))
		if _, ok := grossByRate[r.VAT]; !ok {
			grossByRate[r.VAT] = decimal.Zero
		}
		grossByRate[r.VAT] = grossByRate[r.VAT].Add(g)
	}

	assert.True(t, agg.TotalNet.Equal(net))
	assert.True(t, agg.TotalVAT.Equal(vat))
	assert.True(t, agg.TotalGross.Equal(gross))

	for rate, expected := range grossByRate {
		bucket := agg.Bucket(rate)
		require.NotNil(t, bucket, "bucket for rate %d", rate)
		assert.True(t, bucket.Base.Add(bucket.Amount).Equal(expected),
			"rate %d: base+amount = %s, want %s", rate, bucket.Base.Add(bucket.Amount), expected)
	}
}

func TestCheckTotals(t *testing.T) {
	inv := model.Invoice{
		PriceNet:   decimal.NewFromInt(295),
		PriceGross: decimal.RequireFromString("365.8"),
		Rows: []model.InvoiceLine{
			line("5.5", "50", "62", 24),
			line("1", "20", "24.8", 24),
		},
	}
	require.NoError(t, finvoice.CheckTotals(inv))

	inv.PriceGross = decimal.NewFromInt(400)
	err := finvoice.CheckTotals(inv)
	require.Error(t, err)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price_gross", verr.Field)
}
