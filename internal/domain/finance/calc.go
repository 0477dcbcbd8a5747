// Package finance holds the pure invoice amount calculator and the budget
// reconciliation tracker. Nothing here does I/O.
package finance

import "math"

// Channel is the payment channel an invoice settles through.
type Channel string

const (
	ChannelNone     Channel = ""
	ChannelDomestic Channel = "DomesticBank"
	ChannelOverseas Channel = "OverseasBank"
)

const (
	gstRate           = 0.05
	serviceChargeRate = 0.18 // applied to the GST amount, not the total
)

// Amounts is the derived financial breakdown of an invoice.
type Amounts struct {
	GST           float64 `json:"gst"`
	ServiceCharge float64 `json:"serviceCharge"`
	TaxAmount     float64 `json:"taxAmount"`
	NetAmount     float64 `json:"netAmount"`
}

// Pricing selects how amounts are derived. The three variants are
// structurally distinct so a manual override can never be confused with an
// automatic computation that happens to share field values.
type Pricing interface {
	pricing()
}

// Automatic derives tax and net from the payment channel. Remittance is
// added unconverted: it is assumed to be quoted in the target currency
// already. RateOfExchange defaults to 1 when not positive.
type Automatic struct {
	Channel        Channel
	RateOfExchange float64
	Remittance     float64
}

// Direct is the plain edit path used when no payment channel has been
// selected: net is simply total plus the caller-entered tax.
type Direct struct {
	TaxAmount float64
}

// Manual bypasses computation entirely; the supplied amounts are stored
// verbatim with no rounding imposed.
type Manual struct {
	TaxAmount float64
	NetAmount float64
}

func (Automatic) pricing() {}
func (Direct) pricing()    {}
func (Manual) pricing()    {}

// ComputeAmounts derives the financial breakdown for a base totalAmount
// under the given pricing variant.
func ComputeAmounts(totalAmount float64, p Pricing) Amounts {
	switch v := p.(type) {
	case Manual:
		return Amounts{TaxAmount: v.TaxAmount, NetAmount: v.NetAmount}
	case Direct:
		return Amounts{
			TaxAmount: v.TaxAmount,
			NetAmount: Round2(totalAmount + v.TaxAmount),
		}
	case Automatic:
		return computeAutomatic(totalAmount, v)
	default:
		return Amounts{NetAmount: Round2(totalAmount)}
	}
}

func computeAutomatic(totalAmount float64, a Automatic) Amounts {
	roe := a.RateOfExchange
	if roe <= 0 {
		roe = 1
	}

	var gst, serviceCharge float64
	if a.Channel == ChannelDomestic {
		gst = Round2(totalAmount * gstRate)
		serviceCharge = Round2(gst * serviceChargeRate)
	}

	convertedTotal := totalAmount * roe
	convertedGST := gst * roe
	convertedSC := serviceCharge * roe

	return Amounts{
		GST:           gst,
		ServiceCharge: serviceCharge,
		TaxAmount:     Round2(convertedGST + convertedSC),
		NetAmount:     Round2(convertedTotal + convertedGST + convertedSC + a.Remittance),
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
