package domain

import "github.com/shopspring/decimal"

// Cancellation window thresholds, in hours before the show.
const (
	FullRefundHours = 24
	MinCancelHours  = 2
)

type RefundTier int

const (
	RefundRejected RefundTier = iota
	Refund50
	Refund100
)

// RefundTierFor computes the refund tier from the hours remaining until the
// show starts. It is a pure function of its input.
func RefundTierFor(hoursUntilShow float64) RefundTier {
	switch {
	case hoursUntilShow < MinCancelHours:
		return RefundRejected
	case hoursUntilShow < FullRefundHours:
		return Refund50
	default:
		return Refund100
	}
}

func (t RefundTier) Percent() decimal.Decimal {
	switch t {
	case Refund100:
		return decimal.NewFromInt(100)
	case Refund50:
		return decimal.NewFromInt(50)
	default:
		return decimal.Zero
	}
}

// Amount returns the refundable portion of totalPrice for this tier.
func (t RefundTier) Amount(totalPrice int) decimal.Decimal {
	return decimal.NewFromInt(int64(totalPrice)).Mul(t.Percent()).Div(decimal.NewFromInt(100))
}

func (t RefundTier) Description() string {
	switch t {
	case Refund100:
		return "Ticket cancelled successfully. 100% refund will be processed."
	case Refund50:
		return "Ticket cancelled successfully. 50% refund will be processed."
	default:
		return "Cancellation is not possible this close to the show."
	}
}
