package grocery

import (
	"math"
	"strconv"
	"strings"

	"foodpath"
)

// Pricing converts catalog USD prices to rupees for display.
type Pricing struct {
	Rate           float64 // INR per USD
	DeliveryFeeINR float64
}

func DefaultPricing() Pricing {
	return Pricing{Rate: 83, DeliveryFeeINR: 49}
}

// NewPricing uses the configured rate and fee. An unset rate means the
// config was never decoded, so the defaults apply.
func NewPricing(cfg foodpath.PricingConfig) Pricing {
	if cfg.USDToINR <= 0 {
		return DefaultPricing()
	}
	return Pricing{Rate: cfg.USDToINR, DeliveryFeeINR: max(cfg.DeliveryFeeINR, 0)}
}

func (p Pricing) INR(usd float64) float64 {
	return usd * p.Rate
}

// DeliveryFeeUSD expresses the fixed rupee fee in catalog currency.
func (p Pricing) DeliveryFeeUSD() float64 {
	return p.DeliveryFeeINR / p.Rate
}

// Total is the cart subtotal plus the delivery fee, in USD.
func (p Pricing) Total(items []foodpath.CartItem) float64 {
	return Subtotal(items) + p.DeliveryFeeUSD()
}

// Format renders a USD amount as rupees.
func (p Pricing) Format(usd float64) string {
	return FormatINR(p.INR(usd))
}

// FormatINR renders rupees the en-IN way: ₹ sign, lakh/crore grouping, two decimals.
func FormatINR(amount float64) string {
	paise := int64(math.Round(amount * 100))
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("₹")
	b.WriteString(groupIndian(strconv.FormatInt(paise/100, 10)))
	b.WriteByte('.')
	frac := paise % 100
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// groupIndian groups the last three digits, then pairs: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}
