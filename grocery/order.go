package grocery

import (
	"math/rand/v2"
	"strings"
	"time"

	"foodpath"
)

// Payment methods accepted at checkout.
const (
	PaymentOnline = "online"
	PaymentCOD    = "cod"
)

const orderIDLength = 9

const deliveryDateLayout = "Monday, 2 January 2006"

// Step is one stage of the order status timeline.
type Step struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Confirmation is the order confirmation view of a placed order.
type Confirmation struct {
	Order             foodpath.Order `json:"order"`
	TotalItems        int            `json:"totalItems"`
	Subtotal          string         `json:"subtotal"`
	DeliveryFee       string         `json:"deliveryFee"`
	PaymentMethod     string         `json:"paymentMethod"`
	EstimatedDelivery string         `json:"estimatedDelivery"`
	DeliveryNote      string         `json:"deliveryNote"`
	Timeline          []Step         `json:"timeline"`
}

func NewConfirmation(o foodpath.Order, p Pricing) Confirmation {
	return Confirmation{
		Order:             o,
		TotalItems:        TotalItems(o.Items),
		Subtotal:          p.Format(Subtotal(o.Items)),
		DeliveryFee:       FormatINR(p.DeliveryFeeINR),
		PaymentMethod:     PaymentMethodDisplay(o.PaymentMethod),
		EstimatedDelivery: EstimatedDelivery(o).Format(deliveryDateLayout),
		DeliveryNote:      DeliveryNote(o.PaymentMethod),
		Timeline:          StatusTimeline(),
	}
}

// EstimatedDelivery is four days after the order for cash on delivery, three otherwise.
func EstimatedDelivery(o foodpath.Order) time.Time {
	days := 3
	if o.PaymentMethod == PaymentCOD {
		days = 4
	}
	return o.OrderDate.AddDate(0, 0, days)
}

func PaymentMethodDisplay(method string) string {
	if method == PaymentCOD {
		return "Cash on Delivery"
	}
	return "Online Payment"
}

func DeliveryNote(method string) string {
	if method == PaymentCOD {
		return "COD orders may take 1-2 additional business days"
	}
	return "Standard delivery within 2-3 business days"
}

// StatusTimeline is fixed: a placed order is confirmed and nothing more.
func StatusTimeline() []Step {
	return []Step{
		{Title: "Order Confirmed", Done: true},
		{Title: "Preparing Order"},
		{Title: "Out for Delivery"},
		{Title: "Delivered"},
	}
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// newOrderID returns a random upper-case base36 id.
func newOrderID() string {
	var b strings.Builder
	for range orderIDLength {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return strings.ToUpper(b.String())
}
