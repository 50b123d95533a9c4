package models

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentManual PaymentMethod = "manual"
)

type OrderStatus string

const (
	StatusPending             OrderStatus = "pending"
	StatusPendingPayment      OrderStatus = "pending_payment"
	StatusPendingVerification OrderStatus = "pending_verification"
	StatusCompleted           OrderStatus = "completed"
)

// Each payment path owns its own status graph; a status missing from a
// path's graph can never be stored for an order on that path.
var transitions = map[PaymentMethod]map[OrderStatus][]OrderStatus{
	PaymentCard: {
		StatusPending:        {StatusCompleted},
		StatusPendingPayment: {StatusCompleted},
		StatusCompleted:      nil,
	},
	PaymentManual: {
		StatusPending:             {StatusPendingVerification},
		StatusPendingPayment:      {StatusPendingVerification},
		StatusPendingVerification: nil,
	},
}

func (m PaymentMethod) Valid() bool {
	_, ok := transitions[m]
	return ok
}

// Allows reports whether status belongs to the method's status graph.
func (m PaymentMethod) Allows(status OrderStatus) bool {
	_, ok := transitions[m][status]
	return ok
}

func (m PaymentMethod) CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[m][from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPendingPayment, StatusPendingVerification, StatusCompleted:
		return true
	}
	return false
}
