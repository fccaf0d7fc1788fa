package billing

// PaymentStatus marks whether a student has paid for a billing period.
type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "paid"
	StatusUnpaid PaymentStatus = "unpaid"
)

// Valid reports whether s is a known status value.
func (s PaymentStatus) Valid() bool {
	return s == StatusPaid || s == StatusUnpaid
}

// StatusRecord is a persisted (student, period) payment status entry.
// At most one record exists per key; a missing record reads as unpaid.
type StatusRecord struct {
	StudentID string
	Period    Period
	Status    PaymentStatus
}
