package valueobject

import (
	"fmt"
	"time"
)

// BillingCycle identifies the credit card statement a purchase belongs to.
// ReferenceMonth, and with it the per-card invoice key, is the month the
// statement closes in. It is not the month the statement is due, which is
// the following month whenever the due day is not after the closing day.
type BillingCycle struct {
	ReferenceMonth time.Time // first day of the closing month, unique per card
	ClosingDate    time.Time
	DueDate        time.Time
}

// ValidBillingDay reports whether day can be used as a closing or due day.
func ValidBillingDay(day int) bool {
	return day >= 1 && day <= 31
}

// NewBillingCycle resolves the cycle for a purchase made on accrual.
//
// Purchases after the closing day roll into the next month's statement. The
// due date falls in the closing month when the due day comes after the
// closing day, and in the following month otherwise. Days past the end of a
// short month are clamped to its last day.
func NewBillingCycle(closingDay, dueDay int, accrual time.Time) (BillingCycle, error) {
	if !ValidBillingDay(closingDay) {
		return BillingCycle{}, fmt.Errorf("invalid closing day %d", closingDay)
	}
	if !ValidBillingDay(dueDay) {
		return BillingCycle{}, fmt.Errorf("invalid due day %d", dueDay)
	}

	accrual = DateOf(accrual)
	reference := FirstOfMonth(accrual)
	if accrual.Day() > closingDay {
		reference = AddMonths(reference, 1)
	}

	dueMonth := reference
	if dueDay <= closingDay {
		dueMonth = AddMonths(reference, 1)
	}

	return BillingCycle{
		ReferenceMonth: reference,
		ClosingDate:    DateInMonth(reference, closingDay),
		DueDate:        DateInMonth(dueMonth, dueDay),
	}, nil
}
