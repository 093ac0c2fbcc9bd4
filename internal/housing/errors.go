package housing

import "errors"

// Abort reasons. Each one terminates the operation with nothing committed.
var (
	ErrNotInstitutionOwner = errors.New("caller does not own the institution")
	ErrNotStudentOwner     = errors.New("caller does not own the student account")
	ErrNotStudent          = errors.New("student does not belong to the institution")
	ErrInvalidRoom         = errors.New("room is not owned by the institution or has no free bed")
	ErrInvalidBooking      = errors.New("no matching memo in the institution's memo store")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidPayment      = errors.New("payment has zero value")
	ErrInvalidAmount       = errors.New("amount is negative or out of range")
)

var reasonCodes = []struct {
	err  error
	code string
}{
	{ErrNotInstitutionOwner, "NotInstitutionOwner"},
	{ErrNotStudentOwner, "NotStudentOwner"},
	{ErrNotStudent, "NotStudent"},
	{ErrInvalidRoom, "InvalidRoom"},
	{ErrInvalidBooking, "InvalidBooking"},
	{ErrInsufficientFunds, "InsufficientFunds"},
	{ErrInvalidPayment, "InvalidPayment"},
	{ErrInvalidAmount, "InvalidAmount"},
}

// ReasonCode returns the stable reason code of an abort, or "" if err is not one.
func ReasonCode(err error) string {
	for _, rc := range reasonCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return ""
}
