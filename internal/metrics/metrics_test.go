package metrics

import "testing"

func TestRegisterIsIdempotent(t *testing.T) {
	Register()
	Register()

	IncHTTP("/api/v1/menu")
	IncReservation("website")
	IncFallback("bookings")
	IncStoreWriteFailure()
	IncStatusTransition("confirmed", "no-show")
}
