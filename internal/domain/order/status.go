package order

// Status is the lifecycle state of an order. This service only ever produces
// PENDING; the remaining transitions are driven by downstream collaborators
// (payment, restaurant approval) through the aggregate's transition methods.
//
//	PENDING ──> APPROVED
//	PENDING ──> CANCELLING ──> CANCELLED
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusApproved   Status = "APPROVED"
	StatusCancelling Status = "CANCELLING"
	StatusCancelled  Status = "CANCELLED"
)

// Valid reports whether s is one of the known states. Used when rehydrating
// orders from storage.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCancelling, StatusCancelled:
		return true
	}
	return false
}
