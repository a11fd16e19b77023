package booking

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ConflictPolicy decides how overlapping bookings on the same resource are
// handled at creation time.
type ConflictPolicy string

const (
	// ConflictPolicyFlag records conflicts on both bookings and persists
	// the new booking anyway, leaving resolution to an operator.
	ConflictPolicyFlag ConflictPolicy = "flag"
	// ConflictPolicyReject refuses creation when any overlap exists.
	ConflictPolicyReject ConflictPolicy = "reject"
)

func (p ConflictPolicy) IsValid() bool {
	return p == ConflictPolicyFlag || p == ConflictPolicyReject
}
