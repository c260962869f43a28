package constants

// Church subscription status (church_status).
const (
	ChurchStatusTrial     = "trial"
	ChurchStatusActive    = "active"
	ChurchStatusOverdue   = "overdue"
	ChurchStatusSuspended = "suspended"
	ChurchStatusCanceled  = "canceled"
)

var ChurchStatuses = []string{
	ChurchStatusTrial,
	ChurchStatusActive,
	ChurchStatusOverdue,
	ChurchStatusSuspended,
	ChurchStatusCanceled,
}

func IsValidChurchStatus(s string) bool {
	for _, v := range ChurchStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsWriteBlocked reports whether tenant writes are refused (402) for a status.
func IsWriteBlocked(status string) bool {
	return status == ChurchStatusSuspended || status == ChurchStatusCanceled
}

// Realtime actions.
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)
