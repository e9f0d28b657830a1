package entity

import "strings"

// ReservationStatus is the status shown to guests on a reservation record.
type ReservationStatus string

const (
	StatusConfirmed  ReservationStatus = "Confirmed"
	StatusPending    ReservationStatus = "Pending"
	StatusCancelled  ReservationStatus = "Cancelled"
	StatusCompleted  ReservationStatus = "Completed"
	StatusCheckedIn  ReservationStatus = "CheckedIn"
	StatusCheckedOut ReservationStatus = "CheckedOut"
	StatusNoShow     ReservationStatus = "NoShow"
)

// AdminStatus is the narrower status set hotel operators work with.
type AdminStatus string

const (
	AdminStatusUnknown   AdminStatus = ""
	AdminStatusPending   AdminStatus = "PENDING"
	AdminStatusConfirmed AdminStatus = "CONFIRMED"
	AdminStatusCancelled AdminStatus = "CANCELLED"
	AdminStatusCompleted AdminStatus = "COMPLETED"
)

// adminToGuest is the mapping table between the two status sets. CheckedIn, CheckedOut and
// NoShow have no operator equivalent.
var adminToGuest = map[AdminStatus]ReservationStatus{
	AdminStatusPending:   StatusPending,
	AdminStatusConfirmed: StatusConfirmed,
	AdminStatusCancelled: StatusCancelled,
	AdminStatusCompleted: StatusCompleted,
}

// NormalizeAdminStatus returns the canonical AdminStatus for raw operator input.
// Both "confirmed" and "Confirmed" resolve to CONFIRMED.
func NormalizeAdminStatus(raw string) (AdminStatus, bool) {
	status := AdminStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := adminToGuest[status]; !ok {
		return AdminStatusUnknown, false
	}
	return status, true
}

// ReservationStatus maps an operator status onto the guest-facing status.
func (s AdminStatus) ReservationStatus() (ReservationStatus, bool) {
	status, ok := adminToGuest[s]
	return status, ok
}

// IsTerminal reports whether no further operator transitions are expected.
func (s AdminStatus) IsTerminal() bool {
	return s == AdminStatusCancelled || s == AdminStatusCompleted
}

// AdminStatus maps a guest-facing status back to the operator set.
// ok is false for statuses the operator set cannot express.
func (s ReservationStatus) AdminStatus() (AdminStatus, bool) {
	for admin, guest := range adminToGuest {
		if guest == s {
			return admin, true
		}
	}
	return AdminStatusUnknown, false
}
