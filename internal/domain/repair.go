package domain

// RepairType is the closed set of work-order categories.
type RepairType string

const (
	RepairTypePainting       RepairType = "PAINTING"
	RepairTypeInsulation     RepairType = "INSULATION"
	RepairTypeFrames         RepairType = "FRAMES"
	RepairTypePlumbing       RepairType = "PLUMBING"
	RepairTypeElectricalWork RepairType = "ELECTRICALWORK"
)

// Valid reports whether t is a member of the closed enumeration.
func (t RepairType) Valid() bool {
	switch t {
	case RepairTypePainting, RepairTypeInsulation, RepairTypeFrames,
		RepairTypePlumbing, RepairTypeElectricalWork:
		return true
	}
	return false
}

// RepairStatus is the work-order state machine:
//
//	PENDING -> INPROGRESS -> COMPLETE
//	PENDING -> DECLINED
//
// COMPLETE and DECLINED are terminal.
type RepairStatus string

const (
	RepairStatusPending    RepairStatus = "PENDING"
	RepairStatusInProgress RepairStatus = "INPROGRESS"
	RepairStatusComplete   RepairStatus = "COMPLETE"
	RepairStatusDeclined   RepairStatus = "DECLINED"
)

// Valid reports whether s is a member of the closed enumeration.
func (s RepairStatus) Valid() bool {
	switch s {
	case RepairStatusPending, RepairStatusInProgress, RepairStatusComplete, RepairStatusDeclined:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s RepairStatus) Terminal() bool {
	return s == RepairStatusComplete || s == RepairStatusDeclined
}

// CanTransitionTo reports whether the state machine allows s -> next.
// Writing the current status back is always allowed.
func (s RepairStatus) CanTransitionTo(next RepairStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case RepairStatusPending:
		return next == RepairStatusInProgress || next == RepairStatusDeclined
	case RepairStatusInProgress:
		return next == RepairStatusComplete
	case RepairStatusComplete, RepairStatusDeclined:
		return false
	}
	return false
}

// Repair is a maintenance work order (corresponds to the repairs table).
// The property binding is set once at creation; the repair address is a
// snapshot of the property address at that instant and is independently
// editable afterwards.
type Repair struct {
	ID                 int64        `json:"id" db:"id"`
	RepairType         RepairType   `json:"repair_type" db:"repair_type"`
	ShortDescription   string       `json:"short_description,omitempty" db:"short_description"` // VARCHAR(100)
	SubmissionDate     *DateTime    `json:"submission_date,omitempty" db:"submission_date"`
	Description        string       `json:"description" db:"description"` // VARCHAR(400), NOT NULL
	ScheduledStartDate *DateTime    `json:"scheduled_start_date,omitempty" db:"scheduled_start_date"`
	ScheduledEndDate   *DateTime    `json:"scheduled_end_date,omitempty" db:"scheduled_end_date"`
	ProposedCost       float64      `json:"proposed_cost" db:"proposed_cost"`
	AcceptanceStatus   *bool        `json:"acceptance_status,omitempty" db:"acceptance_status"` // nil = undecided
	RepairStatus       RepairStatus `json:"repair_status" db:"repair_status"`
	RepairAddress      string       `json:"repair_address,omitempty" db:"repair_address"` // VARCHAR(50)
	ActualStartDate    *DateTime    `json:"actual_start_date,omitempty" db:"actual_start_date"`
	ActualEndDate      *DateTime    `json:"actual_end_date,omitempty" db:"actual_end_date"`
	Deleted            bool         `json:"deleted" db:"deleted"`
	PropertyID         int64        `json:"property_id" db:"property_id"` // FK to properties, ON DELETE CASCADE
}
