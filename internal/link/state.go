package link

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a record: either Active or SoftDeleted.
type State interface {
	isState()
}

// Active is the state of a visible, resolvable link.
type Active struct{}

// SoftDeleted is the state of a link hidden from its owner and not resolvable.
// The code stays reserved and the link can be reactivated.
type SoftDeleted struct {
	DeletedAt time.Time
}

func (Active) isState()      {}
func (SoftDeleted) isState() {}

// State derives the lifecycle state from the stored fields.
func (r Record) State() State {
	if r.Active {
		return Active{}
	}

	var at time.Time
	if r.DeletedAt != nil {
		at = *r.DeletedAt
	}

	return SoftDeleted{DeletedAt: at}
}

// SoftDelete moves an Active record to SoftDeleted.
// Deleting an already soft-deleted record returns ErrInactive.
func (r *Record) SoftDelete(now time.Time) error {
	if _, ok := r.State().(SoftDeleted); ok {
		return fmt.Errorf("soft delete %s: %w", r.Code, ErrInactive)
	}

	r.Active = false
	r.DeletedAt = &now
	r.touch(now)

	return nil
}

// Reactivate moves a SoftDeleted record back to Active, keeping its mapping.
func (r *Record) Reactivate(now time.Time) error {
	if _, ok := r.State().(Active); ok {
		return fmt.Errorf("reactivate %s: %w", r.Code, ErrInvalidTransition)
	}

	r.Active = true
	r.DeletedAt = nil
	r.touch(now)

	return nil
}

// Retarget points the record at a new URL.
func (r *Record) Retarget(longURL string, now time.Time) {
	r.LongURL = longURL
	r.touch(now)
}

// touch bumps UpdatedAt, never moving it backwards.
func (r *Record) touch(now time.Time) {
	if now.After(r.UpdatedAt) {
		r.UpdatedAt = now
	}
}
