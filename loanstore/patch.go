package loanstore

import (
	"github.com/AntonStoeckl/library-loans-go/calendar"
)

// Patch describes a partial update of one loan.
//
// It should only be constructed with BuildPatch.
type Patch struct {
	dueOn           calendar.Date
	returnedOn      calendar.Date
	intrinsicStatus string
	onlyIfOpen      bool
	expectedDueOn   calendar.Date
}

// DueOn returns the new due date, zero if unchanged.
func (p Patch) DueOn() calendar.Date {
	return p.dueOn
}

// ReturnedOn returns the new returned date, zero if unchanged.
func (p Patch) ReturnedOn() calendar.Date {
	return p.returnedOn
}

// IntrinsicStatus returns the new intrinsic status, empty if unchanged.
func (p Patch) IntrinsicStatus() string {
	return p.intrinsicStatus
}

// OnlyIfOpen reports whether the update must only apply while the loan is still open.
func (p Patch) OnlyIfOpen() bool {
	return p.onlyIfOpen
}

// ExpectedDueOn returns the due date the loan must still have for the update to apply, zero if unguarded.
func (p Patch) ExpectedDueOn() calendar.Date {
	return p.expectedDueOn
}

// IsGuarded reports whether the update is conditional on the stored loan.
func (p Patch) IsGuarded() bool {
	return p.onlyIfOpen || !p.expectedDueOn.IsZero()
}

// Admits reports whether loan satisfies the guards of the patch.
func (p Patch) Admits(loan StorableLoan) bool {
	if p.onlyIfOpen && !loan.IsOpen() {
		return false
	}

	return p.expectedDueOn.IsZero() || loan.DueOn.Equal(p.expectedDueOn)
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.dueOn.IsZero() && p.returnedOn.IsZero() && p.intrinsicStatus == ""
}

// ApplyTo returns loan with the patch applied. The guards are not evaluated here.
func (p Patch) ApplyTo(loan StorableLoan) StorableLoan {
	if !p.dueOn.IsZero() {
		loan.DueOn = p.dueOn
	}

	if !p.returnedOn.IsZero() {
		loan.ReturnedOn = p.returnedOn
	}

	if p.intrinsicStatus != "" {
		loan.IntrinsicStatus = p.intrinsicStatus
	}

	return loan
}

// PatchBuilder accumulates Patch changes.
type PatchBuilder struct {
	patch Patch
}

// BuildPatch starts a new Patch.
func BuildPatch() PatchBuilder {
	return PatchBuilder{}
}

// SetDueOn changes the due date.
func (b PatchBuilder) SetDueOn(d calendar.Date) PatchBuilder {
	b.patch.dueOn = d
	return b
}

// SetReturnedOn stamps the returned date.
func (b PatchBuilder) SetReturnedOn(d calendar.Date) PatchBuilder {
	b.patch.returnedOn = d
	return b
}

// SetIntrinsicStatus changes the stored status.
func (b PatchBuilder) SetIntrinsicStatus(status string) PatchBuilder {
	b.patch.intrinsicStatus = status
	return b
}

// OnlyIfOpen guards the update: it must not touch a loan that was returned meanwhile.
func (b PatchBuilder) OnlyIfOpen() PatchBuilder {
	b.patch.onlyIfOpen = true
	return b
}

// OnlyIfDueOn guards the update: the loan must still be due on d, so a concurrent change of the
// due date is detected instead of overwritten.
func (b PatchBuilder) OnlyIfDueOn(d calendar.Date) PatchBuilder {
	b.patch.expectedDueOn = d
	return b
}

// Finalize returns the built Patch.
func (b PatchBuilder) Finalize() Patch {
	return b.patch
}
