package form

import (
	"fmt"
	"strings"
)

// Record maps field names to their current values. An empty string means unset.
type Record map[string]string

// Machine holds the values, current step and submission flag of one form
// session. It is not safe for concurrent use.
type Machine struct {
	variant   *Variant
	record    Record
	step      int
	submitted bool
}

// NewMachine creates a machine in Editing(0) with every field empty
func NewMachine(v *Variant) *Machine {
	m := &Machine{variant: v}
	m.Reset()
	return m
}

// Variant returns the step table the machine runs against
func (m *Machine) Variant() *Variant {
	return m.variant
}

// HasField reports whether name is a field of the variant
func (m *Machine) HasField(name string) bool {
	_, ok := m.record[name]
	return ok
}

// UpdateField stores value for name. No validation is done at write time.
func (m *Machine) UpdateField(name, value string) error {
	if m.submitted {
		return ErrSubmitted
	}
	if !m.HasField(name) {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	m.record[name] = value
	return nil
}

// Value returns the current value of a field
func (m *Machine) Value(name string) string {
	return m.record[name]
}

// Record returns a copy of the current values
func (m *Machine) Record() Record {
	out := make(Record, len(m.record))
	for k, v := range m.record {
		out[k] = v
	}
	return out
}

// Step returns the current step index
func (m *Machine) Step() int {
	return m.step
}

// StepCount returns the number of steps in the variant
func (m *Machine) StepCount() int {
	return len(m.variant.Steps)
}

// Submitted reports whether the form reached its terminal state
func (m *Machine) Submitted() bool {
	return m.submitted
}

// IsLastStep reports whether the current step is the final one
func (m *Machine) IsLastStep() bool {
	return m.step == m.StepCount()-1
}

// IsStepValid reports whether every required field of step is non-blank
func (m *Machine) IsStepValid(step int) bool {
	if step < 0 || step >= m.StepCount() {
		return false
	}
	for _, name := range m.variant.Steps[step].Required {
		if strings.TrimSpace(m.record[name]) == "" {
			return false
		}
	}
	return true
}

// CanAdvance reports whether the forward action is enabled
func (m *Machine) CanAdvance() bool {
	return !m.submitted && m.IsStepValid(m.step)
}

// CanRetreat reports whether the back action is enabled
func (m *Machine) CanRetreat() bool {
	return !m.submitted && m.step > 0
}

// Advance moves to the next step when the current one is valid. On the
// final step it submits instead. It returns false and leaves the state
// untouched when the guard fails.
func (m *Machine) Advance() bool {
	if !m.CanAdvance() {
		return false
	}
	if m.IsLastStep() {
		return m.Submit()
	}
	m.step++
	return true
}

// Retreat moves back one step. Going back never loses collected values.
func (m *Machine) Retreat() bool {
	if !m.CanRetreat() {
		return false
	}
	m.step--
	return true
}

// Submit enters the terminal state from a valid final step
func (m *Machine) Submit() bool {
	if m.submitted || !m.IsLastStep() || !m.IsStepValid(m.step) {
		return false
	}
	m.submitted = true
	return true
}

// Reset empties every field and returns to Editing(0)
func (m *Machine) Reset() {
	m.record = make(Record, len(m.variant.Fields))
	for _, f := range m.variant.Fields {
		m.record[f.Name] = ""
	}
	m.step = 0
	m.submitted = false
}

// LeadValue returns the value of the field carrying the given lead role
func (m *Machine) LeadValue(lead string) string {
	name := m.variant.FieldFor(lead)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(m.record[name])
}

// FirstName is the first word of the visitor's name, used to greet them
func (m *Machine) FirstName() string {
	parts := strings.Fields(m.LeadValue(LeadName))
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
