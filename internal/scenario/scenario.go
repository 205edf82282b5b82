package scenario

import (
	"fmt"
	"path/filepath"
)

// ElementRef identifies an element by its stable test identifier.
type ElementRef string

// Scenario is a named, ordered sequence of UI actions plus one assertion.
// It is built by a loader and never mutated afterwards.
type Scenario struct {
	Name string
	// Source is the file the scenario was declared in. Two scenarios may share
	// a name as long as they come from different files.
	Source string
	Steps  []Action
	Expect Assertion
}

// ID returns the identifier used in reports, e.g. "login.hcl › should login successfully".
func (s *Scenario) ID() string {
	if s.Source == "" {
		return s.Name
	}
	return fmt.Sprintf("%s › %s", filepath.Base(s.Source), s.Name)
}

// Assertion is the terminal check of a scenario.
type Assertion struct {
	Target   ElementRef
	Contains string
	// Negate inverts the check: each read holds when the element is absent or
	// its text does not contain Contains, and the check must hold for the
	// whole timeout.
	Negate bool
}

// Holds reports whether text satisfies the assertion. found is false when the
// target element could not be located.
func (a Assertion) Holds(text string, found bool) bool {
	if a.Negate {
		return !found || !containsText(text, a.Contains)
	}
	return found && containsText(text, a.Contains)
}

func (a Assertion) String() string {
	verb := "contains"
	if a.Negate {
		verb = "does not contain"
	}
	return fmt.Sprintf("%s %s %q", a.Target, verb, a.Contains)
}
