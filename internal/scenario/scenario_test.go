package scenario

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScenarioID_DistinguishesSources(t *testing.T) {
	a := &Scenario{Name: "should login successfully", Source: "suites/example.hcl"}
	b := &Scenario{Name: "should login successfully", Source: "suites/login.hcl"}

	require.Equal(t, "example.hcl › should login successfully", a.ID())
	require.NotEqual(t, a.ID(), b.ID())
	require.Equal(t, "bare", (&Scenario{Name: "bare"}).ID())
}

func TestAssertionHolds(t *testing.T) {
	testCases := []struct {
		name   string
		a      Assertion
		text   string
		found  bool
		expect bool
	}{
		{"substring match", Assertion{Contains: "BP"}, "  BP  ", true, true},
		{"whitespace collapsed", Assertion{Contains: "Brad Pitt"}, "Brad\n   Pitt", true, true},
		{"mismatch", Assertion{Contains: "BP"}, "MM", true, false},
		{"missing element fails", Assertion{Contains: "BP"}, "", false, false},
		{"negated mismatch passes", Assertion{Contains: "BP", Negate: true}, "MM", true, true},
		{"negated missing passes", Assertion{Contains: "BP", Negate: true}, "", false, true},
		{"negated match fails", Assertion{Contains: "BP", Negate: true}, "BP", true, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, tc.a.Holds(tc.text, tc.found))
		})
	}
}

func TestFillStringHidesValue(t *testing.T) {
	s := Fill{Target: "login-password", Value: "123456"}.String()
	require.NotContains(t, s, "123456")
	require.Contains(t, s, "login-password")
}

func TestStepFailureUnwrapsTimeout(t *testing.T) {
	err := error(&StepFailure{
		Index:  2,
		Action: Click{Target: "login-button"},
		Err:    &TimeoutError{Op: "click login-button", After: time.Second},
	})

	var sf *StepFailure
	var te *TimeoutError
	require.True(t, errors.As(err, &sf))
	require.True(t, errors.As(err, &te))
	require.Equal(t, 2, sf.Index)
	require.Contains(t, err.Error(), "step 2 (click login-button)")
}

func TestAssertionFailureMessages(t *testing.T) {
	require.Contains(t, (&AssertionFailure{Target: "user-avatar", Expected: "BP", Actual: "MM", Found: true}).Error(), `actual "MM"`)
	require.Contains(t, (&AssertionFailure{Target: "user-avatar", Expected: "BP"}).Error(), "element not found")
	require.Contains(t, (&AssertionFailure{Target: "user-avatar", Expected: "BP", Negate: true, Found: true}).Error(), "not to contain")
}
