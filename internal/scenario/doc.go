// Package scenario defines the authored, immutable description of a browser
// scenario (ordered UI actions plus one terminal assertion), the per-run state
// machine and the error taxonomy a run can end with.
//
// Elements are only ever addressed by their application-assigned test
// identifier. Scenarios carry no positional or structural selectors.
package scenario
