// Package report turns finished scenario runs into results, prints the
// per-scenario pass/fail lines, writes the JSON report artifact and fans
// results out to optional sinks.
package report
