// Package registry is the glue between compiled-in modules and the run.
//
// Modules (browser drivers) register themselves by name at startup. Before a
// run begins the registry resolves the requested driver and checks that it
// can serve every project in the configuration, so a mismatch between code
// and configuration fails fast instead of in the middle of a run.
package registry
