// Package config defines the format-agnostic run configuration: target base
// URL, per-action timeout, the browser projects scenarios are replayed under
// and the scenarios themselves, along with the Loader interface concrete
// formats implement.
//
// The RunConfiguration is the single source of truth for the executor.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
