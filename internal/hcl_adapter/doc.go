// Package hcl_adapter implements config.Loader for HCL files. Configuration
// may be split across any number of files and directories: at most one `run`
// block, one or more `project` blocks and any number of `scenario` blocks.
package hcl_adapter
