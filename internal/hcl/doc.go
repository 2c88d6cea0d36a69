// Package hcl provides the concrete HCL implementation of the `config.Loader`
// interface. It is responsible for file discovery, parsing, and evaluating
// scenario attributes into the format-agnostic model.
//
// A scenario file holds any number of labelled scenario blocks:
//
//	scenario "small" {
//	  width            = 2
//	  height           = 2
//	  agents           = 1
//	  dirty_percentage = 1.0
//	  max_time         = 1000
//	  seed             = 7
//	}
//
// Every attribute is optional and falls back to the package defaults.
// Expressions may refer to those defaults through the `defaults` object, for
// example `width = defaults.width * 2`.
package hcl
