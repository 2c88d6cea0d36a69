// Package config defines the format-agnostic scenario model for the
// application, along with the Loader interface for reading scenarios from
// various sources.
//
// The `config.Model` is the single source of truth for the `app` package.
// Concrete loaders, such as the HCL one, are provided in separate packages.
package config
