// Package registry provides the central "glue" for the piece system.
//
// The Registry maps the string keys used in spell files (e.g. "operator_sum")
// to blueprints: the piece type, value kind, declared parameters and the
// stateless Go behavior that implements the piece. Modules under modules/
// contribute blueprints through the Module interface at startup.
//
// Registration mistakes are programmer errors and panic; Validate performs
// the remaining consistency checks before the registry is used.
package registry
