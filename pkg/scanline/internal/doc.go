// Package internal contains the infrastructure shared by scanline's packages:
// process-wide loggers and configuration loading. Types and functions in this
// package are not part of the public API.
package internal
