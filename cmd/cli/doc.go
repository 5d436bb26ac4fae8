// Package cli constructs the ghopen command-line interface, wiring the Cobra
// root command, configuration loader, and structured logging primitives. It
// exposes helpers to build reusable application instances and to execute the
// default command as a reusable library.
package cli
