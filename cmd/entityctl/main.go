// Package main provides the CLI entrypoint for entityctl.
//
// entityctl works with model schemas:
//   - validate checks a schema file and reports its diagnostics
//   - pack runs a document through a model (mass assignment, then packing)
//
// Flags can also be given as ENTITYCTL_* environment variables, e.g.
// ENTITYCTL_SCHEMA=models.yaml.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
