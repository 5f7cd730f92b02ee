package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"fieldmodel/internal/schema"
)

func (a *app) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a schema file and report diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, env, err := a.loadSchema()
			if err != nil {
				return err
			}

			res := env.Validate(f)
			out := cmd.OutOrStdout()

			for _, d := range res.All() {
				fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
			}

			if res.HasErrors() {
				return errors.Newf("%d error(s) in %s", len(res.Errors), a.v.GetString("schema"))
			}

			if !a.v.GetBool("print") {
				fmt.Fprintf(out, "ok: %d model(s)\n", len(f.Models))
				return nil
			}

			data, err := schema.Marshal(f)
			if err != nil {
				return err
			}

			_, err = out.Write(data)

			return err
		},
	}

	cmd.Flags().Bool("print", false, "print the schema with defaults applied")
	a.bind(cmd.Flags())

	return cmd
}
