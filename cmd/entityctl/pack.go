package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"fieldmodel/entity"
	"fieldmodel/internal/schema"
)

func (a *app) newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Run a document through a model and print the packed entity",
		Long: `pack reads a YAML or JSON document, mass assigns it to a new entity of
the given model and prints the packed fields as JSON, in storage order.

Unless --all is given, only fillable fields are assigned. With --subject,
fill authorization comes from the schema permissions. With --hydrate the
document is stored verbatim, as if loaded from storage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, env, err := a.loadSchema()
			if err != nil {
				return err
			}

			catalog, err := env.Compile(f)
			if err != nil {
				return err
			}

			doc, err := readDocument(cmd.InOrStdin(), a.v.GetString("input"))
			if err != nil {
				return err
			}

			e, err := a.build(catalog, doc)
			if err != nil {
				return err
			}
			defer e.Dispose()

			a.logger.Debug("entity built",
				zap.String("model", a.v.GetString("model")),
				zap.Stringer("id", e.ID()),
				zap.Strings("fields", e.Keys()),
			)

			return a.print(cmd.OutOrStdout(), e)
		},
	}

	cmd.Flags().StringP("model", "m", "", "model to build the entity of")
	cmd.Flags().StringP("input", "i", "-", `document to read, "-" for stdin`)
	cmd.Flags().String("subject", "", "subject the document is filled on behalf of")
	cmd.Flags().Bool("all", false, "fill every field, ignoring fill authorization")
	cmd.Flags().Bool("hydrate", false, "store the document verbatim")
	cmd.Flags().Bool("get", false, "print fields through their getters")
	cmd.Flags().Bool("dump", false, "print a typed dump instead of JSON")
	_ = cmd.MarkFlagRequired("model")
	a.bind(cmd.Flags())

	return cmd
}

func (a *app) build(catalog *schema.Catalog, doc map[string]any) (*entity.Entity, error) {
	model := a.v.GetString("model")

	switch {
	case a.v.GetBool("hydrate"):
		return catalog.New(model, doc)
	case a.v.GetBool("all"):
		opts, err := catalog.Options(model, a.v.GetString("subject"))
		if err != nil {
			return nil, err
		}
		return entity.New(nil, opts...).SetFields(doc, true), nil
	default:
		return catalog.Fill(model, a.v.GetString("subject"), doc)
	}
}

func (a *app) print(out io.Writer, e *entity.Entity) error {
	if a.v.GetBool("dump") {
		_, err := fmt.Fprint(out, e.Dump())
		return err
	}

	fields := e.Pack()
	if a.v.GetBool("get") {
		var err error
		if fields, err = e.GetFields(true); err != nil {
			return err
		}

		for i := range fields {
			fields[i].Value = entity.Unwrap(fields[i].Value)
		}
	}

	data, err := fields.MarshalJSON()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s\n", data)

	return err
}

// readDocument reads a YAML (or JSON) mapping from path, or from stdin when
// path is "-".
func readDocument(stdin io.Reader, path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "read document %s", path)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parse document %s", path)
	}

	return doc, nil
}
