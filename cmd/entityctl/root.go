package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"fieldmodel/internal/schema"
)

const envPrefix = "ENTITYCTL"

// app carries the configuration and logger shared by all commands.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "entityctl",
		Short:        "Validate model schemas and run documents through them",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			logger, err := a.configureLogging()
			if err != nil {
				return err
			}

			a.logger = logger

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringP("schema", "s", "schema.yaml", "path to the schema file")
	root.PersistentFlags().Bool("debug", false, "log at debug level in development format")
	root.PersistentFlags().Bool("quiet", false, "disable logging")
	a.bind(root.PersistentFlags())

	root.AddCommand(a.newValidateCmd(), a.newPackCmd())

	return root
}

func (a *app) bind(flags *pflag.FlagSet) {
	if err := a.v.BindPFlags(flags); err != nil {
		panic(err)
	}
}

func (a *app) configureLogging() (*zap.Logger, error) {
	switch {
	case a.v.GetBool("quiet"):
		return zap.NewNop(), nil
	case a.v.GetBool("debug"):
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

// loadSchema reads the schema file and prepares the environment it is
// validated and compiled against.
func (a *app) loadSchema() (*schema.File, *schema.Environment, error) {
	path := a.v.GetString("schema")

	f, err := schema.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	env, err := schema.NewEnvironment()
	if err != nil {
		return nil, nil, errors.Wrap(err, "schema environment")
	}

	env.Logger = a.logger.With(zap.String("schema", path))

	return f, env, nil
}
