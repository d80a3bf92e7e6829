package cli

import (
	"github.com/spf13/cobra"

	"github.com/automatalib/automata/internal/server"
)

// newServeCmd creates the serve command running the HTTP API.
func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the automata HTTP API",
		Long: `Serve the automata HTTP API.

The server stores automaton definitions, runs recognition and algebraic
operations, and renders diagrams. Backends for the result cache (memory,
null, redis) and the automaton store (memory, mongo) are selected in the
TOML config file.

Example:
  automata serve --config server.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			srv, err := server.New(cmd.Context(), cfg, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
