package main

import (
	"log"

	"github.com/ironsheep/badge-verify/internal/imaging"
	"github.com/ironsheep/badge-verify/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *verifyFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run an MCP server over stdin/stdout",
		Long: `Run a Model Context Protocol server that exposes the badge checks as tools.

The server communicates via JSON-RPC over stdin/stdout. Configure it in your
MCP client; the verification flags set the defaults for tool calls.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			if err := opts.Validate(); err != nil {
				return err
			}
			if _, err := imaging.NewResizer(flags.Resizer); err != nil {
				return err
			}

			if debugEnabled() {
				log.Printf("Badge MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
			}

			srv := server.New(
				server.WithDefaults(opts),
				server.WithResizer(flags.Resizer),
				server.WithVersion(Version),
			)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
