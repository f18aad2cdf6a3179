package cli

import (
	"log"
	"os"

	"github.com/smartchef/skillet"
	mcpadapter "github.com/smartchef/skillet/pkg/adapters/mcp"
)

// ServeMCP starts the MCP server on stdio. Logs go to stderr so they never
// corrupt the JSON-RPC stream on stdout.
func ServeMCP(opts RunOptions) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)

	d := buildDeps(cfg, logger)
	defer d.cleanup()

	serverOpts := []mcpadapter.Option{
		mcpadapter.WithLogger(logger),
		mcpadapter.WithStepOptions(stepOptions(cfg, logger)...),
	}
	if d.favorites != nil {
		serverOpts = append(serverOpts, mcpadapter.WithFavoriteStore(d.favorites))
	}
	srv := mcpadapter.NewServer(d.completer, skillet.Version, serverOpts...)

	logger.Info("starting skillet MCP server (stdio)")
	return srv.ServeStdio()
}
