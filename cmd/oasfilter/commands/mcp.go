package commands

import (
	"context"
	"errors"
	"flag"

	"github.com/erraggy/oasfilter/internal/mcpserver"
)

// mcpRun is replaced in tests.
var mcpRun = mcpserver.Run

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasfilter mcp\n\n")
		Writef(fs.Output(), "Serve the list_endpoints, collect_refs and filter_spec tools over the\n")
		Writef(fs.Output(), "Model Context Protocol on stdin/stdout.\n\n")
		Writef(fs.Output(), "Environment:\n")
		Writef(fs.Output(), "  OASFILTER_CACHE_ENABLED         cache parsed documents (default true)\n")
		Writef(fs.Output(), "  OASFILTER_CACHE_MAX_SIZE        maximum cached documents (default 10)\n")
		Writef(fs.Output(), "  OASFILTER_CACHE_FILE_TTL        lifetime of file entries (default 15m)\n")
		Writef(fs.Output(), "  OASFILTER_CACHE_CONTENT_TTL     lifetime of inline content entries (default 15m)\n")
		Writef(fs.Output(), "  OASFILTER_CACHE_SWEEP_INTERVAL  expired entry sweep interval (default 60s)\n")
		Writef(fs.Output(), "  OASFILTER_MAX_INLINE_SIZE       maximum inline content size in bytes (default 10 MiB)\n")
		Writef(fs.Output(), "  OASFILTER_LIST_LIMIT            default list_endpoints page size (default 100)\n")
		Writef(fs.Output(), "  OASFILTER_MAX_LIMIT             maximum list_endpoints page size (default 1000)\n")
		Writef(fs.Output(), "  OASFILTER_DEFAULT_FORMAT        filter_spec output format: json or yaml\n")
		Writef(fs.Output(), "  OASFILTER_STRICT_REFS           fail on unresolved references (default false)\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasfilter mcp\n")
	}

	return fs
}

// HandleMCP executes the mcp command and blocks until the client
// disconnects or ctx is cancelled.
func HandleMCP(ctx context.Context, args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return errors.New("mcp takes no arguments")
	}
	return mcpRun(ctx)
}
