package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasfilter"
	"github.com/erraggy/oasfilter/cmd/oasfilter/commands"
)

// commandNames lists the subcommands offered as typo suggestions.
var commandNames = []string{"endpoints", "refs", "filter", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, args := os.Args[1], os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasfilter\n%s\n", oasfilter.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "endpoints":
		err = commands.HandleEndpoints(args)
	case "refs":
		err = commands.HandleRefs(args)
	case "filter":
		err = commands.HandleFilter(ctx, args)
	case "mcp":
		err = commands.HandleMCP(ctx, args)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			_, _ = fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		_, _ = fmt.Fprintln(os.Stderr)
		printUsage()
		stop()
		os.Exit(1)
	}

	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// suggestCommand returns the closest command name within edit distance 2,
// or "" when none is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	usage := `oasfilter - Extract a self-contained subset of an OpenAPI document

Usage:
  oasfilter <command> [flags] <file|->

Commands:
  endpoints   List the endpoints of a document
  refs        Print the components reachable from selected endpoints
  filter      Write a document holding only the selected endpoints
  mcp         Serve the filter tools over the Model Context Protocol (stdio)
  version     Show version information
  help        Show this help message

Selectors:
  "GET /users"     one endpoint (method and path template)
  op:listUsers     operationId
  tag:users        operation tag
  path:/users/*    path glob, * matches one segment, ** any number
  method:get       HTTP method
  ext:x-public     extension truthy, or ext:x-audience=partner
  all              every endpoint

Examples:
  oasfilter endpoints openapi.json
  oasfilter refs --select "GET /users" openapi.json
  oasfilter filter --select tag:users -o users.json openapi.json
  oasfilter filter --profile users.yaml --watch openapi.yaml

Run 'oasfilter <command> --help' for more information on a command.
`
	fmt.Print(usage)
}
