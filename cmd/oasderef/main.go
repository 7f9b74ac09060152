package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasderef"
	"github.com/erraggy/oasderef/cmd/oasderef/commands"
	"github.com/erraggy/oasderef/internal/cliutil"
	"github.com/erraggy/oasderef/internal/mcpserver"
)

// knownCommands is the list of commands offered as typo suggestions.
var knownCommands = []string{"deref", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasderef v%s\n", oasderef.Version())
		fmt.Println(oasderef.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "deref":
		if err := commands.HandleDeref(os.Args[2:]); err != nil {
			cliutil.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := mcpserver.Run(ctx)
		stop()
		if err != nil {
			cliutil.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	cliutil.Writef(os.Stderr, "oasderef - JSON reference dereferencer and merger\n\n")
	cliutil.Writef(os.Stderr, "Usage:\n")
	cliutil.Writef(os.Stderr, "  oasderef <command> [flags] [args]\n\n")
	cliutil.Writef(os.Stderr, "Commands:\n")
	cliutil.Writef(os.Stderr, "  deref      Resolve $ref directives into a single document\n")
	cliutil.Writef(os.Stderr, "  mcp        Run the MCP server over stdio\n")
	cliutil.Writef(os.Stderr, "  version    Show version information\n")
	cliutil.Writef(os.Stderr, "  help       Show this help message\n\n")
	cliutil.Writef(os.Stderr, "Run 'oasderef <command> --help' for more information on a command.\n")
}

// suggestCommand returns the known command closest to input, or "" when
// nothing is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
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
