package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/keysort"
	"github.com/erraggy/keysort/cmd/keysort/commands"
	"github.com/erraggy/keysort/internal/cliutil"
	"github.com/erraggy/keysort/internal/mcpserver"
	"github.com/erraggy/keysort/keyorder"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("keysort v%s\n", keysort.Version())
	case "help", "-h", "--help":
		handleHelp(os.Args[2:])
	case "sort":
		if err := commands.HandleSort(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := commands.HandleCheck(os.Args[2:]); err != nil {
			if errors.Is(err, commands.ErrIssuesFound) {
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	case "canon":
		if err := commands.HandleCanon(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := mcpserver.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// knownCommands lists the valid subcommands for typo suggestions.
var knownCommands = []string{"sort", "check", "canon", "mcp", "version", "help"}

// suggestCommand returns the closest known command within edit distance 2,
// or empty string when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// handleHelp prints usage for a specific command, the sort order list,
// or the general usage when no topic is given.
func handleHelp(args []string) {
	if len(args) == 0 {
		printUsage()
		return
	}

	switch args[0] {
	case "sort":
		fs, _ := commands.SetupSortFlags()
		fs.SetOutput(os.Stdout)
		fs.Usage()
	case "check":
		fs, _ := commands.SetupCheckFlags()
		fs.SetOutput(os.Stdout)
		fs.Usage()
	case "canon":
		fs, _ := commands.SetupCanonFlags()
		fs.SetOutput(os.Stdout)
		fs.Usage()
	case "orders":
		printOrders()
	case "mcp":
		cliutil.Writef(os.Stdout, "Usage: keysort mcp\n\n")
		cliutil.Writef(os.Stdout, "Run the keysort MCP server over stdio. Configure it with KEYSORT_*\n")
		cliutil.Writef(os.Stdout, "environment variables in your MCP client config.\n")
	default:
		fmt.Fprintf(os.Stderr, "Unknown help topic: %s\n\n", args[0])
		printUsage()
	}
}

// printOrders lists the sort order policies for -order flags.
func printOrders() {
	cliutil.Writef(os.Stdout, "Sort order policies (for the -order flag):\n\n")
	for _, policy := range keyorder.Policies() {
		marker := " "
		if policy == keyorder.DefaultPolicy {
			marker = "*"
		}
		cliutil.Writef(os.Stdout, "  %s %-30s %s\n", marker, policy, policy.Describe())
	}
	cliutil.Writef(os.Stdout, "\n* default\n\n")
	cliutil.Writef(os.Stdout, "A JSON object maps individual keys to policies for per-key ordering:\n")
	cliutil.Writef(os.Stdout, "  keysort sort -order '{\"10-b\":\"numeric\",\"name\":null}' doc.json\n")
}

func printUsage() {
	cliutil.Writef(os.Stdout, "keysort v%s - deduplicate and sort JSON/YAML member keys\n\n", keysort.Version())
	cliutil.Writef(os.Stdout, "Usage: keysort <command> [flags] [arguments]\n\n")
	cliutil.Writef(os.Stdout, "Commands:\n")
	cliutil.Writef(os.Stdout, "  sort      Deduplicate and sort the member keys of a document\n")
	cliutil.Writef(os.Stdout, "  check     Report duplicate and out-of-order keys without modifying\n")
	cliutil.Writef(os.Stdout, "  canon     Emit RFC 8785 canonical JSON\n")
	cliutil.Writef(os.Stdout, "  mcp       Run the MCP server over stdio\n")
	cliutil.Writef(os.Stdout, "  version   Print the keysort version\n")
	cliutil.Writef(os.Stdout, "  help      Show help for a command (or 'help orders')\n\n")
	cliutil.Writef(os.Stdout, "Run 'keysort help <command>' for command-specific flags.\n")
}
