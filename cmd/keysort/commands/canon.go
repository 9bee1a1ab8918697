package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/keysort/internal/cliutil"
	"github.com/erraggy/keysort/keyorder"
	"github.com/erraggy/keysort/parser"
	"github.com/erraggy/keysort/sorter"
)

// CanonFlags contains flags for the canon command
type CanonFlags struct {
	Output string
	Quiet  bool
}

// SetupCanonFlags creates and configures a FlagSet for the canon command.
// Returns the FlagSet and a CanonFlags struct with bound flag variables.
func SetupCanonFlags() (*flag.FlagSet, *CanonFlags) {
	fs := flag.NewFlagSet("canon", flag.ContinueOnError)
	flags := &CanonFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: keysort canon [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Emit the RFC 8785 (JCS) canonical JSON form of a JSON or YAML document:\n")
		cliutil.Writef(fs.Output(), "duplicate keys removed, keys in canonical order, minimal escaping, no\n")
		cliutil.Writef(fs.Output(), "insignificant whitespace. The output is byte-stable and suitable for\n")
		cliutil.Writef(fs.Output(), "hashing and signing.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  keysort canon config.json\n")
		cliutil.Writef(fs.Output(), "  keysort canon values.yaml | sha256sum\n")
		cliutil.Writef(fs.Output(), "  cat doc.json | keysort canon -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Document canonicalized successfully\n")
		cliutil.Writef(fs.Output(), "  1    Failed to parse or canonicalize the document\n")
	}

	return fs, flags
}

// HandleCanon executes the canon command
func HandleCanon(args []string) error {
	fs, flags := SetupCanonFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("canon command requires exactly one file path or '-' for stdin")
	}

	docPath := fs.Arg(0)

	// JCS defines the key ordering, so the sorter only contributes
	// duplicate removal here.
	opts := []sorter.Option{
		sorter.WithOrder(keyorder.PolicyNone),
	}
	if docPath == StdinFilePath {
		opts = append(opts, sorter.WithReader(os.Stdin))
	} else {
		opts = append(opts, sorter.WithFilePath(docPath))
	}

	result, err := sorter.SortWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("canonicalizing %s: %w", FormatDocPath(docPath), err)
	}

	data, err := parser.MarshalCanonicalJSON(result.Document)
	if err != nil {
		return fmt.Errorf("canonicalizing %s: %w", FormatDocPath(docPath), err)
	}

	if !flags.Quiet && result.DuplicatesRemoved > 0 {
		cliutil.Writef(os.Stderr, "Removed %d duplicate key(s)\n", result.DuplicatesRemoved)
	}

	if flags.Output != "" && flags.Output != StdinFilePath {
		if err := ValidateOutputPath(flags.Output, []string{docPath}); err != nil {
			return err
		}
		if err := RejectSymlinkOutput(flags.Output); err != nil {
			return err
		}
		if err := os.WriteFile(flags.Output, data, 0600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet {
			cliutil.Writef(os.Stderr, "Output written to: %s\n", flags.Output)
		}
		return nil
	}

	if _, err = os.Stdout.Write(data); err != nil {
		return fmt.Errorf("writing document to stdout: %w", err)
	}
	return nil
}
