package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/keysort"
	"github.com/erraggy/keysort/internal/cliutil"
	"github.com/erraggy/keysort/parser"
	"github.com/erraggy/keysort/sorter"
)

// SortFlags contains flags for the sort command
type SortFlags struct {
	Recursive    bool
	Order        string
	FilePattern  string
	Output       string
	Write        bool
	Format       string
	Canonical    bool
	DryRun       bool
	KeepGoing    bool
	MaxDepth     int
	Quiet        bool
	OutputFormat string
	Config       string
}

// SetupSortFlags creates and configures a FlagSet for the sort command.
// Returns the FlagSet and a SortFlags struct with bound flag variables.
func SetupSortFlags() (*flag.FlagSet, *SortFlags) {
	fs := flag.NewFlagSet("sort", flag.ContinueOnError)
	flags := &SortFlags{}

	fs.BoolVar(&flags.Recursive, "r", false, "sort nested objects at every depth")
	fs.BoolVar(&flags.Recursive, "recursive", false, "sort nested objects at every depth")
	fs.StringVar(&flags.Order, "order", "", "sort order: a policy identifier or a JSON custom-order object (default: lexical)")
	fs.StringVar(&flags.FilePattern, "file-pattern", "", "comma-separated globs; files matching none pass through unchanged")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.Write, "w", false, "write the result back to the input file (atomic replace)")
	fs.BoolVar(&flags.Write, "write", false, "write the result back to the input file (atomic replace)")
	fs.StringVar(&flags.Format, "format", "", "output document format: json or yaml (default: source format)")
	fs.BoolVar(&flags.Canonical, "canonical", false, "emit RFC 8785 canonical JSON")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "report changes without writing the document")
	fs.BoolVar(&flags.KeepGoing, "keep-going", false, "on processing errors, pass the document through unchanged instead of failing")
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, "maximum container nesting depth (default: 100)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.StringVar(&flags.OutputFormat, "output-format", FormatText, "diagnostics format: text, json, or yaml")
	fs.StringVar(&flags.Config, "config", "", "TOML config file with defaults and per-pattern overrides")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: keysort sort [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Deduplicate and sort the member keys of a JSON or YAML document.\n")
		cliutil.Writef(fs.Output(), "Duplicate keys are removed first (first occurrence wins), then keys\n")
		cliutil.Writef(fs.Output(), "are reordered. Values and array element order are never modified.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nSort Orders:\n")
		cliutil.Writef(fs.Output(), "  Run 'keysort help orders' for the policy list, or pass a JSON object\n")
		cliutil.Writef(fs.Output(), "  mapping key names to policies for per-key custom ordering:\n")
		cliutil.Writef(fs.Output(), "    keysort sort -order '{\"10-b\":\"numeric\",\"name\":null}' doc.json\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  keysort sort config.json\n")
		cliutil.Writef(fs.Output(), "  keysort sort -r -order numeric -o sorted.json config.json\n")
		cliutil.Writef(fs.Output(), "  keysort sort -w config.yaml\n")
		cliutil.Writef(fs.Output(), "  keysort sort -dry-run -r config.json\n")
		cliutil.Writef(fs.Output(), "  cat doc.json | keysort sort -q - > sorted.json\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  keysort sort -q api.json | keysort check -q -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Document processed successfully\n")
		cliutil.Writef(fs.Output(), "  1    Failed to parse or transform the document\n")
	}

	return fs, flags
}

// HandleSort executes the sort command
func HandleSort(args []string) error {
	fs, flags := SetupSortFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("sort command requires exactly one file path or '-' for stdin")
	}

	docPath := fs.Arg(0)

	if err := ValidateOutputFormat(flags.OutputFormat); err != nil {
		return err
	}
	if flags.Write && docPath == StdinFilePath {
		return fmt.Errorf("-write requires a file path, not stdin")
	}
	if flags.Write && flags.Output != "" {
		return fmt.Errorf("-write and -output are mutually exclusive")
	}

	if err := applySortConfig(fs, flags, docPath); err != nil {
		return err
	}

	// Sort the file or stdin with timing
	startTime := time.Now()

	opts := []sorter.Option{
		sorter.WithRecursive(flags.Recursive),
	}
	if docPath == StdinFilePath {
		opts = append(opts, sorter.WithReader(os.Stdin))
	} else {
		opts = append(opts, sorter.WithFilePath(docPath))
	}
	if flags.Order != "" {
		opts = append(opts, sorter.WithOrderSpec(flags.Order))
	}
	if flags.FilePattern != "" {
		opts = append(opts, sorter.WithFilePatterns(flags.FilePattern))
	}
	if flags.KeepGoing {
		opts = append(opts, sorter.WithOnError(sorter.ErrorPassThrough))
	}
	if flags.MaxDepth > 0 {
		opts = append(opts, sorter.WithMaxDepth(flags.MaxDepth))
	}
	if flags.Format != "" {
		format, err := parser.ParseSourceFormat(flags.Format)
		if err != nil {
			return err
		}
		opts = append(opts, sorter.WithOutputFormat(format))
	}

	result, err := sorter.SortWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("sorting %s: %w", FormatDocPath(docPath), err)
	}
	totalTime := time.Since(startTime)

	data := result.Output
	if flags.Canonical && !result.Skipped {
		data, err = parser.MarshalCanonicalJSON(result.Document)
		if err != nil {
			return fmt.Errorf("canonicalizing %s: %w", FormatDocPath(docPath), err)
		}
	}

	// Structured diagnostics go to stdout; the document is then only
	// written when a file destination was requested.
	if flags.OutputFormat != FormatText {
		if err := OutputStructured(newSortReport(docPath, result, totalTime), flags.OutputFormat); err != nil {
			return err
		}
	} else if !flags.Quiet {
		printSortDiagnostics(docPath, result, totalTime)
	}

	if flags.DryRun {
		return nil
	}

	switch {
	case flags.Write:
		if result.Skipped {
			return nil
		}
		if err := writeInPlace(docPath, data); err != nil {
			return err
		}
		if !flags.Quiet && flags.OutputFormat == FormatText {
			cliutil.Writef(os.Stderr, "\nUpdated: %s\n", docPath)
		}
	case flags.Output != "" && flags.Output != StdinFilePath:
		if err := ValidateOutputPath(flags.Output, []string{docPath}); err != nil {
			return err
		}
		if err := RejectSymlinkOutput(flags.Output); err != nil {
			return err
		}
		if err := os.WriteFile(flags.Output, data, 0600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet && flags.OutputFormat == FormatText {
			cliutil.Writef(os.Stderr, "\nOutput written to: %s\n", flags.Output)
		}
	default:
		if flags.OutputFormat != FormatText {
			return nil // report already on stdout
		}
		if _, err = os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing document to stdout: %w", err)
		}
	}

	return nil
}

// sortReport is the structured diagnostics envelope for -output-format json|yaml.
type sortReport struct {
	Document          string       `json:"document"                     yaml:"document"`
	Format            string       `json:"format"                       yaml:"format"`
	DuplicatesRemoved int          `json:"duplicates_removed"           yaml:"duplicates_removed"`
	ObjectsReordered  int          `json:"objects_reordered"            yaml:"objects_reordered"`
	Skipped           bool         `json:"skipped,omitempty"            yaml:"skipped,omitempty"`
	SkipReason        string       `json:"skip_reason,omitempty"        yaml:"skip_reason,omitempty"`
	Changes           []sortChange `json:"changes,omitempty"            yaml:"changes,omitempty"`
	Warnings          []string     `json:"warnings,omitempty"           yaml:"warnings,omitempty"`
	Duration          string       `json:"duration"                     yaml:"duration"`
}

type sortChange struct {
	Kind        string `json:"kind"             yaml:"kind"`
	Path        string `json:"path"             yaml:"path"`
	Key         string `json:"key,omitempty"    yaml:"key,omitempty"`
	Line        int    `json:"line,omitempty"   yaml:"line,omitempty"`
	Column      int    `json:"column,omitempty" yaml:"column,omitempty"`
	Description string `json:"description"      yaml:"description"`
}

func newSortReport(docPath string, result *sorter.SortResult, totalTime time.Duration) sortReport {
	report := sortReport{
		Document:          FormatDocPath(docPath),
		Format:            string(result.OutputFormat),
		DuplicatesRemoved: result.DuplicatesRemoved,
		ObjectsReordered:  result.ObjectsReordered,
		Skipped:           result.Skipped,
		SkipReason:        result.SkipReason,
		Warnings:          result.Warnings,
		Duration:          totalTime.String(),
	}
	for _, c := range result.Changes {
		report.Changes = append(report.Changes, sortChange{
			Kind:        string(c.Kind),
			Path:        c.Path,
			Key:         c.Key,
			Line:        c.Line,
			Column:      c.Column,
			Description: c.Description,
		})
	}
	return report
}

// printSortDiagnostics writes the text-mode summary to stderr, keeping
// stdout clean for the document.
func printSortDiagnostics(docPath string, result *sorter.SortResult, totalTime time.Duration) {
	cliutil.Writef(os.Stderr, "JSON/YAML Key Sorter\n")
	cliutil.Writef(os.Stderr, "====================\n\n")
	cliutil.Writef(os.Stderr, "keysort version: %s\n", keysort.Version())
	cliutil.Writef(os.Stderr, "Document: %s\n", FormatDocPath(docPath))
	cliutil.Writef(os.Stderr, "Format: %s\n", result.SourceFormat)
	cliutil.Writef(os.Stderr, "Objects: %d\n", result.Stats.Objects)
	cliutil.Writef(os.Stderr, "Members: %d\n", result.Stats.Members)
	cliutil.Writef(os.Stderr, "Max Depth: %d\n", result.Stats.MaxDepth)
	cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

	if result.Skipped {
		cliutil.Writef(os.Stderr, "Skipped: %s\n", result.SkipReason)
		return
	}

	for _, warning := range result.Warnings {
		cliutil.Writef(os.Stderr, "Warning: %s\n", warning)
	}

	if result.HasChanges() {
		cliutil.Writef(os.Stderr, "Changes (%d):\n", len(result.Changes))
		for _, change := range result.Changes {
			cliutil.Writef(os.Stderr, "  - %s\n", change.String())
		}
		cliutil.Writef(os.Stderr, "\n✓ Removed %d duplicate key(s), reordered %d object(s)\n",
			result.DuplicatesRemoved, result.ObjectsReordered)
	} else {
		cliutil.Writef(os.Stderr, "✓ No changes needed - keys are already in order\n")
	}
}
