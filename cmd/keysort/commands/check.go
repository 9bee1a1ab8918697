package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/keysort"
	"github.com/erraggy/keysort/checker"
	"github.com/erraggy/keysort/internal/cliutil"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	Recursive    bool
	Order        string
	MaxDepth     int
	Quiet        bool
	OutputFormat string
	Config       string
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
// Returns the FlagSet and a CheckFlags struct with bound flag variables.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}

	fs.BoolVar(&flags.Recursive, "r", false, "check nested objects at every depth")
	fs.BoolVar(&flags.Recursive, "recursive", false, "check nested objects at every depth")
	fs.StringVar(&flags.Order, "order", "", "sort order to check against: a policy identifier or a JSON custom-order object (default: lexical)")
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, "maximum container nesting depth (default: 100)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress the summary, issues only")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress the summary, issues only")
	fs.StringVar(&flags.OutputFormat, "output-format", FormatText, "diagnostics format: text, json, or yaml")
	fs.StringVar(&flags.Config, "config", "", "TOML config file with defaults and per-pattern overrides")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: keysort check [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Check a JSON or YAML document for duplicate member keys and keys that\n")
		cliutil.Writef(fs.Output(), "deviate from a sort order, without modifying it. Duplicate keys report\n")
		cliutil.Writef(fs.Output(), "as errors, ordering deviations as warnings.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  keysort check config.json\n")
		cliutil.Writef(fs.Output(), "  keysort check -r -order numeric config.json\n")
		cliutil.Writef(fs.Output(), "  keysort check -order none config.json  # duplicates only\n")
		cliutil.Writef(fs.Output(), "  cat doc.json | keysort check -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    No issues found\n")
		cliutil.Writef(fs.Output(), "  1    Issues found\n")
		cliutil.Writef(fs.Output(), "  2    Usage or configuration error\n")
	}

	return fs, flags
}

// HandleCheck executes the check command. When the document has issues it
// returns ErrIssuesFound so main can exit 1; every other error is a usage
// or processing failure (exit 2).
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("check command requires exactly one file path or '-' for stdin")
	}

	docPath := fs.Arg(0)

	if err := ValidateOutputFormat(flags.OutputFormat); err != nil {
		return err
	}
	if err := applyCheckConfig(fs, flags, docPath); err != nil {
		return err
	}

	startTime := time.Now()

	opts := []checker.Option{
		checker.WithRecursive(flags.Recursive),
	}
	if docPath == StdinFilePath {
		opts = append(opts, checker.WithReader(os.Stdin))
	} else {
		opts = append(opts, checker.WithFilePath(docPath))
	}
	if flags.Order != "" {
		opts = append(opts, checker.WithOrderSpec(flags.Order))
	}
	if flags.MaxDepth > 0 {
		opts = append(opts, checker.WithMaxDepth(flags.MaxDepth))
	}

	result, err := checker.CheckWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("checking %s: %w", FormatDocPath(docPath), err)
	}
	totalTime := time.Since(startTime)

	if flags.OutputFormat != FormatText {
		if err := OutputStructured(newCheckReport(docPath, result, totalTime), flags.OutputFormat); err != nil {
			return err
		}
	} else {
		printCheckDiagnostics(docPath, result, totalTime, flags.Quiet)
	}

	if result.HasIssues() {
		return ErrIssuesFound
	}
	return nil
}

// checkReport is the structured diagnostics envelope for -output-format json|yaml.
type checkReport struct {
	Document     string       `json:"document"         yaml:"document"`
	Format       string       `json:"format"           yaml:"format"`
	IssueCount   int          `json:"issue_count"      yaml:"issue_count"`
	ErrorCount   int          `json:"error_count"      yaml:"error_count"`
	WarningCount int          `json:"warning_count"    yaml:"warning_count"`
	Issues       []checkIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
	Duration     string       `json:"duration"         yaml:"duration"`
}

type checkIssue struct {
	Code     string `json:"code"             yaml:"code"`
	Severity string `json:"severity"         yaml:"severity"`
	Path     string `json:"path"             yaml:"path"`
	Key      string `json:"key,omitempty"    yaml:"key,omitempty"`
	Line     int    `json:"line,omitempty"   yaml:"line,omitempty"`
	Column   int    `json:"column,omitempty" yaml:"column,omitempty"`
	Message  string `json:"message"          yaml:"message"`
}

func newCheckReport(docPath string, result *checker.CheckResult, totalTime time.Duration) checkReport {
	report := checkReport{
		Document:     FormatDocPath(docPath),
		Format:       string(result.SourceFormat),
		IssueCount:   len(result.Issues),
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Duration:     totalTime.String(),
	}
	for _, issue := range result.Issues {
		report.Issues = append(report.Issues, checkIssue{
			Code:     issue.Code,
			Severity: issue.Severity.String(),
			Path:     issue.Path,
			Key:      issue.Key,
			Line:     issue.Line,
			Column:   issue.Column,
			Message:  issue.Message,
		})
	}
	return report
}

// printCheckDiagnostics writes the text-mode report to stderr.
func printCheckDiagnostics(docPath string, result *checker.CheckResult, totalTime time.Duration, quiet bool) {
	if !quiet {
		cliutil.Writef(os.Stderr, "JSON/YAML Key Checker\n")
		cliutil.Writef(os.Stderr, "=====================\n\n")
		cliutil.Writef(os.Stderr, "keysort version: %s\n", keysort.Version())
		cliutil.Writef(os.Stderr, "Document: %s\n", FormatDocPath(docPath))
		cliutil.Writef(os.Stderr, "Format: %s\n", result.SourceFormat)
		cliutil.Writef(os.Stderr, "Objects: %d\n", result.Stats.Objects)
		cliutil.Writef(os.Stderr, "Members: %d\n", result.Stats.Members)
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)
	}

	if !result.HasIssues() {
		if !quiet {
			cliutil.Writef(os.Stderr, "✓ No issues found\n")
		}
		return
	}

	cliutil.Writef(os.Stderr, "Issues (%d):\n", len(result.Issues))
	for _, issue := range result.Issues {
		cliutil.Writef(os.Stderr, "  %s\n", issue.String())
	}
	cliutil.Writef(os.Stderr, "\n%d error(s), %d warning(s)\n", result.ErrorCount(), result.WarningCount())
}
