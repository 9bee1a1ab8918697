package commands

import (
	"flag"

	"github.com/erraggy/keysort/internal/config"
)

// flagsSetOn returns the set of flag names given explicitly on the
// command line. Config file values only fill flags the user left alone.
func flagsSetOn(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applySortConfig layers config-file settings under the sort flags.
// Flags given on the command line win over both defaults and overrides.
func applySortConfig(fs *flag.FlagSet, flags *SortFlags, docPath string) error {
	if flags.Config == "" {
		return nil
	}
	file, err := config.Load(flags.Config)
	if err != nil {
		return err
	}

	scope := docPath
	if scope == StdinFilePath {
		scope = ""
	}
	settings := file.For(scope)
	set := flagsSetOn(fs)

	if settings.Recursive != nil && !set["r"] && !set["recursive"] {
		flags.Recursive = *settings.Recursive
	}
	if settings.Order != nil && !set["order"] {
		flags.Order = *settings.Order
	}
	if settings.FilePatterns != nil && !set["file-pattern"] {
		flags.FilePattern = *settings.FilePatterns
	}
	if settings.Format != nil && !set["format"] {
		flags.Format = *settings.Format
	}
	if settings.KeepGoing != nil && !set["keep-going"] {
		flags.KeepGoing = *settings.KeepGoing
	}
	if settings.MaxDepth != nil && !set["max-depth"] {
		flags.MaxDepth = *settings.MaxDepth
	}
	return nil
}

// applyCheckConfig layers config-file settings under the check flags.
// Only the selection settings apply; output settings are sort-only.
func applyCheckConfig(fs *flag.FlagSet, flags *CheckFlags, docPath string) error {
	if flags.Config == "" {
		return nil
	}
	file, err := config.Load(flags.Config)
	if err != nil {
		return err
	}

	scope := docPath
	if scope == StdinFilePath {
		scope = ""
	}
	settings := file.For(scope)
	set := flagsSetOn(fs)

	if settings.Recursive != nil && !set["r"] && !set["recursive"] {
		flags.Recursive = *settings.Recursive
	}
	if settings.Order != nil && !set["order"] {
		flags.Order = *settings.Order
	}
	if settings.MaxDepth != nil && !set["max-depth"] {
		flags.MaxDepth = *settings.MaxDepth
	}
	return nil
}
