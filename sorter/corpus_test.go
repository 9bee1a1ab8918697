package sorter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/erraggy/keysort/internal/jsonutil"
)

// corpusOptions is the optional "options.json" file of a corpus archive.
type corpusOptions struct {
	Recursive    bool   `json:"recursive"`
	Order        string `json:"order"`
	FilePatterns string `json:"filePatterns"`
}

// TestCorpus runs every golden archive under testdata/corpus. Each
// archive holds an input document, an expected output with the same
// extension, and optionally an options.json controlling the transform.
func TestCorpus(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "corpus", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives, "no corpus archives found")

	for _, archivePath := range archives {
		name := strings.TrimSuffix(filepath.Base(archivePath), ".txtar")
		t.Run(name, func(t *testing.T) {
			archive, err := txtar.ParseFile(archivePath)
			require.NoError(t, err)

			var input, want txtar.File
			opts := corpusOptions{}
			for _, f := range archive.Files {
				switch {
				case strings.HasPrefix(f.Name, "input."):
					input = f
				case strings.HasPrefix(f.Name, "want."):
					want = f
				case f.Name == "options.json":
					require.NoError(t, jsonutil.Unmarshal(f.Data, &opts))
				default:
					t.Fatalf("unexpected file %q in %s", f.Name, archivePath)
				}
			}
			require.NotEmpty(t, input.Name, "archive has no input file")
			require.NotEmpty(t, want.Name, "archive has no want file")

			sortOpts := []Option{
				WithBytes(input.Data),
				WithRecursive(opts.Recursive),
			}
			if opts.Order != "" {
				sortOpts = append(sortOpts, WithOrderSpec(opts.Order))
			}
			if opts.FilePatterns != "" {
				sortOpts = append(sortOpts, WithFilePatterns(opts.FilePatterns))
			}

			result, err := SortWithOptions(sortOpts...)
			require.NoError(t, err)
			assert.Equal(t, string(want.Data), string(result.Output))

			// The transform is idempotent: its own output re-sorts to itself.
			if !result.Skipped {
				rerun := []Option{
					WithBytes(result.Output),
					WithRecursive(opts.Recursive),
				}
				if opts.Order != "" {
					rerun = append(rerun, WithOrderSpec(opts.Order))
				}
				again, err := SortWithOptions(rerun...)
				require.NoError(t, err)
				assert.Equal(t, string(result.Output), string(again.Output))
			}
		})
	}
}
