package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/keysort/parser"
	"github.com/erraggy/keysort/sorter"
)

type sortInput struct {
	Doc             docInput `json:"doc"                        jsonschema:"The JSON or YAML document to transform"`
	Recursive       bool     `json:"recursive,omitempty"        jsonschema:"Sort nested objects at every depth\\, not just the root object"`
	Order           string   `json:"order,omitempty"            jsonschema:"Sort order: a policy identifier (see list_sort_policies) or a JSON object mapping key names to policy identifiers or null. Default lexical."`
	Format          string   `json:"format,omitempty"           jsonschema:"Output format: json or yaml. Default is the source format."`
	DryRun          bool     `json:"dry_run,omitempty"          jsonschema:"Report changes without returning or writing the document"`
	IncludeDocument bool     `json:"include_document,omitempty" jsonschema:"Include the full transformed document in output"`
	Output          string   `json:"output,omitempty"           jsonschema:"File path to write the transformed document. If omitted the document is returned inline when include_document is true."`
	Offset          int      `json:"offset,omitempty"           jsonschema:"Skip the first N change records (for pagination)"`
	Limit           int      `json:"limit,omitempty"            jsonschema:"Maximum number of change records to return (default 100)"`
}

type changeRecord struct {
	Kind        string `json:"kind"`
	Path        string `json:"path"`
	Key         string `json:"key,omitempty"`
	Line        int    `json:"line,omitempty"`
	Column      int    `json:"column,omitempty"`
	Description string `json:"description"`
}

type sortOutput struct {
	DuplicatesRemoved int            `json:"duplicates_removed"`
	ObjectsReordered  int            `json:"objects_reordered"`
	ChangeCount       int            `json:"change_count"`
	Returned          int            `json:"returned"`
	Changes           []changeRecord `json:"changes,omitempty"`
	Format            string         `json:"format"`
	WrittenTo         string         `json:"written_to,omitempty"`
	Document          string         `json:"document,omitempty"`
}

func handleSortKeys(ctx context.Context, _ *mcp.CallToolRequest, input sortInput) (*mcp.CallToolResult, sortOutput, error) {
	parsed, err := input.Doc.resolve(ctx)
	if err != nil {
		return errResult(err), sortOutput{}, nil
	}

	opts := []sorter.Option{
		sorter.WithParsed(parsed),
		sorter.WithRecursive(input.Recursive),
	}
	if input.Order != "" {
		opts = append(opts, sorter.WithOrderSpec(input.Order))
	}
	if input.Format != "" {
		format, err := parser.ParseSourceFormat(input.Format)
		if err != nil {
			return errResult(err), sortOutput{}, nil
		}
		opts = append(opts, sorter.WithOutputFormat(format))
	}

	result, err := sorter.SortWithOptions(opts...)
	if err != nil {
		return errResult(err), sortOutput{}, nil
	}

	output := sortOutput{
		DuplicatesRemoved: result.DuplicatesRemoved,
		ObjectsReordered:  result.ObjectsReordered,
		ChangeCount:       len(result.Changes),
		Format:            string(result.OutputFormat),
	}

	output.Changes = makeSlice[changeRecord](len(result.Changes))
	for _, c := range result.Changes {
		output.Changes = append(output.Changes, changeRecord{
			Kind:        string(c.Kind),
			Path:        c.Path,
			Key:         c.Key,
			Line:        c.Line,
			Column:      c.Column,
			Description: c.Description,
		})
	}
	output.Changes = paginate(output.Changes, input.Offset, input.Limit)
	output.Returned = len(output.Changes)

	if !input.DryRun {
		if input.Output != "" {
			if err := os.WriteFile(input.Output, result.Output, 0o644); err != nil {
				return errResult(fmt.Errorf("failed to write output file: %w", err)), sortOutput{}, nil
			}
			output.WrittenTo = input.Output
		}
		if input.IncludeDocument {
			output.Document = string(result.Output)
		}
	}

	return nil, output, nil
}
