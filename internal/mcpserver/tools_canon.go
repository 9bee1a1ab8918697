package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/keysort/keyorder"
	"github.com/erraggy/keysort/parser"
	"github.com/erraggy/keysort/sorter"
)

type canonInput struct {
	Doc    docInput `json:"doc"              jsonschema:"The JSON or YAML document to canonicalize"`
	Output string   `json:"output,omitempty" jsonschema:"File path to write the canonical document. If omitted the document is returned inline."`
}

type canonOutput struct {
	DuplicatesRemoved int    `json:"duplicates_removed"`
	WrittenTo         string `json:"written_to,omitempty"`
	Document          string `json:"document,omitempty"`
}

// handleCanonicalize deduplicates the document and emits its RFC 8785
// canonical JSON form. JCS defines the key ordering, so the sorter runs
// with sorting disabled and only contributes duplicate removal.
func handleCanonicalize(ctx context.Context, _ *mcp.CallToolRequest, input canonInput) (*mcp.CallToolResult, canonOutput, error) {
	parsed, err := input.Doc.resolve(ctx)
	if err != nil {
		return errResult(err), canonOutput{}, nil
	}

	result, err := sorter.SortWithOptions(
		sorter.WithParsed(parsed),
		sorter.WithOrder(keyorder.PolicyNone),
	)
	if err != nil {
		return errResult(err), canonOutput{}, nil
	}

	data, err := parser.MarshalCanonicalJSON(result.Document)
	if err != nil {
		return errResult(err), canonOutput{}, nil
	}

	output := canonOutput{
		DuplicatesRemoved: result.DuplicatesRemoved,
	}

	if input.Output != "" {
		if err := os.WriteFile(input.Output, data, 0o644); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), canonOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}
