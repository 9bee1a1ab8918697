package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/keysort/checker"
)

type checkInput struct {
	Doc       docInput `json:"doc"                 jsonschema:"The JSON or YAML document to check"`
	Recursive bool     `json:"recursive,omitempty" jsonschema:"Check key ordering in nested objects at every depth\\, not just the root object"`
	Order     string   `json:"order,omitempty"     jsonschema:"Sort order to check against: a policy identifier (see list_sort_policies) or a JSON object mapping key names to policy identifiers or null. Default lexical. Use none to check for duplicates only."`
	Offset    int      `json:"offset,omitempty"    jsonschema:"Skip the first N issues (for pagination)"`
	Limit     int      `json:"limit,omitempty"     jsonschema:"Maximum number of issues to return (default 100)"`
}

type issueRecord struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Key      string `json:"key,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
}

type checkOutput struct {
	IssueCount   int           `json:"issue_count"`
	ErrorCount   int           `json:"error_count"`
	WarningCount int           `json:"warning_count"`
	Returned     int           `json:"returned"`
	Issues       []issueRecord `json:"issues,omitempty"`
}

func handleCheckKeys(ctx context.Context, _ *mcp.CallToolRequest, input checkInput) (*mcp.CallToolResult, checkOutput, error) {
	parsed, err := input.Doc.resolve(ctx)
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	opts := []checker.Option{
		checker.WithParsed(parsed),
		checker.WithRecursive(input.Recursive),
	}
	if input.Order != "" {
		opts = append(opts, checker.WithOrderSpec(input.Order))
	}

	result, err := checker.CheckWithOptions(opts...)
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	output := checkOutput{
		IssueCount:   len(result.Issues),
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
	}

	output.Issues = makeSlice[issueRecord](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, issueRecord{
			Code:     issue.Code,
			Severity: issue.Severity.String(),
			Path:     issue.Path,
			Key:      issue.Key,
			Line:     issue.Line,
			Column:   issue.Column,
			Message:  issue.Message,
		})
	}
	output.Issues = paginate(output.Issues, input.Offset, input.Limit)
	output.Returned = len(output.Issues)

	return nil, output, nil
}
