package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/keysort/keyorder"
)

type listPoliciesInput struct{}

type policyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default,omitempty"`
}

type listPoliciesOutput struct {
	Policies []policyInfo `json:"policies"`
}

func handleListSortPolicies(_ context.Context, _ *mcp.CallToolRequest, _ listPoliciesInput) (*mcp.CallToolResult, listPoliciesOutput, error) {
	policies := keyorder.Policies()
	output := listPoliciesOutput{
		Policies: make([]policyInfo, 0, len(policies)),
	}
	for _, p := range policies {
		output.Policies = append(output.Policies, policyInfo{
			Name:        string(p),
			Description: p.Describe(),
			Default:     p == keyorder.DefaultPolicy,
		})
	}
	return nil, output, nil
}
