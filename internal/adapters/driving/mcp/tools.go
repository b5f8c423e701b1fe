package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

// CredentialOutput describes a credential without its password.
type CredentialOutput struct {
	Key         string `json:"key"`
	Site        string `json:"site"`
	URL         string `json:"url"`
	Username    string `json:"username"`
	LastChanged string `json:"last_changed"`
	Method      string `json:"method,omitempty"`
	AuthInfo    string `json:"auth_info,omitempty"`
}

// GroupSummary is one row of the group listing.
type GroupSummary struct {
	Name           string `json:"name"`
	SecurityFactor int    `json:"security_factor"`
	Count          int    `json:"count"`
}

// ListGroupsInput is the (empty) input of list_groups.
type ListGroupsInput struct{}

// ListGroupsOutput is the output of list_groups.
type ListGroupsOutput struct {
	Groups []GroupSummary `json:"groups"`
}

// PrintGroupInput is the input of print_group.
type PrintGroupInput struct {
	Name string `json:"name" jsonschema:"the group name, matched case-insensitively"`
}

// PrintGroupOutput is the output of print_group.
type PrintGroupOutput struct {
	Name           string             `json:"name"`
	SecurityFactor int                `json:"security_factor"`
	Members        []CredentialOutput `json:"members"`
}

// ListCredentialsInput is the (empty) input of list_credentials.
type ListCredentialsInput struct{}

// ListCredentialsOutput is the output of list_credentials.
type ListCredentialsOutput struct {
	Credentials []CredentialOutput `json:"credentials"`
	Count       int                `json:"count"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_groups",
		Description: "List every credential group with its security level and size",
	}, s.handleListGroups)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "print_group",
		Description: "Show the credentials in one group, without passwords",
	}, s.handlePrintGroup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_credentials",
		Description: "List every stored credential, without passwords",
	}, s.handleListCredentials)
}

func newCredentialOutput(c *domain.Credential) CredentialOutput {
	return CredentialOutput{
		Key:         c.Key(),
		Site:        c.Site(),
		URL:         c.URL(),
		Username:    c.Username(),
		LastChanged: c.LastChanged(),
		Method:      c.Method(),
		AuthInfo:    c.AuthInfo(),
	}
}

func newCredentialOutputs(creds []*domain.Credential) []CredentialOutput {
	out := make([]CredentialOutput, len(creds))
	for i, c := range creds {
		out[i] = newCredentialOutput(c)
	}
	return out
}

func (s *Server) handleListGroups(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListGroupsInput,
) (*mcp.CallToolResult, ListGroupsOutput, error) {
	groups, err := s.ports.Vault.ListGroups(ctx)
	if err != nil {
		return nil, ListGroupsOutput{}, err
	}

	out := ListGroupsOutput{Groups: make([]GroupSummary, len(groups))}
	for i, g := range groups {
		out.Groups[i] = GroupSummary{Name: g.Name, SecurityFactor: g.SecurityFactor, Count: g.Len()}
	}
	return nil, out, nil
}

func (s *Server) handlePrintGroup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PrintGroupInput,
) (*mcp.CallToolResult, PrintGroupOutput, error) {
	g, err := s.ports.Vault.GetGroup(ctx, input.Name)
	if err != nil {
		return nil, PrintGroupOutput{}, err
	}
	return nil, PrintGroupOutput{
		Name:           g.Name,
		SecurityFactor: g.SecurityFactor,
		Members:        newCredentialOutputs(g.Members()),
	}, nil
}

func (s *Server) handleListCredentials(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCredentialsInput,
) (*mcp.CallToolResult, ListCredentialsOutput, error) {
	creds, err := s.ports.Vault.ListCredentials(ctx)
	if err != nil {
		return nil, ListCredentialsOutput{}, err
	}
	return nil, ListCredentialsOutput{
		Credentials: newCredentialOutputs(creds),
		Count:       len(creds),
	}, nil
}
