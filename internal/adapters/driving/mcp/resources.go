package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/KnowOneDotNinja/PassManPy-v2/internal/core/domain"
)

const uriScheme = "passman://"

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "groups",
		Name:        "groups",
		Description: "Every credential group with its security level and size",
		MIMEType:    "application/json",
	}, s.handleGroupsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "credentials",
		Name:        "credentials",
		Description: "Every stored credential, without passwords",
		MIMEType:    "application/json",
	}, s.handleCredentialsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "groups/{name}",
		Name:        "group-members",
		Description: "The credentials in one group, without passwords",
		MIMEType:    "application/json",
	}, s.handleGroupResource)
}

func (s *Server) handleGroupsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, out, err := s.handleListGroups(ctx, nil, ListGroupsInput{})
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	return jsonResource(req.Params.URI, out.Groups)
}

func (s *Server) handleCredentialsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, out, err := s.handleListCredentials(ctx, nil, ListCredentialsInput{})
	if err != nil {
		return nil, fmt.Errorf("listing credentials: %w", err)
	}
	return jsonResource(req.Params.URI, out.Credentials)
}

func (s *Server) handleGroupResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractGroupName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	_, out, err := s.handlePrintGroup(ctx, nil, PrintGroupInput{Name: name})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading group: %w", err)
	}
	return jsonResource(req.Params.URI, out)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractGroupName extracts the group name from passman://groups/{name}.
// The name may be percent-encoded.
func extractGroupName(uri string) string {
	const prefix = uriScheme + "groups/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	name, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return name
}
