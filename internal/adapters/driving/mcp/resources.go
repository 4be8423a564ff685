package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for deckgen resources.
	uriScheme = "deckgen://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing templates.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "templates",
		Name:        "templates",
		Description: "List of all slide templates in the catalog",
		MIMEType:    "application/json",
	}, s.handleTemplatesResource)

	// Template for a single catalog entry.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "templates/{templateId}",
		Name:        "template-detail",
		Description: "Full placeholder specification of a single template",
		MIMEType:    "application/json",
	}, s.handleTemplateDetailResource)
}

// handleTemplatesResource returns a list of all catalog templates.
func (s *Server) handleTemplatesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	assets := s.ports.Catalog.List()

	// Build simplified template list.
	type templateInfo struct {
		ID           string `json:"id"`
		Description  string `json:"description"`
		Category     string `json:"category,omitempty"`
		Placeholders int    `json:"placeholders"`
	}

	infos := make([]templateInfo, len(assets))
	for i, asset := range assets {
		infos[i] = templateInfo{
			ID:           asset.ID,
			Description:  asset.Description,
			Category:     asset.Category,
			Placeholders: len(asset.Placeholders),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling templates: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTemplateDetailResource returns the full spec of one template.
func (s *Server) handleTemplateDetailResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract templateId from URI: deckgen://templates/{templateId}
	templateID := extractTemplateID(req.Params.URI)
	if templateID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	asset, err := s.ports.Catalog.Get(templateID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(asset, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling template: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTemplateID extracts the template ID from a URI like deckgen://templates/{templateId}.
func extractTemplateID(uri string) string {
	const prefix = uriScheme + "templates/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}

	return id
}
