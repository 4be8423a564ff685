package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/geotra-labs/deckgen/internal/core/domain"
)

// PlanStructureInput is the input schema for the plan_structure tool.
type PlanStructureInput struct {
	ConversationHistory string `json:"conversation_history" jsonschema:"the planning conversation between user and assistant"`
	Goal                string `json:"goal" jsonschema:"the final goal of the slide deck"`
	TargetCompany       string `json:"target_company,omitempty" jsonschema:"the audience company, if known"`
	Requirements        string `json:"requirements,omitempty" jsonschema:"additional constraints such as slide count or tone"`
}

// PlanStructureOutput is the output schema for the plan_structure tool.
type PlanStructureOutput struct {
	Structure string `json:"structure"`
}

// GenerateOutlineInput is the input schema for the generate_outline tool.
type GenerateOutlineInput struct {
	Structure     string `json:"structure" jsonschema:"the deck structure synopsis produced by plan_structure"`
	UserRequest   string `json:"user_request,omitempty" jsonschema:"the user's original request"`
	TargetCompany string `json:"target_company,omitempty" jsonschema:"the audience company, if known"`
	Notes         string `json:"notes,omitempty" jsonschema:"additional outline instructions"`
}

// GenerateOutlineOutput is the output schema for the generate_outline tool.
type GenerateOutlineOutput struct {
	Document   string `json:"document" jsonschema:"the slide document as a JSON tree"`
	SlideCount int    `json:"slide_count"`
}

// GenerateContentInput is the input schema for the generate_content tool.
type GenerateContentInput struct {
	Document      string `json:"document" jsonschema:"the slide document JSON tree to fill"`
	SlideID       string `json:"slide_id,omitempty" jsonschema:"a single slide to generate; all slides when empty"`
	UserRequest   string `json:"user_request,omitempty" jsonschema:"the user's content request"`
	TargetCompany string `json:"target_company,omitempty" jsonschema:"the audience company, if known"`
	Research      string `json:"research,omitempty" jsonschema:"external research text to ground the content"`
	Notes         string `json:"notes,omitempty" jsonschema:"additional content instructions"`
	WebSearch     bool   `json:"web_search,omitempty" jsonschema:"allow live web search when no research is supplied"`
}

// GenerateContentOutput is the output schema for the generate_content tool.
type GenerateContentOutput struct {
	Document   string   `json:"document"`
	References []string `json:"references,omitempty"`
}

// ListTemplatesInput is the input schema for the list_templates tool.
type ListTemplatesInput struct {
	Category string `json:"category,omitempty" jsonschema:"only list templates in this category"`
}

// ListTemplatesOutput is the output schema for the list_templates tool.
type ListTemplatesOutput struct {
	Templates []TemplateOutput `json:"templates"`
	Count     int              `json:"count"`
}

// TemplateOutput represents a single catalog entry.
type TemplateOutput struct {
	ID           string   `json:"id"`
	Description  string   `json:"description"`
	Category     string   `json:"category,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Placeholders int      `json:"placeholders"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "plan_structure",
		Description: "Derive a slide deck structure synopsis from a planning conversation",
	}, s.handlePlanStructure)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_outline",
		Description: "Select slide templates and build a deck skeleton from a structure synopsis",
	}, s.handleGenerateOutline)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_content",
		Description: "Fill slide placeholders in a deck document according to their edit policies",
	}, s.handleGenerateContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List the reusable slide templates in the catalog",
	}, s.handleListTemplates)
}

// handlePlanStructure handles the plan_structure tool invocation.
func (s *Server) handlePlanStructure(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlanStructureInput,
) (*mcp.CallToolResult, PlanStructureOutput, error) {
	if s.ports.Planner == nil {
		return nil, PlanStructureOutput{}, errors.New("structure planner not configured")
	}

	structure, err := s.ports.Planner.Plan(ctx, domain.PlanningContext{
		ConversationHistory:    input.ConversationHistory,
		Goal:                   input.Goal,
		TargetCompany:          input.TargetCompany,
		AdditionalRequirements: input.Requirements,
	})
	if err != nil {
		return nil, PlanStructureOutput{}, err
	}

	return nil, PlanStructureOutput{Structure: structure}, nil
}

// handleGenerateOutline handles the generate_outline tool invocation.
func (s *Server) handleGenerateOutline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateOutlineInput,
) (*mcp.CallToolResult, GenerateOutlineOutput, error) {
	doc, err := s.ports.Outliner.Generate(ctx, input.Structure, domain.GenerationContext{
		UserRequest:     input.UserRequest,
		TargetCompany:   input.TargetCompany,
		AdditionalNotes: input.Notes,
	})
	if err != nil {
		return nil, GenerateOutlineOutput{}, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, GenerateOutlineOutput{}, fmt.Errorf("encoding document: %w", err)
	}

	return nil, GenerateOutlineOutput{
		Document:   string(payload),
		SlideCount: len(doc.Slides),
	}, nil
}

// handleGenerateContent handles the generate_content tool invocation.
func (s *Server) handleGenerateContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateContentInput,
) (*mcp.CallToolResult, GenerateContentOutput, error) {
	if s.ports.Content == nil {
		return nil, GenerateContentOutput{}, errors.New("content service not configured")
	}

	var doc domain.SlideDocument
	if err := json.Unmarshal([]byte(input.Document), &doc); err != nil {
		return nil, GenerateContentOutput{}, fmt.Errorf("parsing document: %w", err)
	}

	gc := domain.GenerationContext{
		UserRequest:      input.UserRequest,
		TargetCompany:    input.TargetCompany,
		ExternalResearch: input.Research,
		AdditionalNotes:  input.Notes,
		PerformWebSearch: input.WebSearch,
	}

	if input.SlideID != "" {
		err := s.ports.Content.GenerateForSlide(ctx, &doc, input.SlideID, gc)
		if err != nil {
			return nil, GenerateContentOutput{}, err
		}
	} else if err := s.ports.Content.GenerateForDocument(ctx, &doc, gc); err != nil {
		return nil, GenerateContentOutput{}, err
	}

	payload, err := json.Marshal(&doc)
	if err != nil {
		return nil, GenerateContentOutput{}, fmt.Errorf("encoding document: %w", err)
	}

	return nil, GenerateContentOutput{
		Document:   string(payload),
		References: doc.References(),
	}, nil
}

// handleListTemplates handles the list_templates tool invocation.
func (s *Server) handleListTemplates(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListTemplatesInput,
) (*mcp.CallToolResult, ListTemplatesOutput, error) {
	assets := s.ports.Catalog.List()

	output := ListTemplatesOutput{Templates: make([]TemplateOutput, 0, len(assets))}
	for _, asset := range assets {
		if input.Category != "" && asset.Category != input.Category {
			continue
		}
		output.Templates = append(output.Templates, TemplateOutput{
			ID:           asset.ID,
			Description:  asset.Description,
			Category:     asset.Category,
			Tags:         asset.Tags,
			Placeholders: len(asset.Placeholders),
		})
	}
	output.Count = len(output.Templates)

	return nil, output, nil
}
