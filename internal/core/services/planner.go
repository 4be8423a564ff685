package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/geotra-labs/deckgen/internal/core/domain"
	"github.com/geotra-labs/deckgen/internal/core/ports/driven"
	"github.com/geotra-labs/deckgen/internal/core/ports/driving"
	"github.com/geotra-labs/deckgen/internal/logger"
)

// Ensure PlannerService implements the interface.
var _ driving.StructurePlanner = (*PlannerService)(nil)

// structureCharBudget is the synopsis length requested from the LLM.
const structureCharBudget = 200

// PlannerService derives a textual deck structure from a planning
// conversation. One prompt, one call, no retries: an empty answer is a
// hard failure because every later stage builds on this text.
type PlannerService struct {
	llm driven.LLMService
}

// NewPlannerService creates a new structure planner.
func NewPlannerService(llm driven.LLMService) *PlannerService {
	return &PlannerService{llm: llm}
}

// Plan returns the structure synopsis for the conversation and goal.
func (s *PlannerService) Plan(ctx context.Context, pc domain.PlanningContext) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("structure planning: %w", domain.ErrLLMUnavailable)
	}

	logger.Section("Structure Planning")
	prompt := buildPlanningPrompt(pc)
	logger.Debug("Planning prompt: %d chars", len(prompt))

	text, err := s.llm.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("structure planning: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrPlanningFailed
	}

	logger.Info("Structure plan: %q", truncateText(text, 80))
	return text, nil
}

// buildPlanningPrompt embeds the full planning context into one
// instruction prompt.
func buildPlanningPrompt(pc domain.PlanningContext) string {
	sections := []string{
		"あなたは熟練のスライド構成プランナーです。",
		fmt.Sprintf("以下の対話ログを読み取り、ユーザーの目的を達成するためのスライド全体像を%d字以内で日本語でまとめてください。", structureCharBudget),
		"会話ログから導かれる章立てや盛り込むべき観点を文章で説明してください。",
		"---",
		pc.ConversationHistory,
		"---",
		"最終目標: " + pc.Goal,
	}
	if pc.TargetCompany != "" {
		sections = append(sections, "想定読者・企業: "+pc.TargetCompany)
	}
	if pc.AdditionalRequirements != "" {
		sections = append(sections, "追加要望: "+pc.AdditionalRequirements)
	}

	nonEmpty := sections[:0]
	for _, section := range sections {
		if section != "" {
			nonEmpty = append(nonEmpty, section)
		}
	}
	return strings.Join(nonEmpty, "\n")
}
