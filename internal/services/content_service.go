// internal/services/content_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/offerforge/offerforge/internal/errors"
	"github.com/offerforge/offerforge/internal/llm"
	"github.com/offerforge/offerforge/internal/models"
	"github.com/offerforge/offerforge/internal/utils"
)

// DefaultVSLDuration is the script length requested when the caller
// does not specify one, in seconds.
const DefaultVSLDuration = 90

// ContentService turns a project's brief and research into sales assets
// through sequential model completions. Parsing of model output is
// positional and never fails; upstream provider errors fail the whole
// generation step.
type ContentService struct {
	llmService *LLMService
	prompts    *PromptStore
	apiMetrics *utils.APIMetrics
	logger     *utils.Logger
}

// NewContentService creates the content generation service.
func NewContentService(llmService *LLMService, prompts *PromptStore) *ContentService {
	return &ContentService{
		llmService: llmService,
		prompts:    prompts,
		apiMetrics: utils.NewAPIMetrics(),
		logger:     utils.GetLogger(),
	}
}

func (s *ContentService) complete(ctx context.Context, system, prompt string, maxTokens int, temperature float32) (string, error) {
	resp, err := s.llmService.Complete(ctx, llm.CompletionRequest{
		Prompt:       prompt,
		SystemPrompt: system,
		MaxTokens:    maxTokens,
		Temperature:  temperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text), nil
}

// GenerateOffer synthesizes a complete offer from the brief and pain
// research through five sequential completions. Any provider failure
// aborts the whole offer; there are no partial offers.
func (s *ContentService) GenerateOffer(ctx context.Context, project *models.Project) (*models.GeneratedOffer, error) {
	brief := project.Brief
	prompts := s.prompts.Get(project.Language)
	start := time.Now()

	price := FormatPrice(brief.TargetPrice)

	headline, err := s.complete(ctx, prompts.System, RenderTemplate(prompts.Templates[PromptHeadline], map[string]string{
		"niche":        brief.Niche,
		"promise":      brief.Promise,
		"pain_context": PainContext(project.PainResearch),
	}), 150, 0.8)
	if err != nil {
		return nil, apperrors.NewProcessingError("AI content generation failed", err)
	}

	reviews := ReviewsContext(project.PainResearch)
	if faqs := FAQContext(project.PainResearch); faqs != "" {
		if reviews != "" {
			reviews += " | "
		}
		reviews += faqs
	}

	proofRaw, err := s.complete(ctx, prompts.System, RenderTemplate(prompts.Templates[PromptProof], map[string]string{
		"niche":   brief.Niche,
		"promise": brief.Promise,
		"reviews": reviews,
	}), 300, 0.7)
	if err != nil {
		return nil, apperrors.NewProcessingError("AI content generation failed", err)
	}
	proofElements := ParseListLines(proofRaw, 5)

	bonusRaw, err := s.complete(ctx, prompts.System, RenderTemplate(prompts.Templates[PromptBonuses], map[string]string{
		"niche":        brief.Niche,
		"promise":      brief.Promise,
		"target_price": price,
	}), 250, 0.8)
	if err != nil {
		return nil, apperrors.NewProcessingError("AI content generation failed", err)
	}
	bonuses := ParseListLines(bonusRaw, 4)

	guaranteeRaw, err := s.complete(ctx, prompts.System, RenderTemplate(prompts.Templates[PromptGuarantees], map[string]string{
		"niche":        brief.Niche,
		"target_price": price,
		"currency":     brief.Currency,
	}), 200, 0.6)
	if err != nil {
		return nil, apperrors.NewProcessingError("AI content generation failed", err)
	}
	guarantees := ParseListLines(guaranteeRaw, 3)

	priceJustification, err := s.complete(ctx, prompts.System, RenderTemplate(prompts.Templates[PromptPriceJustification], map[string]string{
		"target_price": price,
		"currency":     brief.Currency,
		"promise":      brief.Promise,
		"bonuses":      joinFirstComma(bonuses, 2),
	}), 150, 0.7)
	if err != nil {
		return nil, apperrors.NewProcessingError("AI content generation failed", err)
	}

	s.apiMetrics.RecordGeneration(project.ID, "offer", time.Since(start))

	return &models.GeneratedOffer{
		Headline:           headline,
		MainPromise:        brief.Promise,
		ProofElements:      proofElements,
		Bonuses:            bonuses,
		Guarantees:         guarantees,
		PriceJustification: priceJustification,
		UrgencyElements:    s.prompts.UrgencyElements(project.Language, brief.TargetPrice),
	}, nil
}

// GenerateVSLScript builds a video-sales-letter script from one
// completion, assembling the sections positionally with canned
// fallbacks for anything the model response is missing.
func (s *ContentService) GenerateVSLScript(ctx context.Context, project *models.Project, duration int) (*models.VSLScript, error) {
	if duration <= 0 {
		duration = DefaultVSLDuration
	}

	offer := project.GeneratedOffer
	brief := project.Brief
	prompts := s.prompts.Get(project.Language)
	fallbacks := s.prompts.Fallbacks(project.Language)
	start := time.Now()

	guarantee := fallbacks.Guarantee
	if len(offer.Guarantees) > 0 {
		guarantee = offer.Guarantees[0]
	}

	raw, err := s.complete(ctx, prompts.System, RenderTemplate(prompts.Templates[PromptVSLScript], map[string]string{
		"headline":       offer.Headline,
		"niche":          brief.Niche,
		"proof_elements": joinFirstComma(offer.ProofElements, 3),
		"bonuses":        joinFirstComma(offer.Bonuses, 2),
		"guarantee":      guarantee,
		"duration":       fmt.Sprintf("%d", duration),
	}), 800, 0.7)
	if err != nil {
		return nil, apperrors.NewProcessingError("VSL generation failed", err)
	}

	script, usedFallback := ParseVSLScript(raw, offer, brief, project.Language, duration, fallbacks)
	if usedFallback {
		s.logger.Warnf("VSL response for project %s was incomplete, fallback sections applied", project.ID)
	}

	s.apiMetrics.RecordGeneration(project.ID, "vsl_script", time.Since(start))
	return script, nil
}

// GenerateEmailSequence builds a nurture sequence of exactly five
// emails, padding parse shortfalls with placeholders.
func (s *ContentService) GenerateEmailSequence(ctx context.Context, project *models.Project) (*models.EmailSequence, error) {
	offer := project.GeneratedOffer
	brief := project.Brief
	prompts := s.prompts.Get(project.Language)
	fallbacks := s.prompts.Fallbacks(project.Language)
	start := time.Now()

	guarantee := fallbacks.Guarantee
	if len(offer.Guarantees) > 0 {
		guarantee = offer.Guarantees[0]
	}

	raw, err := s.complete(ctx, prompts.System, RenderTemplate(prompts.Templates[PromptEmailSequence], map[string]string{
		"niche":     brief.Niche,
		"promise":   offer.MainPromise,
		"headline":  offer.Headline,
		"bonuses":   joinFirstComma(offer.Bonuses, 2),
		"guarantee": guarantee,
	}), 1200, 0.7)
	if err != nil {
		return nil, apperrors.NewProcessingError("Email sequence generation failed", err)
	}

	sequence, usedFallback := ParseEmailSequence(raw, brief.Niche, project.Language, fallbacks)
	if usedFallback {
		s.logger.Warnf("Email response for project %s yielded fewer than 5 emails, placeholders added", project.ID)
	}

	s.apiMetrics.RecordGeneration(project.ID, "email_sequence", time.Since(start))
	return sequence, nil
}

// GenerateSocialContent builds up to six social posts from one
// completion, cycling platforms and content types positionally.
func (s *ContentService) GenerateSocialContent(ctx context.Context, project *models.Project) ([]models.SocialContent, error) {
	offer := project.GeneratedOffer
	brief := project.Brief
	prompts := s.prompts.Get(project.Language)
	fallbacks := s.prompts.Fallbacks(project.Language)
	start := time.Now()

	raw, err := s.complete(ctx, prompts.System, RenderTemplate(prompts.Templates[PromptSocialContent], map[string]string{
		"niche":    brief.Niche,
		"headline": offer.Headline,
		"promise":  offer.MainPromise,
	}), 600, 0.8)
	if err != nil {
		return nil, apperrors.NewProcessingError("Social content generation failed", err)
	}

	posts, usedFallback := ParseSocialPosts(raw, brief.Niche, project.Language, fallbacks)
	if usedFallback {
		s.logger.Warnf("Social response for project %s yielded fewer than 6 posts", project.ID)
	}

	s.apiMetrics.RecordGeneration(project.ID, "social_content", time.Since(start))
	return posts, nil
}

func joinFirstComma(items []string, max int) string {
	if len(items) > max {
		items = items[:max]
	}
	return strings.Join(items, ", ")
}
