// internal/services/content_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/offerforge/offerforge/internal/errors"
	"github.com/offerforge/offerforge/internal/llm"
	"github.com/offerforge/offerforge/internal/models"
)

// scriptedProvider returns canned responses in call order, optionally
// failing at a given call.
type scriptedProvider struct {
	responses []string
	calls     int
	failAt    int // 1-based call index, 0 = never fail
	prompts   []string
}

func (p *scriptedProvider) Initialize(config map[string]string) error { return nil }
func (p *scriptedProvider) GetName() string                           { return "scripted" }
func (p *scriptedProvider) GetSupportedModels() []string              { return []string{"test-model"} }

func (p *scriptedProvider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.calls++
	p.prompts = append(p.prompts, req.Prompt)

	if p.failAt > 0 && p.calls == p.failAt {
		return nil, errors.New("provider unavailable")
	}

	text := "generated content"
	if len(p.responses) >= p.calls {
		text = p.responses[p.calls-1]
	}

	return &llm.CompletionResponse{
		Text:         text,
		TokensUsed:   42,
		ModelName:    "test-model",
		ProviderName: "scripted",
	}, nil
}

func newTestContentService(provider llm.Provider) *ContentService {
	llmService := NewLLMService("openai", map[string]string{}, nil)
	llmService.SetProvider(provider)
	return NewContentService(llmService, NewPromptStore())
}

func testProject() *models.Project {
	return &models.Project{
		ID:       "p1",
		Name:     "Projeto Fitness",
		UserID:   "u1",
		Language: models.LanguagePTBR,
		Status:   models.StatusResearchCompleted,
		Brief:    testBrief(),
		PainResearch: &models.PainResearch{
			PainPoints: []models.PainPoint{
				{Description: "sem tempo para treinar", Frequency: 2},
			},
			Reviews: []string{"mudou minha vida"},
		},
	}
}

func TestGenerateOffer(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{
			"Headline incrível",
			"prova 1\nprova 2\nprova 3",
			"bônus 1\nbônus 2\nbônus 3\nbônus 4\nbônus 5",
			"garantia 1\ngarantia 2",
			"Vale cada centavo",
		},
	}
	service := newTestContentService(provider)
	project := testProject()

	offer, err := service.GenerateOffer(context.Background(), project)

	require.NoError(t, err)
	assert.Equal(t, 5, provider.calls)
	assert.Equal(t, "Headline incrível", offer.Headline)
	assert.Equal(t, "Perca 10kg sem dietas malucas", offer.MainPromise)
	assert.Equal(t, []string{"prova 1", "prova 2", "prova 3"}, offer.ProofElements)
	assert.Len(t, offer.Bonuses, 4)
	assert.Len(t, offer.Guarantees, 2)
	assert.Equal(t, "Vale cada centavo", offer.PriceJustification)

	require.Len(t, offer.UrgencyElements, 4)
	assert.Equal(t, "Preço promocional de R$ 297 por tempo limitado", offer.UrgencyElements[2])
}

func TestGenerateOfferInterpolatesPainContext(t *testing.T) {
	provider := &scriptedProvider{}
	service := newTestContentService(provider)

	_, err := service.GenerateOffer(context.Background(), testProject())

	require.NoError(t, err)
	require.NotEmpty(t, provider.prompts)
	assert.Contains(t, provider.prompts[0], "sem tempo para treinar, sem tempo para treinar")
	assert.Contains(t, provider.prompts[0], "fitness")
}

func TestGenerateOfferJoinsReviewsAndFAQs(t *testing.T) {
	provider := &scriptedProvider{}
	service := newTestContentService(provider)
	project := testProject()
	project.PainResearch.FAQs = []string{"funciona para iniciantes?"}

	_, err := service.GenerateOffer(context.Background(), project)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(provider.prompts), 2)
	assert.Contains(t, provider.prompts[1], "mudou minha vida | funciona para iniciantes?")
}

func TestGenerateOfferFailsWhole(t *testing.T) {
	provider := &scriptedProvider{failAt: 3}
	service := newTestContentService(provider)

	offer, err := service.GenerateOffer(context.Background(), testProject())

	require.Error(t, err)
	assert.Nil(t, offer)

	var appError *apperrors.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, apperrors.ErrorTypeProcessing, appError.Type)
	assert.Contains(t, err.Error(), "provider unavailable")
}

func TestGenerateOfferNotReady(t *testing.T) {
	llmService := NewLLMService("openai", map[string]string{}, nil)
	service := NewContentService(llmService, NewPromptStore())

	_, err := service.GenerateOffer(context.Background(), testProject())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLLMNotReady)
}

func TestGenerateVSLScript(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{"hook\n\nproblema\n\nsolução\n\nprova\n\noferta\n\nextra\n\nchamada final"},
	}
	service := newTestContentService(provider)
	project := testProject()
	project.GeneratedOffer = testOffer()

	script, err := service.GenerateVSLScript(context.Background(), project, 0)

	require.NoError(t, err)
	assert.Equal(t, DefaultVSLDuration, script.EstimatedDuration)
	assert.Equal(t, "hook", script.Hook)
	assert.Equal(t, "chamada final", script.CallToAction)
	assert.Contains(t, provider.prompts[0], "90 segundos")
}

func TestGenerateEmailSequenceAlwaysFive(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{"Assunto único\nCorpo"},
	}
	service := newTestContentService(provider)
	project := testProject()
	project.GeneratedOffer = testOffer()

	sequence, err := service.GenerateEmailSequence(context.Background(), project)

	require.NoError(t, err)
	require.Len(t, sequence.Emails, 5)
	assert.Equal(t, "Assunto único", sequence.Emails[0].Subject)
	assert.Equal(t, "Email 2 - fitness", sequence.Emails[1].Subject)
}

func TestGenerateSocialContent(t *testing.T) {
	provider := &scriptedProvider{
		responses: []string{"h1\nh2\nh3\nh4\nh5\nh6"},
	}
	service := newTestContentService(provider)
	project := testProject()
	project.GeneratedOffer = testOffer()

	posts, err := service.GenerateSocialContent(context.Background(), project)

	require.NoError(t, err)
	require.Len(t, posts, 6)
	assert.Equal(t, "instagram", posts[0].Platform)
	assert.Equal(t, []string{"#fitness", "#oferta", "#limitado"}, posts[0].Hashtags)
}
