// internal/services/content_parser_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerforge/offerforge/internal/models"
)

func TestParseListLines(t *testing.T) {
	raw := "# Social proof\nFirst element\n\n  Second element  \n# another heading\nThird\nFourth\nFifth\nSixth"

	items := ParseListLines(raw, 5)

	require.Len(t, items, 5)
	assert.Equal(t, "First element", items[0])
	assert.Equal(t, "Second element", items[1])
	assert.Equal(t, "Fifth", items[4])
}

func TestParseListLinesEmptyInput(t *testing.T) {
	assert.Empty(t, ParseListLines("", 5))
	assert.Empty(t, ParseListLines("# only\n# headings", 5))
}

func TestParseSections(t *testing.T) {
	raw := "first section\n\n\nsecond section\n\n  \n\nthird"

	sections := ParseSections(raw)

	require.Len(t, sections, 3)
	assert.Equal(t, "second section", sections[1])
}

func testOffer() *models.GeneratedOffer {
	return &models.GeneratedOffer{
		Headline:      "Transforme seu corpo em 30 dias",
		MainPromise:   "Perca 10kg sem dietas malucas",
		ProofElements: []string{"prova 1", "prova 2", "prova 3", "prova 4"},
		Bonuses:       []string{"bônus 1", "bônus 2"},
		Guarantees:    []string{"30 dias de garantia"},
	}
}

func testBrief() *models.ProductBrief {
	return &models.ProductBrief{
		Niche:       "fitness",
		Promise:     "Perca 10kg sem dietas malucas",
		TargetPrice: 297,
		Currency:    "BRL",
	}
}

func TestParseVSLScriptCompleteResponse(t *testing.T) {
	raw := strings.Join([]string{
		"hook text", "problem text", "solution text", "proof text", "offer text", "extra", "cta text",
	}, "\n\n")
	fallbacks := NewPromptStore().Fallbacks(models.LanguagePTBR)

	script, usedFallback := ParseVSLScript(raw, testOffer(), testBrief(), models.LanguagePTBR, 90, fallbacks)

	assert.False(t, usedFallback)
	assert.Equal(t, "Transforme seu corpo em 30 dias", script.Title)
	assert.Equal(t, "hook text", script.Hook)
	assert.Equal(t, "problem text", script.ProblemAgitation)
	assert.Equal(t, "solution text", script.SolutionIntro)
	assert.Equal(t, "proof text", script.SocialProof)
	assert.Equal(t, "offer text", script.OfferPresentation)
	assert.Equal(t, "30 dias de garantia", script.Guarantee)
	assert.Equal(t, "cta text", script.CallToAction)
	assert.Equal(t, []string{"prova 1", "prova 2", "prova 3"}, script.Benefits)
	assert.Equal(t, 90, script.EstimatedDuration)
	assert.Equal(t, models.LanguagePTBR, script.Language)
}

func TestParseVSLScriptSparseResponse(t *testing.T) {
	fallbacks := NewPromptStore().Fallbacks(models.LanguagePTBR)

	script, usedFallback := ParseVSLScript("only a hook", testOffer(), testBrief(), models.LanguagePTBR, 90, fallbacks)

	assert.True(t, usedFallback)
	assert.Equal(t, "only a hook", script.Hook)
	assert.Equal(t, "Problema identificado...", script.ProblemAgitation)
	assert.Equal(t, "Apresentando a solução...", script.SolutionIntro)
	assert.Equal(t, "Depoimentos de clientes...", script.SocialProof)
	assert.Equal(t, "Oferta especial: BRL 297", script.OfferPresentation)
	assert.Equal(t, "Clique agora e transforme sua vida!", script.CallToAction)
}

func TestParseVSLScriptEmptyResponseFallsBackToHeadline(t *testing.T) {
	fallbacks := NewPromptStore().Fallbacks(models.LanguagePTBR)

	script, usedFallback := ParseVSLScript("", testOffer(), testBrief(), models.LanguagePTBR, 90, fallbacks)

	assert.True(t, usedFallback)
	assert.Equal(t, "Transforme seu corpo em 30 dias", script.Hook)
}

func TestParseVSLScriptNoGuarantees(t *testing.T) {
	offer := testOffer()
	offer.Guarantees = nil
	fallbacks := NewPromptStore().Fallbacks(models.LanguagePTBR)

	script, usedFallback := ParseVSLScript("a\n\nb\n\nc\n\nd\n\ne\n\nf\n\ng", offer, testBrief(), models.LanguagePTBR, 90, fallbacks)

	assert.True(t, usedFallback)
	assert.Equal(t, "Garantia de satisfação", script.Guarantee)
}

func TestParseEmailSequenceFullResponse(t *testing.T) {
	raw := strings.Join([]string{
		"Assunto 1\nCorpo do email 1\nsegunda linha",
		"Assunto 2\nCorpo 2",
		"Assunto 3\nCorpo 3",
		"Assunto 4\nCorpo 4",
		"Assunto 5\nCorpo 5",
	}, "\n---\n")
	fallbacks := NewPromptStore().Fallbacks(models.LanguagePTBR)

	sequence, usedFallback := ParseEmailSequence(raw, "fitness", models.LanguagePTBR, fallbacks)

	assert.False(t, usedFallback)
	assert.Equal(t, "Sequência fitness", sequence.SequenceName)
	require.Len(t, sequence.Emails, 5)
	assert.Equal(t, "Assunto 1", sequence.Emails[0].Subject)
	assert.Equal(t, "Corpo do email 1\nsegunda linha", sequence.Emails[0].Content)
	assert.Equal(t, "Assunto 5", sequence.Emails[4].Subject)
}

func TestParseEmailSequencePadsShortResponse(t *testing.T) {
	raw := "Assunto 1\nCorpo 1\n---\nAssunto 2\nCorpo 2"
	fallbacks := NewPromptStore().Fallbacks(models.LanguagePTBR)

	sequence, usedFallback := ParseEmailSequence(raw, "fitness", models.LanguagePTBR, fallbacks)

	assert.True(t, usedFallback)
	require.Len(t, sequence.Emails, 5)
	assert.Equal(t, "Email 3 - fitness", sequence.Emails[2].Subject)
	assert.Equal(t, "Conteúdo do email a ser gerado...", sequence.Emails[2].Content)
	assert.Equal(t, "Email 5 - fitness", sequence.Emails[4].Subject)
}

func TestParseEmailSequenceSkipsEmptySegments(t *testing.T) {
	raw := "Assunto 1\nCorpo 1\n---\n   \n---\nAssunto 2\nCorpo 2"
	fallbacks := NewPromptStore().Fallbacks(models.LanguagePTBR)

	sequence, _ := ParseEmailSequence(raw, "fitness", models.LanguagePTBR, fallbacks)

	assert.Equal(t, "Assunto 1", sequence.Emails[0].Subject)
	assert.Equal(t, "Assunto 2", sequence.Emails[1].Subject)
	assert.Equal(t, "Email 3 - fitness", sequence.Emails[2].Subject)
}

func TestParseSocialPostsCyclesPlatforms(t *testing.T) {
	raw := "hook 1\nhook 2\nhook 3\nhook 4\nhook 5\nhook 6\nhook 7"
	fallbacks := NewPromptStore().Fallbacks(models.LanguagePTBR)

	posts, usedFallback := ParseSocialPosts(raw, "Fitness", models.LanguagePTBR, fallbacks)

	assert.False(t, usedFallback)
	require.Len(t, posts, 6)

	assert.Equal(t, []string{"instagram", "facebook", "linkedin", "instagram", "facebook", "linkedin"},
		[]string{posts[0].Platform, posts[1].Platform, posts[2].Platform, posts[3].Platform, posts[4].Platform, posts[5].Platform})
	assert.Equal(t, "story", posts[3].ContentType)
	assert.Equal(t, "post", posts[5].ContentType)

	for _, post := range posts {
		assert.Equal(t, []string{"#fitness", "#oferta", "#limitado"}, post.Hashtags)
		assert.Equal(t, models.LanguagePTBR, post.Language)
	}
}

func TestParseSocialPostsShortResponse(t *testing.T) {
	fallbacks := NewPromptStore().Fallbacks(models.LanguagePTBR)

	posts, usedFallback := ParseSocialPosts("hook 1\nhook 2", "fitness", models.LanguagePTBR, fallbacks)

	assert.True(t, usedFallback)
	assert.Len(t, posts, 2)
}

func TestPainContextWeightsByFrequency(t *testing.T) {
	research := &models.PainResearch{
		PainPoints: []models.PainPoint{
			{Description: "sem tempo", Frequency: 3},
			{Description: "sem energia", Frequency: 1},
		},
	}

	context := PainContext(research)

	assert.Equal(t, "sem tempo, sem tempo, sem tempo, sem energia", context)
}

func TestPainContextCapsAtTen(t *testing.T) {
	research := &models.PainResearch{
		PainPoints: []models.PainPoint{
			{Description: "dor", Frequency: 25},
		},
	}

	context := PainContext(research)

	assert.Len(t, strings.Split(context, ", "), 10)
}

func TestPainContextZeroFrequencyCountsOnce(t *testing.T) {
	research := &models.PainResearch{
		PainPoints: []models.PainPoint{{Description: "dor"}},
	}

	assert.Equal(t, "dor", PainContext(research))
}

func TestReviewsContextJoinsFirstFive(t *testing.T) {
	research := &models.PainResearch{
		Reviews: []string{"r1", "r2", "r3", "r4", "r5", "r6"},
	}

	assert.Equal(t, "r1 | r2 | r3 | r4 | r5", ReviewsContext(research))
	assert.Empty(t, ReviewsContext(nil))
}
