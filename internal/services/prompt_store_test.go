// internal/services/prompt_store_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerforge/offerforge/internal/models"
)

func TestPromptStoreUnknownLanguageFallsBackToPTBR(t *testing.T) {
	store := NewPromptStore()

	set := store.Get(models.Language("fr-FR"))

	assert.Equal(t, store.Get(models.LanguagePTBR).System, set.System)
	assert.Equal(t, store.Fallbacks(models.LanguagePTBR), store.Fallbacks(models.Language("fr-FR")))
}

func TestPromptStoreTemplatesCoverAllKinds(t *testing.T) {
	store := NewPromptStore()
	kinds := []PromptKind{
		PromptHeadline, PromptProof, PromptBonuses, PromptGuarantees,
		PromptPriceJustification, PromptVSLScript, PromptEmailSequence, PromptSocialContent,
	}

	for _, language := range []models.Language{models.LanguagePTBR, models.LanguageENUS} {
		set := store.Get(language)
		for _, kind := range kinds {
			assert.NotEmpty(t, set.Templates[kind], "missing %s template for %s", kind, language)
		}
	}
}

func TestUrgencyElementsInterpolatePrice(t *testing.T) {
	store := NewPromptStore()

	lines := store.UrgencyElements(models.LanguagePTBR, 297)
	require.Len(t, lines, 4)
	assert.Equal(t, "Preço promocional de R$ 297 por tempo limitado", lines[2])

	english := store.UrgencyElements(models.LanguageENUS, 49.9)
	require.Len(t, english, 4)
	assert.Equal(t, "Promotional price of $49.9 for limited time", english[2])
}

func TestRenderTemplate(t *testing.T) {
	rendered := RenderTemplate("Oferta de {niche} por {currency} {target_price}", map[string]string{
		"niche":        "fitness",
		"currency":     "BRL",
		"target_price": "297",
	})

	assert.Equal(t, "Oferta de fitness por BRL 297", rendered)
}

func TestRenderTemplateLeavesUnknownPlaceholders(t *testing.T) {
	rendered := RenderTemplate("{known} e {unknown}", map[string]string{"known": "ok"})

	assert.Equal(t, "ok e {unknown}", rendered)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "297", FormatPrice(297))
	assert.Equal(t, "49.9", FormatPrice(49.9))
	assert.Equal(t, "0.5", FormatPrice(0.5))
}
