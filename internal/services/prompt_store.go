// internal/services/prompt_store.go
package services

import (
	"strconv"
	"strings"

	"github.com/offerforge/offerforge/internal/models"
)

// PromptKind selects a content-generation instruction template.
type PromptKind string

const (
	PromptHeadline           PromptKind = "headline"
	PromptProof              PromptKind = "proof"
	PromptBonuses            PromptKind = "bonuses"
	PromptGuarantees         PromptKind = "guarantees"
	PromptPriceJustification PromptKind = "price_justification"
	PromptVSLScript          PromptKind = "vsl_script"
	PromptEmailSequence      PromptKind = "email_sequence"
	PromptSocialContent      PromptKind = "social_content"
)

// PromptSet holds the shared system instruction plus one template per
// content kind for a single language.
type PromptSet struct {
	System    string
	Templates map[PromptKind]string
}

// FallbackTexts are the canned literals used when model output yields
// fewer sections than a material needs.
type FallbackTexts struct {
	ProblemAgitation  string
	SolutionIntro     string
	SocialProof       string
	OfferPresentation string // rendered with {currency} and {target_price}
	Guarantee         string
	CallToAction      string
	EmailContent      string
	SequenceName      string // rendered with {niche}
	HashtagOffer      string
	HashtagLimited    string
}

// PromptStore is a static mapping from (language, kind) to a parametrized
// instruction string. Unknown languages fall back to pt-BR.
type PromptStore struct {
	sets      map[models.Language]PromptSet
	fallbacks map[models.Language]FallbackTexts
	urgency   map[models.Language][]string
}

// NewPromptStore builds the built-in pt-BR and en-US prompt sets.
func NewPromptStore() *PromptStore {
	return &PromptStore{
		sets: map[models.Language]PromptSet{
			models.LanguagePTBR: {
				System: "Você é um especialista em marketing digital e copywriting brasileiro. Crie conteúdo persuasivo e autêntico em português brasileiro, focado no mercado brasileiro.",
				Templates: map[PromptKind]string{
					PromptHeadline:           "Crie uma headline poderosa para uma oferta no nicho de {niche}. A promessa principal é: {promise}. As principais dores do público são: {pain_context}. A headline deve ser específica, criar curiosidade e prometer transformação. Responda apenas com a headline, sem explicações.",
					PromptProof:              "Liste 5 elementos de prova social convincentes para um produto no nicho {niche} com a promessa '{promise}'. Base-se nestas avaliações reais: {reviews}. Formato: uma linha por elemento, sem numeração.",
					PromptBonuses:            "Crie 4 bônus irresistíveis para complementar uma oferta no nicho {niche} com promessa '{promise}' e preço de {target_price}. Cada bônus deve agregar valor percebido. Formato: uma linha por bônus.",
					PromptGuarantees:         "Crie 3 garantias convincentes para um produto de {niche} no valor de {currency} {target_price}. As garantias devem remover o risco e aumentar a confiança. Formato: uma linha por garantia.",
					PromptPriceJustification: "Crie uma justificativa de preço convincente para uma oferta de {currency} {target_price} com a promessa '{promise}' e bônus '{bonuses}'. Explique por que vale o investimento.",
					PromptVSLScript:          "Crie um roteiro de VSL de {duration} segundos para a oferta '{headline}' no nicho {niche}. Estrutura: Hook inicial, Agitação do problema, Apresentação da solução, Benefícios ({proof_elements}), Prova social, Apresentação da oferta com bônus ({bonuses}), Garantia ({guarantee}), Call-to-action. Separe cada seção com quebra de linha dupla.",
					PromptEmailSequence:      "Crie uma sequência de 5 e-mails para nutrir leads interessados em {niche} com a oferta '{headline}'. A promessa é '{promise}'. Inclua bônus: {bonuses}. Garantia: {guarantee}. Separe cada e-mail com '---'. Formato: Assunto na primeira linha, conteúdo nas linhas seguintes.",
					PromptSocialContent:      "Crie 6 hooks diferentes para redes sociais promovendo uma oferta de {niche}. Headline da oferta: '{headline}'. Promessa: '{promise}'. Cada hook deve ser único, chamar atenção e gerar curiosidade. Uma linha por hook.",
				},
			},
			models.LanguageENUS: {
				System: "You are a digital marketing and copywriting expert. Create persuasive and authentic content in English, focused on the international market.",
				Templates: map[PromptKind]string{
					PromptHeadline:           "Create a powerful headline for an offer in the {niche} niche. The main promise is: {promise}. The main pain points of the audience are: {pain_context}. The headline should be specific, create curiosity and promise transformation. Answer only with the headline, no explanations.",
					PromptProof:              "List 5 convincing social proof elements for a product in the {niche} niche with the promise '{promise}'. Base it on these real reviews: {reviews}. Format: one line per element, no numbering.",
					PromptBonuses:            "Create 4 irresistible bonuses to complement an offer in the {niche} niche with promise '{promise}' and price of {target_price}. Each bonus should add perceived value. Format: one line per bonus.",
					PromptGuarantees:         "Create 3 convincing guarantees for a {niche} product worth {currency} {target_price}. Guarantees should remove risk and increase trust. Format: one line per guarantee.",
					PromptPriceJustification: "Create a convincing price justification for an offer of {currency} {target_price} with the promise '{promise}' and bonuses '{bonuses}'. Explain why it's worth the investment.",
					PromptVSLScript:          "Create a {duration}-second VSL script for the offer '{headline}' in the {niche} niche. Structure: Initial hook, Problem agitation, Solution presentation, Benefits ({proof_elements}), Social proof, Offer presentation with bonuses ({bonuses}), Guarantee ({guarantee}), Call-to-action. Separate each section with double line break.",
					PromptEmailSequence:      "Create a sequence of 5 emails to nurture leads interested in {niche} with the offer '{headline}'. The promise is '{promise}'. Include bonuses: {bonuses}. Guarantee: {guarantee}. Separate each email with '---'. Format: Subject on first line, content on following lines.",
					PromptSocialContent:      "Create 6 different hooks for social media promoting a {niche} offer. Offer headline: '{headline}'. Promise: '{promise}'. Each hook should be unique, grab attention and generate curiosity. One line per hook.",
				},
			},
		},
		fallbacks: map[models.Language]FallbackTexts{
			models.LanguagePTBR: {
				ProblemAgitation:  "Problema identificado...",
				SolutionIntro:     "Apresentando a solução...",
				SocialProof:       "Depoimentos de clientes...",
				OfferPresentation: "Oferta especial: {currency} {target_price}",
				Guarantee:         "Garantia de satisfação",
				CallToAction:      "Clique agora e transforme sua vida!",
				EmailContent:      "Conteúdo do email a ser gerado...",
				SequenceName:      "Sequência {niche}",
				HashtagOffer:      "#oferta",
				HashtagLimited:    "#limitado",
			},
			models.LanguageENUS: {
				ProblemAgitation:  "Problem identified...",
				SolutionIntro:     "Introducing the solution...",
				SocialProof:       "Customer testimonials...",
				OfferPresentation: "Special offer: {currency} {target_price}",
				Guarantee:         "Satisfaction guarantee",
				CallToAction:      "Click now and transform your life!",
				EmailContent:      "Email content to be generated...",
				SequenceName:      "{niche} Sequence",
				HashtagOffer:      "#offer",
				HashtagLimited:    "#limited",
			},
		},
		urgency: map[models.Language][]string{
			models.LanguagePTBR: {
				"Oferta válida apenas por 48 horas",
				"Apenas 50 vagas disponíveis",
				"Preço promocional de R$ {target_price} por tempo limitado",
				"Bônus exclusivos apenas para os primeiros 25 alunos",
			},
			models.LanguageENUS: {
				"Offer valid for 48 hours only",
				"Only 50 spots available",
				"Promotional price of ${target_price} for limited time",
				"Exclusive bonuses for the first 25 students only",
			},
		},
	}
}

// Get returns the prompt set for a language, defaulting to pt-BR.
func (s *PromptStore) Get(language models.Language) PromptSet {
	if set, ok := s.sets[language]; ok {
		return set
	}
	return s.sets[models.LanguagePTBR]
}

// Fallbacks returns the canned fallback literals for a language.
func (s *PromptStore) Fallbacks(language models.Language) FallbackTexts {
	if fb, ok := s.fallbacks[language]; ok {
		return fb
	}
	return s.fallbacks[models.LanguagePTBR]
}

// UrgencyElements returns the fixed 4-line urgency list for a language,
// with the target price interpolated into the promotional-price line.
// These are never model-generated.
func (s *PromptStore) UrgencyElements(language models.Language, targetPrice float64) []string {
	lines, ok := s.urgency[language]
	if !ok {
		lines = s.urgency[models.LanguagePTBR]
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = RenderTemplate(line, map[string]string{
			"target_price": FormatPrice(targetPrice),
		})
	}
	return out
}

// RenderTemplate substitutes {name} placeholders in a template.
func RenderTemplate(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// FormatPrice renders a price without trailing zeros (297, 49.9).
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
