package agent

import (
	"AgentsFood/entity"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	greetingRe = regexp.MustCompile(`\b(ola|oi|bom dia|boa tarde|boa noite|opa|e ai)\b`)
	menuRe     = regexp.MustCompile(`\b(cardapio|menu|produtos|lanches|comida|o que tem|que voces tem)\b`)
	orderRe    = regexp.MustCompile(`\b(quero|vou querer|queria|gostaria|pedir|pode ser)\b`)
	contactRe  = regexp.MustCompile(`\b(contato|telefone|endereco|onde fica|localizacao)\b`)
	quantityRe = regexp.MustCompile(`(\d+)x|\b(\d+)\s*unidade`)
	targetRe   = regexp.MustCompile(`\b(?:quero|vou querer|queria|gostaria(?: de)?|pedir|pode ser)\s+(?:um |uma |o |a )?(.+)`)
	withoutRe  = regexp.MustCompile(`(?i)sem ([\w\s]+)`)
	withRe     = regexp.MustCompile(`(?i)com ([\w\s]+)`)
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the text and strips diacritics so "cardápio" and
// "cardapio" compare equal.
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return stripped
}

// Classify maps a raw inbound message to an intent. Patterns are tested
// in a fixed priority order; the first hit wins.
func Classify(rawText string, est *entity.Establishment) entity.MessageIntent {
	message := Normalize(rawText)

	if greetingRe.MatchString(message) {
		return entity.MessageIntent{Type: entity.IntentGreeting, Confidence: 0.9}
	}

	if menuRe.MatchString(message) {
		return entity.MessageIntent{Type: entity.IntentMenuRequest, Confidence: 0.8}
	}

	ordering := orderRe.MatchString(message)

	// A plain product mention is an inquiry, unless an order keyword is
	// present; then the product belongs to the order intent below.
	if !ordering {
		if product := findProduct(message, est.Products); product != nil {
			return entity.MessageIntent{
				Type:       entity.IntentProductInquiry,
				Confidence: 0.8,
				Entities:   entity.IntentEntities{ProductName: product.Name},
			}
		}
	}

	if ordering {
		intent := entity.MessageIntent{
			Type:       entity.IntentOrderItem,
			Confidence: 0.7,
			Entities: entity.IntentEntities{
				Quantity:      extractQuantity(message),
				Modifications: extractModifications(message),
			},
		}
		if product := findProduct(message, est.Products); product != nil {
			intent.Entities.ProductName = product.Name
		} else if match := targetRe.FindStringSubmatch(message); match != nil {
			// No catalog hit: carry the asked-for text so the handler
			// can name it in the unavailability reply.
			intent.Entities.ProductName = strings.TrimSpace(match[1])
		}
		return intent
	}

	if contactRe.MatchString(message) {
		return entity.MessageIntent{Type: entity.IntentContactInfo, Confidence: 0.8}
	}

	return entity.MessageIntent{Type: entity.IntentOther, Confidence: 0.5}
}

// findProduct returns the first product, in menu order, whose normalized
// name appears as a substring of the message. First match wins even when
// a longer name would fit better.
func findProduct(message string, products []entity.Product) *entity.Product {
	for i := range products {
		if strings.Contains(message, Normalize(products[i].Name)) {
			return &products[i]
		}
	}
	return nil
}

// extractQuantity reads "2x" or "2 unidades" style counts, defaulting to 1.
func extractQuantity(message string) int {
	match := quantityRe.FindStringSubmatch(message)
	if match == nil {
		return 1
	}
	raw := match[1]
	if raw == "" {
		raw = match[2]
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil || quantity < 1 {
		return 1
	}
	return quantity
}

// extractModifications collects "sem X" and "com X" phrases, in that order.
func extractModifications(message string) []string {
	var modifications []string
	if match := withoutRe.FindStringSubmatch(message); match != nil {
		modifications = append(modifications, "sem "+strings.TrimSpace(match[1]))
	}
	if match := withRe.FindStringSubmatch(message); match != nil {
		modifications = append(modifications, "com "+strings.TrimSpace(match[1]))
	}
	return modifications
}
