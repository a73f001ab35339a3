package gpt

import (
	"AgentsFood/entity"
	"fmt"
	"strings"
)

// SystemPrompt builds the instruction block the model answers under: tone,
// custom instructions, establishment info and the menu gated by the
// enabled features.
func (a *Assistant) SystemPrompt(est *entity.Establishment, cfg *entity.AgentConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Você é um assistente virtual do %s. ", est.Name)

	switch cfg.Tone {
	case entity.ToneProfessional:
		b.WriteString("Mantenha um tom profissional e formal. ")
	case entity.ToneCasual:
		b.WriteString("Use um tom descontraído e amigável. ")
	default:
		b.WriteString("Seja amigável e acolhedor. ")
	}

	if cfg.CustomPrompt != "" {
		b.WriteString(cfg.CustomPrompt + " ")
	}

	b.WriteString("\n\nInformações do estabelecimento:\n")
	fmt.Fprintf(&b, "Nome: %s\n", est.Name)
	if est.Description != "" {
		fmt.Fprintf(&b, "Descrição: %s\n", est.Description)
	}
	if est.Phone != "" {
		fmt.Fprintf(&b, "Telefone: %s\n", est.Phone)
	}
	if est.Address != "" {
		fmt.Fprintf(&b, "Endereço: %s\n", est.Address)
	}

	if cfg.EnabledFeatures.Menu && len(est.Products) > 0 {
		b.WriteString("\n**CARDÁPIO DISPONÍVEL:**\n")
		for _, category := range est.Categories {
			products := est.AvailableProductsIn(category.ID)
			if len(products) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n%s:\n", category.Name)
			for _, product := range products {
				fmt.Fprintf(&b, "- %s", product.Name)
				if cfg.EnabledFeatures.Prices {
					fmt.Fprintf(&b, " - R$ %.2f", product.Price)
				}
				if product.Description != "" {
					fmt.Fprintf(&b, " (%s)", product.Description)
				}
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n\nRegras importantes:")
	b.WriteString("\n- Responda APENAS sobre o cardápio, preços e informações do estabelecimento")
	b.WriteString("\n- Se perguntarem sobre outros assuntos, redirecione para o cardápio")
	b.WriteString("\n- Mantenha as respostas concisas e úteis")
	b.WriteString("\n- Use emojis de forma moderada para deixar a conversa mais amigável")

	if !cfg.EnabledFeatures.Prices {
		b.WriteString("\n- NÃO forneça informações de preços, apenas mencione que estão disponíveis mediante contato")
	}
	if !cfg.EnabledFeatures.Availability {
		b.WriteString("\n- NÃO confirme disponibilidade de produtos, peça para o cliente entrar em contato")
	}

	return b.String()
}
