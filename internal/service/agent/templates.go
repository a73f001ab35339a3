package agent

// Reply phrasing pools. One entry is picked per turn through the injected
// pick function; empty entries are dropped before picking.

var greetingVariations = []string{
	"Olá! {name} Seja muito bem-vindo(a) ao {establishment}! 😊",
	"Oi! {name} Que bom ter você aqui no {establishment}! 👋",
	"Olá! {name} Bem-vindo(a) ao {establishment}! Como posso ajudá-lo(a) hoje?",
}

var menuPromptVariations = []string{
	"Gostaria de conhecer nosso cardápio? 📋",
	"Que tal dar uma olhada no que temos de delicioso hoje? 🍽️",
	"Posso apresentar nossos produtos para você? 📋",
}

var welcomeBackVariations = []string{
	"Olá novamente! Como posso ajudá-lo(a) hoje? 😊",
	"Oi! Que bom ter você de volta! Em que posso ajudar?",
	"Ola! Pronto(a) para fazer um novo pedido? 🍽️",
}

var inquiryPromptVariations = []string{
	"Gostaria de adicionar ao seu pedido? 🛒",
	"Posso anotar para você? ✍️",
	"Vamos adicionar ao pedido? 📝",
}

var continueVariations = []string{
	"Gostaria de adicionar mais alguma coisa? 🍽️",
	"Mais algum item para o pedido? 📝",
	"Que tal mais alguma coisa? 😊",
}

var fallbackVariations = []string{
	"Não entendi bem. Posso ajudar com nosso cardápio, pedidos ou informações de contato! 😊",
	"Desculpe, não compreendi. Como posso ajudá-lo(a) hoje? 🤔",
}

const (
	menuPromptSuffix   = ` Digite "cardápio" para ver nossos produtos! 📋`
	helpFallback       = "Como posso ajudar?"
	agentUnavailable   = "Agente indisponível no momento."
	establishmentGone  = "Estabelecimento não encontrado."
	noProductsReply    = "Ainda não temos produtos cadastrados. Entre em contato diretamente conosco!"
	askProductInquiry  = "Qual produto você gostaria de saber mais informações? 🤔"
	askProductForOrder = "Qual produto você gostaria de pedir? 🤔"
	noContactInfo      = "Informações de contato não disponíveis no momento."
)
