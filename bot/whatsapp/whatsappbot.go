package whatsapp

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"AgentsFood/internal/lib/sl"
)

const graphAPIURL = "https://graph.facebook.com/v21.0"

// Handler is the conversational core behind the webhook.
type Handler interface {
	ResolveEstablishmentID(ctx context.Context, phoneNumberID string) (string, error)
	HandleInbound(ctx context.Context, rawText, channelID, establishmentID, customerPhone, customerName string) string
	RecordInbound(ctx context.Context, channelID, establishmentID, customerPhone, customerName, content string)
}

// WhatsAppBot handles WhatsApp messaging via the Graph API
type WhatsAppBot struct {
	log           *slog.Logger
	handler       Handler
	accessToken   string
	verifyToken   string
	appSecret     string
	phoneNumberID string
}

// WebhookPayload represents the incoming webhook payload from WhatsApp
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Value struct {
				MessagingProduct string `json:"messaging_product"`
				Metadata         struct {
					DisplayPhoneNumber string `json:"display_phone_number"`
					PhoneNumberID      string `json:"phone_number_id"`
				} `json:"metadata"`
				Contacts []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
					WaID string `json:"wa_id"`
				} `json:"contacts"`
				Messages []struct {
					From      string `json:"from"`
					ID        string `json:"id"`
					Timestamp string `json:"timestamp"`
					Type      string `json:"type"`
					Text      *struct {
						Body string `json:"body"`
					} `json:"text,omitempty"`
				} `json:"messages"`
			} `json:"value"`
			Field string `json:"field"`
		} `json:"changes"`
	} `json:"entry"`
}

// SendMessageRequest represents the request body for sending a text message
type SendMessageRequest struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		PreviewURL bool   `json:"preview_url"`
		Body       string `json:"body"`
	} `json:"text"`
}

// NewWhatsAppBot creates a new WhatsApp bot instance
func NewWhatsAppBot(accessToken, verifyToken, appSecret string, log *slog.Logger) *WhatsAppBot {
	return &WhatsAppBot{
		log:         log.With(sl.Module("whatsappbot")),
		accessToken: accessToken,
		verifyToken: verifyToken,
		appSecret:   appSecret,
	}
}

// SetHandler wires the conversational core.
func (b *WhatsAppBot) SetHandler(handler Handler) {
	b.handler = handler
}

// SetPhoneNumberID sets the sender phone number id used for outbound calls.
func (b *WhatsAppBot) SetPhoneNumberID(phoneNumberID string) {
	b.phoneNumberID = phoneNumberID
}

// HandleWebhookVerification handles the GET request for webhook verification
func (b *WhatsAppBot) HandleWebhookVerification(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == b.verifyToken {
		b.log.Info("webhook verified")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	b.log.Warn("webhook verification failed",
		slog.String("mode", mode),
		slog.Bool("token_match", token == b.verifyToken),
	)
	http.Error(w, "Forbidden", http.StatusForbidden)
}

// HandleWebhook handles incoming webhook POST requests
func (b *WhatsAppBot) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		b.log.Error("failed to read request body", sl.Err(err))
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Verify signature if app secret is configured
	if b.appSecret != "" {
		signature := r.Header.Get("X-Hub-Signature-256")
		if !b.verifySignature(body, signature) {
			b.log.Warn("invalid webhook signature")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
	}

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		b.log.Error("failed to parse webhook payload", sl.Err(err))
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	// Always respond with 200 OK to acknowledge receipt
	w.WriteHeader(http.StatusOK)

	// Process messages asynchronously
	go b.processPayload(payload)
}

// processPayload walks the webhook payload and runs one conversational
// turn per text message.
func (b *WhatsAppBot) processPayload(payload WebhookPayload) {
	if payload.Object != "whatsapp_business_account" || b.handler == nil {
		return
	}

	ctx := context.Background()

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}

			establishmentID, err := b.handler.ResolveEstablishmentID(ctx, change.Value.Metadata.PhoneNumberID)
			if err != nil {
				b.log.Warn("establishment lookup failed",
					slog.String("phone_number_id", change.Value.Metadata.PhoneNumberID),
					sl.Err(err),
				)
				continue
			}

			for _, message := range change.Value.Messages {
				customerName := ""
				for _, contact := range change.Value.Contacts {
					if contact.WaID == message.From {
						customerName = contact.Profile.Name
						break
					}
				}

				if message.Type != "text" || message.Text == nil || message.Text.Body == "" {
					b.handler.RecordInbound(ctx, message.From, establishmentID, message.From, customerName, contentPlaceholder(message.Type))
					continue
				}

				b.log.Info("received message",
					slog.String("sender_phone", message.From),
					slog.String("text", message.Text.Body),
				)

				reply := b.handler.HandleInbound(ctx, message.Text.Body, message.From, establishmentID, message.From, customerName)
				if reply == "" {
					continue
				}
				// Reply through the number the message arrived on.
				if err := b.SendMessageVia(change.Value.Metadata.PhoneNumberID, message.From, reply); err != nil {
					b.log.Error("failed to send reply",
						slog.String("sender_phone", message.From),
						sl.Err(err),
					)
				}
			}
		}
	}
}

func contentPlaceholder(messageType string) string {
	switch messageType {
	case "image":
		return "[Imagem enviada]"
	case "audio":
		return "[Áudio enviado]"
	case "video":
		return "[Vídeo enviado]"
	case "document":
		return "[Documento enviado]"
	default:
		return "[Mensagem não suportada]"
	}
}

// SendMessage sends a text message to the specified recipient from the
// configured default number
func (b *WhatsAppBot) SendMessage(recipientPhone, text string) error {
	return b.SendMessageVia(b.phoneNumberID, recipientPhone, text)
}

// SendMessageVia sends a text message from a specific phone number id
func (b *WhatsAppBot) SendMessageVia(phoneNumberID, recipientPhone, text string) error {
	reqBody := SendMessageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               recipientPhone,
		Type:             "text",
	}
	reqBody.Text.PreviewURL = false
	reqBody.Text.Body = text

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", graphAPIURL, phoneNumberID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	b.log.Info("message sent successfully", slog.String("recipient_phone", recipientPhone))
	return nil
}

// verifySignature verifies the X-Hub-Signature-256 header
func (b *WhatsAppBot) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	// Signature format: "sha256=<hex_signature>"
	if len(signature) < 8 || signature[:7] != "sha256=" {
		return false
	}

	expectedSig := signature[7:]
	mac := hmac.New(sha256.New, []byte(b.appSecret))
	mac.Write(body)
	actualSig := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expectedSig), []byte(actualSig))
}
