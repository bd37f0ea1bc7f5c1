package github

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"prnotify/internal/models"
)

const maxPayloadSize = 1 << 20 // 1MB

// WebhookServer terminates the inbound webhook endpoint: signature
// verification, payload decoding and handoff to the router.
type WebhookServer struct {
	Secret string
	Router *Router
}

func NewWebhookServer(secret string, router *Router) *WebhookServer {
	return &WebhookServer{Secret: secret, Router: router}
}

// Handler verifies and routes one delivery. Past the signature check it
// always answers 200: GitHub retries non-2xx responses, which is undesirable
// once the payload has been accepted.
func (s *WebhookServer) Handler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.ContentLength > maxPayloadSize {
		http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadSize))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// The payload is not logged on rejection: unverified bodies are
	// attacker-controlled and may carry secrets or PII.
	if !VerifySignature(body, r.Header.Get("X-Hub-Signature-256"), s.Secret) {
		log.Printf("Webhook signature verification failed (delivery %s)", r.Header.Get("X-GitHub-Delivery"))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var payload models.PullRequestPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("Webhook payload decode failed: %v", err)
	} else {
		go s.Router.Route(&payload)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
