package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 20 * time.Second

// Assistant proxies free-text questions to an upstream chat-completion API.
// When the upstream is rate-limited or unreachable it answers from a small
// canned table instead of failing the request.
type Assistant struct {
	client *http.Client
	url    string
	key    string
	model  string
}

func New(apiURL, apiKey, model string) *Assistant {
	return &Assistant{
		url:    apiURL,
		key:    apiKey,
		model:  model,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

const systemPrompt = "You are an assistant for an EV charging-station finder. " +
	"Answer briefly about charging, connectors, trip planning and this service."

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Reply answers a user message. The second return value reports whether the
// answer came from the canned fallback rather than the upstream model.
func (a *Assistant) Reply(ctx context.Context, message string) (string, bool) {
	payload := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return cannedReply(message), true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return cannedReply(message), true
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return cannedReply(message), true
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return cannedReply(message), true
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return cannedReply(message), true
	}
	var parsed chatResponse
	if err = json.Unmarshal(data, &parsed); err != nil || len(parsed.Choices) == 0 {
		return cannedReply(message), true
	}
	answer := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if answer == "" {
		return cannedReply(message), true
	}
	return answer, false
}

// cannedReply covers the common questions when the model is unavailable.
func cannedReply(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "connector") || strings.Contains(m, "ccs") || strings.Contains(m, "chademo"):
		return "Most fast chargers in the network offer CCS (Type 2) connectors; CHAdeMO and AC Type 2 are also common. Use the connectors filter on the station search to match your vehicle."
	case strings.Contains(m, "cost") || strings.Contains(m, "price"):
		return "Public fast charging is typically billed per kWh; the trip planner shows an estimated cost band for each charging stop."
	case strings.Contains(m, "route") || strings.Contains(m, "trip") || strings.Contains(m, "plan"):
		return "Use the trip planner with your start, destination, vehicle range and current battery level to get charging stops along the route."
	case strings.Contains(m, "hello") || strings.Contains(m, "hi"):
		return "Hello! Ask me about charging stations, connectors or planning an EV trip."
	default:
		return "I can help you find charging stations, compare connectors, or plan charging stops for a trip. The assistant is briefly unavailable, so this is a short answer; please try again in a moment for more detail."
	}
}
