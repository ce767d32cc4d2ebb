package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bnema/social-actions-cli/internal/ports"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultModel     = "gemini-2.5-flash"
	DefaultSecretRef = "gemini/api_key"
	maxReplyRunes    = 140
)

const systemPrompt = `You write short, warm replies to social media posts on behalf of the account owner.
Reply in the language of the post. One or two sentences, no hashtags, no links, no quotation marks.
If the post gives you nothing friendly to respond to, answer with an empty message.`

type Config struct {
	Model     string
	SecretRef string
	// BaseURL overrides the API endpoint.
	BaseURL string
}

// Generator produces reply text with the Gemini API. The API key is read from the secret store on
// first use.
type Generator struct {
	cfg     Config
	secrets ports.SecretStore
	logger  *zap.Logger

	mu     sync.Mutex
	client *genai.Client
}

var _ ports.ReplyGenerator = (*Generator)(nil)

func NewGenerator(cfg Config, secrets ports.SecretStore, logger *zap.Logger) *Generator {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.SecretRef == "" {
		cfg.SecretRef = DefaultSecretRef
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{cfg: cfg, secrets: secrets, logger: logger.With(zap.String("component", "gemini"))}
}

func (g *Generator) GenerateReply(ctx context.Context, thread ports.ThreadContext) (string, error) {
	client, err := g.clientFor(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(buildPrompt(thread)), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.9),
		MaxOutputTokens:   256,
	})
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	reply := cleanReply(resp.Text())
	g.logger.Debug("reply generated",
		zap.String("account", string(thread.Account)),
		zap.String("target", thread.Target),
		zap.Int("runes", utf8.RuneCountInString(reply)))

	return reply, nil
}

func (g *Generator) clientFor(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	apiKey, err := g.secrets.Get(ctx, g.cfg.SecretRef)
	if err != nil {
		return nil, fmt.Errorf("load gemini api key %q: %w", g.cfg.SecretRef, err)
	}

	cfg := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Backend: genai.BackendGeminiAPI,
	}
	if g.cfg.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	g.client = client
	return client, nil
}

func buildPrompt(thread ports.ThreadContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Post by @%s:\n%s\n", thread.Target, strings.TrimSpace(thread.Post.Text))
	if thread.Nickname != "" {
		fmt.Fprintf(&b, "Address them as %q.\n", thread.Nickname)
	}
	fmt.Fprintf(&b, "Write the reply as @%s.", thread.Handle)
	return b.String()
}

func cleanReply(raw string) string {
	reply := strings.TrimSpace(raw)
	reply = strings.Trim(reply, "\"'「」“”")
	reply = strings.TrimSpace(reply)

	if utf8.RuneCountInString(reply) > maxReplyRunes {
		runes := []rune(reply)
		reply = strings.TrimSpace(string(runes[:maxReplyRunes]))
	}

	return reply
}
