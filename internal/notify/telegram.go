package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/metadata"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier sends HTML-formatted alerts to a Telegram chat via the
// bot sendMessage API.
type TelegramNotifier struct {
	baseURL    string
	token      string
	chatID     string
	httpClient *http.Client
	metadata   *metadata.Client
}

var _ Notifier = (*TelegramNotifier)(nil)

// TelegramOption configures a TelegramNotifier.
type TelegramOption func(*TelegramNotifier)

// WithTelegramBaseURL overrides the Telegram API base URL, for tests.
func WithTelegramBaseURL(url string) TelegramOption {
	return func(n *TelegramNotifier) {
		n.baseURL = url
	}
}

// WithMetadataClient enables token name/price enrichment in alerts.
func WithMetadataClient(c *metadata.Client) TelegramOption {
	return func(n *TelegramNotifier) {
		n.metadata = c
	}
}

// WithTelegramHTTPClient sets a custom HTTP client.
func WithTelegramHTTPClient(httpClient *http.Client) TelegramOption {
	return func(n *TelegramNotifier) {
		n.httpClient = httpClient
	}
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token, chatID string, opts ...TelegramOption) *TelegramNotifier {
	n := &TelegramNotifier{
		baseURL:    telegramAPIBase,
		token:      token,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify formats the activity as an HTML message and sends it.
func (n *TelegramNotifier) Notify(ctx context.Context, a *domain.Activity) error {
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", n.formatMessage(ctx, a))
	form.Set("parse_mode", "HTML")
	form.Set("disable_web_page_preview", "true")

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Description string `json:"description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("telegram API status %d: %s", resp.StatusCode, apiErr.Description)
	}
	return nil
}

func (n *TelegramNotifier) formatMessage(ctx context.Context, a *domain.Activity) string {
	var b strings.Builder

	emoji := map[domain.ActivityType]string{
		domain.ActivityBuy:      "🟢",
		domain.ActivitySell:     "🔴",
		domain.ActivitySwap:     "🔄",
		domain.ActivityTransfer: "📤",
		domain.ActivityUnknown:  "❓",
	}[a.Type]

	fmt.Fprintf(&b, "%s <b>%s</b> via %s\n\n", emoji, a.Type, html(a.Program))
	fmt.Fprintf(&b, "👛 <code>%s</code>\n", html(a.Wallet))

	if a.SourceToken != nil {
		fmt.Fprintf(&b, "➖ %s\n", n.describeToken(ctx, a.SourceToken))
	}
	if a.DestToken != nil {
		fmt.Fprintf(&b, "➕ %s\n", n.describeToken(ctx, a.DestToken))
	}

	if a.Fee > 0 {
		fmt.Fprintf(&b, "⛽ %.6f SOL fee\n", a.Fee)
	}

	fmt.Fprintf(&b, "\n<a href=\"https://solscan.io/tx/%s\">Solscan</a>", a.Signature)
	if mint := tradedMint(a); mint != "" {
		fmt.Fprintf(&b, " | <a href=\"https://dexscreener.com/solana/%s\">DexScreener</a>", mint)
		fmt.Fprintf(&b, " | <a href=\"https://photon-sol.tinyastro.io/en/lp/%s\">Photon</a>", mint)
	}

	return b.String()
}

func (n *TelegramNotifier) describeToken(ctx context.Context, c *domain.TokenBalanceChange) string {
	label := c.Mint
	if c.Mint != domain.NativeMint && n.metadata != nil {
		md, err := n.metadata.TokenMetadata(ctx, c.Mint)
		if err != nil {
			log.Printf("[notify] metadata lookup failed for %s: %v", c.Mint, err)
		} else {
			label = md.Symbol
			if md.PriceUSD != "" {
				label = fmt.Sprintf("%s ($%s)", md.Symbol, md.PriceUSD)
			}
		}
	}
	return fmt.Sprintf("%.6f %s", abs(c.Amount), html(label))
}

// tradedMint picks the non-native mint involved in the activity, for the
// chart links.
func tradedMint(a *domain.Activity) string {
	if a.DestToken != nil && a.DestToken.Mint != domain.NativeMint {
		return a.DestToken.Mint
	}
	if a.SourceToken != nil && a.SourceToken.Mint != domain.NativeMint {
		return a.SourceToken.Mint
	}
	return ""
}

func html(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
