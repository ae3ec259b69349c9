// Package telegram sends analysis digests through the Telegram Bot API.
// Reports are rendered as MarkdownV2 messages, split to fit the message size
// limit, and delivered with retry logic.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rewired-gh/linkedlens/internal/analysis"
	"github.com/rewired-gh/linkedlens/internal/calfmt"
	"github.com/rewired-gh/linkedlens/internal/logger"
	"github.com/rewired-gh/linkedlens/internal/models"
)

// maxMessageLen is Telegram's limit on message text, in UTF-16 code units.
// Counting runes stays under it for the text we produce.
const maxMessageLen = 4096

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Client handles Telegram notifications
type Client struct {
	bot            sender
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return newClient(bot, chatID, maxRetries, retryDelayBase)
}

func newClient(bot sender, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// Send delivers a digest of reports for the snapshot ds.
func (c *Client) Send(ctx context.Context, ds *models.Dataset, reports []analysis.Report, f calfmt.Formatter) error {
	parts := split(formatMessage(ds, reports, f), maxMessageLen)
	for i, text := range parts {
		msg := tgbotapi.NewMessage(c.chatID, text)
		msg.ParseMode = "MarkdownV2"
		if err := c.sendWithRetry(ctx, msg); err != nil {
			return fmt.Errorf("part %d of %d: %w", i+1, len(parts), err)
		}
	}
	logger.Debug("Telegram digest sent: reports=%d parts=%d", len(reports), len(parts))
	return nil
}

func (c *Client) sendWithRetry(ctx context.Context, msg tgbotapi.MessageConfig) error {
	var lastErr error

	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		logger.Warn("Telegram send attempt %d/%d failed: %v", i+1, c.maxRetries, err)

		if i == c.maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelayBase * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatMessage renders the digest: a header, then one block per report with
// its status and narratives.
func formatMessage(ds *models.Dataset, reports []analysis.Report, f calfmt.Formatter) string {
	var b strings.Builder
	b.WriteString("📊 *LinkedIn activity digest*\n")
	fmt.Fprintf(&b, "🗓 %s\n\n", escapeMarkdownV2(f.DateTime(ds.LoadedAt())))

	for _, rep := range reports {
		switch rep.Status {
		case analysis.StatusOK:
			fmt.Fprintf(&b, "✅ *%s*\n", escapeMarkdownV2(string(rep.Kind)))
			for _, n := range rep.Narratives {
				fmt.Fprintf(&b, "%s\n", escapeMarkdownV2(n))
			}
		case analysis.StatusNoData:
			fmt.Fprintf(&b, "➖ *%s*: no data\n", escapeMarkdownV2(string(rep.Kind)))
		default:
			fmt.Fprintf(&b, "⚠️ *%s*: %s\n", escapeMarkdownV2(string(rep.Kind)), escapeMarkdownV2(errText(rep.Err)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func errText(err error) string {
	if err == nil {
		return "failed"
	}
	return err.Error()
}

// split cuts text into chunks of at most limit runes, breaking on blank
// lines when possible so report blocks stay whole.
func split(text string, limit int) []string {
	var parts []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if s := strings.TrimRight(cur.String(), "\n"); s != "" {
			parts = append(parts, s)
		}
		cur.Reset()
		curLen = 0
	}

	for _, block := range strings.SplitAfter(text, "\n\n") {
		n := len([]rune(block))
		if curLen+n > limit {
			flush()
		}
		for n > limit {
			r := []rune(block)
			head := limit
			// never leave a dangling escape backslash at the cut
			for head > 1 && r[head-1] == '\\' {
				head--
			}
			parts = append(parts, string(r[:head]))
			block = string(r[head:])
			n = len(r) - head
		}
		cur.WriteString(block)
		curLen += n
	}
	flush()
	return parts
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	// plus the backslash itself

	var b strings.Builder
	for _, char := range text {
		switch char {
		case '\\', '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
