// Package messaging delivers rendered briefs to Telegram. Delivery is an
// optional side channel: a client without credentials is a no-op and send
// failures degrade to plain text before giving up.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"newsbrief/internal/logger"
)

// maxMessageLen is the chunk size for long messages, kept under
// Telegram's 4096-character hard limit with headroom for part headers.
const maxMessageLen = 3800

const sendPause = 300 * time.Millisecond

var htmlTag = regexp.MustCompile(`<[^<]+?>`)

// TelegramClient posts HTML messages to a single chat via the Bot API.
type TelegramClient struct {
	botToken string
	chatID   string
	silent   bool
	client   *http.Client
	apiBase  string
}

// NewTelegramClient builds a client. Empty token or chat ID yields a
// disabled client whose sends report false without calling out.
func NewTelegramClient(botToken, chatID string, silent bool) *TelegramClient {
	return &TelegramClient{
		botToken: botToken,
		chatID:   chatID,
		silent:   silent,
		client:   &http.Client{Timeout: 20 * time.Second},
		apiBase:  "https://api.telegram.org",
	}
}

// Enabled reports whether credentials are configured.
func (t *TelegramClient) Enabled() bool {
	return t != nil && t.botToken != "" && t.chatID != ""
}

type sendPayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview,omitempty"`
	DisableNotification   bool   `json:"disable_notification,omitempty"`
}

// SendHTML delivers an HTML message, splitting it into parts at newline
// boundaries when it exceeds the chunk size. Multi-part messages get a
// "(part i/n)" header. Returns true only if every part was delivered.
func (t *TelegramClient) SendHTML(ctx context.Context, textHTML string) bool {
	if !t.Enabled() {
		logger.Warn("telegram credentials not set, skipping send")
		return false
	}

	parts := splitMessage(textHTML, maxMessageLen)
	okAll := true
	for i, p := range parts {
		hdr := ""
		if len(parts) > 1 {
			hdr = fmt.Sprintf("(part %d/%d)\n", i+1, len(parts))
		}
		if !t.sendPart(ctx, hdr+p) {
			okAll = false
		}
		time.Sleep(sendPause)
	}
	return okAll
}

// splitMessage cuts text into chunks of at most limit characters,
// preferring the last newline before the limit.
func splitMessage(text string, limit int) []string {
	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		// A newline at index 0 would make no progress.
		if cut <= 0 {
			cut = limit
		}
		parts = append(parts, text[:cut])
		text = text[cut:]
	}
	return append(parts, text)
}

// sendPart posts one chunk as HTML, retrying once as plain text with the
// markup stripped if Telegram rejects the parse.
func (t *TelegramClient) sendPart(ctx context.Context, text string) bool {
	payload := sendPayload{
		ChatID:                t.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
		DisableNotification:   t.silent,
	}
	status, body, err := t.post(ctx, payload)
	if err == nil && status == http.StatusOK {
		return true
	}
	logger.Warn("telegram send failed, retrying as plain text",
		"status", status, "body", truncate(body, 400), "error", err)

	plain := sendPayload{ChatID: t.chatID, Text: htmlTag.ReplaceAllString(text, "")}
	status, body, err = t.post(ctx, plain)
	if err != nil || status != http.StatusOK {
		logger.Warn("telegram plain-text fallback failed",
			"status", status, "body", truncate(body, 400), "error", err)
		return false
	}
	return true
}

func (t *TelegramClient) post(ctx context.Context, payload sendPayload) (int, string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, "", err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, string(body), nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
