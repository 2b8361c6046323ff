package notification

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/veritlyapp-cell/liah-backend/pkg/logger"
	"github.com/veritlyapp-cell/liah-backend/pkg/metrics"
)

// Message is a delivery-agnostic notification. The dispatcher decides the
// channel (webhook today); the engine only supplies recipient and payload.
type Message struct {
	Event          string                 `json:"event"`
	RequisitionID  string                 `json:"requisitionId"`
	RecipientEmail string                 `json:"recipientEmail,omitempty"`
	RecipientRoles []string               `json:"recipientRoles,omitempty"`
	Subject        string                 `json:"subject"`
	Body           string                 `json:"body"`
	Payload        map[string]interface{} `json:"payload,omitempty"`
}

// Notifier delivers a message over one channel.
type Notifier interface {
	Send(msg Message) error
}

// WebhookNotifier posts messages to a configured endpoint, signed with an
// HMAC-SHA256 of timestamp+secret so the receiver can verify origin.
type WebhookNotifier struct {
	WebhookURL string
	Secret     string
	client     *http.Client
}

func NewWebhookNotifier(webhookURL, secret string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		WebhookURL: webhookURL,
		Secret:     secret,
		client:     &http.Client{Timeout: timeout},
	}
}

func (n *WebhookNotifier) Send(msg Message) error {
	timestamp := time.Now().Unix()

	envelope := map[string]interface{}{
		"timestamp": fmt.Sprintf("%d", timestamp),
		"message":   msg,
	}
	if n.Secret != "" {
		envelope["sign"] = n.genSign(timestamp)
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	resp, err := n.client.Post(n.WebhookURL, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (n *WebhookNotifier) genSign(timestamp int64) string {
	stringToSign := fmt.Sprintf("%d\n%s", timestamp, n.Secret)
	h := hmac.New(sha256.New, []byte(stringToSign))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Manager fans messages out to all configured notifiers asynchronously.
// Delivery is best-effort: failures are logged and counted, never
// propagated, because the requisition's durable state is the source of
// truth.
type Manager struct {
	mu        sync.RWMutex
	notifiers []Notifier
	enabled   bool
}

func NewManager() *Manager {
	return &Manager{enabled: true}
}

func (m *Manager) AddNotifier(n Notifier) {
	m.mu.Lock()
	m.notifiers = append(m.notifiers, n)
	m.mu.Unlock()
}

func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	m.enabled = enabled
	m.mu.Unlock()
}

// Dispatch sends the message on a background goroutine and returns
// immediately.
func (m *Manager) Dispatch(msg Message) {
	m.mu.RLock()
	enabled := m.enabled
	notifiers := make([]Notifier, len(m.notifiers))
	copy(notifiers, m.notifiers)
	m.mu.RUnlock()

	if !enabled || len(notifiers) == 0 {
		return
	}

	go func() {
		for _, n := range notifiers {
			if err := n.Send(msg); err != nil {
				metrics.NotificationFailuresTotal.Inc()
				logger.Warnf("Notification dispatch failed (event=%s, requisition=%s): %v",
					msg.Event, msg.RequisitionID, err)
			}
		}
	}()
}
