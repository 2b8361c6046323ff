package notification

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestWebhookSendSignedEnvelope(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode envelope: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "s3cret", 5*time.Second)
	err := n.Send(Message{Event: "requisition.approved", RequisitionID: "rq-1", Subject: "Approved"})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}

	ts, ok := received["timestamp"].(string)
	if !ok || ts == "" {
		t.Fatalf("envelope missing timestamp: %v", received)
	}
	sign, ok := received["sign"].(string)
	if !ok || sign == "" {
		t.Fatalf("envelope missing signature: %v", received)
	}

	// Recompute the signature the way a receiver would.
	var tsVal int64
	fmt.Sscanf(ts, "%d", &tsVal)
	h := hmac.New(sha256.New, []byte(fmt.Sprintf("%d\n%s", tsVal, "s3cret")))
	if want := base64.StdEncoding.EncodeToString(h.Sum(nil)); sign != want {
		t.Errorf("signature = %q, expected %q", sign, want)
	}

	msg, ok := received["message"].(map[string]interface{})
	if !ok || msg["requisitionId"] != "rq-1" {
		t.Errorf("envelope message = %v", received["message"])
	}
}

func TestWebhookSendWithoutSecretOmitsSignature(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "", 5*time.Second)
	if err := n.Send(Message{Event: "requisition.created"}); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if _, present := received["sign"]; present {
		t.Errorf("unsigned notifier produced a signature")
	}
}

func TestWebhookSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "", 5*time.Second)
	if err := n.Send(Message{Event: "requisition.created"}); err == nil {
		t.Errorf("Send() swallowed a 502 response")
	}
}

type recordingNotifier struct {
	mu   sync.Mutex
	got  []Message
	done chan struct{}
}

func (r *recordingNotifier) Send(msg Message) error {
	r.mu.Lock()
	r.got = append(r.got, msg)
	r.mu.Unlock()
	close(r.done)
	return nil
}

func TestManagerDispatchAsync(t *testing.T) {
	rec := &recordingNotifier{done: make(chan struct{})}
	m := NewManager()
	m.AddNotifier(rec)

	m.Dispatch(Message{Event: "requisition.rejected", RequisitionID: "rq-9"})

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("Dispatch never reached the notifier")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.got) != 1 || rec.got[0].RequisitionID != "rq-9" {
		t.Errorf("notifier received %+v", rec.got)
	}
}

func TestManagerDisabled(t *testing.T) {
	rec := &recordingNotifier{done: make(chan struct{})}
	m := NewManager()
	m.AddNotifier(rec)
	m.SetEnabled(false)

	m.Dispatch(Message{Event: "requisition.created"})

	select {
	case <-rec.done:
		t.Errorf("disabled manager still dispatched")
	case <-time.After(100 * time.Millisecond):
	}
}
