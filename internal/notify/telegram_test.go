package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
)

func buyActivity() *domain.Activity {
	return &domain.Activity{
		Type:      domain.ActivityBuy,
		Signature: "5abc",
		Slot:      1000,
		Wallet:    "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
		Program:   "Jupiter",
		SourceToken: &domain.TokenBalanceChange{
			Mint:   domain.NativeMint,
			Amount: 0.5,
		},
		DestToken: &domain.TokenBalanceChange{
			Mint:   "mintM",
			Amount: 50,
		},
	}
}

func TestTelegramNotifySendsMessage(t *testing.T) {
	var gotPath, gotText, gotChatID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotText = r.FormValue("text")
		gotChatID = r.FormValue("chat_id")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier("test-token", "12345", WithTelegramBaseURL(server.URL))

	if err := n.Notify(context.Background(), buyActivity()); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotChatID != "12345" {
		t.Errorf("unexpected chat_id %s", gotChatID)
	}
	for _, want := range []string{"BUY", "Jupiter", "solscan.io/tx/5abc", "dexscreener.com/solana/mintM"} {
		if !strings.Contains(gotText, want) {
			t.Errorf("message missing %q:\n%s", want, gotText)
		}
	}
}

func TestTelegramNotifyAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier("test-token", "12345", WithTelegramBaseURL(server.URL))

	err := n.Notify(context.Background(), buyActivity())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("expected API description in error, got %v", err)
	}
}

func TestLogNotifierNeverFails(t *testing.T) {
	if err := (LogNotifier{}).Notify(context.Background(), buyActivity()); err != nil {
		t.Fatalf("notify: %v", err)
	}
}
