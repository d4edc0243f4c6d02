package export

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookExport(t *testing.T) {
	var (
		gotMethod string
		gotUA     string
		gotType   string
		gotSig    string
		gotBody   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotUA = r.Header.Get("User-Agent")
		gotType = r.Header.Get("Content-Type")
		gotSig = r.Header.Get("X-Signature-256")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		gotBody = body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	run := sampleRun()
	trends := sampleTrends()

	wh := NewWebhook(srv.URL, "topsecret")
	if err := wh.Export(context.Background(), run, trends); err != nil {
		t.Fatalf("Export: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotUA != "hashradar/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
	if gotType != "application/json" {
		t.Errorf("content type = %q", gotType)
	}

	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if gotSig != want {
		t.Errorf("signature = %q, want %q", gotSig, want)
	}

	var payload envelope
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Run == nil || payload.Run.ID != run.ID {
		t.Errorf("payload run = %+v", payload.Run)
	}
	if len(payload.Trends) != len(trends) {
		t.Errorf("payload trends = %d, want %d", len(payload.Trends), len(trends))
	}
	if payload.Trends[0].Hashtag != "ai" {
		t.Errorf("first trend = %q", payload.Trends[0].Hashtag)
	}
}

func TestWebhookExportNoSecret(t *testing.T) {
	signed := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Signature-256") != "" {
			signed = true
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "")
	if err := wh.Export(context.Background(), sampleRun(), sampleTrends()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if signed {
		t.Error("request carried a signature without a secret")
	}
}

func TestWebhookExportServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "")
	err := wh.Export(context.Background(), sampleRun(), sampleTrends())
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
}
