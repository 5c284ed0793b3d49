package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientSendSuccess(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true,"id":"msg-1"}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/", APIKey: "secret", DeviceID: "dev-1"}
	resp, err := c.Send(context.Background(), "+8801712345678", "hello")
	if err != nil {
		t.Fatalf("send error: %v", err)
	}
	if resp != `{"success":true,"id":"msg-1"}` {
		t.Fatalf("raw body must be returned verbatim, got %q", resp)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("authorization header %q", gotAuth)
	}
	if gotPath != "/sms/send" {
		t.Fatalf("trailing base slash must not double, path %q", gotPath)
	}
	if gotBody.DeviceID != "dev-1" || gotBody.Phone != "+8801712345678" || gotBody.Message != "hello" {
		t.Fatalf("request body %+v", gotBody)
	}
}

func TestClientSendNon2xxReturnsBodyAndError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "secret", DeviceID: "dev-1"}
	resp, err := c.Send(context.Background(), "+8801712345678", "hello")
	if err == nil {
		t.Fatalf("expected error for status 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error must carry the status, got %v", err)
	}
	if resp != `{"error":"rate limited"}` {
		t.Fatalf("body must still be returned for the audit log, got %q", resp)
	}
}

func TestClientSendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := &Client{BaseURL: srv.URL, APIKey: "secret", DeviceID: "dev-1"}
	if _, err := c.Send(context.Background(), "+8801712345678", "hello"); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestClientSendHonorsContextCancel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Client{BaseURL: srv.URL, APIKey: "secret", DeviceID: "dev-1"}
	if _, err := c.Send(ctx, "+8801712345678", "hello"); err == nil {
		t.Fatalf("expected context cancellation error")
	}
}
