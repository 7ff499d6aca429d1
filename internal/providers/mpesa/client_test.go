package mpesa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"communityaid/internal/domain"
)

func TestSTKPushSendsPayload(t *testing.T) {
	var got pushPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment/mpesa-stk-push/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"invoice":{"invoice_id":"INV-1","state":"PENDING"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "secret", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	resp, err := client.STKPush(context.Background(), PushRequest{Amount: 500, Phone: "254712345678", Reference: "donation-1-7-x", Currency: "KES"})
	if err != nil {
		t.Fatalf("stk push: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Status)
	}
	if string(resp.Body) != `{"invoice":{"invoice_id":"INV-1","state":"PENDING"}}` {
		t.Fatalf("body was altered: %s", resp.Body)
	}
	if auth != "Bearer secret" {
		t.Fatalf("authorization = %q", auth)
	}
	want := pushPayload{Amount: 500, PhoneNumber: "254712345678", APIRef: "donation-1-7-x", Currency: "KES"}
	if got != want {
		t.Fatalf("payload = %+v, want %+v", got, want)
	}
}

func TestSTKPushDeclineIsAResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"detail":"insufficient balance"}]}`))
	}))
	defer srv.Close()

	client, _ := NewClient(Options{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	resp, err := client.STKPush(context.Background(), PushRequest{Amount: 1, Phone: "254712345678"})
	if err != nil {
		t.Fatalf("decline should not error: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Status)
	}
}

func TestSTKPushUpstreamFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"detail":"down"}`))
		},
		"non json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>maintenance</html>"))
		},
		"timeout": func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			httpClient := srv.Client()
			httpClient.Timeout = 50 * time.Millisecond
			client, _ := NewClient(Options{APIKey: "k", BaseURL: srv.URL, HTTPClient: httpClient})
			_, err := client.STKPush(context.Background(), PushRequest{Amount: 1, Phone: "254712345678"})
			if !errors.Is(err, domain.ErrUpstream) {
				t.Fatalf("expected upstream error, got %v", err)
			}
			var uerr *domain.UpstreamError
			if !errors.As(err, &uerr) || uerr.Service != "mpesa" {
				t.Fatalf("expected mpesa UpstreamError, got %#v", err)
			}
		})
	}
}

func TestSTKPushWithoutCredentials(t *testing.T) {
	client, _ := NewClient(Options{})
	_, err := client.STKPush(context.Background(), PushRequest{Amount: 1})
	if !errors.Is(err, ErrMissingAPIKey) || !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected missing key upstream error, got %v", err)
	}
}
