package extraction

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, func()) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server.Close
}

func TestExtractSuccess(t *testing.T) {
	var gotPath string
	client, cleanup := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("expected file part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"name": "Margherita", "price": 12.50},
				{"name": "Espresso", "price": 2.20}
			],
			"subtotal": 14.70,
			"total": 16.17,
			"confidence_score": 0.7
		}`))
	})
	defer cleanup()

	result := client.Extract(context.Background(), strings.NewReader("fake-image-bytes"), "bill.jpg", "image/jpeg")

	if result.Fallback {
		t.Fatal("expected real extraction, got fallback")
	}
	if gotPath != "/process-image" {
		t.Errorf("path = %q, want /process-image", gotPath)
	}
	if len(result.Items) != 2 || result.Items[0].Name != "Margherita" || result.Items[1].Price != 2.20 {
		t.Errorf("items = %+v", result.Items)
	}
	if result.Bill == nil || result.Bill.ConfidenceScore != 0.7 {
		t.Errorf("bill metadata = %+v", result.Bill)
	}
}

func TestExtractRoutesPDF(t *testing.T) {
	var gotPath string
	client, cleanup := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"items": [{"name": "Soup", "price": 4.50}]}`))
	})
	defer cleanup()

	client.Extract(context.Background(), strings.NewReader("%PDF-"), "bill.pdf", "application/pdf")

	if gotPath != "/process-pdf" {
		t.Errorf("path = %q, want /process-pdf", gotPath)
	}
}

func TestExtractFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "empty item list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"items": []}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
		{
			name: "item with wrong price type",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"items": [{"name": "Soup", "price": "4.50"}]}`))
			},
		},
		{
			name: "item missing name",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"items": [{"price": 4.50}]}`))
			},
		},
		{
			name: "negative price",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"items": [{"name": "Soup", "price": -1}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, cleanup := newTestClient(tt.handler)
			defer cleanup()

			result := client.Extract(context.Background(), strings.NewReader("bytes"), "bill.jpg", "image/png")

			if !result.Fallback {
				t.Fatal("expected fallback result")
			}
			if len(result.Items) != 5 {
				t.Fatalf("fallback items = %d, want 5", len(result.Items))
			}
			if result.Items[0].Name != "Pasta Carbonara" || result.Items[4].Price != 3.99 {
				t.Errorf("unexpected fallback set: %+v", result.Items)
			}
			if result.Bill != nil {
				t.Error("fallback must not carry bill metadata")
			}
		})
	}
}

func TestExtractUnreachableService(t *testing.T) {
	// Point at a closed server so the transport itself fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(server.URL, time.Second)

	result := client.Extract(context.Background(), strings.NewReader("bytes"), "bill.jpg", "image/jpeg")
	if !result.Fallback || len(result.Items) != 5 {
		t.Errorf("expected 5-item fallback, got %+v", result)
	}
}
