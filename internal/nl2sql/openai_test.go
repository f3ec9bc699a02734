package nl2sql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStripMarkdownSQL(t *testing.T) {
	got := stripMarkdownSQL("```sql\nSELECT 1;\n```")
	if got != "SELECT 1;" {
		t.Fatalf("stripMarkdownSQL() = %q", got)
	}
}

func TestTranslateParsesFirstChoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("authorization = %q", got)
		}
		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if len(payload.Messages) != 2 {
			t.Fatalf("messages = %d", len(payload.Messages))
		}
		if !strings.Contains(payload.Messages[1].Content, "Table customers: id (integer), first_name (text)") {
			t.Fatalf("user prompt missing schema: %q", payload.Messages[1].Content)
		}
		if !strings.Contains(payload.Messages[1].Content, "list the first 5 customers") {
			t.Fatalf("user prompt missing question: %q", payload.Messages[1].Content)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "```sql\nSELECT * FROM customers LIMIT 5;\n```"}},
			},
		})
	}))
	defer server.Close()

	translator, err := NewOpenAITranslator(OpenAIConfig{BaseURL: server.URL, APIKey: "sk-test", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("NewOpenAITranslator() error = %v", err)
	}

	result, err := translator.Translate(context.Background(), Request{
		Question: "list the first 5 customers",
		Tables: []TableContext{
			{TableName: "customers", Columns: []string{"id (integer)", "first_name (text)"}},
		},
	})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.SQL != "SELECT * FROM customers LIMIT 5;" {
		t.Fatalf("SQL = %q", result.SQL)
	}
	if result.Model != "gpt-4o-mini" {
		t.Fatalf("Model = %q", result.Model)
	}
}

func TestTranslateFailsOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	translator, err := NewOpenAITranslator(OpenAIConfig{BaseURL: server.URL, APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewOpenAITranslator() error = %v", err)
	}
	if _, err := translator.Translate(context.Background(), Request{Question: "anything"}); err == nil {
		t.Fatal("expected error for HTTP 429 response")
	}
}

func TestTranslateFailsOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	translator, err := NewOpenAITranslator(OpenAIConfig{BaseURL: server.URL, APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewOpenAITranslator() error = %v", err)
	}
	if _, err := translator.Translate(context.Background(), Request{Question: "anything"}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestTranslateRequiresQuestion(t *testing.T) {
	translator, err := NewOpenAITranslator(OpenAIConfig{BaseURL: "http://localhost:1", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewOpenAITranslator() error = %v", err)
	}
	if _, err := translator.Translate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error for empty question")
	}
}

func TestNewOpenAITranslatorValidation(t *testing.T) {
	if _, err := NewOpenAITranslator(OpenAIConfig{APIKey: "sk-test"}); err == nil {
		t.Fatal("expected error for missing base URL")
	}
	if _, err := NewOpenAITranslator(OpenAIConfig{BaseURL: "https://api.openai.com"}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
