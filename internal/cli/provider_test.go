package cli

import (
	"errors"
	"testing"
)

func TestParseProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Provider
		wantErr bool
	}{
		{"openai", "openai", OpenAIProvider, false},
		{"gemini", "gemini", GeminiProvider, false},
		{"empty", "", Provider{}, true},
		{"unknown", "deepseek", Provider{}, true},
		{"uppercase_rejected", "OpenAI", Provider{}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseProvider(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseProvider(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidProvider) {
					t.Errorf("ParseProvider(%q) error = %v, want ErrInvalidProvider", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProvider(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseProvider(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestProviderPredicates(t *testing.T) {
	t.Parallel()

	if !OpenAIProvider.IsOpenAI() || OpenAIProvider.IsGemini() {
		t.Error("OpenAIProvider predicates wrong")
	}
	if !GeminiProvider.IsGemini() || GeminiProvider.IsOpenAI() {
		t.Error("GeminiProvider predicates wrong")
	}
	if !(Provider{}).IsZero() {
		t.Error("zero Provider should report IsZero")
	}
	if OpenAIProvider.IsZero() {
		t.Error("OpenAIProvider should not report IsZero")
	}
}

func TestProviderOrDefault(t *testing.T) {
	t.Parallel()

	if got := (Provider{}).OrDefault(); got != OpenAIProvider {
		t.Errorf("zero OrDefault() = %v, want OpenAIProvider", got)
	}
	if got := GeminiProvider.OrDefault(); got != GeminiProvider {
		t.Errorf("GeminiProvider.OrDefault() = %v, want GeminiProvider", got)
	}
}

func TestProviderString(t *testing.T) {
	t.Parallel()

	if OpenAIProvider.String() != "openai" {
		t.Errorf("OpenAIProvider.String() = %q", OpenAIProvider.String())
	}
	if GeminiProvider.String() != "gemini" {
		t.Errorf("GeminiProvider.String() = %q", GeminiProvider.String())
	}
	if (Provider{}).String() != "" {
		t.Errorf("zero Provider.String() = %q, want empty", (Provider{}).String())
	}
}

func TestMustParseProviderPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustParseProvider with invalid name should panic")
		}
	}()
	MustParseProvider("bogus")
}
