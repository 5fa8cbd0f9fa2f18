package domain

import (
	"sort"
	"testing"
)

func TestNormalizeFormType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"Product-Profile", "product_profile"},
		{"product_profile", "product_profile"},
		{"TALK", "talk"},
		{" demo ", "demo"},
		{"talk-to-sales", "talk_to_sales"},
	}
	for _, tt := range tests {
		tt := tt
		if got := NormalizeFormType(tt.input); got != tt.want {
			t.Errorf("NormalizeFormType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormTypeVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []string
	}{
		{input: "general", want: []string{"contact", "general"}},
		{input: "contact", want: []string{"contact", "general"}},
		{input: "talk", want: []string{"talk", "talk_to_sales"}},
		{input: "talk_to_sales", want: []string{"talk", "talk_to_sales"}},
		{input: "Product-Profile", want: []string{"product-profile", "product_profile"}},
		{input: "demo", want: []string{"demo"}},
		{input: "custom_form", want: []string{"custom_form"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got := append([]string(nil), FormTypeVariants(tt.input)...)
			sort.Strings(got)
			if len(got) != len(tt.want) {
				t.Fatalf("FormTypeVariants(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FormTypeVariants(%q) = %v, want %v", tt.input, got, tt.want)
					break
				}
			}
		})
	}
}

func TestSubmissionSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		formType string
		want     string
	}{
		{"contact", "General Inquiry"},
		{"general", "General Inquiry"},
		{"talk", "Talk to Sales"},
		{"talk_to_sales", "Talk to Sales"},
		{"brochure", "Brochure Download"},
		{"product_profile", "Product Profile Download"},
		{"Product-Profile", "Product Profile Download"},
		{"demo", "Request a Demo"},
		{"newsletter", "Website Form"},
		{"anything_else", "Website Form"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.formType, func(t *testing.T) {
			t.Parallel()
			if got := SubmissionSource(tt.formType); got != tt.want {
				t.Errorf("SubmissionSource(%q) = %q, want %q", tt.formType, got, tt.want)
			}
		})
	}
}
