package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Submission is a website form submission awaiting triage or conversion.
type Submission struct {
	ID        uuid.UUID
	FormType  string
	Name      string
	Email     *string
	Company   *string
	Status    SubmissionStatus
	LeadID    *uuid.UUID
	Data      map[string]any
	Submitted time.Time
}

// NormalizeFormType lowercases a form type and folds hyphens to
// underscores, so "Product-Profile" and "product_profile" compare equal.
func NormalizeFormType(formType string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(formType)), "-", "_")
}

// formTypeAliases groups the spellings each form type is known by.
// Lookups go through NormalizeFormType first, so only underscore forms
// appear here.
var formTypeAliases = map[string][]string{
	"general":         {"general", "contact"},
	"contact":         {"general", "contact"},
	"talk":            {"talk", "talk_to_sales"},
	"talk_to_sales":   {"talk", "talk_to_sales"},
	"product_profile": {"product_profile", "product-profile"},
	"demo":            {"demo"},
	"brochure":        {"brochure"},
	"newsletter":      {"newsletter"},
}

// FormTypeVariants returns every stored spelling matching formType, for
// filtering submissions by type. Unknown types match only themselves.
func FormTypeVariants(formType string) []string {
	norm := NormalizeFormType(formType)
	if variants, ok := formTypeAliases[norm]; ok {
		return variants
	}
	return []string{norm}
}

// formTypeSources maps a normalized form type to the lead source name
// used when converting a submission into a lead.
var formTypeSources = map[string]string{
	"contact":         "General Inquiry",
	"general":         "General Inquiry",
	"talk":            "Talk to Sales",
	"talk_to_sales":   "Talk to Sales",
	"brochure":        "Brochure Download",
	"product_profile": "Product Profile Download",
	"demo":            "Request a Demo",
}

// SubmissionSource resolves the lead source for a form type, falling
// back to "Website Form" for types without a dedicated name.
func SubmissionSource(formType string) string {
	if src, ok := formTypeSources[NormalizeFormType(formType)]; ok {
		return src
	}
	return "Website Form"
}

// NewsletterSubscriber is an email captured by the newsletter form.
type NewsletterSubscriber struct {
	ID           uuid.UUID
	Email        string
	Active       bool
	SubscribedAt time.Time
}
