package domain

import "testing"

func strPtr(s string) *string { return &s }

func TestNormalizeSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		sourceType     string
		source         *string
		wantSourceType string
		wantSource     *string
	}{
		{
			name:           "form name in source",
			sourceType:     "Other",
			source:         strPtr("Brochure Download"),
			wantSourceType: "Website",
			wantSource:     strPtr("Brochure Download"),
		},
		{
			name:           "form name in source lowercase",
			sourceType:     "Other",
			source:         strPtr("talk to sales"),
			wantSourceType: "Website",
			wantSource:     strPtr("Talk to Sales"),
		},
		{
			name:           "form name in source with whitespace",
			sourceType:     "Other",
			source:         strPtr("  Request a Demo  "),
			wantSourceType: "Website",
			wantSource:     strPtr("Request a Demo"),
		},
		{
			name:           "legacy form name in source type",
			sourceType:     "General Inquiry",
			source:         nil,
			wantSourceType: "Website",
			wantSource:     strPtr("General Inquiry"),
		},
		{
			name:           "legacy form name uppercase",
			sourceType:     "PRODUCT PROFILE DOWNLOAD",
			source:         nil,
			wantSourceType: "Website",
			wantSource:     strPtr("Product Profile Download"),
		},
		{
			name:           "legacy with website placeholder source",
			sourceType:     "Talk to Sales",
			source:         strPtr("Website"),
			wantSourceType: "Website",
			wantSource:     strPtr("Talk to Sales"),
		},
		{
			name:           "legacy keeps specific source",
			sourceType:     "Talk to Sales",
			source:         strPtr("Campaign X"),
			wantSourceType: "Website",
			wantSource:     strPtr("Campaign X"),
		},
		{
			name:           "non-form source untouched",
			sourceType:     "Referral",
			source:         strPtr("Partner"),
			wantSourceType: "Referral",
			wantSource:     strPtr("Partner"),
		},
		{
			name:           "already normalized",
			sourceType:     "Website",
			source:         strPtr("Brochure Download"),
			wantSourceType: "Website",
			wantSource:     strPtr("Brochure Download"),
		},
		{
			name:           "empty source type",
			sourceType:     "",
			source:         nil,
			wantSourceType: "",
			wantSource:     nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lead := Lead{SourceType: tt.sourceType, Source: tt.source}
			NormalizeSource(&lead)
			if lead.SourceType != tt.wantSourceType {
				t.Errorf("SourceType = %q, want %q", lead.SourceType, tt.wantSourceType)
			}
			switch {
			case tt.wantSource == nil && lead.Source != nil:
				t.Errorf("Source = %q, want nil", *lead.Source)
			case tt.wantSource != nil && lead.Source == nil:
				t.Errorf("Source = nil, want %q", *tt.wantSource)
			case tt.wantSource != nil && *lead.Source != *tt.wantSource:
				t.Errorf("Source = %q, want %q", *lead.Source, *tt.wantSource)
			}
		})
	}
}

func TestNormalizeSourceIdempotent(t *testing.T) {
	t.Parallel()

	lead := Lead{SourceType: "brochure download"}
	NormalizeSource(&lead)
	once := lead
	NormalizeSource(&lead)
	if lead.SourceType != once.SourceType || *lead.Source != *once.Source {
		t.Errorf("second pass changed lead: %+v vs %+v", lead, once)
	}
}
