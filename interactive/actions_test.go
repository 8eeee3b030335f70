package interactive

import (
	"testing"
)

func TestBuildRefOptions(t *testing.T) {
	tests := []struct {
		name       string
		refs       []string
		wantLen    int
		wantLabels []string
		wantValues []string
	}{
		{
			name:       "no refs still offers HEAD",
			refs:       []string{},
			wantLen:    1,
			wantLabels: []string{"HEAD (current)"},
			wantValues: []string{"HEAD"},
		},
		{
			name:       "single branch",
			refs:       []string{"main"},
			wantLen:    2,
			wantLabels: []string{"HEAD (current)", "main"},
			wantValues: []string{"HEAD", "main"},
		},
		{
			name:       "branches and tags",
			refs:       []string{"main", "feature/x", "v1.0.0"},
			wantLen:    4,
			wantLabels: []string{"HEAD (current)", "main", "feature/x", "v1.0.0"},
			wantValues: []string{"HEAD", "main", "feature/x", "v1.0.0"},
		},
		{
			name:       "literal HEAD ref not duplicated",
			refs:       []string{"HEAD", "main"},
			wantLen:    2,
			wantLabels: []string{"HEAD (current)", "main"},
			wantValues: []string{"HEAD", "main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := buildRefOptions(tt.refs)

			if len(options) != tt.wantLen {
				t.Errorf("buildRefOptions() returned %d options, want %d", len(options), tt.wantLen)
				return
			}

			for i, opt := range options {
				// huh.Option stores Key as the display string and Value as the value
				if i < len(tt.wantLabels) && opt.Key != tt.wantLabels[i] {
					t.Errorf("option[%d] label = %q, want %q", i, opt.Key, tt.wantLabels[i])
				}
				if i < len(tt.wantValues) && opt.Value != tt.wantValues[i] {
					t.Errorf("option[%d] value = %q, want %q", i, opt.Value, tt.wantValues[i])
				}
			}
		})
	}
}

func TestBuildRefOptionsPreservesOrder(t *testing.T) {
	options := buildRefOptions([]string{"zeta", "alpha", "mid"})

	expectedOrder := []string{"HEAD", "zeta", "alpha", "mid"}
	if len(options) != len(expectedOrder) {
		t.Fatalf("expected %d options, got %d", len(expectedOrder), len(options))
	}
	for i, want := range expectedOrder {
		if options[i].Value != want {
			t.Errorf("option[%d] = %q, want %q", i, options[i].Value, want)
		}
	}
}
