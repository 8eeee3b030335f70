package ui

import (
	"strings"
	"testing"
)

// TestGetActionHintsBrowse verifies fold hints follow the selected entry
func TestGetActionHintsBrowse(t *testing.T) {
	tests := []struct {
		name         string
		ctx          HelpBarContext
		expectedKeys []string
		absentKeys   []string
	}{
		{
			name:         "plain commit",
			ctx:          HelpBarContext{Mode: ModeBrowse},
			expectedKeys: []string{"↵"},
			absentKeys:   []string{"→", "←", "f"},
		},
		{
			name:         "folded merge",
			ctx:          HelpBarContext{Mode: ModeBrowse, CanUnfold: true},
			expectedKeys: []string{"→", "↵"},
			absentKeys:   []string{"←"},
		},
		{
			name:         "unfolded merge",
			ctx:          HelpBarContext{Mode: ModeBrowse, CanFold: true},
			expectedKeys: []string{"←", "↵"},
			absentKeys:   []string{"→"},
		},
		{
			name:         "link row",
			ctx:          HelpBarContext{Mode: ModeBrowse, IsLink: true, CanFold: true},
			expectedKeys: []string{"f", "←"},
		},
		{
			name:         "pending resolution",
			ctx:          HelpBarContext{Mode: ModeBrowse, Pending: true, CanUnfold: true},
			expectedKeys: []string{"…", "→"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints := getActionHints(tt.ctx)
			keys := make(map[string]bool)
			for _, h := range hints {
				keys[h.Key] = true
			}
			for _, k := range tt.expectedKeys {
				if !keys[k] {
					t.Errorf("Expected hint key %q, got %v", k, hints)
				}
			}
			for _, k := range tt.absentKeys {
				if keys[k] {
					t.Errorf("Did not expect hint key %q, got %v", k, hints)
				}
			}
		})
	}
}

// TestGetActionHintsOverlayModes verifies overlays only offer closing
func TestGetActionHintsOverlayModes(t *testing.T) {
	for _, mode := range []Mode{ModeDetail, ModeHelp} {
		hints := getActionHints(HelpBarContext{Mode: mode})
		if len(hints) != 1 || hints[0].Key != "esc" {
			t.Errorf("Mode %v: expected single esc hint, got %v", mode, hints)
		}
	}

	hints := getActionHints(HelpBarContext{Mode: ModeSearch})
	if len(hints) != 2 {
		t.Errorf("Search mode: expected enter and esc hints, got %v", hints)
	}
}

// TestGetNavigationHintsSearchActive verifies match navigation appears with a term
func TestGetNavigationHintsSearchActive(t *testing.T) {
	without := getNavigationHints(HelpBarContext{Mode: ModeBrowse})
	with := getNavigationHints(HelpBarContext{Mode: ModeBrowse, Searching: true})

	if len(with) != len(without)+1 {
		t.Errorf("Expected one extra hint with active search, got %v vs %v", with, without)
	}
	found := false
	for _, h := range with {
		if h.Key == "n/N" {
			found = true
		}
	}
	if !found {
		t.Error("Expected n/N hint with active search")
	}
}

// TestRenderContextualHelpBarWidth verifies the bar fills the requested width
func TestRenderContextualHelpBarWidth(t *testing.T) {
	bar := RenderContextualHelpBar(HelpBarContext{Mode: ModeBrowse}, 120)
	if bar == "" {
		t.Fatal("Expected non-empty help bar")
	}
	if !strings.Contains(bar, "quit") {
		t.Error("Expected quit hint in help bar")
	}
	if !strings.Contains(bar, "help") {
		t.Error("Expected help hint in help bar")
	}
}

// TestRenderContextualHelpBarNarrow verifies narrow widths degrade without panic
func TestRenderContextualHelpBarNarrow(t *testing.T) {
	bar := RenderContextualHelpBar(HelpBarContext{Mode: ModeBrowse, CanUnfold: true, Searching: true}, 20)
	if bar == "" {
		t.Fatal("Expected non-empty help bar at narrow width")
	}
}
