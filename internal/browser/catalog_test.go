package browser

import (
	"reflect"
	"testing"
)

func TestAll(t *testing.T) {
	variants := All()
	if len(variants) != 2 {
		t.Fatalf("All() returned %d variants, want 2", len(variants))
	}
	if variants[0] != VariantChrome || variants[1] != VariantChromium {
		t.Errorf("All() = %v, want [chrome chromium]", variants)
	}
}

func TestLookup(t *testing.T) {
	cfg, ok := Lookup(VariantChrome)
	if !ok {
		t.Fatal("Lookup(chrome) returned ok=false")
	}
	if cfg.DisplayName != "Google Chrome" {
		t.Errorf("DisplayName = %q, want %q", cfg.DisplayName, "Google Chrome")
	}

	if _, ok := Lookup(Variant("netscape")); ok {
		t.Error("Lookup(netscape) should return ok=false")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   Variant
		wantOK bool
	}{
		{"chrome", VariantChrome, true},
		{"Chrome", VariantChrome, true},
		{"CHROMIUM", VariantChromium, true},
		{"  chromium  ", VariantChromium, true},
		{"firefox", "", false},
		{"", "", false},
		{"chrom", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveTargets(t *testing.T) {
	tests := []struct {
		name         string
		requested    []Variant
		requestedAll bool
		autoDetect   bool
		fallback     []Variant
		want         []Variant
	}{
		{
			name:         "all_expands",
			requestedAll: true,
			want:         []Variant{VariantChrome, VariantChromium},
		},
		{
			name:      "explicit_request_wins",
			requested: []Variant{VariantChromium},
			want:      []Variant{VariantChromium},
		},
		{
			name:         "explicit_all_beats_explicit_list",
			requested:    []Variant{VariantChromium},
			requestedAll: true,
			want:         []Variant{VariantChrome, VariantChromium},
		},
		{
			name:     "fallback_when_nothing_requested",
			fallback: []Variant{VariantChrome},
			want:     []Variant{VariantChrome},
		},
		{
			name: "nil_fallback",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTargets(tt.requested, tt.requestedAll, tt.autoDetect, tt.fallback)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveTargets() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectInstalledNeverErrors(t *testing.T) {
	// Detection on a machine with zero matching browsers must return
	// an empty set, not fail. We can't control the host machine here,
	// so assert only that the result is a subset of the catalog.
	installed := DetectInstalled()
	for _, v := range installed {
		if _, ok := Lookup(v); !ok {
			t.Errorf("DetectInstalled() returned unknown variant %q", v)
		}
	}
}

func TestDetectFallbackIncludesEveryVariant(t *testing.T) {
	// When detection yields nothing, target resolution must fall back
	// to every enumerated variant.
	got := ResolveTargets(nil, false, true, nil)
	if len(got) == 0 {
		t.Fatal("auto-detect resolution returned no targets")
	}
	if len(got) < len(All()) {
		// Detection found a real browser on this machine; that subset
		// is also a valid outcome.
		for _, v := range got {
			if _, ok := Lookup(v); !ok {
				t.Errorf("unknown variant %q", v)
			}
		}
	}
}
