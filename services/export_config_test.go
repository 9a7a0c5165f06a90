package services

import "testing"

func TestExportConfig_PaletteDefaults(t *testing.T) {
	p := ExportConfig{}.Palette()

	if len(p) != len(DefaultColors) {
		t.Fatalf("palette has %d keys, want %d", len(p), len(DefaultColors))
	}
	for k, v := range DefaultColors {
		if p[k] != v {
			t.Errorf("%s = %q, want %q", k, p[k], v)
		}
	}
}

func TestExportConfig_PaletteOverrides(t *testing.T) {
	cfg := ExportConfig{Colors: map[string]string{
		ColorHeaderBg:      "#112233",
		ColorCategoryBg:    "#ABC",
		ColorCategoryText:  "red",
		ColorSubcategoryBg: "",
		"unknown_key":      "#ffffff",
	}}

	p := cfg.Palette()

	if p[ColorHeaderBg] != "#112233" {
		t.Errorf("header_bg = %q, want #112233", p[ColorHeaderBg])
	}
	if p[ColorCategoryBg] != "#aabbcc" {
		t.Errorf("category_bg = %q, want expanded #aabbcc", p[ColorCategoryBg])
	}
	if p[ColorCategoryText] != DefaultColors[ColorCategoryText] {
		t.Errorf("invalid category_text should fall back, got %q", p[ColorCategoryText])
	}
	if p[ColorSubcategoryBg] != DefaultColors[ColorSubcategoryBg] {
		t.Errorf("blank subcategory_bg should fall back, got %q", p[ColorSubcategoryBg])
	}
	if _, ok := p["unknown_key"]; ok {
		t.Error("unknown keys should be dropped")
	}
}

func TestExportConfig_PaletteDoesNotMutateDefaults(t *testing.T) {
	ExportConfig{Colors: map[string]string{ColorHeaderBg: "#000000"}}.Palette()

	if DefaultColors[ColorHeaderBg] != "#f0f0f0" {
		t.Errorf("DefaultColors mutated: %q", DefaultColors[ColorHeaderBg])
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name    string
		project string
		custom  string
		ext     string
		want    string
	}{
		{"default", "Clinic Fit Out", "", "pdf", "Clinic_Fit_Out_Estimate.pdf"},
		{"custom", "Clinic", "Bid Set 2", "xlsx", "Bid_Set_2.xlsx"},
		{"blank custom", "Clinic", "   ", "xlsx", "Clinic_Estimate.xlsx"},
		{"custom trimmed", "Clinic", "  Final  ", "pdf", "Final.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExportFilename(tt.project, tt.custom, tt.ext); got != tt.want {
				t.Errorf("ExportFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHexToColor(t *testing.T) {
	c := hexToColor("#d9ead3")
	if c.Red != 0xd9 || c.Green != 0xea || c.Blue != 0xd3 {
		t.Errorf("hexToColor(#d9ead3) = %+v", c)
	}

	black := hexToColor("bogus")
	if black.Red != 0 || black.Green != 0 || black.Blue != 0 {
		t.Errorf("malformed hex should be black, got %+v", black)
	}
}
