package services

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Palette keys accepted in ExportConfig.Colors.
const (
	ColorHeaderBg        = "header_bg"
	ColorHeaderText      = "header_text"
	ColorItemText        = "item_text"
	ColorCategoryBg      = "category_bg"
	ColorCategoryText    = "category_text"
	ColorSubcategoryBg   = "subcategory_bg"
	ColorSubcategoryText = "subcategory_text"
)

// DefaultColors is the report palette used when no override is given.
var DefaultColors = map[string]string{
	ColorHeaderBg:        "#f0f0f0",
	ColorHeaderText:      "#000000",
	ColorItemText:        "#333333",
	ColorCategoryBg:      "#d9ead3",
	ColorCategoryText:    "#000000",
	ColorSubcategoryBg:   "#e0e0e0",
	ColorSubcategoryText: "#000000",
}

// ExportConfig is the optional request body of the export endpoints.
type ExportConfig struct {
	CustomFilename string            `json:"custom_filename"`
	Colors         map[string]string `json:"colors"`
}

// Palette merges user colours over the defaults. Unknown keys are ignored
// and values that are not hex colours fall back to the default. Short #rgb
// values are expanded.
func (c ExportConfig) Palette() map[string]string {
	palette := make(map[string]string, len(DefaultColors))
	for k, v := range DefaultColors {
		palette[k] = v
	}
	for k, v := range c.Colors {
		if _, known := DefaultColors[k]; !known {
			continue
		}
		v = strings.TrimSpace(v)
		if !strings.HasPrefix(v, "#") {
			continue
		}
		if err := validation.Validate(v, validation.Required, is.HexColor); err != nil {
			continue
		}
		palette[k] = expandHex(v)
	}
	return palette
}

// expandHex turns the short #rgb form into #rrggbb.
func expandHex(v string) string {
	if len(v) != 4 {
		return strings.ToLower(v)
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, c := range strings.ToLower(v[1:]) {
		b.WriteRune(c)
		b.WriteRune(c)
	}
	return b.String()
}

// ExportFilename returns the download name for a report: the custom name when
// set, otherwise "<project>_Estimate". Spaces become underscores.
func ExportFilename(projectName, custom, ext string) string {
	base := strings.TrimSpace(custom)
	if base == "" {
		base = projectName + "_Estimate"
	}
	return strings.ReplaceAll(base, " ", "_") + "." + ext
}
