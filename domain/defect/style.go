package defect

// Style describes how the rendering collaborator should draw one defect
// type. The core never consults it; it is carried alongside the computed
// data so the renderer does not need its own global color map.
type Style struct {
	Color string `json:"color"`
}

// StyleConfig maps defect-type labels to marker styles.
type StyleConfig map[string]Style

// FallbackStyle is used for defect types with no configured entry; the
// vocabulary is open, so unknown labels are expected.
var FallbackStyle = Style{Color: "#808080"}

// DefaultStyles covers the defect vocabulary of the panel inspection line.
func DefaultStyles() StyleConfig {
	return StyleConfig{
		"Nick":            {Color: "magenta"},
		"Short":           {Color: "red"},
		"Missing Feature": {Color: "lime"},
		"Cut":             {Color: "cyan"},
		"Fine Short":      {Color: "#DDA0DD"},
		"Pad Violation":   {Color: "grey"},
		"Island":          {Color: "orange"},
		"Cut/Short":       {Color: "#00BFFF"},
		"Nick/Protrusion": {Color: "yellow"},
	}
}

// Lookup returns the style for a defect type, falling back for labels
// outside the configured vocabulary.
func (c StyleConfig) Lookup(defectType string) Style {
	if s, ok := c[defectType]; ok {
		return s
	}
	return FallbackStyle
}
