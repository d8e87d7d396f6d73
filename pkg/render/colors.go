package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Palette maps label names to board color names. A nil Palette is valid and
// resolves every label through the built-in defaults.
type Palette map[string]string

const fallbackColor = "blue"

var defaultColors = map[string]string{
	"Priority: Critical":       "red",
	"Priority: High":           "orange",
	"Priority: Medium":         "yellow",
	"Priority: Low":            "green",
	"Type: Setup":              "sky",
	"Type: Development":        "blue",
	"Type: Testing":            "lime",
	"Type: Documentation":      "black",
	"Type: Integration":        "purple",
	"Type: UI/UX":              "pink",
	"Type: Architecture":       "black",
	"App: Expo":                "blue",
	"App: React Native":        "blue",
	"App: iOS":                 "black",
	"App: Android":             "lime",
	"App: Mobile":              "sky",
	"Frontend: React":          "blue",
	"Frontend: TypeScript":     "sky",
	"Frontend: JavaScript":     "yellow",
	"Backend: Firebase":        "purple",
	"Backend: Node.js":         "green",
	"Backend: Python":          "green",
	"Complexity: Medium":       "yellow",
	"Complexity: Complex":      "orange",
	"Complexity: Very Complex": "red",
	"Phase: Foundation":        "purple",
	"Phase: Development":       "blue",
}

// ColorFor resolves a label to a color name, preferring palette overrides,
// then the built-in defaults, then blue.
func (p Palette) ColorFor(label string) string {
	if c, ok := p[label]; ok {
		return c
	}
	if c, ok := defaultColors[label]; ok {
		return c
	}
	return fallbackColor
}

// LoadPalette reads label color overrides from a YAML file mapping label
// names to color names.
func LoadPalette(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid palette YAML: %w", err)
	}
	return p, nil
}
