package processing

// Preset is a named bundle of tone, pacing, visual-aesthetic and duration
// defaults selectable by the requester.
type Preset struct {
	Name      string `json:"name"`
	Tone      string `json:"tone"`
	Pacing    string `json:"pacing"`
	Aesthetic string `json:"aesthetic"`
	// Duration is the total video length in seconds.
	Duration int `json:"duration"`
	// TwoClip selects the split flow: two sequential half-duration
	// generation jobs stitched together, working around the external
	// duration ceiling.
	TwoClip bool `json:"two_clip"`
}

var presets = map[string]Preset{
	"product-demo": {
		Name:      "product-demo",
		Tone:      "confident",
		Pacing:    "steady",
		Aesthetic: "clean studio lighting, modern UI close-ups",
		Duration:  24,
		TwoClip:   true,
	},
	"quick-teaser": {
		Name:      "quick-teaser",
		Tone:      "energetic",
		Pacing:    "fast",
		Aesthetic: "punchy cuts, bold typography overlays",
		Duration:  8,
	},
	"social-promo": {
		Name:      "social-promo",
		Tone:      "friendly",
		Pacing:    "upbeat",
		Aesthetic: "lifestyle shots, handheld feel",
		Duration:  12,
	},
	"walkthrough": {
		Name:      "walkthrough",
		Tone:      "calm",
		Pacing:    "measured",
		Aesthetic: "screen recordings, smooth camera glides",
		Duration:  45,
	},
}

// LookupPreset returns the preset for a name, or false for unknown names.
func LookupPreset(name string) (Preset, bool) {
	preset, ok := presets[name]
	return preset, ok
}

// PresetNames lists the valid preset names for error messages and the
// plan catalog endpoint.
func PresetNames() []string {
	return []string{"product-demo", "quick-teaser", "social-promo", "walkthrough"}
}
