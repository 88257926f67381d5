package promptgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Presets holds the total mapping from each style, enhancement mode and
// camera angle token to its fixed text expansion. The defaults are
// compiled in; a YAML file can override individual phrases without
// adding or removing tokens.
type Presets struct {
	Styles map[Style]string
	Modes  map[EnhancementMode]string
	Angles map[CameraAngle]string
}

// DefaultPresets returns the built-in expansion phrases.
func DefaultPresets() Presets {
	return Presets{
		Styles: map[Style]string{
			StyleRealistic: "photorealistic, real world textures",
			Style3DRender:  "3D render, unreal engine style",
			StyleAnime:     "anime style, vibrant colors",
			StyleCyberpunk: "cyberpunk theme, neon lighting",
			StyleCinematic: "dramatic lighting, movie scene composition",
			StyleFantasy:   "fantasy art, ethereal atmosphere, intricate detail",
		},
		Modes: map[EnhancementMode]string{
			ModeQualityBoost: "ultra detailed, high quality, cinematic lighting, realistic shadows",
			ModeDetailBoost:  "extremely detailed environment, volumetric lighting",
			ModeUltraDetail:  "hyper detailed environment, global illumination, 8k resolution",
		},
		Angles: map[CameraAngle]string{
			AngleCloseUp:    "Close-up",
			AngleMediumShot: "Medium shot",
			AngleWide:       "Wide angle",
			AngleUltraWide:  "Ultra wide angle",
			AngleFullBody:   "Full body",
		},
	}
}

// presetsFile is the YAML shape for phrase overrides.
type presetsFile struct {
	Styles map[string]string `yaml:"styles"`
	Modes  map[string]string `yaml:"enhancement_modes"`
	Angles map[string]string `yaml:"camera_angles"`
}

// LoadPresetsFile reads phrase overrides from a YAML file and merges them
// over the defaults. Only known tokens may be overridden: the preset sets
// are closed, so an unknown token in the file is an error rather than a
// new entry.
//
// Example file:
//
//	styles:
//	  Anime: "anime style, cel shading, vivid palette"
//	enhancement_modes:
//	  Ultra Detail: "hyper detailed, 8k, ray traced lighting"
func LoadPresetsFile(path string) (Presets, error) {
	presets := DefaultPresets()

	data, err := os.ReadFile(path)
	if err != nil {
		return Presets{}, fmt.Errorf("promptgen: reading presets file: %w", err)
	}

	var file presetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Presets{}, fmt.Errorf("promptgen: parsing presets file: %w", err)
	}

	for token, phrase := range file.Styles {
		style := Style(token)
		if _, ok := presets.Styles[style]; !ok {
			return Presets{}, fmt.Errorf("promptgen: unknown style %q in presets file", token)
		}
		presets.Styles[style] = phrase
	}
	for token, phrase := range file.Modes {
		mode := EnhancementMode(token)
		if _, ok := presets.Modes[mode]; !ok {
			return Presets{}, fmt.Errorf("promptgen: unknown enhancement mode %q in presets file", token)
		}
		presets.Modes[mode] = phrase
	}
	for token, phrase := range file.Angles {
		angle := CameraAngle(token)
		if _, ok := presets.Angles[angle]; !ok {
			return Presets{}, fmt.Errorf("promptgen: unknown camera angle %q in presets file", token)
		}
		presets.Angles[angle] = phrase
	}

	return presets, nil
}

// StyleTokens returns the style tokens in display order.
func (p Presets) StyleTokens() []Style {
	return []Style{
		StyleRealistic,
		Style3DRender,
		StyleAnime,
		StyleCyberpunk,
		StyleCinematic,
		StyleFantasy,
	}
}

// ModeTokens returns the enhancement mode tokens in display order.
func (p Presets) ModeTokens() []EnhancementMode {
	return []EnhancementMode{
		ModeQualityBoost,
		ModeDetailBoost,
		ModeUltraDetail,
	}
}

// AngleTokens returns the camera angle tokens in display order.
func (p Presets) AngleTokens() []CameraAngle {
	return []CameraAngle{
		AngleCloseUp,
		AngleMediumShot,
		AngleWide,
		AngleUltraWide,
		AngleFullBody,
	}
}
