// Package promptgen builds validated generation requests from raw user
// input. It applies style presets, optional enhancement modes and camera
// angles as fixed text expansions, and clamps numeric parameters to their
// documented bounds. All transformations are pure string concatenation;
// no text understanding is involved.
package promptgen

import "fmt"

// Style is a named preset that biases output toward an artistic style.
// Each style maps to exactly one fixed suffix phrase; unknown tokens fail
// validation.
type Style string

// The closed set of style presets.
const (
	StyleRealistic Style = "Realistic"
	Style3DRender  Style = "3D Render"
	StyleAnime     Style = "Anime"
	StyleCyberpunk Style = "Cyberpunk"
	StyleCinematic Style = "Cinematic"
	StyleFantasy   Style = "Fantasy"
)

// EnhancementMode is a named transformation that appends quality-boosting
// phrases to the prompt. At most one mode may be active per request.
type EnhancementMode string

// The closed set of enhancement modes.
const (
	ModeQualityBoost EnhancementMode = "Quality Boost"
	ModeDetailBoost  EnhancementMode = "Detail Boost"
	ModeUltraDetail  EnhancementMode = "Ultra Detail"
)

// CameraAngle is an optional framing hint prepended to the prompt.
type CameraAngle string

// The closed set of camera angles.
const (
	AngleCloseUp    CameraAngle = "Close-up"
	AngleMediumShot CameraAngle = "Medium shot"
	AngleWide       CameraAngle = "Wide angle"
	AngleUltraWide  CameraAngle = "Ultra wide angle"
	AngleFullBody   CameraAngle = "Full body"
)

// Resolution is a width×height pair. Only pairs from AllowedResolutions
// are accepted.
type Resolution struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// String returns the resolution in "WxH" form.
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// AllowedResolutions is the fixed set of resolution pairs the remote
// model accepts from this application.
var AllowedResolutions = []Resolution{
	{512, 512},
	{512, 768},
	{768, 512},
	{768, 768},
	{1024, 1024},
}

// DefaultResolution is used when the caller does not pick a resolution.
var DefaultResolution = Resolution{768, 768}

// Parameter bounds. Non-zero values outside these ranges are clamped;
// zero values take the defaults.
const (
	MinSteps     = 20
	MaxSteps     = 100
	DefaultSteps = 30

	MinGuidance     = 1.0
	MaxGuidance     = 20.0
	DefaultGuidance = 8.5

	MinImages     = 1
	MaxImages     = 4
	DefaultImages = 1
)

// GenerationRequest is a validated, ready-to-send request for the remote
// inference endpoint. Create one via Builder.Build; a hand-constructed
// request bypasses validation.
type GenerationRequest struct {
	// Prompt is the final enhanced prompt sent to the model.
	Prompt string `json:"prompt"`

	// UserPrompt is the original text the user typed, kept for display.
	UserPrompt string `json:"user_prompt"`

	// NegativePrompt describes elements to exclude from the image.
	NegativePrompt string `json:"negative_prompt,omitempty"`

	// Style is the preset that was applied to the prompt.
	Style Style `json:"style"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// Steps is the number of inference steps (MinSteps–MaxSteps).
	Steps int `json:"steps"`

	// GuidanceScale controls prompt adherence (MinGuidance–MaxGuidance).
	GuidanceScale float64 `json:"guidance_scale"`

	// NumImages is how many images to generate (MinImages–MaxImages).
	NumImages int `json:"num_images"`
}

// ValidationError reports invalid user input, naming the offending field
// so the UI can point at it. Recoverable by re-editing the form.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError checks whether err is a *ValidationError.
func IsValidationError(err error) (*ValidationError, bool) {
	if vErr, ok := err.(*ValidationError); ok {
		return vErr, true
	}
	return nil, false
}
