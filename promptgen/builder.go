package promptgen

import (
	"strconv"
	"strings"
)

// Input is the raw form input for a generation. String fields carry the
// user's tokens verbatim; numeric zero values mean "not provided" and
// take the documented defaults.
type Input struct {
	Prompt          string
	NegativePrompt  string
	Style           string
	EnhancementMode string // optional
	CameraAngle     string // optional
	Width           int
	Height          int
	Steps           int
	GuidanceScale   float64
	NumImages       int
}

// Builder turns raw user input into a validated GenerationRequest.
// It is a pure transformation with no side effects, safe for concurrent
// use once constructed.
type Builder struct {
	presets         Presets
	defaultNegative string
}

// NewBuilder creates a Builder with the given presets. defaultNegative is
// applied when the user leaves the negative prompt empty; pass "" to send
// no negative prompt by default.
func NewBuilder(presets Presets, defaultNegative string) *Builder {
	return &Builder{
		presets:         presets,
		defaultNegative: defaultNegative,
	}
}

// Build validates the input and produces the final GenerationRequest.
//
// Validation rules:
//   - empty prompt → ValidationError("prompt")
//   - unknown style/mode/angle token → ValidationError naming the field
//   - resolution pair not in AllowedResolutions → ValidationError("resolution")
//
// Clamping rules (documented, never silently out-of-range):
//   - steps clamped to [MinSteps, MaxSteps], zero → DefaultSteps
//   - guidance clamped to [MinGuidance, MaxGuidance], zero → DefaultGuidance
//   - image count clamped to [MinImages, MaxImages], zero → DefaultImages
//
// The enhanced prompt is assembled as
//
//	[camera angle, ] user prompt, style phrase[, mode phrase]
//
// Each expansion is appended only if not already present, so re-submitting
// an already-enhanced prompt does not double-enhance. This is plain string
// matching, not text understanding.
func (b *Builder) Build(in Input) (GenerationRequest, error) {
	userPrompt := strings.TrimSpace(in.Prompt)
	if userPrompt == "" {
		return GenerationRequest{}, &ValidationError{
			Field:  "prompt",
			Reason: "prompt must not be empty",
		}
	}

	style := Style(in.Style)
	stylePhrase, ok := b.presets.Styles[style]
	if !ok {
		return GenerationRequest{}, &ValidationError{
			Field:  "style",
			Reason: "unknown style " + strconv.Quote(in.Style),
		}
	}

	var modePhrase string
	if in.EnhancementMode != "" {
		modePhrase, ok = b.presets.Modes[EnhancementMode(in.EnhancementMode)]
		if !ok {
			return GenerationRequest{}, &ValidationError{
				Field:  "enhancement_mode",
				Reason: "unknown enhancement mode " + strconv.Quote(in.EnhancementMode),
			}
		}
	}

	var anglePhrase string
	if in.CameraAngle != "" {
		anglePhrase, ok = b.presets.Angles[CameraAngle(in.CameraAngle)]
		if !ok {
			return GenerationRequest{}, &ValidationError{
				Field:  "camera_angle",
				Reason: "unknown camera angle " + strconv.Quote(in.CameraAngle),
			}
		}
	}

	resolution, err := b.resolveResolution(in.Width, in.Height)
	if err != nil {
		return GenerationRequest{}, err
	}

	negative := strings.TrimSpace(in.NegativePrompt)
	if negative == "" {
		negative = b.defaultNegative
	}

	return GenerationRequest{
		Prompt:         assemblePrompt(anglePhrase, userPrompt, stylePhrase, modePhrase),
		UserPrompt:     userPrompt,
		NegativePrompt: negative,
		Style:          style,
		Width:          resolution.Width,
		Height:         resolution.Height,
		Steps:          clampInt(in.Steps, MinSteps, MaxSteps, DefaultSteps),
		GuidanceScale:  clampFloat(in.GuidanceScale, MinGuidance, MaxGuidance, DefaultGuidance),
		NumImages:      clampInt(in.NumImages, MinImages, MaxImages, DefaultImages),
	}, nil
}

// resolveResolution checks the width/height pair against the allowed set.
// A fully-zero pair takes the default resolution.
func (b *Builder) resolveResolution(width, height int) (Resolution, error) {
	if width == 0 && height == 0 {
		return DefaultResolution, nil
	}
	for _, r := range AllowedResolutions {
		if r.Width == width && r.Height == height {
			return r, nil
		}
	}
	return Resolution{}, &ValidationError{
		Field:  "resolution",
		Reason: Resolution{width, height}.String() + " is not an allowed resolution",
	}
}

// assemblePrompt joins the prompt parts with ", ", appending each
// expansion only if the prompt does not already contain it.
func assemblePrompt(anglePhrase, userPrompt, stylePhrase, modePhrase string) string {
	prompt := userPrompt
	if anglePhrase != "" && !strings.Contains(prompt, anglePhrase) {
		prompt = anglePhrase + ", " + prompt
	}
	if stylePhrase != "" && !strings.Contains(prompt, stylePhrase) {
		prompt = prompt + ", " + stylePhrase
	}
	if modePhrase != "" && !strings.Contains(prompt, modePhrase) {
		prompt = prompt + ", " + modePhrase
	}
	return prompt
}

func clampInt(v, min, max, def int) int {
	if v == 0 {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max, def float64) float64 {
	if v == 0 {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
