package promptgen

import (
	"strings"
	"testing"
)

func newTestBuilder() *Builder {
	return NewBuilder(DefaultPresets(), "blurry, low quality")
}

func TestBuild_EveryStyleExpandsExactlyOnce(t *testing.T) {
	b := newTestBuilder()
	presets := DefaultPresets()

	for _, style := range presets.StyleTokens() {
		t.Run(string(style), func(t *testing.T) {
			req, err := b.Build(Input{
				Prompt: "a lighthouse at dusk",
				Style:  string(style),
			})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			phrase := presets.Styles[style]
			if count := strings.Count(req.Prompt, phrase); count != 1 {
				t.Errorf("prompt contains style phrase %d times, want 1: %q", count, req.Prompt)
			}
		})
	}
}

func TestBuild_FantasyPromptAssembly(t *testing.T) {
	b := newTestBuilder()

	req, err := b.Build(Input{
		Prompt:        "a castle on a hill",
		Style:         string(StyleFantasy),
		Width:         512,
		Height:        512,
		Steps:         50,
		GuidanceScale: 7.5,
		NumImages:     1,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := "a castle on a hill, " + DefaultPresets().Styles[StyleFantasy]
	if req.Prompt != want {
		t.Errorf("Prompt = %q, want %q", req.Prompt, want)
	}
	if req.UserPrompt != "a castle on a hill" {
		t.Errorf("UserPrompt = %q, want original text", req.UserPrompt)
	}
	if req.Width != 512 || req.Height != 512 {
		t.Errorf("resolution = %dx%d, want 512x512", req.Width, req.Height)
	}
	if req.Steps != 50 || req.GuidanceScale != 7.5 || req.NumImages != 1 {
		t.Errorf("parameters not preserved: steps=%d guidance=%v count=%d",
			req.Steps, req.GuidanceScale, req.NumImages)
	}
}

func TestBuild_EmptyPromptRejected(t *testing.T) {
	b := newTestBuilder()

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := b.Build(Input{Prompt: prompt, Style: string(StyleAnime)})
		if err == nil {
			t.Fatalf("Build(%q) should fail", prompt)
		}
		vErr, ok := IsValidationError(err)
		if !ok {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
		if vErr.Field != "prompt" {
			t.Errorf("Field = %q, want %q", vErr.Field, "prompt")
		}
	}
}

func TestBuild_UnknownTokensRejected(t *testing.T) {
	b := newTestBuilder()

	tests := []struct {
		name      string
		input     Input
		wantField string
	}{
		{"unknown style", Input{Prompt: "x", Style: "Impressionist"}, "style"},
		{"empty style", Input{Prompt: "x", Style: ""}, "style"},
		{"unknown mode", Input{Prompt: "x", Style: "Anime", EnhancementMode: "Mega"}, "enhancement_mode"},
		{"unknown angle", Input{Prompt: "x", Style: "Anime", CameraAngle: "Bird's eye"}, "camera_angle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Build(tt.input)
			vErr, ok := IsValidationError(err)
			if !ok {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.wantField)
			}
		})
	}
}

func TestBuild_ResolutionValidation(t *testing.T) {
	b := newTestBuilder()

	// All allowed pairs pass
	for _, r := range AllowedResolutions {
		req, err := b.Build(Input{
			Prompt: "x", Style: "Realistic",
			Width: r.Width, Height: r.Height,
		})
		if err != nil {
			t.Fatalf("allowed resolution %s rejected: %v", r, err)
		}
		if req.Width != r.Width || req.Height != r.Height {
			t.Errorf("resolution changed: got %dx%d, want %s", req.Width, req.Height, r)
		}
	}

	// Pairs outside the set fail with a field-named error
	bad := []Resolution{{640, 480}, {512, 1024}, {1, 1}, {2048, 2048}, {768, 0}}
	for _, r := range bad {
		_, err := b.Build(Input{
			Prompt: "x", Style: "Realistic",
			Width: r.Width, Height: r.Height,
		})
		vErr, ok := IsValidationError(err)
		if !ok {
			t.Fatalf("resolution %s should be rejected, got %v", r, err)
		}
		if vErr.Field != "resolution" {
			t.Errorf("Field = %q, want %q", vErr.Field, "resolution")
		}
	}

	// Zero pair takes the default
	req, err := b.Build(Input{Prompt: "x", Style: "Realistic"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if req.Width != DefaultResolution.Width || req.Height != DefaultResolution.Height {
		t.Errorf("default resolution = %dx%d, want %s", req.Width, req.Height, DefaultResolution)
	}
}

func TestBuild_ClampingIsConsistent(t *testing.T) {
	b := newTestBuilder()

	tests := []struct {
		name         string
		input        Input
		wantSteps    int
		wantGuidance float64
		wantImages   int
	}{
		{"zero values take defaults", Input{}, DefaultSteps, DefaultGuidance, DefaultImages},
		{"below bounds clamp up", Input{Steps: 5, GuidanceScale: 0.2, NumImages: -3}, MinSteps, MinGuidance, MinImages},
		{"above bounds clamp down", Input{Steps: 500, GuidanceScale: 99, NumImages: 10}, MaxSteps, MaxGuidance, MaxImages},
		{"in-range preserved", Input{Steps: 42, GuidanceScale: 12.5, NumImages: 3}, 42, 12.5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			in.Prompt = "x"
			in.Style = "Cinematic"

			req, err := b.Build(in)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if req.Steps != tt.wantSteps {
				t.Errorf("Steps = %d, want %d", req.Steps, tt.wantSteps)
			}
			if req.GuidanceScale != tt.wantGuidance {
				t.Errorf("GuidanceScale = %v, want %v", req.GuidanceScale, tt.wantGuidance)
			}
			if req.NumImages != tt.wantImages {
				t.Errorf("NumImages = %d, want %d", req.NumImages, tt.wantImages)
			}
		})
	}
}

func TestBuild_EnhancementIsIdempotent(t *testing.T) {
	b := newTestBuilder()

	first, err := b.Build(Input{
		Prompt:          "a red fox",
		Style:           string(StyleAnime),
		EnhancementMode: string(ModeQualityBoost),
		CameraAngle:     string(AngleCloseUp),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Feed the enhanced prompt back through with the same selections
	second, err := b.Build(Input{
		Prompt:          first.Prompt,
		Style:           string(StyleAnime),
		EnhancementMode: string(ModeQualityBoost),
		CameraAngle:     string(AngleCloseUp),
	})
	if err != nil {
		t.Fatalf("re-Build failed: %v", err)
	}

	if second.Prompt != first.Prompt {
		t.Errorf("re-enhancement changed prompt:\n first: %q\nsecond: %q", first.Prompt, second.Prompt)
	}

	presets := DefaultPresets()
	for name, phrase := range map[string]string{
		"style": presets.Styles[StyleAnime],
		"mode":  presets.Modes[ModeQualityBoost],
		"angle": presets.Angles[AngleCloseUp],
	} {
		if count := strings.Count(second.Prompt, phrase); count != 1 {
			t.Errorf("%s phrase appears %d times, want 1: %q", name, count, second.Prompt)
		}
	}
}

func TestBuild_DefaultNegativePrompt(t *testing.T) {
	b := newTestBuilder()

	req, err := b.Build(Input{Prompt: "x", Style: "Realistic"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if req.NegativePrompt != "blurry, low quality" {
		t.Errorf("NegativePrompt = %q, want builder default", req.NegativePrompt)
	}

	req, err = b.Build(Input{Prompt: "x", Style: "Realistic", NegativePrompt: "text, watermark"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if req.NegativePrompt != "text, watermark" {
		t.Errorf("NegativePrompt = %q, user value should win", req.NegativePrompt)
	}
}

func TestBuild_CameraAnglePrefixes(t *testing.T) {
	b := newTestBuilder()

	req, err := b.Build(Input{
		Prompt:      "a market street",
		Style:       string(StyleRealistic),
		CameraAngle: string(AngleWide),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !strings.HasPrefix(req.Prompt, "Wide angle, ") {
		t.Errorf("prompt should start with the camera angle phrase: %q", req.Prompt)
	}
}
