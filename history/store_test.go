package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/bhavyasri23-dev/ai-image-generator/imagegen"
	"github.com/bhavyasri23-dev/ai-image-generator/promptgen"
)

func testResult(prompt string, imageCount int) *imagegen.GenerationResult {
	images := make([]imagegen.Image, imageCount)
	for i := range images {
		images[i] = imagegen.Image{
			Data:        []byte(fmt.Sprintf("%s-%d", prompt, i)),
			ContentType: "image/png",
			Width:       512,
			Height:      512,
		}
	}
	return &imagegen.GenerationResult{
		Images:   images,
		Elapsed:  1500 * time.Millisecond,
		Provider: "huggingface",
		Request: promptgen.GenerationRequest{
			Prompt:        prompt + ", fantasy art",
			UserPrompt:    prompt,
			Style:         promptgen.StyleFantasy,
			Width:         512,
			Height:        512,
			Steps:         30,
			GuidanceScale: 8.5,
			NumImages:     imageCount,
		},
	}
}

func TestStore_NewestFirst(t *testing.T) {
	store := NewStore(10)

	store.Add(testResult("first", 1))
	store.Add(testResult("second", 1))
	store.Add(testResult("third", 1))

	summaries := store.List()
	if len(summaries) != 3 {
		t.Fatalf("got %d entries, want 3", len(summaries))
	}

	want := []string{"third", "second", "first"}
	for i, w := range want {
		if summaries[i].UserPrompt != w {
			t.Errorf("entry %d: UserPrompt = %q, want %q", i, summaries[i].UserPrompt, w)
		}
	}
}

func TestStore_EvictsOldestAtLimit(t *testing.T) {
	store := NewStore(3)

	for i := 0; i < 5; i++ {
		store.Add(testResult(fmt.Sprintf("prompt-%d", i), 1))
	}

	if store.Len() != 3 {
		t.Fatalf("Len = %d, want limit 3", store.Len())
	}

	summaries := store.List()
	want := []string{"prompt-4", "prompt-3", "prompt-2"}
	for i, w := range want {
		if summaries[i].UserPrompt != w {
			t.Errorf("entry %d: UserPrompt = %q, want %q", i, summaries[i].UserPrompt, w)
		}
	}
}

func TestStore_GetAndImage(t *testing.T) {
	store := NewStore(10)
	entry := store.Add(testResult("castle", 2))

	got, ok := store.Get(entry.ID)
	if !ok {
		t.Fatal("Get should find the stored entry")
	}
	if got.Request.UserPrompt != "castle" {
		t.Errorf("UserPrompt = %q, want %q", got.Request.UserPrompt, "castle")
	}

	img, ok := store.Image(entry.ID, 1)
	if !ok {
		t.Fatal("Image should find index 1")
	}
	if string(img.Data) != "castle-1" {
		t.Errorf("image data = %q, want %q", img.Data, "castle-1")
	}

	if _, ok := store.Image(entry.ID, 2); ok {
		t.Error("out-of-range index should not resolve")
	}
	if _, ok := store.Image(entry.ID, -1); ok {
		t.Error("negative index should not resolve")
	}
	if _, ok := store.Image("no-such-id", 0); ok {
		t.Error("unknown entry ID should not resolve")
	}
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(10)
	store.Add(testResult("a", 1))
	store.Add(testResult("b", 1))

	store.Clear()

	if store.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", store.Len())
	}
	if len(store.List()) != 0 {
		t.Error("List should be empty after Clear")
	}
}

func TestStore_UniqueEntryIDs(t *testing.T) {
	store := NewStore(100)
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		entry := store.Add(testResult("p", 1))
		if seen[entry.ID] {
			t.Fatalf("duplicate entry ID %q", entry.ID)
		}
		seen[entry.ID] = true
	}
}

func TestStore_SummaryFields(t *testing.T) {
	store := NewStore(10)
	store.Add(testResult("castle", 2))

	s := store.List()[0]
	if s.Prompt != "castle, fantasy art" {
		t.Errorf("Prompt = %q, want enhanced prompt", s.Prompt)
	}
	if s.Style != "Fantasy" {
		t.Errorf("Style = %q, want Fantasy", s.Style)
	}
	if s.ImageCount != 2 {
		t.Errorf("ImageCount = %d, want 2", s.ImageCount)
	}
	if s.ElapsedMS != 1500 {
		t.Errorf("ElapsedMS = %d, want 1500", s.ElapsedMS)
	}
	if s.Provider != "huggingface" {
		t.Errorf("Provider = %q, want huggingface", s.Provider)
	}
	if s.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStore_DefaultLimit(t *testing.T) {
	if NewStore(0).Limit() != DefaultLimit {
		t.Error("non-positive limit should fall back to DefaultLimit")
	}
	if NewStore(-5).Limit() != DefaultLimit {
		t.Error("negative limit should fall back to DefaultLimit")
	}
	if NewStore(7).Limit() != 7 {
		t.Error("explicit limit should be kept")
	}
}
