package promo

import (
	"testing"
	"time"
)

func testSlides() []Slide {
	return []Slide{
		{ID: "a", Title: "Slide A"},
		{ID: "b", Title: "Slide B"},
		{ID: "c", Title: "Slide C"},
	}
}

func TestRotator_CurrentAndAdvance(t *testing.T) {
	t.Parallel()

	r := NewRotator(testSlides(), time.Second)

	current, ok := r.Current()
	if !ok || current.ID != "a" {
		t.Fatalf("initial slide = %+v, want a", current)
	}

	next, ok := r.Advance()
	if !ok || next.ID != "b" {
		t.Errorf("after advance = %+v, want b", next)
	}

	r.Advance()
	wrapped, _ := r.Advance()
	if wrapped.ID != "a" {
		t.Errorf("advance should wrap to a, got %s", wrapped.ID)
	}
}

func TestRotator_EmptyDeck(t *testing.T) {
	t.Parallel()

	r := NewRotator(nil, time.Second)

	if _, ok := r.Current(); ok {
		t.Error("empty deck should report no current slide")
	}
	if _, ok := r.Advance(); ok {
		t.Error("empty deck should not advance")
	}

	// Start on an empty deck is a no-op; Stop must still be safe.
	r.Start()
	r.Stop()
}

func TestRotator_TickerAdvances(t *testing.T) {
	t.Parallel()

	r := NewRotator(testSlides(), 20*time.Millisecond)
	r.Start()
	defer r.Stop()

	deadline := time.After(2 * time.Second)
	for {
		if slide, _ := r.Current(); slide.ID != "a" {
			return
		}
		select {
		case <-deadline:
			t.Fatal("rotator never advanced past the first slide")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestRotator_PauseHolds(t *testing.T) {
	t.Parallel()

	r := NewRotator(testSlides(), 10*time.Millisecond)
	r.Start()
	defer r.Stop()

	r.Pause()
	if !r.Paused() {
		t.Fatal("Paused() = false after Pause")
	}

	held, _ := r.Current()
	time.Sleep(100 * time.Millisecond)
	after, _ := r.Current()

	if held.ID != after.ID {
		t.Errorf("slide moved from %s to %s while paused", held.ID, after.ID)
	}
}

func TestRotator_ResumeContinues(t *testing.T) {
	t.Parallel()

	r := NewRotator(testSlides(), 20*time.Millisecond)
	r.Start()
	defer r.Stop()

	r.Pause()
	held, _ := r.Current()
	r.Resume()

	deadline := time.After(2 * time.Second)
	for {
		if slide, _ := r.Current(); slide.ID != held.ID {
			return
		}
		select {
		case <-deadline:
			t.Fatal("rotator never advanced after Resume")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestRotator_StopIdempotentLifecycle(t *testing.T) {
	t.Parallel()

	r := NewRotator(testSlides(), 10*time.Millisecond)
	r.Start()
	r.Start() // second Start is a no-op
	r.Stop()
	r.Stop() // second Stop is safe
}

func TestRotator_SlidesCopies(t *testing.T) {
	t.Parallel()

	r := NewRotator(testSlides(), time.Second)

	slides := r.Slides()
	slides[0].Title = "mutated"

	current, _ := r.Current()
	if current.Title == "mutated" {
		t.Error("Slides() must return a copy, not the backing array")
	}
}
