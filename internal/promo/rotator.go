// Package promo rotates promotional slides on a fixed interval.
package promo

import (
	"sync"
	"time"
)

// Slide is a single promotional banner.
type Slide struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	LinkURL  string `json:"link_url,omitempty"`
}

// Rotator advances through a fixed slide deck on a ticker. Pause freezes
// the current slide without losing position; Resume continues from it.
// All methods are safe for concurrent use.
type Rotator struct {
	slides   []Slide
	interval time.Duration

	mu      sync.Mutex
	index   int
	paused  bool
	started bool

	stop chan struct{}
	done chan struct{}
}

// NewRotator creates a rotator over slides. The interval must be positive;
// anything else falls back to five seconds.
func NewRotator(slides []Slide, interval time.Duration) *Rotator {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Rotator{
		slides:   slides,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the rotation loop. Calling Start twice, or on an empty
// deck, is a no-op.
func (r *Rotator) Start() {
	r.mu.Lock()
	if r.started || len(r.slides) == 0 {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.mu.Unlock()

	go r.run()
}

func (r *Rotator) run() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			if !r.paused {
				r.index = (r.index + 1) % len(r.slides)
			}
			r.mu.Unlock()
		case <-r.stop:
			return
		}
	}
}

// Pause freezes rotation at the current slide.
func (r *Rotator) Pause() {
	r.mu.Lock()
	r.paused = true
	r.mu.Unlock()
}

// Resume continues rotation from the slide Pause froze on.
func (r *Rotator) Resume() {
	r.mu.Lock()
	r.paused = false
	r.mu.Unlock()
}

// Paused reports whether rotation is currently frozen.
func (r *Rotator) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// Current returns the active slide, or false when the deck is empty.
func (r *Rotator) Current() (Slide, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.slides) == 0 {
		return Slide{}, false
	}
	return r.slides[r.index], true
}

// Advance moves to the next slide immediately, wrapping at the end.
// Manual navigation works even while paused.
func (r *Rotator) Advance() (Slide, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.slides) == 0 {
		return Slide{}, false
	}
	r.index = (r.index + 1) % len(r.slides)
	return r.slides[r.index], true
}

// Slides returns a copy of the deck.
func (r *Rotator) Slides() []Slide {
	out := make([]Slide, len(r.slides))
	copy(out, r.slides)
	return out
}

// Stop terminates the rotation loop and waits for it to exit. Safe to
// call whether or not Start ran.
func (r *Rotator) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
	<-r.done
}
