package service

import (
	"errors"
	"sync"
	"time"
)

// DefaultConfirmWindow is how long a copy stays marked.
const DefaultConfirmWindow = 2 * time.Second

var errClipboardUnavailable = errors.New("clipboard not configured")

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Timer is the part of *time.Timer the broker needs.
type Timer interface {
	Stop() bool
}

type mark struct {
	gen   uint64
	timer Timer
}

// ClipboardBroker copies text and keeps a short-lived "copied" mark per tag.
type ClipboardBroker struct {
	Clipboard Clipboard
	Window    time.Duration
	// AfterFunc schedules mark expiry; time.AfterFunc when nil.
	AfterFunc func(d time.Duration, f func()) Timer

	mu     sync.Mutex
	gen    uint64
	marks  map[int]mark
	closed bool
}

func NewClipboardBroker(cb Clipboard, window time.Duration) *ClipboardBroker {
	if window <= 0 {
		window = DefaultConfirmWindow
	}
	return &ClipboardBroker{Clipboard: cb, Window: window}
}

func (b *ClipboardBroker) schedule(d time.Duration, f func()) Timer {
	if b.AfterFunc != nil {
		return b.AfterFunc(d, f)
	}
	return time.AfterFunc(d, f)
}

// Copy writes text and marks tag. A repeat copy for the same tag restarts
// its window.
func (b *ClipboardBroker) Copy(text string, tag int) error {
	if b.Clipboard == nil {
		return &ClipboardError{Err: errClipboardUnavailable}
	}
	if err := b.Clipboard.WriteAll(text); err != nil {
		return &ClipboardError{Err: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	if b.marks == nil {
		b.marks = map[int]mark{}
	}
	if old, ok := b.marks[tag]; ok {
		old.timer.Stop()
	}
	b.gen++
	gen := b.gen
	window := b.Window
	if window <= 0 {
		window = DefaultConfirmWindow
	}
	b.marks[tag] = mark{gen: gen, timer: b.schedule(window, func() { b.expire(tag, gen) })}
	return nil
}

func (b *ClipboardBroker) expire(tag int, gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := b.marks[tag]; ok && m.gen == gen {
		delete(b.marks, tag)
	}
}

// Marked reports whether tag was copied within the window.
func (b *ClipboardBroker) Marked(tag int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.marks[tag]
	return ok
}

// Forget clears the mark for tag and cancels its timer.
func (b *ClipboardBroker) Forget(tag int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := b.marks[tag]; ok {
		m.timer.Stop()
		delete(b.marks, tag)
	}
}

// Reset clears every mark but keeps the broker usable.
func (b *ClipboardBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopAll()
}

// Close cancels all pending expiries. Later copies still write to the
// clipboard but are no longer marked.
func (b *ClipboardBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopAll()
	b.closed = true
}

func (b *ClipboardBroker) stopAll() {
	for tag, m := range b.marks {
		m.timer.Stop()
		delete(b.marks, tag)
	}
}
