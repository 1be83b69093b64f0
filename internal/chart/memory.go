package chart

import "sync"

// MemoryWidget records what it was asked to draw. It backs the snapshot
// command, where charts are printed as tables instead of drawn.
type MemoryWidget struct {
	mu      sync.RWMutex
	id      string
	title   string
	kind    Kind
	series  Series
	redraws int
}

// NewMemoryWidget creates a MemoryWidget.
func NewMemoryWidget(id, title string, kind Kind) *MemoryWidget {
	return &MemoryWidget{id: id, title: title, kind: kind}
}

func (w *MemoryWidget) ID() string { return w.id }

// Title returns the chart caption.
func (w *MemoryWidget) Title() string { return w.title }

func (w *MemoryWidget) Kind() Kind {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.kind
}

func (w *MemoryWidget) SetKind(k Kind) {
	w.mu.Lock()
	w.kind = k
	w.mu.Unlock()
}

func (w *MemoryWidget) SetData(s Series) {
	w.mu.Lock()
	w.series = s
	w.mu.Unlock()
}

func (w *MemoryWidget) Redraw() {
	w.mu.Lock()
	w.redraws++
	w.mu.Unlock()
}

// Series returns the last data set.
func (w *MemoryWidget) Series() Series {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.series
}

// Redraws counts Redraw calls.
func (w *MemoryWidget) Redraws() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.redraws
}

// MemoryFactory creates MemoryWidgets and remembers them.
type MemoryFactory struct {
	mu      sync.Mutex
	Created []*MemoryWidget
}

// New implements Factory.
func (f *MemoryFactory) New(id, title string, kind Kind) Widget {
	w := NewMemoryWidget(id, title, kind)
	f.mu.Lock()
	f.Created = append(f.Created, w)
	f.mu.Unlock()
	return w
}

// Count returns how many widgets were created.
func (f *MemoryFactory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Created)
}
