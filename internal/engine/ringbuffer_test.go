package engine

import (
	"testing"
	"time"
)

func TestRingBufferAdd(t *testing.T) {
	rb := NewRingBuffer[CycleRecord](5)
	for i := 0; i < 3; i++ {
		rb.Add(CycleRecord{Seq: uint64(i), Started: time.Now()})
	}
	if rb.Len() != 3 {
		t.Errorf("expected len 3, got %d", rb.Len())
	}
	if rb.Cap() != 5 {
		t.Errorf("expected cap 5, got %d", rb.Cap())
	}
}

func TestRingBufferWrap(t *testing.T) {
	rb := NewRingBuffer[CycleRecord](3)
	for i := 0; i < 5; i++ {
		rb.Add(CycleRecord{Seq: uint64(i)})
	}
	if rb.Len() != 3 {
		t.Errorf("expected len 3, got %d", rb.Len())
	}
	items := rb.All()
	if items[0].Seq != 2 {
		t.Errorf("expected oldest Seq=2, got %d", items[0].Seq)
	}
	if items[2].Seq != 4 {
		t.Errorf("expected newest Seq=4, got %d", items[2].Seq)
	}
}

func TestRingBufferExactlyFull(t *testing.T) {
	rb := NewRingBuffer[int](3)
	rb.Add(1)
	rb.Add(2)
	rb.Add(3)
	items := rb.All()
	if len(items) != 3 || items[0] != 1 || items[2] != 3 {
		t.Errorf("unexpected items %v", items)
	}
	if last, _ := rb.Last(); last != 3 {
		t.Errorf("expected last=3, got %d", last)
	}
}

func TestRingBufferEmpty(t *testing.T) {
	rb := NewRingBuffer[CycleRecord](10)
	if rb.Len() != 0 {
		t.Error("new ring buffer should be empty")
	}
	if items := rb.All(); len(items) != 0 {
		t.Error("All() on empty buffer should return empty slice")
	}
	if _, ok := rb.Last(); ok {
		t.Error("Last() on empty buffer should return false")
	}
}

func TestRingBufferMinimumCapacity(t *testing.T) {
	rb := NewRingBuffer[int](0)
	rb.Add(7)
	rb.Add(8)
	if rb.Len() != 1 {
		t.Errorf("expected len 1, got %d", rb.Len())
	}
	if last, ok := rb.Last(); !ok || last != 8 {
		t.Errorf("expected last=8, got %d", last)
	}
}
