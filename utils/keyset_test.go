package utils

import "testing"

func TestKeySetNoDuplicates(t *testing.T) {
	s := NewKeySet()

	if !s.Add("Grand Hotel", "https://example.com/1") {
		t.Error("first Add should return true")
	}
	if s.Add("  grand hotel ", "https://example.com/1") {
		t.Error("Add of same key with different case/spacing should return false")
	}
	if !s.Add("Grand Hotel", "https://example.com/2") {
		t.Error("different composite key should be added")
	}
	if s.Size() != 2 {
		t.Errorf("size: got %d, want 2", s.Size())
	}
}

func TestKeySetContains(t *testing.T) {
	s := NewKeySet()
	s.Add("a", "b")
	if !s.Contains("A", "B") {
		t.Error("expected Contains to match normalised key")
	}
	if s.Contains("a") {
		t.Error("partial key should not match")
	}
}
