package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestStableIsDeterministic(t *testing.T) {
	id1 := Stable("Weapons/Rifle")
	id2 := Stable("Weapons/Rifle")

	if id1 != id2 {
		t.Errorf("Stable IDs should match, got %s and %s", id1, id2)
	}
}

func TestStableIgnoresCase(t *testing.T) {
	if Stable("Weapons/Rifle") != Stable("weapons/RIFLE") {
		t.Error("Stable IDs should be case-insensitive")
	}
}

func TestStableDiffersPerKey(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"Weapons/Rifle", "Weapons/Pistol"},
		{"a/b", "b/a"},
		{"Group/Name", "Group/Name2"},
	}

	for _, tt := range tests {
		if Stable(tt.a) == Stable(tt.b) {
			t.Errorf("Expected different IDs for %q and %q", tt.a, tt.b)
		}
	}
}

func TestStableEmptyKey(t *testing.T) {
	if Stable("") != uuid.Nil {
		t.Error("Empty key should produce the nil UUID")
	}
}

func TestHasherSeed(t *testing.T) {
	a := NewHasher(1).Stable("Group/Name")
	b := NewHasher(2).Stable("Group/Name")

	if a == b {
		t.Error("Different seeds should produce different IDs")
	}
	if a != NewHasher(1).Stable("Group/Name") {
		t.Error("Same seed should reproduce the same ID")
	}
}

func TestFold(t *testing.T) {
	if Fold("MiXeD/Case") != Fold("mixed/case") {
		t.Error("Fold should normalize case")
	}
}
