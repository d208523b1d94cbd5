package alphabet

import (
	"testing"
)

func TestSingletons(t *testing.T) {
	bc := Singletons()

	for b := 0; b < 256; b++ {
		if class := bc.Get(byte(b)); class != byte(b) {
			t.Errorf("Get(%d) = %d, want %d", b, class, b)
		}
	}
	if bc.AlphabetLen() != 256 {
		t.Errorf("AlphabetLen() = %d, want 256", bc.AlphabetLen())
	}
	if bc.Stride2() != 8 {
		t.Errorf("Stride2() = %d, want 8", bc.Stride2())
	}
}

func TestByteClassSet_Empty(t *testing.T) {
	var set ByteClassSet
	bc := set.ByteClasses()

	if bc.AlphabetLen() != 1 {
		t.Errorf("AlphabetLen() = %d, want 1", bc.AlphabetLen())
	}
	if bc.Stride2() != 0 {
		t.Errorf("Stride2() = %d, want 0", bc.Stride2())
	}
}

func TestByteClassSet_Bytes(t *testing.T) {
	var set ByteClassSet
	set.SetByte('a')
	set.SetByte('b')
	set.SetByte('z')
	bc := set.ByteClasses()

	// [0,'a'), 'a', 'b', ('b','z'), 'z', ('z',255]
	if bc.AlphabetLen() != 6 {
		t.Fatalf("AlphabetLen() = %d, want 6", bc.AlphabetLen())
	}
	tests := []struct {
		b    byte
		want byte
	}{
		{0, 0},
		{'a' - 1, 0},
		{'a', 1},
		{'b', 2},
		{'c', 3},
		{'y', 3},
		{'z', 4},
		{'z' + 1, 5},
		{255, 5},
	}
	for _, tt := range tests {
		if got := bc.Get(tt.b); got != tt.want {
			t.Errorf("Get(%q) = %d, want %d", tt.b, got, tt.want)
		}
	}
	if bc.Stride2() != 3 {
		t.Errorf("Stride2() = %d, want 3", bc.Stride2())
	}
}

func TestByteClassSet_Edges(t *testing.T) {
	var set ByteClassSet
	set.SetByte(0)
	set.SetByte(255)
	bc := set.ByteClasses()

	if bc.AlphabetLen() != 2 {
		t.Fatalf("AlphabetLen() = %d, want 2", bc.AlphabetLen())
	}
	if bc.Get(0) != 0 || bc.Get(1) != 1 || bc.Get(255) != 1 {
		t.Errorf("unexpected classes: 0->%d 1->%d 255->%d", bc.Get(0), bc.Get(1), bc.Get(255))
	}
}

func TestByteClassSet_Range(t *testing.T) {
	var set ByteClassSet
	set.SetRange('a', 'c')
	bc := set.ByteClasses()

	if bc.AlphabetLen() != 3 {
		t.Fatalf("AlphabetLen() = %d, want 3", bc.AlphabetLen())
	}
	for _, b := range []byte("abc") {
		if bc.Get(b) != 1 {
			t.Errorf("Get(%q) = %d, want 1", b, bc.Get(b))
		}
	}
	if bc.Get('a'-1) != 0 || bc.Get('c'+1) != 2 {
		t.Errorf("unexpected neighbour classes: %d %d", bc.Get('a'-1), bc.Get('c'+1))
	}
}
