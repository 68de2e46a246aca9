package secret

import "testing"

func TestFromBytesCopies(t *testing.T) {
	src := []byte("hunter2")
	b := FromBytes(src)

	src[0] = 'X'
	if b.Bytes()[0] != 'h' {
		t.Fatalf("Buffer aliased caller's slice; got %q", b.Bytes())
	}
}

func TestEqual(t *testing.T) {
	a := FromString("correct-horse")
	b := FromString("correct-horse")
	c := FromString("correct-horsE")

	if !a.Equal(b) {
		t.Errorf("expected equal buffers to compare equal")
	}
	if a.Equal(c) {
		t.Errorf("expected differing buffers to compare unequal")
	}
}

func TestEqualDifferentLength(t *testing.T) {
	a := FromString("short")
	b := FromString("much longer value")
	if a.Equal(b) {
		t.Errorf("expected buffers of different length to compare unequal")
	}
}

func TestMoveEmptiesSource(t *testing.T) {
	a := FromString("secret-value")
	moved := a.Move()

	if a.Len() != 0 {
		t.Errorf("expected source buffer to be empty after Move, got len %d", a.Len())
	}
	if moved.Len() != len("secret-value") {
		t.Errorf("expected moved buffer to carry the original length")
	}
	if string(moved.Bytes()) != "secret-value" {
		t.Errorf("moved buffer has wrong contents: %q", moved.Bytes())
	}
}

func TestDestroyZeroesAndEmpties(t *testing.T) {
	b := FromString("top-secret")
	data := b.Bytes()

	b.Destroy()

	for i, by := range data {
		if by != 0 {
			t.Fatalf("byte %d not zeroed after Destroy: %v", i, data)
		}
	}
	if b.Len() != 0 {
		t.Errorf("expected Len() == 0 after Destroy, got %d", b.Len())
	}
}

func TestDestroyNilSafe(t *testing.T) {
	var b *Buffer
	b.Destroy() // must not panic
}
