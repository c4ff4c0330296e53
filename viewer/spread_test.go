package viewer

import "testing"

func TestSpreadEven(t *testing.T) {
	s := NewSpread(4)

	if s.SpreadCount() != 2 {
		t.Fatalf("unexpected spread count: %d", s.SpreadCount())
	}
	if s.Left() != 0 || s.Right() != 1 {
		t.Errorf("unexpected opening spread: %d/%d", s.Left(), s.Right())
	}

	if !s.Next() {
		t.Fatal("expected forward flip to succeed")
	}
	if s.Left() != 2 || s.Right() != 3 {
		t.Errorf("unexpected second spread: %d/%d", s.Left(), s.Right())
	}
	if s.Next() {
		t.Error("flip past the last spread should be refused")
	}

	if !s.Prev() {
		t.Fatal("expected backward flip to succeed")
	}
	if s.Left() != 0 {
		t.Errorf("unexpected position after backward flip: %d", s.Pos())
	}
	if s.Prev() {
		t.Error("flip before the first spread should be refused")
	}
}

func TestSpreadOddGetsFiller(t *testing.T) {
	s := NewSpread(5)

	if s.SpreadCount() != 3 {
		t.Fatalf("unexpected spread count: %d", s.SpreadCount())
	}
	if !s.Last() {
		t.Fatal("expected jump to last spread to succeed")
	}
	if s.Left() != 4 {
		t.Errorf("unexpected last left page: %d", s.Left())
	}
	if s.Right() != -1 {
		t.Errorf("last right side should be filler, got page %d", s.Right())
	}
}

func TestSpreadSinglePage(t *testing.T) {
	s := NewSpread(1)

	if s.Left() != 0 || s.Right() != -1 {
		t.Errorf("unexpected spread: %d/%d", s.Left(), s.Right())
	}
	if s.Next() || s.Prev() {
		t.Error("single page title should not flip")
	}
}

func TestSpreadEmpty(t *testing.T) {
	s := NewSpread(0)

	if s.SpreadCount() != 0 {
		t.Errorf("unexpected spread count: %d", s.SpreadCount())
	}
	if s.Left() != -1 || s.Right() != -1 {
		t.Errorf("empty title should show fillers only, got %d/%d", s.Left(), s.Right())
	}
	if s.Next() || s.Prev() || s.Last() {
		t.Error("empty title should not flip")
	}

	s.Seek(5)
	if s.Pos() != 0 {
		t.Errorf("seek on empty title should stay at 0, got %d", s.Pos())
	}
}

func TestSpreadSeek(t *testing.T) {
	s := NewSpread(10)

	for _, tc := range []struct {
		page int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 2},
		{7, 6},
		{9, 8},
		{99, 8},
		{-5, 0},
	} {
		s.Seek(tc.page)
		if s.Pos() != tc.want {
			t.Errorf("Seek(%d) landed at %d, want %d", tc.page, s.Pos(), tc.want)
		}
	}
}

func TestSpreadFirstLast(t *testing.T) {
	s := NewSpread(6)

	if !s.Last() {
		t.Fatal("expected jump to last spread to succeed")
	}
	if s.Pos() != 4 {
		t.Errorf("unexpected last position: %d", s.Pos())
	}
	if s.Last() {
		t.Error("repeated jump to last spread should report no change")
	}

	if !s.First() {
		t.Fatal("expected jump to first spread to succeed")
	}
	if s.Pos() != 0 {
		t.Errorf("unexpected first position: %d", s.Pos())
	}
}

func TestFillerImage(t *testing.T) {
	img, err := FillerImage(nil, 400)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dy() != 400 {
		t.Errorf("unexpected filler height: %d", img.Bounds().Dy())
	}
	if img.Bounds().Dx() <= 0 {
		t.Errorf("unexpected filler width: %d", img.Bounds().Dx())
	}
}
