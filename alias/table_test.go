package alias

import (
	"testing"

	"github.com/vidcapture/vcs/frame"
)

func TestTableLookupFirstMatch(t *testing.T) {
	tbl := NewTable(
		Alias{From: frame.Resolution{Width: 720, Height: 400}, To: frame.Resolution{Width: 640, Height: 400}},
		Alias{From: frame.Resolution{Width: 720, Height: 400}, To: frame.Resolution{Width: 720, Height: 480}},
	)

	to, ok := tbl.Lookup(frame.Resolution{Width: 720, Height: 400, BitsPerPixel: 32})
	if !ok {
		t.Fatal("expected a match")
	}
	if to.Width != 640 || to.Height != 400 {
		t.Fatalf("expected first-match alias (640x400), got %v", to)
	}
}

func TestTableLookupNoMatch(t *testing.T) {
	tbl := NewTable(Alias{From: frame.Resolution{Width: 720, Height: 400}, To: frame.Resolution{Width: 640, Height: 400}})
	if _, ok := tbl.Lookup(frame.Resolution{Width: 1024, Height: 768}); ok {
		t.Fatal("expected no match")
	}
}

func TestTableReplace(t *testing.T) {
	tbl := NewTable(Alias{From: frame.Resolution{Width: 1, Height: 1}, To: frame.Resolution{Width: 2, Height: 2}})
	tbl.Replace([]Alias{{From: frame.Resolution{Width: 3, Height: 3}, To: frame.Resolution{Width: 4, Height: 4}}})

	if _, ok := tbl.Lookup(frame.Resolution{Width: 1, Height: 1}); ok {
		t.Fatal("old entries should be gone after Replace")
	}
	if to, ok := tbl.Lookup(frame.Resolution{Width: 3, Height: 3}); !ok || to.Width != 4 {
		t.Fatal("new entries should be active after Replace")
	}
}
