package santorini

import (
	"strconv"
	"strings"
	"testing"
	"unicode"
)

// grid builds a board from rows of space-separated cells, written the
// way the wire format writes them: "2" or "1one2".
func grid(t *testing.T, rows ...string) *Board {
	t.Helper()
	var cells [][]Cell
	for _, r := range rows {
		var row []Cell
		for _, word := range strings.Fields(r) {
			row = append(row, cell(t, word))
		}
		cells = append(cells, row)
	}
	b, err := FromCells(Config{}, cells)
	if err != nil {
		t.Fatalf("FromCells: %v", err)
	}
	return b
}

func cell(t *testing.T, word string) Cell {
	t.Helper()
	h, err := strconv.Atoi(word[:1])
	if err != nil {
		t.Fatalf("bad cell %q", word)
	}
	if len(word) == 1 {
		return Terrain(h)
	}
	name := strings.TrimRightFunc(word[1:], unicode.IsDigit)
	idx, err := strconv.Atoi(word[1+len(name):])
	if err != nil {
		t.Fatalf("bad cell %q", word)
	}
	return Occupied(h, Worker{name, idx})
}

var (
	one1 = Worker{"one", 1}
	one2 = Worker{"one", 2}
	two1 = Worker{"two", 1}
	two2 = Worker{"two", 2}
)
