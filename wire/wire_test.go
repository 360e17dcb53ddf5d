package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/santorini/santorini"
)

var one1 = santorini.Worker{Owner: "one", Index: 1}

func TestParseCell(t *testing.T) {
	cases := []struct {
		in   string
		want santorini.Cell
		err  bool
	}{
		{"0", santorini.Terrain(0), false},
		{"3", santorini.Terrain(3), false},
		{"2one1", santorini.Occupied(2, one1), false},
		{"0two2", santorini.Occupied(0, santorini.Worker{Owner: "two", Index: 2}), false},
		{"one1", santorini.Cell{}, true},
		{"2one", santorini.Cell{}, true},
		{"2on-e1", santorini.Cell{}, true},
		{"", santorini.Cell{}, true},
	}
	for _, tc := range cases {
		got, err := ParseCell(tc.in)
		if tc.err {
			assert.Error(t, err, "ParseCell(%q)", tc.in)
			continue
		}
		require.NoError(t, err, "ParseCell(%q)", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestBoardJSON(t *testing.T) {
	in := `[[0,"1one1",2],[3,4,"0two1"],["0one2",0,"2two2"]]`
	b, err := UnmarshalBoard(santorini.Config{}, []byte(in))
	require.NoError(t, err)
	assert.Equal(t, 3, b.Rows())
	assert.Equal(t, santorini.Occupied(1, one1), b.At(0, 1))
	assert.Equal(t, santorini.Terrain(4), b.At(1, 1))

	out, err := MarshalBoard(b)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestBoardJSONErrors(t *testing.T) {
	for _, in := range []string{
		`[[0,"x"]]`,
		`[[0,1.5]]`,
		`[[0,7]]`,
		`[[0,0],[0]]`,
		`[]`,
	} {
		_, err := UnmarshalBoard(santorini.Config{}, []byte(in))
		assert.Error(t, err, in)
	}
}

func TestTurn(t *testing.T) {
	win := santorini.Turn{santorini.Move(one1, santorini.SouthEast)}
	parts, err := EncodeTurn(win)
	require.NoError(t, err)
	assert.Equal(t, []string{"one1", "EAST", "SOUTH"}, parts)

	full := santorini.Turn{
		santorini.Move(one1, santorini.North),
		santorini.Build(one1, santorini.West),
	}
	parts, err = EncodeTurn(full)
	require.NoError(t, err)
	assert.Equal(t, []string{"one1", "PUT", "NORTH", "WEST", "PUT"}, parts)

	back, err := DecodeTurn(parts)
	require.NoError(t, err)
	assert.Equal(t, full, back)

	_, err = EncodeTurn(santorini.Turn{santorini.Build(one1, santorini.North)})
	assert.ErrorIs(t, err, ErrBadTurn)

	_, err = DecodeTurn([]string{"one1", "EAST"})
	assert.ErrorIs(t, err, ErrBadTurn)
	_, err = DecodeTurn([]string{"one1", "UP", "NORTH"})
	assert.ErrorIs(t, err, ErrBadLabel)
	_, err = DecodeTurn([]string{"1", "EAST", "NORTH"})
	assert.ErrorIs(t, err, ErrBadTurn)
}

func TestResult(t *testing.T) {
	r := santorini.Result{Winner: "one", Loser: "two", LoserCheated: true}
	assert.Equal(t, []string{"one", "two", "irregular"}, EncodeResult(r))
	assert.Equal(t, []string{"one", "two"}, EncodeResult(santorini.Result{Winner: "one", Loser: "two"}))

	got, err := DecodeResult([]string{"one", "two", "irregular"})
	require.NoError(t, err)
	assert.True(t, got.LoserCheated)

	_, err = DecodeResult([]string{"one", "two", "bogus"})
	assert.ErrorIs(t, err, ErrBadResult)

	bs, err := json.Marshal(EncodeResult(r))
	require.NoError(t, err)
	assert.Equal(t, `["one","two","irregular"]`, string(bs))
}

func TestNormalizeName(t *testing.T) {
	n, err := NormalizeName("Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", n)

	for _, bad := range []string{"", "bob2", "a b", "x-y"} {
		_, err := NormalizeName(bad)
		assert.ErrorIs(t, err, ErrBadName, bad)
	}
}
