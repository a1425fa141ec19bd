package graph_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/christofides/graph"
)

func TestParseString_Valid(t *testing.T) {
	src := "4\n0 1 2 3\n1 0 4 5\n2 4 0 6\n3 5 6 0\n"
	g, err := graph.ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, 4, g.N())
	assert.Equal(t, square4(), g.Matrix())
}

func TestParseString_TolerantWhitespace(t *testing.T) {
	// Blank lines, tabs, CRLF line endings and a missing final newline.
	src := "\n  2 \r\n\n0\t1.5\r\n1.5   0"
	g, err := graph.ParseString(src)
	require.NoError(t, err)
	w, err := g.Cost(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.5, w)
}

func TestParseString_SingleVertex(t *testing.T) {
	g, err := graph.ParseString("1\n0\n")
	require.NoError(t, err)
	assert.Equal(t, 1, g.N())
}

func TestParseString_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"blank only":      "\n \n",
		"bad header":      "three\n0\n",
		"zero header":     "0\n",
		"header with row": "2 0\n0 1\n1 0\n",
		"missing row":     "3\n0 1 2\n1 0 3\n",
		"extra row":       "2\n0 1\n1 0\n1 1\n",
		"short row":       "2\n0 1\n1\n",
		"non-numeric":     "2\n0 x\n1 0\n",
		"infinite":        "2\n0 inf\n1 0\n",
		"not a number":    "2\n0 NaN\n1 0\n",
		"negative":        "2\n0 -4\n1 0\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := graph.ParseString(src)
			if !errors.Is(err, graph.ErrMalformedInput) {
				t.Fatalf("want ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestParse_Reader(t *testing.T) {
	g, err := graph.Parse(strings.NewReader("2\n0 3\n3 0\n"), graph.WithLabels([]string{"home", "shop"}))
	require.NoError(t, err)
	v, err := g.Vertex(1)
	require.NoError(t, err)
	assert.Equal(t, "shop", v.Label)
}

func TestParseString_ErrorNamesLine(t *testing.T) {
	_, err := graph.ParseString("2\n0 1\n1 oops\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}
