package graph

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// The textual form is line oriented:
//
//	3
//	0 1 2
//	1 0 3
//	2 3 0
//
// The first non-blank line holds N; each of the next N non-blank lines holds
// N whitespace-separated costs. Costs must be finite and non-negative; the
// text form has no spelling for Unreachable.

var matrixLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Cell", Pattern: `[^ \t\f\v\r\n]+`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "whitespace", Pattern: `[ \t\f\v\r]+`},
})

type matrixText struct {
	Lines []*lineText `parser:"@@*"`
}

type lineText struct {
	Pos   lexer.Position
	Cells []string `parser:"@Cell* EOL"`
}

var parseMatrixText = participle.MustBuild[matrixText](
	participle.Lexer(matrixLexer),
)

// Parse reads the textual graph description from r.
func Parse(r io.Reader, opts ...Option) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "graph: read input")
	}

	return ParseString(string(data), opts...)
}

// ParseString parses the textual graph description held in s.
//
// Complexity: O(n²).
func ParseString(s string, opts ...Option) (*Graph, error) {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	doc, err := parseMatrixText.ParseString("", s)
	if err != nil {
		return nil, errors.WithMessage(ErrMalformedInput, err.Error())
	}

	lines := make([]*lineText, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		if len(l.Cells) > 0 {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, errors.WithMessage(ErrMalformedInput, "empty input")
	}

	head := lines[0]
	if len(head.Cells) != 1 {
		return nil, errors.Wrapf(ErrMalformedInput, "line %d: header must hold only the vertex count", head.Pos.Line)
	}
	n, err := strconv.Atoi(head.Cells[0])
	if err != nil || n <= 0 {
		return nil, errors.Wrapf(ErrMalformedInput, "line %d: vertex count %q is not a positive integer", head.Pos.Line, head.Cells[0])
	}

	body := lines[1:]
	if len(body) != n {
		return nil, errors.Wrapf(ErrMalformedInput, "got %d matrix rows, want %d", len(body), n)
	}

	rows := make([][]float64, n)
	var (
		i, j int
		w    float64
	)
	for i = 0; i < n; i++ {
		l := body[i]
		if len(l.Cells) != n {
			return nil, errors.Wrapf(ErrMalformedInput, "line %d: got %d cells, want %d", l.Pos.Line, len(l.Cells), n)
		}
		rows[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			w, err = strconv.ParseFloat(l.Cells[j], 64)
			if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, errors.Wrapf(ErrMalformedInput, "line %d: cell %q is not a finite number", l.Pos.Line, l.Cells[j])
			}
			rows[i][j] = w
		}
	}

	return New(n, rows, opts...)
}
