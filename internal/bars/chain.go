package bars

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/alexiusacademia/gorebar/internal/units"
)

// chainLexer tokenizes splice chain notation such as
// "H40:8200, H40:8200@1227, H32:8600@1081".
var chainLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Designation", Pattern: `[A-Za-z]+[0-9]+`},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?`},
	{Name: "Punct", Pattern: `[:,@]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type chainAST struct {
	Bars []*barAST `parser:"@@ ( ',' @@ )*"`
}

type barAST struct {
	Pos    lexer.Position
	Type   string  `parser:"@Designation"`
	Length float64 `parser:"':' @Number"`
	Lap    *lapAST `parser:"( '@' @@ )?"`
}

type lapAST struct {
	Value float64 `parser:"@Number"`
}

var chainParser = participle.MustBuild[chainAST](
	participle.Lexer(chainLexer),
	participle.Elide("Whitespace"),
)

// ChainEntry is one bar of a spliced vertical chain, in millimeters as
// written. Lap is zero for the first bar.
type ChainEntry struct {
	Type   string
	Length units.Millimeters
	Lap    units.Millimeters
}

// String renders the entry back in chain notation.
func (e ChainEntry) String() string {
	if e.Lap > 0 {
		return fmt.Sprintf("%s:%g@%g", e.Type, float64(e.Length), float64(e.Lap))
	}
	return fmt.Sprintf("%s:%g", e.Type, float64(e.Length))
}

// FormatChain renders entries in chain notation.
func FormatChain(entries []ChainEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// ParseChain parses splice chain notation. The first bar must not carry a
// lap and every following bar must. Lengths must be positive.
func ParseChain(input string) ([]ChainEntry, error) {
	ast, err := chainParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	entries := make([]ChainEntry, 0, len(ast.Bars))
	for i, b := range ast.Bars {
		if b.Length <= 0 {
			return nil, fmt.Errorf("%s: bar %d length must be positive", b.Pos, i+1)
		}
		entry := ChainEntry{Type: b.Type, Length: units.Millimeters(b.Length)}
		switch {
		case i == 0 && b.Lap != nil:
			return nil, fmt.Errorf("%s: first bar cannot have a lap length", b.Pos)
		case i > 0 && b.Lap == nil:
			return nil, fmt.Errorf("%s: bar %d needs a lap length (TYPE:LENGTH@LAP)", b.Pos, i+1)
		case b.Lap != nil:
			if b.Lap.Value <= 0 || b.Lap.Value >= b.Length {
				return nil, fmt.Errorf("%s: bar %d lap must be positive and shorter than the bar", b.Pos, i+1)
			}
			entry.Lap = units.Millimeters(b.Lap.Value)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
