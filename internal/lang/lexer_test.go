package lang

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mlql/mlql/internal/mlqlerr"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(src)
	var toks []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		if tok.Kind == TokEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexOperatorsAndLiterals(t *testing.T) {
	toks := lexAll(t, `from users | filter age >= 2.5 == != "s"`)

	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	require.Equal(t, []TokenKind{
		TokIdent, TokIdent, TokPipe, TokIdent, TokIdent,
		TokGe, TokFloat, TokEq, TokNe, TokString,
	}, kinds)
	require.Equal(t, "2.5", toks[6].Text)
	require.Equal(t, "s", toks[9].Text)
}

func TestLexTracksPositions(t *testing.T) {
	toks := lexAll(t, "from\n  users")
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 1, toks[0].Column)
	require.Equal(t, 2, toks[1].Line)
	require.Equal(t, 3, toks[1].Column)
}

func TestLexSkipsComments(t *testing.T) {
	toks := lexAll(t, "from # trailing comment\nusers // another\n| take 1")
	require.Len(t, toks, 5)
	require.Equal(t, "users", toks[1].Text)
}

func TestLexIntegerVersusFloat(t *testing.T) {
	toks := lexAll(t, "10 10.5 10.5e3")
	require.Equal(t, TokInt, toks[0].Kind)
	require.Equal(t, TokFloat, toks[1].Kind)
	require.Equal(t, TokFloat, toks[2].Kind)
}

func TestLexStringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\"b\\c\n"`)
	require.Equal(t, "a\"b\\c\n", toks[0].Text)
}

func TestLexRejectsUnknownRune(t *testing.T) {
	lex := NewLexer("from users @ oops")
	var err error
	for err == nil {
		var tok Token
		tok, err = lex.Next()
		if err == nil && tok.Kind == TokEOF {
			t.Fatal("expected a lex error before EOF")
		}
	}
	var syn *mlqlerr.SyntaxError
	require.ErrorAs(t, err, &syn)
}
