package lang

import (
	"fmt"
	"strconv"

	"github.com/mlql/mlql/internal/ir"
	"github.com/mlql/mlql/internal/mlqlerr"
)

// Parser is a recursive-descent parser over the token stream with a single
// token of lookahead. Parsing is strict: the first malformed construct
// aborts with a *mlqlerr.SyntaxError, no recovery is attempted.
type Parser struct {
	lex *Lexer
	tok Token
}

// Parse parses a full MLQL program: an optional pragma block, zero or more
// let bindings, and one terminal pipeline.
func Parse(src string) (Program, error) {
	p := &Parser{lex: NewLexer(src)}
	if err := p.next(); err != nil {
		return Program{}, err
	}
	return p.parseProgram()
}

// ParseToIR parses src and lowers the resulting AST onto internal/ir.
func ParseToIR(src string) (ir.Program, error) {
	ast, err := Parse(src)
	if err != nil {
		return ir.Program{}, err
	}
	return ast.Lower()
}

func (p *Parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &mlqlerr.SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Line:    p.tok.Line,
		Column:  p.tok.Column,
	}
}

func (p *Parser) atKeyword(kw string) bool {
	return p.tok.Kind == TokIdent && p.tok.Text == kw
}

func (p *Parser) expectKeyword(kw string) error {
	if !p.atKeyword(kw) {
		return p.errorf("expected %q, found %q", kw, p.tok.Text)
	}
	return p.next()
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, p.errorf("expected %s, found %q", kind, p.tok.Text)
	}
	tok := p.tok
	if err := p.next(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// parseIdent accepts an identifier that is not a reserved keyword.
func (p *Parser) parseIdent() (string, error) {
	if p.tok.Kind != TokIdent {
		return "", p.errorf("expected identifier, found %q", p.tok.Text)
	}
	if isKeyword(p.tok.Text) {
		return "", p.errorf("keyword %q cannot be used as an identifier", p.tok.Text)
	}
	name := p.tok.Text
	if err := p.next(); err != nil {
		return "", err
	}
	return name, nil
}

func (p *Parser) parseProgram() (Program, error) {
	var prog Program

	if p.atKeyword("pragma") {
		pragma, err := p.parsePragma()
		if err != nil {
			return Program{}, err
		}
		prog.Pragma = pragma
	}

	for p.atKeyword("let") {
		let, err := p.parseLet()
		if err != nil {
			return Program{}, err
		}
		prog.Lets = append(prog.Lets, let)
	}

	pipeline, err := p.parsePipeline()
	if err != nil {
		return Program{}, err
	}
	prog.Pipeline = pipeline

	if p.tok.Kind != TokEOF {
		return Program{}, p.errorf("unexpected trailing input %q", p.tok.Text)
	}
	return prog, nil
}

// parsePragma parses `pragma { name: literal, ... }`.
func (p *Parser) parsePragma() (*Pragma, error) {
	if err := p.next(); err != nil { // consume "pragma"
		return nil, err
	}
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}

	options := make(map[string]ir.Value)
	for p.tok.Kind != TokRBrace {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokColon); err != nil {
			return nil, err
		}
		value, err := p.parseLiteralValue()
		if err != nil {
			return nil, err
		}
		options[name] = value

		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return &Pragma{Options: options}, nil
}

// parseLiteralValue parses a pragma option value: a literal token, possibly
// sign-prefixed.
func (p *Parser) parseLiteralValue() (ir.Value, error) {
	negate := false
	if p.tok.Kind == TokMinus {
		negate = true
		if err := p.next(); err != nil {
			return ir.Value{}, err
		}
	}

	switch {
	case p.tok.Kind == TokInt:
		n, err := strconv.ParseInt(p.tok.Text, 10, 64)
		if err != nil {
			return ir.Value{}, p.errorf("invalid integer literal %q", p.tok.Text)
		}
		if negate {
			n = -n
		}
		if err := p.next(); err != nil {
			return ir.Value{}, err
		}
		return ir.IntValue(n), nil
	case p.tok.Kind == TokFloat:
		f, err := strconv.ParseFloat(p.tok.Text, 64)
		if err != nil {
			return ir.Value{}, p.errorf("invalid float literal %q", p.tok.Text)
		}
		if negate {
			f = -f
		}
		if err := p.next(); err != nil {
			return ir.Value{}, err
		}
		return ir.FloatValue(f), nil
	case negate:
		return ir.Value{}, p.errorf("expected numeric literal after '-', found %q", p.tok.Text)
	case p.tok.Kind == TokString:
		s := p.tok.Text
		if err := p.next(); err != nil {
			return ir.Value{}, err
		}
		return ir.StringValue(s), nil
	case p.atKeyword("true"):
		if err := p.next(); err != nil {
			return ir.Value{}, err
		}
		return ir.BoolValue(true), nil
	case p.atKeyword("false"):
		if err := p.next(); err != nil {
			return ir.Value{}, err
		}
		return ir.BoolValue(false), nil
	case p.atKeyword("null"):
		if err := p.next(); err != nil {
			return ir.Value{}, err
		}
		return ir.Null(), nil
	default:
		return ir.Value{}, p.errorf("expected literal, found %q", p.tok.Text)
	}
}

// parseLet parses `let name = <pipeline>`.
func (p *Parser) parseLet() (LetStmt, error) {
	if err := p.next(); err != nil { // consume "let"
		return LetStmt{}, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return LetStmt{}, err
	}
	if _, err := p.expect(TokAssign); err != nil {
		return LetStmt{}, err
	}
	pipeline, err := p.parsePipeline()
	if err != nil {
		return LetStmt{}, err
	}
	return LetStmt{Name: name, Pipeline: pipeline}, nil
}

// parsePipeline parses `from <source> (| <op>)*`.
func (p *Parser) parsePipeline() (Pipeline, error) {
	if err := p.expectKeyword("from"); err != nil {
		return Pipeline{}, err
	}
	source, err := p.parseSource()
	if err != nil {
		return Pipeline{}, err
	}

	var ops []Operator
	for p.tok.Kind == TokPipe {
		if err := p.next(); err != nil {
			return Pipeline{}, err
		}
		op, err := p.parseOperator()
		if err != nil {
			return Pipeline{}, err
		}
		ops = append(ops, op)
	}
	return Pipeline{Source: source, Ops: ops}, nil
}

// parseSource parses a table name or a parenthesized sub-pipeline, each
// with an optional trailing alias.
func (p *Parser) parseSource() (Source, error) {
	if p.tok.Kind == TokLParen {
		if err := p.next(); err != nil {
			return nil, err
		}
		pipeline, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		alias := p.maybeAlias()
		return SubPipelineSource{Pipeline: pipeline, Alias: alias}, nil
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	alias := p.maybeAlias()
	return TableSource{Name: name, Alias: alias}, nil
}

// maybeAlias consumes a bare trailing identifier as an alias if one is
// present. Keywords never alias, so `from users | filter ...` keeps
// "filter" out of the alias slot.
func (p *Parser) maybeAlias() string {
	if p.tok.Kind != TokIdent || isKeyword(p.tok.Text) {
		return ""
	}
	alias := p.tok.Text
	if err := p.next(); err != nil {
		return ""
	}
	return alias
}

var joinTypeKeywords = map[string]ir.JoinType{
	"inner": ir.JoinInner,
	"left":  ir.JoinLeft,
	"right": ir.JoinRight,
	"full":  ir.JoinFull,
	"semi":  ir.JoinSemi,
	"anti":  ir.JoinAnti,
	"cross": ir.JoinCross,
}

func (p *Parser) parseOperator() (Operator, error) {
	if p.tok.Kind != TokIdent {
		return nil, p.errorf("expected operator, found %q", p.tok.Text)
	}

	if jt, ok := joinTypeKeywords[p.tok.Text]; ok {
		if err := p.next(); err != nil {
			return nil, err
		}
		return p.parseJoin(jt)
	}

	switch p.tok.Text {
	case "select":
		return p.parseSelect()
	case "filter":
		return p.parseFilter()
	case "join":
		return p.parseJoin("")
	case "group":
		return p.parseGroupBy()
	case "sort":
		return p.parseSort()
	case "take":
		return p.parseTake()
	case "distinct":
		if err := p.next(); err != nil {
			return nil, err
		}
		return DistinctOp{}, nil
	default:
		return nil, p.errorf("unknown operator %q", p.tok.Text)
	}
}

// parseSelect parses `select [ <projection>, ... ]`.
func (p *Parser) parseSelect() (Operator, error) {
	if err := p.next(); err != nil { // consume "select"
		return nil, err
	}
	if _, err := p.expect(TokLBrack); err != nil {
		return nil, err
	}

	var projections []Projection
	for p.tok.Kind != TokRBrack {
		proj, err := p.parseProjection()
		if err != nil {
			return nil, err
		}
		projections = append(projections, proj)

		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(TokRBrack); err != nil {
		return nil, err
	}
	return SelectOp{Projections: projections}, nil
}

// parseProjection parses `*`, an expression, or `expr as alias`.
func (p *Parser) parseProjection() (Projection, error) {
	if p.tok.Kind == TokStar {
		if err := p.next(); err != nil {
			return Projection{}, err
		}
		return Projection{Expr: ColumnExpr{Ref: ir.ColumnRef{Column: "*"}}}, nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return Projection{}, err
	}
	if p.atKeyword("as") {
		if err := p.next(); err != nil {
			return Projection{}, err
		}
		alias, err := p.parseIdent()
		if err != nil {
			return Projection{}, err
		}
		return Projection{Expr: expr, Alias: alias, Aliased: true}, nil
	}
	return Projection{Expr: expr}, nil
}

func (p *Parser) parseFilter() (Operator, error) {
	if err := p.next(); err != nil { // consume "filter"
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return FilterOp{Condition: cond}, nil
}

// parseJoin parses `join <source> on <expr>`; the caller has already
// consumed any leading join-type keyword.
func (p *Parser) parseJoin(joinType ir.JoinType) (Operator, error) {
	if err := p.expectKeyword("join"); err != nil {
		return nil, err
	}
	source, err := p.parseSource()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	on, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return JoinOp{Source: source, On: on, JoinType: joinType}, nil
}

// parseGroupBy parses `group by key, ... { name: func(args), ... }`.
func (p *Parser) parseGroupBy() (Operator, error) {
	if err := p.next(); err != nil { // consume "group"
		return nil, err
	}
	if err := p.expectKeyword("by"); err != nil {
		return nil, err
	}

	var keys []Expr
	for {
		key, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}
	aggs := make(map[string]AggCall)
	for p.tok.Kind != TokRBrace {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokColon); err != nil {
			return nil, err
		}
		agg, err := p.parseAggCall()
		if err != nil {
			return nil, err
		}
		if _, dup := aggs[name]; dup {
			return nil, p.errorf("duplicate aggregate alias %q", name)
		}
		aggs[name] = agg

		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return GroupByOp{Keys: keys, Aggs: aggs}, nil
}

// parseAggCall parses `func(args...)` inside a group-by aggregate slot.
func (p *Parser) parseAggCall() (AggCall, error) {
	name, err := p.parseIdent()
	if err != nil {
		return AggCall{}, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return AggCall{}, err
	}

	var args []Expr
	for p.tok.Kind != TokRParen {
		arg, err := p.parseExpr()
		if err != nil {
			return AggCall{}, err
		}
		args = append(args, arg)
		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return AggCall{}, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(TokRParen); err != nil {
		return AggCall{}, err
	}
	return AggCall{Func: name, Args: args}, nil
}

// parseSort parses `sort key, ...` where each key takes an optional leading
// `+` (ascending, the default) or `-` (descending).
func (p *Parser) parseSort() (Operator, error) {
	if err := p.next(); err != nil { // consume "sort"
		return nil, err
	}

	var keys []SortKey
	for {
		desc := false
		switch p.tok.Kind {
		case TokMinus:
			desc = true
			if err := p.next(); err != nil {
				return nil, err
			}
		case TokPlus:
			if err := p.next(); err != nil {
				return nil, err
			}
		}

		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		keys = append(keys, SortKey{Expr: expr, Desc: desc})

		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return SortOp{Keys: keys}, nil
}

func (p *Parser) parseTake() (Operator, error) {
	if err := p.next(); err != nil { // consume "take"
		return nil, err
	}
	tok, err := p.expect(TokInt)
	if err != nil {
		return nil, err
	}
	limit, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return nil, p.errorf("invalid take limit %q", tok.Text)
	}
	return TakeOp{Limit: limit}, nil
}

// Expression parsing, lowest precedence first: or, and, not, comparison,
// additive, multiplicative, unary, postfix, atom.

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("or") {
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = BinaryExpr{Op: ir.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("and") {
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = BinaryExpr{Op: ir.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (Expr, error) {
	if p.atKeyword("not") {
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return UnaryExpr{Op: ir.OpNot, Operand: operand}, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[TokenKind]ir.BinaryOperator{
	TokEq: ir.OpEq,
	TokNe: ir.OpNe,
	TokLt: ir.OpLt,
	TokLe: ir.OpLe,
	TokGt: ir.OpGt,
	TokGe: ir.OpGe,
}

func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ir.BinaryOperator
		switch {
		case comparisonOps[p.tok.Kind] != "":
			op = comparisonOps[p.tok.Kind]
		case p.atKeyword("like"):
			op = ir.OpLike
		case p.atKeyword("ilike"):
			op = ir.OpILike
		default:
			return left, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == TokPlus || p.tok.Kind == TokMinus {
		op := ir.OpAdd
		if p.tok.Kind == TokMinus {
			op = ir.OpSub
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == TokStar || p.tok.Kind == TokSlash || p.tok.Kind == TokPercent {
		var op ir.BinaryOperator
		switch p.tok.Kind {
		case TokStar:
			op = ir.OpMul
		case TokSlash:
			op = ir.OpDiv
		default:
			op = ir.OpMod
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	switch p.tok.Kind {
	case TokMinus:
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return UnaryExpr{Op: ir.OpNeg, Operand: operand}, nil
	case TokBang:
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return UnaryExpr{Op: ir.OpNot, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses an atom followed by any chain of field accesses and
// index expressions. A `.` directly after a bare identifier binds as a
// qualified column reference first; further postfix dots become FieldAccess.
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok.Kind {
		case TokDot:
			if err := p.next(); err != nil {
				return nil, err
			}
			field, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			if col, ok := expr.(ColumnExpr); ok && col.Ref.Table == "" {
				expr = ColumnExpr{Ref: ir.ColumnRef{Table: col.Ref.Column, Column: field}}
				continue
			}
			expr = FieldAccessExpr{Target: expr, Field: field}
		case TokLBrack:
			if err := p.next(); err != nil {
				return nil, err
			}
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokRBrack); err != nil {
				return nil, err
			}
			expr = IndexExpr{Target: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseAtom() (Expr, error) {
	switch p.tok.Kind {
	case TokInt, TokFloat, TokString:
		value, err := p.parseLiteralValue()
		if err != nil {
			return nil, err
		}
		return LiteralExpr{Value: value}, nil

	case TokLParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return expr, nil

	case TokLBrack:
		return p.parseArrayLiteral()

	case TokLBrace:
		return p.parseObjectLiteral()

	case TokIdent:
		switch p.tok.Text {
		case "true", "false", "null":
			value, err := p.parseLiteralValue()
			if err != nil {
				return nil, err
			}
			return LiteralExpr{Value: value}, nil
		}
		if isKeyword(p.tok.Text) {
			return nil, p.errorf("unexpected keyword %q in expression", p.tok.Text)
		}
		name := p.tok.Text
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Kind == TokLParen {
			return p.parseCallArgs(name)
		}
		return ColumnExpr{Ref: ir.ColumnRef{Column: name}}, nil

	default:
		return nil, p.errorf("unexpected token %q in expression", p.tok.Text)
	}
}

func (p *Parser) parseCallArgs(name string) (Expr, error) {
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	var args []Expr
	for p.tok.Kind != TokRParen {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	return FuncCallExpr{Name: name, Args: args}, nil
}

func (p *Parser) parseArrayLiteral() (Expr, error) {
	if err := p.next(); err != nil { // consume "["
		return nil, err
	}
	var items []Expr
	for p.tok.Kind != TokRBrack {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(TokRBrack); err != nil {
		return nil, err
	}
	return ArrayExpr{Items: items}, nil
}

func (p *Parser) parseObjectLiteral() (Expr, error) {
	if err := p.next(); err != nil { // consume "{"
		return nil, err
	}
	fields := make(map[string]Expr)
	for p.tok.Kind != TokRBrace {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokColon); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields[name] = value
		if p.tok.Kind == TokComma {
			if err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return ObjectExpr{Fields: fields}, nil
}
