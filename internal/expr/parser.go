package expr

// Recursive-descent parser over the restricted grammar, lowest precedence
// first:
//
//	ternary    = or [ "?" ternary ":" ternary ]
//	or         = and { "||" and }
//	and        = equality { "&&" equality }
//	equality   = comparison { ("==" | "!=") comparison }
//	comparison = additive { ("<" | "<=" | ">" | ">=") additive }
//	additive   = term { ("+" | "-") term }
//	term       = unary { ("*" | "/") unary }
//	unary      = ("!" | "-") unary | primary
//	primary    = number | string | "true" | "false" | ident | "(" ternary ")"

// Expr is an immutable parsed expression; parse once, evaluate many.
type Expr struct {
	src  string
	root node
}

// Source returns the original expression text.
func (e *Expr) Source() string { return e.src }

// Parse compiles src into an expression tree. A non-nil error always unwraps
// to ErrMalformedExpression.
func Parse(src string) (*Expr, error) {
	p := &parser{lex: lexer{src: src}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	root, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, &SyntaxError{Pos: p.tok.pos, Msg: "unexpected trailing input"}
	}
	return &Expr{src: src, root: root}, nil
}

// Evaluate parses and evaluates src in one step.
func Evaluate(src string, env Environment) (Value, error) {
	e, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return e.Evaluate(env)
}

type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// acceptOp consumes the current token when it is one of the given operators.
func (p *parser) acceptOp(ops ...string) (string, bool, error) {
	if p.tok.kind != tokOp {
		return "", false, nil
	}
	for _, op := range ops {
		if p.tok.text == op {
			if err := p.advance(); err != nil {
				return "", false, err
			}
			return op, true, nil
		}
	}
	return "", false, nil
}

func (p *parser) parseTernary() (node, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokQuestion {
		return cond, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokColon {
		return nil, &SyntaxError{Pos: p.tok.pos, Msg: "expected \":\" in ternary"}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	els, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return &ternaryNode{cond: cond, then: then, els: els}, nil
}

func (p *parser) parseOr() (node, error) {
	return p.parseBinary([]string{"||"}, p.parseAnd)
}

func (p *parser) parseAnd() (node, error) {
	return p.parseBinary([]string{"&&"}, p.parseEquality)
}

func (p *parser) parseEquality() (node, error) {
	return p.parseBinary([]string{"==", "!="}, p.parseComparison)
}

func (p *parser) parseComparison() (node, error) {
	return p.parseBinary([]string{"<=", ">=", "<", ">"}, p.parseAdditive)
}

func (p *parser) parseAdditive() (node, error) {
	return p.parseBinary([]string{"+", "-"}, p.parseTerm)
}

func (p *parser) parseTerm() (node, error) {
	return p.parseBinary([]string{"*", "/"}, p.parseUnary)
}

func (p *parser) parseBinary(ops []string, next func() (node, error)) (node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok, err := p.acceptOp(ops...)
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	op, ok, err := p.acceptOp("!", "-")
	if err != nil {
		return nil, err
	}
	if ok {
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: op, x: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.tok
	switch tok.kind {
	case tokNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &literalNode{v: Number(tok.num)}, nil
	case tokString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &literalNode{v: String(tok.str)}, nil
	case tokIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch tok.text {
		case "true":
			return &literalNode{v: Bool(true)}, nil
		case "false":
			return &literalNode{v: Bool(false)}, nil
		}
		if p.tok.kind == tokLParen {
			return nil, &SyntaxError{Pos: p.tok.pos, Msg: "function calls are not allowed"}
		}
		return &identNode{name: tok.text}, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, &SyntaxError{Pos: p.tok.pos, Msg: "expected \")\""}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	case tokEOF:
		return nil, &SyntaxError{Pos: tok.pos, Msg: "unexpected end of expression"}
	}
	return nil, &SyntaxError{Pos: tok.pos, Msg: "unexpected token " + tok.text}
}
