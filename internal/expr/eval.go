package expr

// Tree-walking evaluation. Nodes are immutable after parsing, so one *Expr is
// safe to share across concurrent evaluations with distinct environments.

type node interface {
	eval(env Environment) (Value, error)
}

type literalNode struct {
	v Value
}

func (n *literalNode) eval(Environment) (Value, error) { return n.v, nil }

type identNode struct {
	name string
}

func (n *identNode) eval(env Environment) (Value, error) {
	v, ok := env[n.name]
	if !ok {
		return Value{}, &UnboundVariableError{Name: n.name}
	}
	return v, nil
}

type unaryNode struct {
	op string
	x  node
}

func (n *unaryNode) eval(env Environment) (Value, error) {
	v, err := n.x.eval(env)
	if err != nil {
		return Value{}, err
	}
	switch n.op {
	case "!":
		if v.Kind != KindBool {
			return Value{}, &TypeMismatchError{Op: "!", Left: v.Kind, Right: v.Kind}
		}
		return Bool(!v.Bool), nil
	case "-":
		if v.Kind != KindNumber {
			return Value{}, &TypeMismatchError{Op: "-", Left: v.Kind, Right: v.Kind}
		}
		return Number(-v.Num), nil
	}
	return Value{}, &SyntaxError{Msg: "unknown unary operator " + n.op}
}

type binaryNode struct {
	op          string
	left, right node
}

func (n *binaryNode) eval(env Environment) (Value, error) {
	// && and || short-circuit: the right operand of a decided combinator is
	// never evaluated.
	if n.op == "&&" || n.op == "||" {
		return n.evalLogical(env)
	}
	l, err := n.left.eval(env)
	if err != nil {
		return Value{}, err
	}
	r, err := n.right.eval(env)
	if err != nil {
		return Value{}, err
	}
	switch n.op {
	case "+", "-", "*", "/":
		return n.evalArithmetic(l, r)
	case "==":
		if l.Kind != r.Kind {
			return Value{}, &TypeMismatchError{Op: n.op, Left: l.Kind, Right: r.Kind}
		}
		return Bool(l.Equal(r)), nil
	case "!=":
		if l.Kind != r.Kind {
			return Value{}, &TypeMismatchError{Op: n.op, Left: l.Kind, Right: r.Kind}
		}
		return Bool(!l.Equal(r)), nil
	case "<", "<=", ">", ">=":
		if l.Kind != KindNumber || r.Kind != KindNumber {
			return Value{}, &TypeMismatchError{Op: n.op, Left: l.Kind, Right: r.Kind}
		}
		switch n.op {
		case "<":
			return Bool(l.Num < r.Num), nil
		case "<=":
			return Bool(l.Num <= r.Num), nil
		case ">":
			return Bool(l.Num > r.Num), nil
		default:
			return Bool(l.Num >= r.Num), nil
		}
	}
	return Value{}, &SyntaxError{Msg: "unknown operator " + n.op}
}

func (n *binaryNode) evalLogical(env Environment) (Value, error) {
	l, err := n.left.eval(env)
	if err != nil {
		return Value{}, err
	}
	if l.Kind != KindBool {
		return Value{}, &TypeMismatchError{Op: n.op, Left: l.Kind, Right: l.Kind}
	}
	if n.op == "&&" && !l.Bool {
		return Bool(false), nil
	}
	if n.op == "||" && l.Bool {
		return Bool(true), nil
	}
	r, err := n.right.eval(env)
	if err != nil {
		return Value{}, err
	}
	if r.Kind != KindBool {
		return Value{}, &TypeMismatchError{Op: n.op, Left: l.Kind, Right: r.Kind}
	}
	return Bool(r.Bool), nil
}

func (n *binaryNode) evalArithmetic(l, r Value) (Value, error) {
	if l.Kind != KindNumber || r.Kind != KindNumber {
		return Value{}, &TypeMismatchError{Op: n.op, Left: l.Kind, Right: r.Kind}
	}
	switch n.op {
	case "+":
		return Number(l.Num + r.Num), nil
	case "-":
		return Number(l.Num - r.Num), nil
	case "*":
		return Number(l.Num * r.Num), nil
	default: // "/"
		if r.Num == 0 {
			return Value{}, &NotANumberError{Op: "/"}
		}
		return Number(l.Num / r.Num), nil
	}
}

type ternaryNode struct {
	cond, then, els node
}

func (n *ternaryNode) eval(env Environment) (Value, error) {
	c, err := n.cond.eval(env)
	if err != nil {
		return Value{}, err
	}
	if c.Kind != KindBool {
		return Value{}, &TypeMismatchError{Op: "?:", Left: c.Kind, Right: c.Kind}
	}
	if c.Bool {
		return n.then.eval(env)
	}
	return n.els.eval(env)
}

// Evaluate walks the tree against env. Identical expression and environment
// always yield the identical result.
func (e *Expr) Evaluate(env Environment) (Value, error) {
	return e.root.eval(env)
}
