package x

import (
	"slices"
	"strings"

	"github.com/0101/pipetools/pkg/pipe/callable"
	"github.com/0101/pipetools/pkg/pipe/naming"
	"github.com/0101/pipetools/pkg/pipe/ops"
)

// Expr is one recorded operation plus everything recorded before it.
type Expr struct {
	parent *Expr
	op     node
}

// X is the empty expression. Evaluated, it is the identity function.
var X = &Expr{}

// Is reports whether v is a placeholder expression.
func Is(v any) bool {
	_, ok := v.(*Expr)
	return ok
}

func (e *Expr) bind(op node) *Expr {
	return &Expr{parent: e, op: op}
}

// Attr records member access: an exported field or a method.
func (e *Expr) Attr(name string) *Expr {
	return e.bind(getAttr{name: name})
}

// Item records indexing by key or position.
func (e *Expr) Item(key any) *Expr {
	return e.bind(getItem{key: key})
}

// Call records invoking the current value. Trailing callable.Kwargs are
// keyword arguments.
func (e *Expr) Call(args ...any) *Expr {
	pos, kw := callable.SplitKwargs(args)
	return e.bind(call{args: slices.Clone(pos), kwargs: kw})
}

// Op records current op operand. An operand that is itself an expression
// is evaluated against the same input.
func (e *Expr) Op(op ops.Operator, operand any) *Expr {
	return e.bind(binOp{op: op, operand: operand})
}

// ROp records operand op current, the expression on the right.
func (e *Expr) ROp(op ops.Operator, operand any) *Expr {
	return e.bind(binOp{op: op, operand: operand, right: true})
}

func (e *Expr) Add(v any) *Expr { return e.Op(ops.Add, v) }
func (e *Expr) Sub(v any) *Expr { return e.Op(ops.Sub, v) }
func (e *Expr) Mul(v any) *Expr { return e.Op(ops.Mul, v) }
func (e *Expr) Div(v any) *Expr { return e.Op(ops.Div, v) }
func (e *Expr) Mod(v any) *Expr { return e.Op(ops.Mod, v) }
func (e *Expr) Pow(v any) *Expr { return e.Op(ops.Pow, v) }
func (e *Expr) Eq(v any) *Expr  { return e.Op(ops.Eq, v) }
func (e *Expr) Ne(v any) *Expr  { return e.Op(ops.Ne, v) }
func (e *Expr) Lt(v any) *Expr  { return e.Op(ops.Lt, v) }
func (e *Expr) Le(v any) *Expr  { return e.Op(ops.Le, v) }
func (e *Expr) Gt(v any) *Expr  { return e.Op(ops.Gt, v) }
func (e *Expr) Ge(v any) *Expr  { return e.Op(ops.Ge, v) }

func (e *Expr) RAdd(v any) *Expr { return e.ROp(ops.Add, v) }
func (e *Expr) RSub(v any) *Expr { return e.ROp(ops.Sub, v) }
func (e *Expr) RMul(v any) *Expr { return e.ROp(ops.Mul, v) }
func (e *Expr) RDiv(v any) *Expr { return e.ROp(ops.Div, v) }
func (e *Expr) RMod(v any) *Expr { return e.ROp(ops.Mod, v) }
func (e *Expr) RPow(v any) *Expr { return e.ROp(ops.Pow, v) }

// In records a containment test of the current value in container.
func (e *Expr) In(container any) *Expr { return e.Op(ops.In, container) }

func (e *Expr) Neg() *Expr { return e.bind(unaryOp{op: ops.Neg}) }
func (e *Expr) Pos() *Expr { return e.bind(unaryOp{op: ops.Pos}) }
func (e *Expr) Not() *Expr { return e.bind(unaryOp{op: ops.Not}) }

// ToFunc materializes the expression into a unary Callable replaying the
// recorded operations in the order they were attached.
func (e *Expr) ToFunc() callable.Callable {
	nodes := e.nodes()
	if len(nodes) == 0 {
		return callable.Identity("X")
	}
	return callable.Unary(e.Name, func(v any) (any, error) {
		input := v
		for _, n := range nodes {
			var err error
			if v, err = eval(n, v, input); err != nil {
				return nil, err
			}
		}
		return v, nil
	})
}

// Eval applies the expression to v.
func (e *Expr) Eval(v any) (any, error) {
	return e.ToFunc().Apply(v)
}

// Name joins the names of the recorded operations with " | ".
func (e *Expr) Name() string {
	nodes := e.nodes()
	if len(nodes) == 0 {
		return "X"
	}
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = nameOf(n)
	}
	return strings.Join(names, " | ")
}

func (e *Expr) String() string {
	return e.Name()
}

func (e *Expr) nodes() []node {
	var out []node
	for n := e; n != nil && n.op != nil; n = n.parent {
		out = append(out, n.op)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

var _ naming.Named = (*Expr)(nil)
var _ callable.Funcer = (*Expr)(nil)
