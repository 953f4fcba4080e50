package x

import (
	"fmt"

	"github.com/0101/pipetools/pkg/pipe/callable"
	"github.com/0101/pipetools/pkg/pipe/naming"
	"github.com/0101/pipetools/pkg/pipe/ops"
)

// node is one of getAttr, getItem, call, binOp, unaryOp.
type node interface {
	isNode()
}

type getAttr struct {
	name string
}

type getItem struct {
	key any
}

type call struct {
	args   []any
	kwargs callable.Kwargs
}

type binOp struct {
	op      ops.Operator
	operand any
	right   bool
}

type unaryOp struct {
	op ops.UnaryOperator
}

func (getAttr) isNode() {}
func (getItem) isNode() {}
func (call) isNode()    {}
func (binOp) isNode()   {}
func (unaryOp) isNode() {}

// eval applies n to v. input is the argument the whole expression was
// called with; operand expressions are evaluated against it.
func eval(n node, v, input any) (any, error) {
	switch n := n.(type) {
	case getAttr:
		return ops.GetAttr(v, n.name)
	case getItem:
		return ops.GetItem(v, n.key)
	case call:
		fn, err := callable.Of(v)
		if err != nil {
			return nil, err
		}
		return fn.CallKw(n.args, n.kwargs)
	case binOp:
		operand := n.operand
		if sub, ok := operand.(*Expr); ok {
			var err error
			if operand, err = sub.Eval(input); err != nil {
				return nil, err
			}
		}
		if n.right {
			return ops.Binary(n.op, operand, v)
		}
		return ops.Binary(n.op, v, operand)
	case unaryOp:
		return ops.Unary(n.op, v)
	}
	return nil, fmt.Errorf("unknown placeholder operation %T", n)
}

func nameOf(n node) string {
	switch n := n.(type) {
	case getAttr:
		return "X." + n.name
	case getItem:
		return "X[" + naming.Repr(n.key) + "]"
	case call:
		return "X(" + naming.ReprArgs(n.args, n.kwargs) + ")"
	case binOp:
		if n.right {
			return fmt.Sprintf("%s %s X", naming.Repr(n.operand), n.op)
		}
		return fmt.Sprintf("X %s %s", n.op, naming.Repr(n.operand))
	case unaryOp:
		return n.op.String() + "X"
	}
	return "?"
}
