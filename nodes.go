package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	name string
	fn   Func

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push num
	nodeName // push lookup(name)

	nodeCall // name is Func to call, right is link to nodeArg unless niladic
	nodeArg  // name is "" or "," or ";", eval left, right is link to next arg

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right
	nodeNop // evaluate left
)

var nodeKindNames = [...]string{
	nodeNone: "None",
	nodeNum:  "Num",
	nodeName: "Name",
	nodeCall: "Call",
	nodeArg:  "Arg",
	nodeNeg:  "Neg",
	nodeAdd:  "Add",
	nodeSub:  "Sub",
	nodeMul:  "Mul",
	nodeDiv:  "Div",
	nodePow:  "Pow",
	nodeNop:  "Nop",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

func (n *node) String() string {
	var b strings.Builder
	n.write(&b, false)
	return b.String()
}

// Binding strengths for printing. These mirror the parser's operator
// precedences so that printed expressions parse back to the same tree.
const (
	printSum  int8 = 1
	printProd int8 = 5
	printSign int8 = 10
	printPow  int8 = 15
	printAtom int8 = 20
)

// binding returns how tightly the node binds when printed.
func (n *node) binding() int8 {
	switch n.kind {
	case nodeAdd, nodeSub:
		return printSum
	case nodeMul, nodeDiv:
		return printProd
	case nodeNeg, nodeNop:
		return printSign
	case nodePow:
		return printPow
	default:
		return printAtom
	}
}

// write prints the node in infix form with as few brackets as possible. alt
// selects × and ÷ for multiplication and division.
func (n *node) write(b *strings.Builder, alt bool) {
	switch n.kind {
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		if n.right == nil {
			// Niladic call.
			return
		}
		b.WriteByte('(')
		for a := n.right; a != nil; a = a.right {
			if a != n.right {
				if a.name == ";" {
					b.WriteString("; ")
				} else {
					b.WriteString(", ")
				}
			}
			a.left.write(b, alt)
		}
		b.WriteByte(')')
	case nodeArg:
		// Args only appear inside calls.
		panic("calc: write on nodeArg")
	case nodeNeg:
		b.WriteByte('-')
		n.operand(b, n.left, printSign, alt)
	case nodeNop:
		b.WriteByte('+')
		n.operand(b, n.left, printSign, alt)
	case nodeAdd:
		n.operand(b, n.left, printSum, alt)
		b.WriteString(" + ")
		n.operand(b, n.right, printSum+1, alt)
	case nodeSub:
		n.operand(b, n.left, printSum, alt)
		b.WriteString(" - ")
		n.operand(b, n.right, printSum+1, alt)
	case nodeMul:
		n.operand(b, n.left, printProd, alt)
		if alt {
			b.WriteString(" × ")
		} else {
			b.WriteString(" * ")
		}
		n.operand(b, n.right, printProd+1, alt)
	case nodeDiv:
		n.operand(b, n.left, printProd, alt)
		if alt {
			b.WriteString(" ÷ ")
		} else {
			b.WriteString(" / ")
		}
		n.operand(b, n.right, printProd+1, alt)
	case nodePow:
		// Exponentiation is right-associative, and its exponent may be signed
		// without brackets: x^-y is x^(-y).
		n.operand(b, n.left, printPow+1, alt)
		b.WriteByte('^')
		n.operand(b, n.right, printSign, alt)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// operand writes an operand of n, bracketed if it binds less tightly than min.
func (n *node) operand(b *strings.Builder, x *node, min int8, alt bool) {
	if x.binding() >= min {
		x.write(b, alt)
		return
	}
	b.WriteByte('(')
	x.write(b, alt)
	b.WriteByte(')')
}
