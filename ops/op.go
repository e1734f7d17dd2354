// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"strings"
)

// Op identifies a binary operator.
type Op uint8

const (
	Add    Op = iota // +
	Sub              // -
	Mul              // *
	Div              // /
	Pow              // ^
	LDiv             // \
	Lt               // <
	Le               // <=
	Eq               // ==
	Ge               // >=
	Gt               // >
	Ne               // !=
	ElMul            // .*
	ElDiv            // ./
	ElPow            // .^
	ElLDiv           // .\
	ElAnd            // &
	ElOr             // |

	numOps
)

var opNames = [numOps]string{
	"add", "sub", "mul", "div", "pow", "ldiv",
	"lt", "le", "eq", "ge", "gt", "ne",
	"el_mul", "el_div", "el_pow", "el_ldiv", "el_and", "el_or",
}

var opSymbols = [numOps]string{
	"+", "-", "*", "/", "^", `\`,
	"<", "<=", "==", ">=", ">", "!=",
	".*", "./", ".^", `.\`, "&", "|",
}

// catName labels concatenation in errors and plans.
const catName = "concatenation"

// Ops lists every operator in declaration order.
func Ops() []Op {
	out := make([]Op, numOps)
	for i := range out {
		out[i] = Op(i)
	}

	return out
}

// String returns the operator name ("add", "el_mul", ...).
func (o Op) String() string {
	if o >= numOps {
		return fmt.Sprintf("Op(%d)", o)
	}

	return opNames[o]
}

// Symbol returns the operator token ("+", ".*", ...).
func (o Op) Symbol() string {
	if o >= numOps {
		return "?"
	}

	return opSymbols[o]
}

// IsComparison reports whether o yields a logical result of relational kind.
func (o Op) IsComparison() bool { return o >= Lt && o <= Ne }

// IsLogical reports whether o is & or |.
func (o Op) IsLogical() bool { return o == ElAnd || o == ElOr }

// IsElementwise reports whether o always works element by element.
func (o Op) IsElementwise() bool {
	return o == Add || o == Sub || o.IsComparison() || o >= ElMul
}

// ParseOp accepts an operator name or symbol ("~=" is an alias of "!=").
// Errors: ErrUnsupportedOperator.
func ParseOp(s string) (Op, error) {
	s = strings.TrimSpace(s)
	if s == "~=" {
		return Ne, nil
	}
	for i := Op(0); i < numOps; i++ {
		if s == opNames[i] || s == opSymbols[i] {
			return i, nil
		}
	}

	return 0, fmt.Errorf("ops: operator %q: %w", s, ErrUnsupportedOperator)
}
