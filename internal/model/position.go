package model

import "fmt"

// PositionKind tells which space of a schema a Position addresses.
type PositionKind int

const (
	// KindArgument addresses the argument list.
	KindArgument PositionKind = iota
	// KindReturn addresses the return list.
	KindReturn
)

// Position addresses one argument or return slot of a schema.
type Position struct {
	Kind  PositionKind
	Index int
}

// ArgumentPos builds a Position into the argument list.
func ArgumentPos(index int) Position {
	return Position{Kind: KindArgument, Index: index}
}

// ReturnPos builds a Position into the return list.
func ReturnPos(index int) Position {
	return Position{Kind: KindReturn, Index: index}
}

func (p Position) String() string {
	if p.Kind == KindReturn {
		return fmt.Sprintf("return[%d]", p.Index)
	}

	return fmt.Sprintf("argument[%d]", p.Index)
}
