package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Movement formats a rank delta: ▲n when up, ▼n when down, – when unchanged or unknown.
func Movement(delta *int) string {
	switch {
	case delta == nil || *delta == 0:
		return "–"
	case *delta > 0:
		return "▲" + strconv.Itoa(*delta)
	default:
		return "▼" + strconv.Itoa(-*delta)
	}
}

func movementClass(delta *int) string {
	switch {
	case delta == nil || *delta == 0:
		return "move move-flat"
	case *delta > 0:
		return "move move-up"
	default:
		return "move move-down"
	}
}

// MovementBadge wraps Movement in a styled span.
func MovementBadge(delta *int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := newWriter(w)
		b.element("span", Movement(delta), "class", movementClass(delta))
		return b.err
	})
}
