package jsontree

import (
	"strconv"

	"github.com/arloliu/jsontree/errs"
	"github.com/arloliu/jsontree/internal/pool"
)

// ToString serializes the value to JSON text.
//
// Compact output (pretty=false) carries no whitespace. Pretty output uses
// 2-space indentation with one element or member per line; empty containers
// stay on one line as [] and {}.
//
// Parameters:
//   - pretty: Whether to produce indented, human-readable output.
//
// Returns:
//   - string: The JSON text.
//   - error: ErrInvalidHandle, or ErrCycleDetected when the value graph
//     contains a reference cycle.
func (v *Value) ToString(pretty bool) (string, error) {
	if v.cell == nil {
		return "", errs.ErrInvalidHandle
	}

	buf := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(buf)

	enc := encoder{
		buf:      buf,
		pretty:   pretty,
		visiting: make(map[*cell]struct{}),
	}
	if err := enc.encode(v.cell, 0); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// encoder walks the cell graph depth-first. visiting holds the containers
// on the current path; revisiting one means the graph has a cycle and
// serialization cannot terminate.
type encoder struct {
	buf      *pool.ByteBuffer
	pretty   bool
	visiting map[*cell]struct{}
}

func (e *encoder) encode(c *cell, indent int) error {
	switch c.kind {
	case TypeNull:
		e.buf.MustWriteString("null")
	case TypeBool:
		if c.b {
			e.buf.MustWriteString("true")
		} else {
			e.buf.MustWriteString("false")
		}
	case TypeNumber:
		e.buf.B = strconv.AppendFloat(e.buf.B, c.num, 'g', -1, 64)
	case TypeString:
		e.encodeString(c.str)
	case TypeArray:
		return e.encodeArray(c, indent)
	case TypeObject:
		return e.encodeObject(c, indent)
	}

	return nil
}

func (e *encoder) encodeArray(c *cell, indent int) error {
	if _, ok := e.visiting[c]; ok {
		return errs.ErrCycleDetected
	}
	e.visiting[c] = struct{}{}
	defer delete(e.visiting, c)

	if len(c.arr) == 0 {
		e.buf.MustWriteString("[]")
		return nil
	}

	e.buf.MustWriteByte('[')
	for i := range c.arr {
		if i > 0 {
			e.buf.MustWriteByte(',')
		}
		e.newlineIndent(indent + 1)
		if err := e.encode(c.arr[i].cell, indent+1); err != nil {
			return err
		}
	}
	e.newlineIndent(indent)
	e.buf.MustWriteByte(']')

	return nil
}

func (e *encoder) encodeObject(c *cell, indent int) error {
	if _, ok := e.visiting[c]; ok {
		return errs.ErrCycleDetected
	}
	e.visiting[c] = struct{}{}
	defer delete(e.visiting, c)

	if c.obj.len() == 0 {
		e.buf.MustWriteString("{}")
		return nil
	}

	e.buf.MustWriteByte('{')
	first := true
	for i := range c.obj.slots {
		slot := &c.obj.slots[i]
		if slot.state != slotUsed {
			continue
		}
		if !first {
			e.buf.MustWriteByte(',')
		}
		first = false

		e.newlineIndent(indent + 1)
		e.encodeString(slot.key)
		e.buf.MustWriteByte(':')
		if e.pretty {
			e.buf.MustWriteByte(' ')
		}
		if err := e.encode(slot.val.cell, indent+1); err != nil {
			return err
		}
	}
	e.newlineIndent(indent)
	e.buf.MustWriteByte('}')

	return nil
}

// newlineIndent emits a line break plus 2-space indentation in pretty mode
// and nothing in compact mode.
func (e *encoder) newlineIndent(indent int) {
	if !e.pretty {
		return
	}
	e.buf.MustWriteByte('\n')
	for range indent {
		e.buf.MustWriteString("  ")
	}
}

const hexDigits = "0123456789abcdef"

// encodeString writes a quoted JSON string. Named escapes cover the common
// control characters; remaining control bytes become \u00XX. Bytes at 0x20
// and above pass through untouched.
func (e *encoder) encodeString(s string) {
	e.buf.MustWriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			e.buf.MustWriteString(`\"`)
		case '\\':
			e.buf.MustWriteString(`\\`)
		case '\b':
			e.buf.MustWriteString(`\b`)
		case '\f':
			e.buf.MustWriteString(`\f`)
		case '\n':
			e.buf.MustWriteString(`\n`)
		case '\r':
			e.buf.MustWriteString(`\r`)
		case '\t':
			e.buf.MustWriteString(`\t`)
		default:
			if c < 0x20 {
				e.buf.MustWriteString(`\u00`)
				e.buf.MustWriteByte(hexDigits[c>>4])
				e.buf.MustWriteByte(hexDigits[c&0xF])
			} else {
				e.buf.MustWriteByte(c)
			}
		}
	}
	e.buf.MustWriteByte('"')
}
