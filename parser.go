package jsontree

import (
	"fmt"
	"strconv"

	"github.com/arloliu/jsontree/errs"
	"github.com/arloliu/jsontree/internal/options"
)

// DefaultMaxDepth is the default nesting limit for Parse. Parsing is
// recursive, so the limit bounds stack use against hostile deeply nested
// input.
const DefaultMaxDepth = 512

type parserConfig struct {
	maxDepth int
	intern   bool
}

// ParseOption configures Parse behavior.
type ParseOption = options.Option[*parserConfig]

// WithMaxDepth sets the maximum nesting depth accepted by Parse.
// The depth must be positive.
func WithMaxDepth(depth int) ParseOption {
	return options.New(func(cfg *parserConfig) error {
		if depth <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", depth)
		}
		cfg.maxDepth = depth

		return nil
	})
}

// WithKeyInterning enables or disables object-key interning during parsing.
// Enabled by default.
func WithKeyInterning(enabled bool) ParseOption {
	return options.NoError(func(cfg *parserConfig) {
		cfg.intern = enabled
	})
}

// Parse decodes one JSON document from text.
//
// The grammar is strict JSON: quoted keys only, no trailing commas, no
// comments, no bare NaN/Infinity, and the whole input must be consumed by
// the single top-level value. Duplicate object keys are legal; the last
// occurrence wins.
//
// Parameters:
//   - text: The JSON document.
//   - opts: Optional settings (WithMaxDepth, WithKeyInterning).
//
// Returns:
//   - Value: The parsed document, owned by the caller.
//   - error: A *errs.ParseError carrying the failure position, matching
//     errs.ErrParse via errors.Is.
func Parse(text string, opts ...ParseOption) (Value, error) {
	cfg := parserConfig{
		maxDepth: DefaultMaxDepth,
		intern:   true,
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return Value{}, err
	}

	p := &parser{src: text, line: 1, col: 1, cfg: cfg}

	p.skipWhitespace()
	v, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}

	p.skipWhitespace()
	if p.pos != len(p.src) {
		release(v.cell)
		return Value{}, p.errorf("unexpected content after JSON value")
	}

	return v, nil
}

// parser is a recursive-descent JSON reader with one byte of lookahead and
// 1-based line/column tracking for diagnostics.
type parser struct {
	src   string
	pos   int
	line  int
	col   int
	depth int
	cfg   parserConfig
}

func (p *parser) errorf(format string, args ...any) error {
	return errs.NewParseError(fmt.Sprintf(format, args...), p.line, p.col)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

// consume advances past the current byte, maintaining the line/column
// counters.
func (p *parser) consume() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}

	return c
}

func (p *parser) skipWhitespace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.consume()
		default:
			return
		}
	}
}

func (p *parser) parseValue() (Value, error) {
	if p.eof() {
		return Value{}, p.errorf("unexpected end of input")
	}

	switch c := p.peek(); {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return Value{}, err
		}

		return NewString(s), nil
	case c == 't':
		if err := p.expectLiteral("true"); err != nil {
			return Value{}, err
		}

		return NewBool(true), nil
	case c == 'f':
		if err := p.expectLiteral("false"); err != nil {
			return Value{}, err
		}

		return NewBool(false), nil
	case c == 'n':
		if err := p.expectLiteral("null"); err != nil {
			return Value{}, err
		}

		return NewNull(), nil
	case c == '-' || (c >= '0' && c <= '9'):
		f, err := p.parseNumber()
		if err != nil {
			return Value{}, err
		}

		return NewNumber(f), nil
	default:
		return Value{}, p.errorf("unexpected character %q", c)
	}
}

func (p *parser) expectLiteral(lit string) error {
	if len(p.src)-p.pos < len(lit) || p.src[p.pos:p.pos+len(lit)] != lit {
		return p.errorf("invalid literal")
	}
	for range lit {
		p.consume()
	}

	return nil
}

// parseNumber scans the JSON number grammar and converts via strconv.
// Leading zeros are not consumed past the zero itself, so input like "01"
// leaves the trailing digit for the caller to reject as stray content.
func (p *parser) parseNumber() (float64, error) {
	start := p.pos

	if p.peek() == '-' {
		p.consume()
	}

	if p.eof() {
		return 0, p.errorf("invalid number")
	}
	switch c := p.peek(); {
	case c == '0':
		p.consume()
	case c >= '1' && c <= '9':
		p.consume()
		p.consumeDigits()
	default:
		return 0, p.errorf("invalid number")
	}

	if !p.eof() && p.peek() == '.' {
		p.consume()
		if !p.consumeDigits() {
			return 0, p.errorf("expected digit after decimal point")
		}
	}

	if !p.eof() && (p.peek() == 'e' || p.peek() == 'E') {
		p.consume()
		if !p.eof() && (p.peek() == '+' || p.peek() == '-') {
			p.consume()
		}
		if !p.consumeDigits() {
			return 0, p.errorf("expected digit in exponent")
		}
	}

	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf("invalid number %q", p.src[start:p.pos])
	}

	return f, nil
}

// consumeDigits consumes a run of ASCII digits and reports whether at least
// one was consumed.
func (p *parser) consumeDigits() bool {
	seen := false
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.consume()
		seen = true
	}

	return seen
}

// parseString decodes a quoted string starting at the opening quote.
//
// Unicode escapes decode \uXXXX codepoints up to 0x7F to the ASCII byte;
// any higher codepoint collapses to '?'. Non-ASCII bytes outside escapes
// pass through untouched.
func (p *parser) parseString() (string, error) {
	p.consume() // opening quote

	var buf []byte
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}

		c := p.consume()
		switch {
		case c == '"':
			return string(buf), nil
		case c == '\\':
			b, err := p.parseEscape()
			if err != nil {
				return "", err
			}
			buf = append(buf, b)
		case c < 0x20:
			return "", p.errorf("invalid control character in string")
		default:
			buf = append(buf, c)
		}
	}
}

func (p *parser) parseEscape() (byte, error) {
	if p.eof() {
		return 0, p.errorf("unterminated string")
	}

	switch c := p.consume(); c {
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '/':
		return '/', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		cp := 0
		for range 4 {
			if p.eof() {
				return 0, p.errorf("unterminated unicode escape")
			}
			d := hexDigit(p.consume())
			if d < 0 {
				return 0, p.errorf("invalid unicode escape")
			}
			cp = cp<<4 | d
		}
		if cp > 0x7F {
			return '?', nil
		}

		return byte(cp), nil
	default:
		return 0, p.errorf("invalid escape character %q", c)
	}
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.cfg.maxDepth {
		return p.errorf("nesting depth exceeds %d", p.cfg.maxDepth)
	}

	return nil
}

func (p *parser) parseArray() (Value, error) {
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer func() { p.depth-- }()

	p.consume() // '['
	arr := NewArray()

	p.skipWhitespace()
	if p.eof() {
		release(arr.cell)
		return Value{}, p.errorf("unterminated array")
	}
	if p.peek() == ']' {
		p.consume()
		return arr, nil
	}

	for {
		elem, err := p.parseValue()
		if err != nil {
			release(arr.cell)
			return Value{}, err
		}

		c := arr.cell
		if len(c.arr) == cap(c.arr) {
			na := make([]Value, len(c.arr), grownCapacity(cap(c.arr)))
			copy(na, c.arr)
			c.arr = na
		}
		c.arr = append(c.arr, elem)

		p.skipWhitespace()
		if p.eof() {
			release(arr.cell)
			return Value{}, p.errorf("unterminated array")
		}
		switch p.peek() {
		case ',':
			p.consume()
			p.skipWhitespace()
		case ']':
			p.consume()
			return arr, nil
		default:
			release(arr.cell)
			return Value{}, p.errorf("expected ',' or ']'")
		}
	}
}

func (p *parser) parseObject() (Value, error) {
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer func() { p.depth-- }()

	p.consume() // '{'
	obj := NewObject()

	p.skipWhitespace()
	if p.eof() {
		release(obj.cell)
		return Value{}, p.errorf("unterminated object")
	}
	if p.peek() == '}' {
		p.consume()
		return obj, nil
	}

	for {
		if p.eof() || p.peek() != '"' {
			release(obj.cell)
			return Value{}, p.errorf("expected string key")
		}
		key, err := p.parseString()
		if err != nil {
			release(obj.cell)
			return Value{}, err
		}
		if p.cfg.intern {
			key = internKey(key)
		}

		p.skipWhitespace()
		if p.eof() || p.peek() != ':' {
			release(obj.cell)
			return Value{}, p.errorf("expected ':' after object key")
		}
		p.consume()
		p.skipWhitespace()

		member, err := p.parseValue()
		if err != nil {
			release(obj.cell)
			return Value{}, err
		}
		obj.cell.obj.put(key, member)

		p.skipWhitespace()
		if p.eof() {
			release(obj.cell)
			return Value{}, p.errorf("unterminated object")
		}
		switch p.peek() {
		case ',':
			p.consume()
			p.skipWhitespace()
		case '}':
			p.consume()
			return obj, nil
		default:
			release(obj.cell)
			return Value{}, p.errorf("expected ',' or '}'")
		}
	}
}
