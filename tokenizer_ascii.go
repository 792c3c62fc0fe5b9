package fbx

import (
	"strconv"
	"strings"

	"github.com/g3n/fbx/dom"
)

// asciiTokenKind enumerates the lexical categories spec §4.5 defines.
type asciiTokenKind int

const (
	atkEOF asciiTokenKind = iota
	atkIdent
	atkColon
	atkLBrace
	atkRBrace
	atkComma
	atkNumber
	atkString
)

type asciiToken struct {
	kind   asciiTokenKind
	text   string
	offset int
	line   int
}

// asciiLexer tokenises the textual FBX dialect (spec §4.5). It has no
// third-party dependency: this hand-rolled lexer is modelled directly on
// gogpu-naga's wgsl.Lexer (line/column tracking, a rune-at-a-time scan
// loop, and `&quot;`-style HTML entity unescaping inside string literals,
// which FBX ASCII also uses for embedded quotes).
type asciiLexer struct {
	data []byte
	pos  int
	line int
}

func newASCIILexer(data []byte) *asciiLexer {
	return &asciiLexer{data: data, line: 1}
}

func (l *asciiLexer) peekByte() byte {
	if l.pos >= len(l.data) {
		return 0
	}
	return l.data[l.pos]
}

func (l *asciiLexer) advance() byte {
	b := l.data[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
	}
	return b
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigitStart(b byte) bool {
	return (b >= '0' && b <= '9') || b == '-' || b == '+' || b == '.'
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') ||
		b == '.' || b == ':' // FBX identifiers like "Model::Cube" and namespaced names
}

func (l *asciiLexer) skipWhitespaceAndComments() {
	for l.pos < len(l.data) {
		b := l.peekByte()
		if isSpace(b) {
			l.advance()
			continue
		}
		if b == ';' {
			for l.pos < len(l.data) && l.peekByte() != '\n' {
				l.advance()
			}
			continue
		}
		break
	}
}

// next returns the next token, or an *Error (kind MalformedAscii) on
// malformed input (spec §4.5: stray '@', unterminated string/block).
func (l *asciiLexer) next() (asciiToken, error) {
	l.skipWhitespaceAndComments()
	if l.pos >= len(l.data) {
		return asciiToken{kind: atkEOF, offset: l.pos, line: l.line}, nil
	}

	start := l.pos
	startLine := l.line
	b := l.peekByte()

	switch {
	case b == '{':
		l.advance()
		return asciiToken{kind: atkLBrace, offset: start, line: startLine}, nil
	case b == '}':
		l.advance()
		return asciiToken{kind: atkRBrace, offset: start, line: startLine}, nil
	case b == ',':
		l.advance()
		return asciiToken{kind: atkComma, offset: start, line: startLine}, nil
	case b == '"':
		return l.scanString(start, startLine)
	case b == '@':
		return asciiToken{}, newError(ErrMalformedAscii, "stray '@' at byte %d, line %d", start, startLine)
	case isDigitStart(b):
		return l.scanNumber(start, startLine)
	default:
		return l.scanIdentOrColon(start, startLine)
	}
}

func (l *asciiLexer) scanString(start, startLine int) (asciiToken, error) {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.data) {
			return asciiToken{}, newError(ErrMalformedAscii, "unterminated string starting at byte %d, line %d", start, startLine)
		}
		b := l.peekByte()
		if b == '"' {
			l.advance()
			return asciiToken{kind: atkString, text: sb.String(), offset: start, line: startLine}, nil
		}
		if b == '&' {
			if rest := string(l.data[l.pos:]); strings.HasPrefix(rest, "&quot;") {
				sb.WriteByte('"')
				for i := 0; i < len("&quot;"); i++ {
					l.advance()
				}
				continue
			}
			// Partial look-alikes ("&", "&q", ...) are literal, per spec.
		}
		sb.WriteByte(b)
		l.advance()
	}
}

func (l *asciiLexer) scanNumber(start, startLine int) (asciiToken, error) {
	for l.pos < len(l.data) {
		b := l.peekByte()
		if (b >= '0' && b <= '9') || b == '-' || b == '+' || b == '.' || b == 'e' || b == 'E' {
			l.advance()
			continue
		}
		break
	}
	text := string(l.data[start:l.pos])
	if len(text) >= 128 {
		return asciiToken{}, newError(ErrMalformedAscii, "numeric literal ≥128 chars at byte %d, line %d", start, startLine)
	}
	return asciiToken{kind: atkNumber, text: text, offset: start, line: startLine}, nil
}

func (l *asciiLexer) scanIdentOrColon(start, startLine int) (asciiToken, error) {
	for l.pos < len(l.data) && isIdentByte(l.peekByte()) {
		l.advance()
	}
	if l.pos == start {
		return asciiToken{}, newError(ErrMalformedAscii, "unexpected byte %q at byte %d, line %d", rune(l.peekByte()), start, startLine)
	}
	text := string(l.data[start:l.pos])
	// A trailing ':' that immediately follows an identifier (no space)
	// marks a node-opening identifier; the parser treats this the same
	// as atkIdent followed by atkColon for simplicity.
	if strings.HasSuffix(text, ":") && len(text) > 1 {
		l.pos = start + len(text) - 1
		return asciiToken{kind: atkIdent, text: text[:len(text)-1], offset: start, line: startLine}, nil
	}
	if text == ":" {
		return asciiToken{kind: atkColon, offset: start, line: startLine}, nil
	}
	return asciiToken{kind: atkIdent, text: text, offset: start, line: startLine}, nil
}

// asciiParser is a small recursive-descent parser over asciiLexer that
// builds the same dom.RawNode tree the binary tokenizer produces.
type asciiParser struct {
	lex  *asciiLexer
	tok  asciiToken
	err  error
	eof  bool
}

func newASCIIParser(data []byte) (*asciiParser, error) {
	p := &asciiParser{lex: newASCIILexer(data)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *asciiParser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	p.eof = t.kind == atkEOF
	return nil
}

// parseASCII tokenises the textual dialect into the same RawNode shape the
// binary tokenizer produces (spec §4.5). version is read from
// FBXHeaderExtension/FBXVersion if present, else assumed 7500 (spec §6).
func parseASCII(data []byte, paths *pathStack) (*dom.RawNode, int32, error) {
	p, err := newASCIIParser(data)
	if err != nil {
		return nil, 0, err
	}

	var children []*dom.RawNode
	for !p.eof {
		node, err := p.parseNode(paths)
		if err != nil {
			return nil, 0, err
		}
		if node == nil {
			break
		}
		children = append(children, node)
	}

	version := int32(version7500)
	for _, c := range children {
		if c.Name == "FBXHeaderExtension" {
			if v := c.Child("FBXVersion"); v != nil {
				if val, ok := v.Value(0); ok {
					if n, err := val.Int64(); err == nil {
						version = int32(n)
					}
				}
			}
		}
	}

	root := &dom.RawNode{
		Values:   []dom.Value{dom.NewInt(dom.TypeInt32, int64(version))},
		Children: children,
	}
	return root, version, nil
}

// parseNode parses `Ident: value, value, ... { children }` or the
// no-values / no-children variants. Returns nil, nil at a clean EOF.
func (p *asciiParser) parseNode(paths *pathStack) (*dom.RawNode, error) {
	if p.eof {
		return nil, nil
	}
	if p.tok.kind != atkIdent {
		return nil, newError(ErrMalformedAscii, "expected node name at byte %d, line %d", p.tok.offset, p.tok.line)
	}
	name := p.tok.text
	if len(name) > 255 {
		return nil, newError(ErrMalformedAscii, "node name %q exceeds 255 bytes", name)
	}
	paths.push(name)
	defer paths.pop()

	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == atkColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	var values []dom.Value
	for p.tok.kind == atkNumber || p.tok.kind == atkString || (p.tok.kind == atkIdent) {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.tok.kind != atkComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	var children []*dom.RawNode
	if p.tok.kind == atkLBrace {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for p.tok.kind != atkRBrace {
			if p.eof {
				return nil, newError(ErrMalformedAscii, "unterminated block for node %q", name)
			}
			child, err := p.parseNode(paths)
			if err != nil {
				return nil, err
			}
			if child == nil {
				return nil, newError(ErrMalformedAscii, "unterminated block for node %q", name)
			}
			children = append(children, child)
		}
		if err := p.advance(); err != nil { // consume '}'
			return nil, err
		}
	}

	return &dom.RawNode{Name: name, Values: values, Children: children}, nil
}

// parseValue reads a single scalar value token, widening numeric literals
// to the narrowest fitting type code (spec §4.5).
func (p *asciiParser) parseValue() (dom.Value, error) {
	t := p.tok
	switch t.kind {
	case atkString:
		if err := p.advance(); err != nil {
			return dom.Value{}, err
		}
		return dom.NewString(t.text), nil
	case atkIdent:
		// Bare identifier tokens used as boolean literals: T/Y true,
		// F/N false (spec §4.5); anything else is an unquoted string
		// (seen in e.g. Connect "OO" without surrounding quotes, which
		// ufbx also tolerates).
		if err := p.advance(); err != nil {
			return dom.Value{}, err
		}
		switch t.text {
		case "T", "Y":
			return dom.NewBool(true), nil
		case "F", "N":
			return dom.NewBool(false), nil
		default:
			return dom.NewString(t.text), nil
		}
	case atkNumber:
		if err := p.advance(); err != nil {
			return dom.Value{}, err
		}
		return parseNumberLiteral(t.text)
	default:
		return dom.Value{}, newError(ErrMalformedAscii, "expected value at byte %d, line %d", t.offset, t.line)
	}
}

// parseNumberLiteral implements spec §4.5's widening rule: integers become
// the narrowest of Y/I/L that fits; floats parse to F unless they only
// round-trip at double precision, in which case D.
func parseNumberLiteral(text string) (dom.Value, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		switch {
		case i >= -32768 && i <= 32767:
			return dom.NewInt(dom.TypeInt16, i), nil
		case i >= -2147483648 && i <= 2147483647:
			return dom.NewInt(dom.TypeInt32, i), nil
		default:
			return dom.NewInt(dom.TypeInt64, i), nil
		}
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return dom.Value{}, newError(ErrMalformedAscii, "malformed numeric literal %q", text)
	}
	if asFloat32RoundTrips(text, f) {
		return dom.NewFloat(dom.TypeFloat32, f), nil
	}
	return dom.NewFloat(dom.TypeFloat64, f), nil
}

// asFloat32RoundTrips reports whether parsing text as float32 yields the
// same value as parsing it as float64 (f), i.e. whether single precision is
// sufficient to carry it losslessly.
func asFloat32RoundTrips(text string, f float64) bool {
	f32, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return false
	}
	return float64(float32(f32)) == f
}
