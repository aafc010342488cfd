package fixture

import (
	"fmt"
	"strings"

	"solvent/internal/types"
)

// ParseType resolves a type expression to an interned TypeID. The grammar
// mirrors the interner's String rendering:
//
//	int, uint, float, double, bool, string, unit
//	T?          optional
//	*T          pointer
//	[T]         array
//	inout T     inout slot
//	(T) -> U    single-parameter function
func ParseType(in *types.Interner, s string) (types.TypeID, error) {
	p := &typeParser{in: in, src: strings.TrimSpace(s)}
	id, err := p.parse()
	if err != nil {
		return types.NoTypeID, fmt.Errorf("type %q: %w", s, err)
	}
	p.skipSpaces()
	if p.pos != len(p.src) {
		return types.NoTypeID, fmt.Errorf("type %q: trailing %q", s, p.src[p.pos:])
	}
	return id, nil
}

type typeParser struct {
	in  *types.Interner
	src string
	pos int
}

func (p *typeParser) parse() (types.TypeID, error) {
	base, err := p.parsePrefix()
	if err != nil {
		return types.NoTypeID, err
	}
	// Optional suffixes bind tighter than the function arrow.
	for p.peek() == '?' {
		p.pos++
		base = p.in.Intern(types.MakeOptional(base))
	}
	return base, nil
}

func (p *typeParser) parsePrefix() (types.TypeID, error) {
	p.skipSpaces()
	switch p.peek() {
	case '*':
		p.pos++
		elem, err := p.parse()
		if err != nil {
			return types.NoTypeID, err
		}
		return p.in.Intern(types.MakePointer(elem)), nil

	case '[':
		p.pos++
		elem, err := p.parse()
		if err != nil {
			return types.NoTypeID, err
		}
		p.skipSpaces()
		if p.peek() != ']' {
			return types.NoTypeID, fmt.Errorf("missing ']' at offset %d", p.pos)
		}
		p.pos++
		return p.in.Intern(types.MakeArray(elem)), nil

	case '(':
		p.pos++
		arg, err := p.parse()
		if err != nil {
			return types.NoTypeID, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return types.NoTypeID, fmt.Errorf("missing ')' at offset %d", p.pos)
		}
		p.pos++
		p.skipSpaces()
		if !strings.HasPrefix(p.src[p.pos:], "->") {
			return types.NoTypeID, fmt.Errorf("missing '->' at offset %d", p.pos)
		}
		p.pos += 2
		result, err := p.parse()
		if err != nil {
			return types.NoTypeID, err
		}
		return p.in.Intern(types.MakeFunction(arg, result)), nil
	}

	word := p.word()
	if word == "inout" {
		elem, err := p.parse()
		if err != nil {
			return types.NoTypeID, err
		}
		return p.in.Intern(types.MakeInout(elem)), nil
	}

	b := p.in.Builtins()
	switch word {
	case "unit":
		return b.Unit, nil
	case "bool":
		return b.Bool, nil
	case "int":
		return b.Int, nil
	case "uint":
		return b.Uint, nil
	case "float":
		return b.Float, nil
	case "double":
		return b.Double, nil
	case "string":
		return b.String, nil
	case "":
		return types.NoTypeID, fmt.Errorf("empty type at offset %d", p.pos)
	default:
		return types.NoTypeID, fmt.Errorf("unknown type name %q", word)
	}
}

func (p *typeParser) word() string {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeParser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}
