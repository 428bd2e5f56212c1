package rules

import (
	"strings"

	"context-variants/internal/entity"
)

// Directive names.
const (
	DirectiveGroups        = "groups"
	DirectivePrefix        = "prefix"
	DirectiveSuffix        = "suffix"
	DirectiveDefault       = "default"
	DirectiveBuildBase     = "build_base"
	DirectiveOptionalBase  = "optional_base"
	DirectiveOptionalAttrs = "optional_attrs"
	DirectiveRequiredAttrs = "required_attrs"
)

// Chain call names.
const (
	callRequires = "requires"
	callOptional = "optional"
	callExcludes = "excludes"
	callDefault  = "default"
	callExcept   = "except"

	wildcardName = "all_fields"
	keywordAs    = "as"
)

var callClassification = map[string]Classification{
	callRequires: Required,
	callOptional: Optional,
	callExcludes: Excluded,
}

// Parser turns a rule source into a RuleSet.
type Parser struct {
	src    string
	tokens []Token
	pos    int

	rs         *RuleSet
	directives map[string]Position
	contexts   map[string]Position
	groups     map[string]Position
}

// NewParser tokenizes src and returns a parser for it.
func NewParser(src string) (*Parser, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	return &Parser{
		src:        src,
		tokens:     tokens,
		rs:         &RuleSet{BuildBase: true},
		directives: map[string]Position{},
		contexts:   map[string]Position{},
		groups:     map[string]Position{},
	}, nil
}

// Parse parses a complete rule source. The first structural problem is
// returned as *Error.
func Parse(src string) (*RuleSet, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}

	return p.Parse()
}

func (p *Parser) peek() Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}

	return tok
}

func (p *Parser) expect(text string) (Token, error) {
	tok := p.advance()
	if !tok.is(text) {
		return tok, errorf(tok.Pos, "expected %q, got %s", text, tok.describe())
	}

	return tok, nil
}

func (p *Parser) expectIdent() (Token, error) {
	tok := p.advance()
	if tok.Type != TokenIdent {
		return tok, errorf(tok.Pos, "expected identifier, got %s", tok.describe())
	}

	return tok, nil
}

func (p *Parser) expectString(what string) (string, error) {
	tok := p.advance()
	if tok.Type != TokenString {
		return "", errorf(tok.Pos, "%s expects a string, got %s", what, tok.describe())
	}

	val, err := tok.stringValue()
	if err != nil {
		return "", errorf(tok.Pos, "invalid string %s", tok.Text)
	}

	return val, nil
}

// Parse parses every item of the source.
func (p *Parser) Parse() (*RuleSet, error) {
	for !p.peek().isEOF() {
		if err := p.parseItem(); err != nil {
			return nil, err
		}

		tok := p.peek()
		switch {
		case tok.is(","):
			p.advance()
		case tok.isEOF():
		default:
			return nil, errorf(tok.Pos, "expected ',' between rules, got %s", tok.describe())
		}
	}

	if len(p.rs.Contexts) == 0 {
		return nil, errorf(p.peek().Pos, "no contexts defined")
	}

	return p.rs, nil
}

func (p *Parser) parseItem() error {
	name, err := p.expectIdent()
	if err != nil {
		return err
	}

	switch tok := p.peek(); {
	case tok.is(":"):
		p.advance()
		return p.parseContext(name, true)
	case tok.is("="):
		p.advance()
		return p.parseDirective(name)
	case tok.is(",") || tok.isEOF():
		return p.parseContext(name, false)
	default:
		return errorf(tok.Pos, "expected ':' or '=' after %q, got %s", name.Text, tok.describe())
	}
}

func (p *Parser) parseContext(name Token, hasChain bool) error {
	if prev, ok := p.contexts[name.Text]; ok {
		return errorf(name.Pos, "duplicate context %q (first defined at %s)", name.Text, prev)
	}

	p.contexts[name.Text] = name.Pos

	ctx := Context{Name: name.Text, Pos: name.Pos, End: name.endPos()}

	if hasChain {
		end, err := p.parseChain(&ctx)
		if err != nil {
			return err
		}

		ctx.End = end
	}

	p.rs.Contexts = append(p.rs.Contexts, ctx)

	return nil
}

// parseChain parses call ('.' call)* and returns the position just past it.
func (p *Parser) parseChain(ctx *Context) (Position, error) {
	for {
		end, err := p.parseCall(ctx)
		if err != nil {
			return Position{}, err
		}

		if !p.peek().is(".") {
			return end, nil
		}

		p.advance()
	}
}

func (p *Parser) parseCall(ctx *Context) (Position, error) {
	name, err := p.expectIdent()
	if err != nil {
		return Position{}, err
	}

	if _, err := p.expect("("); err != nil {
		return Position{}, err
	}

	if name.Text == callDefault {
		if ctx.Default != nil {
			return Position{}, errorf(name.Pos, "context %q: default() given twice", ctx.Name)
		}

		cl, err := p.parseBehavior()
		if err != nil {
			return Position{}, err
		}

		ctx.Default = &cl

		closing, err := p.expect(")")
		if err != nil {
			return Position{}, err
		}

		return closing.endPos(), nil
	}

	cl, ok := callClassification[name.Text]
	if !ok {
		return Position{}, errorf(name.Pos, "unknown call %q, expected requires, optional, excludes or default", name.Text)
	}

	refs, closing, err := p.parseArgs()
	if err != nil {
		return Position{}, err
	}

	ctx.appendRefs(cl, refs)

	return closing.endPos(), nil
}

// parseBehavior accepts an identifier or a string naming a classification.
func (p *Parser) parseBehavior() (Classification, error) {
	tok := p.advance()

	var text string

	switch tok.Type {
	case TokenIdent:
		text = tok.Text
	case TokenString:
		val, err := tok.stringValue()
		if err != nil {
			return 0, errorf(tok.Pos, "invalid string %s", tok.Text)
		}

		text = val
	default:
		return 0, errorf(tok.Pos, "expected default behavior, got %s", tok.describe())
	}

	cl, ok := ParseBehavior(text)
	if !ok {
		return 0, errorf(tok.Pos, "unknown default behavior %q, expected required, optional or exclude", text)
	}

	return cl, nil
}

// parseArgs parses the argument list after '(' up to and including ')'.
func (p *Parser) parseArgs() ([]FieldRef, Token, error) {
	var refs []FieldRef

	for {
		if tok := p.peek(); tok.is(")") {
			return refs, p.advance(), nil
		}

		ref, err := p.parseArg()
		if err != nil {
			return nil, Token{}, err
		}

		refs = append(refs, ref)

		if p.peek().is(",") {
			p.advance()
			continue
		}

		closing, err := p.expect(")")
		if err != nil {
			return nil, Token{}, err
		}

		return refs, closing, nil
	}
}

func (p *Parser) parseArg() (FieldRef, error) {
	name, err := p.expectIdent()
	if err != nil {
		return FieldRef{}, err
	}

	if name.Text == wildcardName && p.peek().is("(") {
		return p.parseWildcard(name)
	}

	switch tok := p.peek(); {
	case tok.is("."):
		p.advance()

		except, err := p.parseExcept()
		if err != nil {
			return FieldRef{}, err
		}

		return FieldRef{Kind: RefGroup, Name: name.Text, Except: except, Pos: name.Pos}, nil
	case tok.isIdent(keywordAs):
		p.advance()

		typ, err := p.parseType()
		if err != nil {
			return FieldRef{}, err
		}

		return FieldRef{Kind: RefField, Name: name.Text, Type: typ, Pos: name.Pos}, nil
	default:
		return FieldRef{Kind: RefField, Name: name.Text, Pos: name.Pos}, nil
	}
}

// parseWildcard parses all_fields(names).except(names) after the name.
func (p *Parser) parseWildcard(name Token) (FieldRef, error) {
	p.advance()

	except, err := p.parseNames()
	if err != nil {
		return FieldRef{}, err
	}

	if p.peekAt(0).is(".") && p.peekAt(1).isIdent(callExcept) {
		p.advance()

		more, err := p.parseExcept()
		if err != nil {
			return FieldRef{}, err
		}

		except = append(except, more...)
	}

	return FieldRef{Kind: RefAllFields, Name: wildcardName, Except: except, Pos: name.Pos}, nil
}

// parseExcept parses except(names) after the dot.
func (p *Parser) parseExcept() ([]string, error) {
	tok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if tok.Text != callExcept {
		return nil, errorf(tok.Pos, "unknown call %q, expected except", tok.Text)
	}

	if _, err := p.expect("("); err != nil {
		return nil, err
	}

	return p.parseNames()
}

// parseNames parses a comma separated identifier list up to and including ')'.
func (p *Parser) parseNames() ([]string, error) {
	var names []string

	for {
		if p.peek().is(")") {
			p.advance()
			return names, nil
		}

		tok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		names = append(names, tok.Text)

		if p.peek().is(",") {
			p.advance()
			continue
		}

		if _, err := p.expect(")"); err != nil {
			return nil, err
		}

		return names, nil
	}
}

func isOpenBracket(t Token) bool {
	return t.is("(") || t.is("[") || t.is("{") || t.is("<")
}

func isCloseBracket(t Token) bool {
	return t.is(")") || t.is("]") || t.is("}") || t.is(">")
}

// parseType captures the raw text of a type expression. It stops before a
// ',' or ')' at bracket depth zero. Arrows ("->", "<-") are not brackets.
func (p *Parser) parseType() (string, error) {
	first := p.peek()
	if first.isEOF() || first.is(",") || first.is(")") {
		return "", errorf(first.Pos, "expected type after %q, got %s", keywordAs, first.describe())
	}

	depth := 0
	last := first

	for {
		tok := p.peek()

		switch {
		case tok.isEOF():
			return "", errorf(first.Pos, "type not terminated")
		case depth == 0 && (tok.is(",") || tok.is(")")):
			return collapseSpace(p.src[first.Pos.Offset:last.End]), nil
		case tok.is("-") && p.peekAt(1).is(">"), tok.is("<") && p.peekAt(1).is("-"):
			p.advance()
			last = p.advance()

			continue
		case isOpenBracket(tok):
			depth++
		case isCloseBracket(tok):
			if depth == 0 {
				return "", errorf(tok.Pos, "unbalanced %q in type", tok.Text)
			}

			depth--
		}

		last = p.advance()
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (p *Parser) parseDirective(name Token) error {
	if prev, ok := p.directives[name.Text]; ok {
		return errorf(name.Pos, "duplicate directive %q (first given at %s)", name.Text, prev)
	}

	p.directives[name.Text] = name.Pos

	var err error

	switch name.Text {
	case DirectivePrefix:
		p.rs.Prefix, err = p.expectString(DirectivePrefix)
	case DirectiveSuffix:
		p.rs.Suffix, err = p.expectString(DirectiveSuffix)
	case DirectiveDefault:
		var cl Classification

		cl, err = p.parseBehavior()
		p.rs.Default = &cl
	case DirectiveBuildBase:
		p.rs.BuildBase, err = p.parseBool(DirectiveBuildBase)
	case DirectiveOptionalBase:
		p.rs.OptionalBase, err = p.parseBool(DirectiveOptionalBase)
	case DirectiveOptionalAttrs:
		p.rs.OptionalAttrs, err = p.parseAttrs(DirectiveOptionalAttrs)
	case DirectiveRequiredAttrs:
		p.rs.RequiredAttrs, err = p.parseAttrs(DirectiveRequiredAttrs)
	case DirectiveGroups:
		err = p.parseGroups()
	default:
		return errorf(name.Pos, "unknown directive %q", name.Text)
	}

	return err
}

func (p *Parser) parseBool(what string) (bool, error) {
	tok := p.advance()

	text := tok.Text
	if tok.Type == TokenString {
		text, _ = tok.stringValue()
	} else if tok.Type != TokenIdent {
		text = ""
	}

	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errorf(tok.Pos, "%s expects true or false, got %s", what, tok.describe())
	}
}

// parseAttrs parses '[' attr, ... ']'.
func (p *Parser) parseAttrs(what string) (entity.Overlay, error) {
	open := p.advance()
	if !open.is("[") {
		return nil, errorf(open.Pos, "%s expects a list of attributes, got %s", what, open.describe())
	}

	var out entity.Overlay

	for {
		if p.peek().is("]") {
			p.advance()
			return out, nil
		}

		tag, err := p.parseAttr()
		if err != nil {
			return nil, err
		}

		out = append(out, tag)

		if p.peek().is(",") {
			p.advance()
			continue
		}

		if _, err := p.expect("]"); err != nil {
			return nil, err
		}

		return out, nil
	}
}

func (p *Parser) parseAttr() (entity.AttrTag, error) {
	tok := p.advance()

	switch tok.Type {
	case TokenString:
		val, err := tok.stringValue()
		if err != nil {
			return entity.AttrTag{}, errorf(tok.Pos, "invalid string %s", tok.Text)
		}

		tag, err := entity.ParseAttrTag(val)
		if err != nil {
			return entity.AttrTag{}, errorf(tok.Pos, "%v", err)
		}

		return tag, nil
	case TokenIdent:
	default:
		return entity.AttrTag{}, errorf(tok.Pos, "expected attribute, got %s", tok.describe())
	}

	switch next := p.peek(); {
	case next.is(":"):
		p.advance()

		val, err := p.expectString("attribute " + tok.Text)
		if err != nil {
			return entity.AttrTag{}, err
		}

		return entity.AttrTag{Key: tok.Text, Value: val}, nil
	case next.is("("):
		val, err := p.parseRawArgs()
		if err != nil {
			return entity.AttrTag{}, err
		}

		return entity.AttrTag{Key: tok.Text, Value: val}, nil
	default:
		return entity.AttrTag{Key: tok.Text}, nil
	}
}

// parseRawArgs consumes a balanced parenthesised token run and returns the
// text between the outer parentheses. A single string is unquoted.
func (p *Parser) parseRawArgs() (string, error) {
	open := p.advance()
	depth := 1

	var inner []Token

	for {
		tok := p.advance()

		switch {
		case tok.isEOF():
			return "", errorf(open.Pos, "attribute arguments not terminated")
		case tok.is("("):
			depth++
		case tok.is(")"):
			depth--
			if depth == 0 {
				if len(inner) == 1 && inner[0].Type == TokenString {
					val, err := inner[0].stringValue()
					if err != nil {
						return "", errorf(inner[0].Pos, "invalid string %s", inner[0].Text)
					}

					return val, nil
				}

				return strings.TrimSpace(p.src[open.End:tok.Pos.Offset]), nil
			}
		}

		inner = append(inner, tok)
	}
}

// parseGroups parses a single group or a parenthesised list of groups.
func (p *Parser) parseGroups() error {
	if !p.peek().is("(") {
		return p.parseGroup()
	}

	p.advance()

	for {
		if err := p.parseGroup(); err != nil {
			return err
		}

		if p.peek().is(",") {
			p.advance()

			if p.peek().is(")") {
				p.advance()
				return nil
			}

			continue
		}

		_, err := p.expect(")")

		return err
	}
}

func (p *Parser) parseGroup() error {
	name, err := p.expectIdent()
	if err != nil {
		return err
	}

	if prev, ok := p.groups[name.Text]; ok {
		return errorf(name.Pos, "duplicate group %q (first defined at %s)", name.Text, prev)
	}

	p.groups[name.Text] = name.Pos

	if _, err := p.expect("("); err != nil {
		return err
	}

	group := Group{Name: name.Text, Pos: name.Pos}

	for {
		if p.peek().is(")") {
			p.advance()
			break
		}

		member, err := p.expectIdent()
		if err != nil {
			return err
		}

		ref := FieldRef{Kind: RefField, Name: member.Text, Pos: member.Pos}

		if member.Text == wildcardName && p.peek().is("(") {
			ref, err = p.parseWildcard(member)
			if err != nil {
				return err
			}
		}

		group.Members = append(group.Members, ref)

		if p.peek().is(",") {
			p.advance()
			continue
		}

		if _, err := p.expect(")"); err != nil {
			return err
		}

		break
	}

	if len(group.Members) == 0 {
		return errorf(name.Pos, "group %q has no members", name.Text)
	}

	p.rs.Groups = append(p.rs.Groups, group)

	return nil
}
