package toml

import (
	"fmt"
	"strconv"
)

// Parser builds a generic document tree from TOML tokens
// Tables become map[string]any, arrays []any, arrays of tables []map[string]any
type Parser struct {
	lexer *Lexer
	cur   Token
	next  Token
	root  map[string]any
	scope map[string]any // table receiving key/value pairs
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
		root:  make(map[string]any),
	}
	p.advance()
	p.advance()
	p.scope = p.root
	return p
}

func (p *Parser) advance() {
	p.cur = p.next
	p.next = p.lexer.NextToken()
	for p.next.Type == TokenComment {
		p.next = p.lexer.NextToken()
	}
}

// Parse consumes the whole input and returns the document root
func (p *Parser) Parse() (map[string]any, error) {
	for p.cur.Type != TokenEOF {
		switch p.cur.Type {
		case TokenNewline:
			p.advance()
		case TokenLBracket:
			if err := p.parseHeader(); err != nil {
				return nil, err
			}
		case TokenIdent, TokenString:
			if err := p.parsePair(p.scope); err != nil {
				return nil, err
			}
		case TokenError:
			return nil, fmt.Errorf("lexing error line %d: %s", p.cur.Line, p.cur.Literal)
		default:
			return nil, fmt.Errorf("unexpected token line %d: %s", p.cur.Line, p.cur.String())
		}
	}
	return p.root, nil
}

// parseHeader handles [a.b] and [[a.b]]
func (p *Parser) parseHeader() error {
	array := p.next.Type == TokenLBracket
	if array {
		p.advance()
	}
	p.advance()

	keys, err := p.parseKey()
	if err != nil {
		return err
	}

	closers := 1
	if array {
		closers = 2
	}
	for i := 0; i < closers; i++ {
		if p.cur.Type != TokenRBracket {
			return fmt.Errorf("expected closing bracket for table at line %d", p.cur.Line)
		}
		p.advance()
	}

	return p.openTable(keys, array)
}

// openTable walks from the root along keys, creating tables as needed, and makes the target current
// Intermediate arrays of tables resolve to their last element
func (p *Parser) openTable(keys []string, array bool) error {
	node := p.root

	for _, key := range keys[:len(keys)-1] {
		switch v := node[key].(type) {
		case nil:
			child := make(map[string]any)
			node[key] = child
			node = child
		case map[string]any:
			node = v
		case []map[string]any:
			if len(v) == 0 {
				return fmt.Errorf("cannot traverse empty array table %s", key)
			}
			node = v[len(v)-1]
		default:
			return fmt.Errorf("intermediate key %s is not a map", key)
		}
	}

	last := keys[len(keys)-1]
	if array {
		var list []map[string]any
		if existing, ok := node[last]; ok {
			l, ok := existing.([]map[string]any)
			if !ok {
				return fmt.Errorf("key conflict: %s is not an array of tables", last)
			}
			list = l
		}
		table := make(map[string]any)
		node[last] = append(list, table)
		p.scope = table
		return nil
	}

	switch v := node[last].(type) {
	case nil:
		table := make(map[string]any)
		node[last] = table
		p.scope = table
	case map[string]any:
		p.scope = v
	default:
		return fmt.Errorf("key conflict: %s is not a table", last)
	}
	return nil
}

func (p *Parser) parsePair(scope map[string]any) error {
	keys, err := p.parseKey()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenEqual {
		return fmt.Errorf("expected '=' after key at line %d, got %s", p.cur.Line, p.cur.String())
	}
	p.advance()

	val, err := p.parseValue()
	if err != nil {
		return err
	}
	return p.assign(scope, keys, val)
}

// assign stores val under a dotted key path below scope, rejecting redefinition
func (p *Parser) assign(scope map[string]any, keys []string, val any) error {
	node := scope
	for _, key := range keys[:len(keys)-1] {
		switch v := node[key].(type) {
		case nil:
			child := make(map[string]any)
			node[key] = child
			node = child
		case map[string]any:
			node = v
		default:
			return fmt.Errorf("intermediate key %s is not a map", key)
		}
	}

	last := keys[len(keys)-1]
	if _, exists := node[last]; exists {
		return fmt.Errorf("duplicate key %s at line %d", last, p.cur.Line)
	}
	node[last] = val
	return nil
}

// parseKey reads a possibly dotted key: a, "a b", a.b."c"
func (p *Parser) parseKey() ([]string, error) {
	var keys []string
	for {
		if p.cur.Type != TokenIdent && p.cur.Type != TokenString {
			return nil, fmt.Errorf("expected key at line %d, got %s", p.cur.Line, p.cur.String())
		}
		keys = append(keys, p.cur.Literal)
		p.advance()

		if p.cur.Type != TokenDot {
			return keys, nil
		}
		p.advance()
	}
}

func (p *Parser) parseValue() (any, error) {
	tok := p.cur
	switch tok.Type {
	case TokenString:
		p.advance()
		return tok.Literal, nil
	case TokenInteger:
		p.advance()
		v, err := strconv.ParseInt(tok.Literal, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q at line %d", tok.Literal, tok.Line)
		}
		return int(v), nil
	case TokenFloat:
		p.advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q at line %d", tok.Literal, tok.Line)
		}
		return v, nil
	case TokenBool:
		p.advance()
		return tok.Literal == "true", nil
	case TokenLBracket:
		return p.parseArray()
	case TokenLBrace:
		return p.parseInlineTable()
	}
	return nil, fmt.Errorf("unexpected value token %s at line %d", tok.String(), tok.Line)
}

// parseArray accepts newlines between elements and a trailing comma
func (p *Parser) parseArray() ([]any, error) {
	p.advance() // [
	arr := make([]any, 0)

	for {
		for p.cur.Type == TokenNewline {
			p.advance()
		}
		if p.cur.Type == TokenRBracket {
			break
		}

		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		for p.cur.Type == TokenNewline {
			p.advance()
		}
		switch p.cur.Type {
		case TokenComma:
			p.advance()
		case TokenRBracket:
		default:
			return nil, fmt.Errorf("expected comma or closing bracket in array at line %d", p.cur.Line)
		}
	}
	p.advance() // ]
	return arr, nil
}

func (p *Parser) parseInlineTable() (map[string]any, error) {
	p.advance() // {
	m := make(map[string]any)

	for p.cur.Type != TokenRBrace {
		if p.cur.Type == TokenNewline {
			p.advance()
			continue
		}
		if err := p.parsePair(m); err != nil {
			return nil, err
		}

		switch p.cur.Type {
		case TokenComma:
			p.advance()
		case TokenRBrace:
		default:
			return nil, fmt.Errorf("expected comma or closing brace in inline table at line %d", p.cur.Line)
		}
	}
	p.advance() // }
	return m, nil
}
