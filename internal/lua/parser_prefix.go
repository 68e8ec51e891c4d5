package lua

// prefixexp --> ( NAME | "(" exp ")" ) action* ;
// action    --> "." NAME
//             | "[" exp "]"
//             | ":" NAME args
//             | args ;
// args      --> "(" explist? ")" | tableconstructor | STRING ;
func (parser *Parser) prefixExpression() (*PrefixExpr, error) {
	var primary Expr
	switch {
	case parser.match(TokenIdentifier):
		primary = NewNameExpr(parser.prev().Lexeme)
	case parser.match(TokenLeftParen):
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		if err := parser.consume(TokenRightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		primary = NewParenExpr(expr)
	default:
		return nil, parser.errorAtPeek("Expect expression.")
	}

	prefix := NewPrefixExpr(primary)
	for {
		switch parser.peek().Typ {
		case TokenDot:
			parser.advance()
			name, err := parser.name("Expect field name after '.'.")
			if err != nil {
				return nil, err
			}
			prefix.Actions = append(prefix.Actions, &Selector{Name: name})
		case TokenLeftBracket:
			parser.advance()
			key, err := parser.expression()
			if err != nil {
				return nil, err
			}
			if err := parser.consume(TokenRightBracket, "Expect ']' after key."); err != nil {
				return nil, err
			}
			prefix.Actions = append(prefix.Actions, &Selector{Key: key})
		case TokenColon:
			parser.advance()
			method, err := parser.name("Expect method name after ':'.")
			if err != nil {
				return nil, err
			}
			args, err := parser.arguments()
			if err != nil {
				return nil, err
			}
			prefix.Actions = append(prefix.Actions, &Call{Method: method, Args: args})
		case TokenLeftParen, TokenString, TokenLongString, TokenLeftBrace:
			args, err := parser.arguments()
			if err != nil {
				return nil, err
			}
			prefix.Actions = append(prefix.Actions, &Call{Args: args})
		default:
			return prefix, nil
		}
	}
}

// args --> "(" explist? ")" | tableconstructor | STRING ;
func (parser *Parser) arguments() ([]Expr, error) {
	switch {
	case parser.match(TokenString, TokenLongString):
		literal, err := parser.stringLiteral(parser.prev())
		if err != nil {
			return nil, err
		}
		return []Expr{literal}, nil
	case parser.match(TokenLeftBrace):
		table, err := parser.tableConstructor()
		if err != nil {
			return nil, err
		}
		return []Expr{table}, nil
	}

	if err := parser.consume(TokenLeftParen, "Expect '(' before arguments."); err != nil {
		return nil, err
	}
	if parser.match(TokenRightParen) {
		return nil, nil
	}
	args, err := parser.expressionList()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(TokenRightParen, "Expect ')' after arguments."); err != nil {
		return nil, err
	}
	return args, nil
}

// tableconstructor --> "{" ( field ( fieldsep field )* fieldsep? )? "}" ;
// field            --> "[" exp "]" "=" exp | NAME "=" exp | exp ;
//
// The opening brace has already been consumed.
func (parser *Parser) tableConstructor() (*TableExpr, error) {
	table := NewTableExpr()
	for !parser.check(TokenRightBrace) {
		field, err := parser.field()
		if err != nil {
			return nil, err
		}
		table.Fields = append(table.Fields, field)
		if !parser.match(TokenComma, TokenSemicolon) {
			break
		}
	}
	if err := parser.consume(TokenRightBrace, "Expect '}' after table fields."); err != nil {
		return nil, err
	}
	return table, nil
}

func (parser *Parser) field() (*Field, error) {
	switch {
	case parser.match(TokenLeftBracket):
		key, err := parser.expression()
		if err != nil {
			return nil, err
		}
		if err := parser.consume(TokenRightBracket, "Expect ']' after key."); err != nil {
			return nil, err
		}
		if err := parser.consume(TokenAssign, "Expect '=' after key."); err != nil {
			return nil, err
		}
		value, err := parser.expression()
		if err != nil {
			return nil, err
		}
		return &Field{Key: key, Value: value}, nil

	case parser.check(TokenIdentifier) && parser.peekNext().Typ == TokenAssign:
		name := parser.advance().Lexeme
		parser.advance()
		value, err := parser.expression()
		if err != nil {
			return nil, err
		}
		return &Field{Name: name, Value: value}, nil
	}

	value, err := parser.expression()
	if err != nil {
		return nil, err
	}
	return &Field{Value: value}, nil
}
