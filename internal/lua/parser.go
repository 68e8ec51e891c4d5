package lua

import "fmt"

// Parser composes the syntax tree from the sequence of tokens produced by the
// scanner. Statements are parsed by recursive descent following the grammar
// below; expressions are parsed by precedence climbing (see parser_expr.go).
//
// Grammar
//
//	chunk     --> block EOF ;
//	block     --> stat* retstat? ;
//	retstat   --> "return" explist? ";"? ;
//	stat      --> ";"
//	            | "break"
//	            | "::" NAME "::"
//	            | "goto" NAME
//	            | "do" block "end"
//	            | "while" exp "do" block "end"
//	            | "repeat" block "until" exp
//	            | "if" exp "then" block ( "elseif" exp "then" block )* ( "else" block )? "end"
//	            | "for" NAME "=" exp "," exp ( "," exp )? "do" block "end"
//	            | "for" namelist "in" explist "do" block "end"
//	            | "function" funcname funcbody
//	            | "local" "function" NAME funcbody
//	            | "local" attnamelist ( "=" explist )?
//	            | varlist "=" explist
//	            | functioncall ;
//	funcname  --> NAME ( "." NAME )* ( ":" NAME )? ;
//	funcbody  --> "(" parlist? ")" block "end" ;
//	parlist   --> namelist ( "," "..." )? | "..." ;
//	attnamelist --> NAME attrib ( "," NAME attrib )* ;
//	attrib    --> ( "<" NAME ">" )? ;
type Parser struct {
	current int
	tokens  []*Token
	// varargs tracks, for every function being parsed, whether `...` can be
	// used in its body. The main chunk is always vararg.
	varargs []bool
}

// NewParser creates a new parser for the given tokens. The slice must end with
// an EOF token.
func NewParser(tokens []*Token) *Parser {
	return &Parser{0, tokens, []bool{true}}
}

// Parse parses the tokens as a chunk.
func (parser *Parser) Parse() (*Block, error) {
	block, err := parser.block()
	if err != nil {
		return nil, err
	}
	if !parser.isEOF() {
		switch tok := parser.peek(); tok.Typ {
		case TokenEnd, TokenElse, TokenElseif, TokenUntil:
			return nil, newParseError(UnexpectedToken, tok, "Expect end of file.")
		default:
			return nil, newParseError(NotAStatement, tok, "Expect statement.")
		}
	}
	return block, nil
}

// block --> stat* retstat? ;
//
// The block ends at the first token that can not start a statement. Whether
// that token is valid is decided by the caller.
func (parser *Parser) block() (*Block, error) {
	block := new(Block)
	labels := make(map[string]bool)
	for {
		line := parser.peek().Line
		stmt, err := parser.statement()
		if err != nil {
			if perr, ok := err.(*ParseError); ok && perr.Kind == NotAStatement {
				break
			}
			return nil, err
		}
		if label, ok := stmt.(*LabelStmt); ok {
			if labels[label.Name] {
				return nil, newParseError(
					UnexpectedToken,
					parser.prev(),
					fmt.Sprintf("Label '%s' already defined.", label.Name),
				)
			}
			labels[label.Name] = true
		}
		block.Stmts = append(block.Stmts, stmt)
		block.Lines = append(block.Lines, line)
	}

	if parser.match(TokenReturn) {
		// The line of the return statement is kept after the lines of the
		// other statements.
		line := parser.prev().Line
		ret := new(ReturnStmt)
		if !parser.blockFollows() && !parser.check(TokenSemicolon) {
			exprs, err := parser.expressionList()
			if err != nil {
				return nil, err
			}
			ret.Exprs = exprs
		}
		parser.match(TokenSemicolon)
		block.Return = ret
		block.Lines = append(block.Lines, line)
	}
	return block, nil
}

// blockFollows reports whether the next token closes a block.
func (parser *Parser) blockFollows() bool {
	switch parser.peek().Typ {
	case TokenEnd, TokenElse, TokenElseif, TokenUntil, TokenEOF:
		return true
	}
	return false
}

func (parser *Parser) statement() (Stmt, error) {
	switch {
	case parser.match(TokenSemicolon):
		return new(EmptyStmt), nil
	case parser.match(TokenBreak):
		return new(BreakStmt), nil
	case parser.match(TokenDoubleColon):
		return parser.labelStatement()
	case parser.match(TokenGoto):
		name, err := parser.name("Expect label name after 'goto'.")
		if err != nil {
			return nil, err
		}
		return &GotoStmt{name}, nil
	case parser.match(TokenDo):
		body, err := parser.blockUntil(TokenEnd, "Expect 'end' after block.")
		if err != nil {
			return nil, err
		}
		return &DoStmt{body}, nil
	case parser.match(TokenWhile):
		return parser.whileStatement()
	case parser.match(TokenRepeat):
		return parser.repeatStatement()
	case parser.match(TokenIf):
		return parser.ifStatement()
	case parser.match(TokenFor):
		return parser.forStatement()
	case parser.match(TokenFunction):
		return parser.functionStatement()
	case parser.match(TokenLocal):
		if parser.match(TokenFunction) {
			return parser.localFunctionStatement()
		}
		return parser.localStatement()
	case parser.check(TokenIdentifier), parser.check(TokenLeftParen):
		return parser.expressionStatement()
	}
	return nil, newParseError(NotAStatement, parser.peek(), "Expect statement.")
}

// "::" NAME "::"
func (parser *Parser) labelStatement() (Stmt, error) {
	name, err := parser.name("Expect label name after '::'.")
	if err != nil {
		return nil, err
	}
	if err := parser.consume(TokenDoubleColon, "Expect '::' after label name."); err != nil {
		return nil, err
	}
	return &LabelStmt{name}, nil
}

// "while" exp "do" block "end"
func (parser *Parser) whileStatement() (Stmt, error) {
	cond, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(TokenDo, "Expect 'do' after condition."); err != nil {
		return nil, err
	}
	body, err := parser.blockUntil(TokenEnd, "Expect 'end' after loop body.")
	if err != nil {
		return nil, err
	}
	return &WhileStmt{cond, body}, nil
}

// "repeat" block "until" exp
func (parser *Parser) repeatStatement() (Stmt, error) {
	body, err := parser.blockUntil(TokenUntil, "Expect 'until' after loop body.")
	if err != nil {
		return nil, err
	}
	cond, err := parser.expression()
	if err != nil {
		return nil, err
	}
	return &RepeatStmt{body, cond}, nil
}

// "if" exp "then" block ( "elseif" exp "then" block )* ( "else" block )? "end"
func (parser *Parser) ifStatement() (Stmt, error) {
	stmt := new(IfStmt)
	for {
		cond, err := parser.expression()
		if err != nil {
			return nil, err
		}
		if err := parser.consume(TokenThen, "Expect 'then' after condition."); err != nil {
			return nil, err
		}
		body, err := parser.block()
		if err != nil {
			return nil, err
		}
		stmt.Clauses = append(stmt.Clauses, &IfClause{cond, body})
		if !parser.match(TokenElseif) {
			break
		}
	}
	if parser.match(TokenElse) {
		body, err := parser.block()
		if err != nil {
			return nil, err
		}
		stmt.Else = body
	}
	if err := parser.consume(TokenEnd, "Expect 'end' after 'if' statement."); err != nil {
		return nil, err
	}
	return stmt, nil
}

// "for" NAME "=" exp "," exp ( "," exp )? "do" block "end"
// "for" namelist "in" explist "do" block "end"
func (parser *Parser) forStatement() (Stmt, error) {
	first, err := parser.name("Expect variable name after 'for'.")
	if err != nil {
		return nil, err
	}
	if parser.match(TokenAssign) {
		return parser.numericFor(first)
	}
	if parser.check(TokenComma) || parser.check(TokenIn) {
		return parser.genericFor(first)
	}
	return nil, parser.errorAtPeek("Expect '=' or 'in' after 'for' variable.")
}

func (parser *Parser) numericFor(control string) (Stmt, error) {
	start, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(TokenComma, "Expect ',' after 'for' initial value."); err != nil {
		return nil, err
	}
	limit, err := parser.expression()
	if err != nil {
		return nil, err
	}
	var step Expr
	if parser.match(TokenComma) {
		if step, err = parser.expression(); err != nil {
			return nil, err
		}
	}
	if err := parser.consume(TokenDo, "Expect 'do' after 'for' clauses."); err != nil {
		return nil, err
	}
	body, err := parser.blockUntil(TokenEnd, "Expect 'end' after loop body.")
	if err != nil {
		return nil, err
	}
	return &NumericForStmt{control, start, limit, step, body}, nil
}

func (parser *Parser) genericFor(first string) (Stmt, error) {
	names := []string{first}
	for parser.match(TokenComma) {
		name, err := parser.name("Expect variable name after ','.")
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := parser.consume(TokenIn, "Expect 'in' after 'for' variables."); err != nil {
		return nil, err
	}
	exprs, err := parser.expressionList()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(TokenDo, "Expect 'do' after 'for' clauses."); err != nil {
		return nil, err
	}
	body, err := parser.blockUntil(TokenEnd, "Expect 'end' after loop body.")
	if err != nil {
		return nil, err
	}
	return &GenericForStmt{names, exprs, body}, nil
}

// "function" funcname funcbody
func (parser *Parser) functionStatement() (Stmt, error) {
	var name FunctionName
	first, err := parser.name("Expect function name.")
	if err != nil {
		return nil, err
	}
	name.Names = append(name.Names, first)
	for parser.match(TokenDot) {
		field, err := parser.name("Expect field name after '.'.")
		if err != nil {
			return nil, err
		}
		name.Names = append(name.Names, field)
	}
	if parser.match(TokenColon) {
		if name.Method, err = parser.name("Expect method name after ':'."); err != nil {
			return nil, err
		}
	}
	params, body, err := parser.functionBody()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{name, params, body}, nil
}

// "local" "function" NAME funcbody
func (parser *Parser) localFunctionStatement() (Stmt, error) {
	name, err := parser.name("Expect function name.")
	if err != nil {
		return nil, err
	}
	params, body, err := parser.functionBody()
	if err != nil {
		return nil, err
	}
	return &LocalFunctionStmt{name, params, body}, nil
}

// "local" attnamelist ( "=" explist )?
func (parser *Parser) localStatement() (Stmt, error) {
	stmt := new(LocalStmt)
	for {
		name, err := parser.name("Expect variable name.")
		if err != nil {
			return nil, err
		}
		variable := LocalVariable{Name: name}
		if parser.match(TokenLess) {
			attrib, err := parser.name("Expect attribute name after '<'.")
			if err != nil {
				return nil, err
			}
			if attrib != "const" && attrib != "close" {
				return nil, newParseError(
					UnexpectedToken,
					parser.prev(),
					fmt.Sprintf("Unknown attribute '%s'.", attrib),
				)
			}
			if err := parser.consume(TokenGreater, "Expect '>' after attribute name."); err != nil {
				return nil, err
			}
			variable.Attribute = attrib
		}
		stmt.Vars = append(stmt.Vars, variable)
		if !parser.match(TokenComma) {
			break
		}
	}
	if parser.match(TokenAssign) {
		exprs, err := parser.expressionList()
		if err != nil {
			return nil, err
		}
		stmt.Exprs = exprs
	}
	return stmt, nil
}

// varlist "=" explist | functioncall
func (parser *Parser) expressionStatement() (Stmt, error) {
	target, err := parser.prefixExpression()
	if err != nil {
		return nil, err
	}
	if !parser.check(TokenAssign) && !parser.check(TokenComma) {
		if target.IsCall() {
			return &CallStmt{target}, nil
		}
		return nil, parser.errorAtPeek("Expect '=' after variable.")
	}

	targets := []*PrefixExpr{target}
	for parser.match(TokenComma) {
		if target, err = parser.prefixExpression(); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	for _, target := range targets {
		if !target.IsVariable() {
			return nil, parser.errorAtPeek("Invalid assignment target.")
		}
	}
	if err := parser.consume(TokenAssign, "Expect '=' after variables."); err != nil {
		return nil, err
	}
	exprs, err := parser.expressionList()
	if err != nil {
		return nil, err
	}
	return &AssignStmt{targets, exprs}, nil
}

// funcbody --> "(" parlist? ")" block "end" ;
func (parser *Parser) functionBody() (Parameters, *Block, error) {
	var params Parameters
	if err := parser.consume(TokenLeftParen, "Expect '(' before parameters."); err != nil {
		return params, nil, err
	}
	if !parser.check(TokenRightParen) {
		for {
			if parser.match(TokenEllipsis) {
				params.VarArg = true
				break
			}
			name, err := parser.name("Expect parameter name.")
			if err != nil {
				return params, nil, err
			}
			params.Names = append(params.Names, name)
			if !parser.match(TokenComma) {
				break
			}
		}
	}
	if err := parser.consume(TokenRightParen, "Expect ')' after parameters."); err != nil {
		return params, nil, err
	}

	parser.varargs = append(parser.varargs, params.VarArg)
	body, err := parser.blockUntil(TokenEnd, "Expect 'end' after function body.")
	parser.varargs = parser.varargs[:len(parser.varargs)-1]
	if err != nil {
		return params, nil, err
	}
	return params, body, nil
}

// blockUntil parses a block that must be closed by the given token.
func (parser *Parser) blockUntil(closing TokenType, message string) (*Block, error) {
	block, err := parser.block()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(closing, message); err != nil {
		return nil, err
	}
	return block, nil
}

// name consumes an identifier and returns its lexeme.
func (parser *Parser) name(message string) (string, error) {
	if err := parser.consume(TokenIdentifier, message); err != nil {
		return "", err
	}
	return parser.prev().Lexeme, nil
}

func (parser *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if parser.check(tt) {
			parser.advance()
			return true
		}
	}
	return false
}

func (parser *Parser) consume(typ TokenType, message string) error {
	if parser.check(typ) {
		parser.advance()
		return nil
	}
	return parser.errorAtPeek(message)
}

// errorAtPeek reports an error at the next token. Running out of tokens means
// the input stopped in the middle of a construct.
func (parser *Parser) errorAtPeek(message string) error {
	tok := parser.peek()
	if tok.Typ == TokenEOF {
		return newParseError(NothingToParse, tok, message)
	}
	return newParseError(UnexpectedToken, tok, message)
}

func (parser *Parser) check(tt TokenType) bool {
	if parser.isEOF() {
		return false
	}
	return parser.peek().Typ == tt
}

func (parser *Parser) advance() *Token {
	if !parser.isEOF() {
		parser.current++
	}
	return parser.prev()
}

func (parser *Parser) isEOF() bool {
	return parser.peek().Typ == TokenEOF
}

func (parser *Parser) peek() *Token {
	return parser.tokens[parser.current]
}

// peekNext returns the token after the next one.
func (parser *Parser) peekNext() *Token {
	if parser.current+1 >= len(parser.tokens) {
		return parser.tokens[len(parser.tokens)-1]
	}
	return parser.tokens[parser.current+1]
}

func (parser *Parser) prev() *Token {
	return parser.tokens[parser.current-1]
}
