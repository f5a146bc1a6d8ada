package parser

import "github.com/ardnew/fjord/lang/syntax"

// infixBindingPower returns the left and right binding powers of an infix
// operator. A right power greater than the left makes operators of equal
// precedence associate to the left.
func infixBindingPower(op syntax.Kind) (left, right uint8) {
	switch op {
	case syntax.Star, syntax.Slash:
		return 3, 4

	default:
		return 1, 2
	}
}

func (p *Parser) parseExpr() { p.parseExprBP(0) }

// parseExprBP parses an expression whose operators all bind at least as
// tightly as minBP.
//
// The left operand is emitted before its operator is seen. When an operator
// follows, a BinOp node is started at the checkpoint taken before the
// operand, which splices the operand in as the node's first child. Repeating
// this for every operator at the same level nests the tree to the left.
//
// Every nested construct is parsed through here, so this is where nesting
// depth is limited.
func (p *Parser) parseExprBP(minBP uint8) {
	if p.depth >= MaxNesting {
		p.skipNested()

		return
	}

	p.depth++
	defer func() { p.depth-- }()

	cp := p.builder.Checkpoint()

	p.parsePrimary()
	p.skipWhitespace()

	for {
		if p.atExprEnd() {
			return
		}

		op, _ := p.peek()
		if !op.IsOperator() {
			p.error("expected operator")
			p.skipWhitespace()

			continue
		}

		left, right := infixBindingPower(op)
		if left < minBP {
			return
		}

		p.builder.StartNodeAt(cp, syntax.BinOp)

		p.bump()
		p.skipWhitespace()
		p.parseExprBP(right)

		p.builder.FinishNode()
	}
}

// skipNested reports an expression nested too deeply and consumes it as error
// tokens without recursing. Braces opened within it are matched so that the
// enclosing block resumes after them.
func (p *Parser) skipNested() {
	p.report("nesting too deep")

	open := 0

	for {
		kind, ok := p.peek()
		if !ok {
			return
		}

		switch kind {
		case syntax.LBrace:
			open++

		case syntax.RBrace, syntax.Eol, syntax.Then, syntax.Else:
			if open == 0 {
				return
			}

			if kind == syntax.RBrace {
				open--
			}
		}

		if kind == syntax.Whitespace || kind == syntax.Eol {
			p.bump()

			continue
		}

		lx := p.lexemes[p.pos]
		p.pos++

		p.builder.Token(syntax.Error, lx.Text)
	}
}

func (p *Parser) parsePrimary() {
	kind, ok := p.peek()
	if !ok {
		p.report("expected expression")

		return
	}

	switch kind {
	case syntax.Digits, syntax.StringLiteral, syntax.True, syntax.False:
		p.bump()

	case syntax.Dollar:
		p.parseBindingUsage()

	case syntax.Atom:
		p.parseFunctionCall()

	case syntax.Pipe:
		p.parseLambda()

	case syntax.If:
		p.parseIf()

	case syntax.LBrace:
		p.parseBlock()

	default:
		// Terminators belong to an enclosing construct.
		if p.atExprEnd() {
			p.report("expected expression")

			return
		}

		p.error("expected expression")
	}
}

// atCallEnd reports whether the current lexeme ends a function call's
// argument list.
func (p *Parser) atCallEnd() bool {
	if p.atExprEnd() {
		return true
	}

	kind, _ := p.peek()

	return kind.IsOperator()
}

// parseFunctionCall parses an atom followed by whitespace separated
// arguments:
//
//	FunctionCall := Atom Arg*
func (p *Parser) parseFunctionCall() {
	p.builder.StartNode(syntax.FunctionCall)

	p.bump()
	p.skipWhitespace()

	p.builder.StartNode(syntax.FunctionCallParams)

	for !p.atCallEnd() {
		p.parseArgument()
		p.skipWhitespace()
	}

	p.builder.FinishNode()
	p.builder.FinishNode()
}

// parseArgument parses one function call argument. Bare atoms are words, not
// nested calls; a call can be passed by wrapping it in a block.
func (p *Parser) parseArgument() {
	kind, _ := p.peek()

	switch kind {
	case syntax.Digits, syntax.StringLiteral, syntax.Atom,
		syntax.True, syntax.False:
		p.bump()

	case syntax.Dollar:
		p.parseBindingUsage()

	case syntax.LBrace:
		p.parseBlock()

	case syntax.Pipe:
		p.parseLambda()

	default:
		p.error("expected expression")
	}
}

// parseLambda parses:
//
//	Lambda := "|" Atom* "|" Expr
func (p *Parser) parseLambda() {
	p.builder.StartNode(syntax.Lambda)
	p.builder.StartNode(syntax.LambdaParams)

	p.bump()
	p.skipWhitespace()

	closed := false

	for !closed && !p.atExprEnd() {
		kind, _ := p.peek()

		switch kind {
		case syntax.Atom:
			p.bump()

		case syntax.Pipe:
			p.bump()

			closed = true

			continue

		default:
			p.error("expected atom or pipe")
		}

		p.skipWhitespace()
	}

	p.builder.FinishNode()
	p.skipWhitespace()

	if closed {
		p.parseExpr()
	} else {
		p.report("expected atom or pipe")
	}

	p.builder.FinishNode()
}

// parseBindingUsage parses:
//
//	BindingUsage := "$" Atom
func (p *Parser) parseBindingUsage() {
	p.builder.StartNode(syntax.BindingUsage)

	p.bump()
	p.expect(syntax.Atom, "expected atom")

	p.builder.FinishNode()
}

// parseIf parses:
//
//	If := "if" Expr "then" Expr "else" Expr
func (p *Parser) parseIf() {
	p.builder.StartNode(syntax.IfExpr)

	p.bump()
	p.skipWhitespace()
	p.parseExpr()

	p.expect(syntax.Then, "expected then")
	p.skipWhitespace()
	p.parseExpr()

	p.expect(syntax.Else, "expected else")
	p.skipWhitespace()
	p.parseExpr()

	p.builder.FinishNode()
}

// parseBlock parses:
//
//	Block := "{" (Item Eol)* Item? "}"
func (p *Parser) parseBlock() {
	p.builder.StartNode(syntax.Block)

	p.bump()
	p.skipWhitespaceAndEol()

	for {
		if p.atEnd() {
			p.report("expected closing brace")

			break
		}

		if p.at(syntax.RBrace) {
			p.bump()

			break
		}

		p.parseItem()
		p.skipWhitespace()

		kind, ok := p.peek()

		switch {
		case !ok, kind == syntax.RBrace:
		case kind == syntax.Eol:
			p.skipWhitespaceAndEol()
		default:
			p.error("expected end of line or closing brace")
			p.skipWhitespace()
		}
	}

	p.builder.FinishNode()
}
