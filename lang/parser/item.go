package parser

import "github.com/ardnew/fjord/lang/syntax"

// parseItem parses a statement or an expression:
//
//	Item := BindingDef | Expr
func (p *Parser) parseItem() {
	if p.at(syntax.Let) {
		p.parseBindingDef()

		return
	}

	p.parseExpr()
}

// parseBindingDef parses:
//
//	BindingDef := "let" Atom "=" Expr
func (p *Parser) parseBindingDef() {
	p.builder.StartNode(syntax.BindingDef)

	p.bump()
	p.skipWhitespace()

	p.expect(syntax.Atom, "expected binding name")
	p.skipWhitespace()

	p.expect(syntax.Equals, "expected equals sign")
	p.skipWhitespace()

	p.parseExpr()

	p.builder.FinishNode()
}
