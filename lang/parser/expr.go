package parser

import (
	"github.com/klox-lang/klox/lang/ast"
	"github.com/klox-lang/klox/lang/token"
)

// expression parses the full precedence ladder: assignment, logical-or,
// logical-and, equality, comparison, term, factor, unary, call, primary
// (spec §4.2).
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return ast.NewAssignExpr(p.nextExprID(), target.Name, value)
		case *ast.GetExpr:
			return ast.NewSetExpr(p.nextExprID(), target.Object, target.Name, value)
		default:
			// Invalid assignment target is reported but does not abort parsing
			// (spec §4.2): the malformed assignment is simply not rewritten.
			p.sink.ErrorAtToken(equals, "Invalid assignment target.")
			return expr
		}
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = ast.NewLogicalExpr(p.nextExprID(), expr, op, right)
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewLogicalExpr(p.nextExprID(), expr, op, right)
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = ast.NewBinaryExpr(p.nextExprID(), expr, op, right)
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = ast.NewBinaryExpr(p.nextExprID(), expr, op, right)
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = ast.NewBinaryExpr(p.nextExprID(), expr, op, right)
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = ast.NewBinaryExpr(p.nextExprID(), expr, op, right)
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		operand := p.unary()
		return ast.NewUnaryExpr(p.nextExprID(), op, operand)
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENT, "Expect property name after '.'.")
			expr = ast.NewGetExpr(p.nextExprID(), expr, name)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.error(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return ast.NewCallExpr(p.nextExprID(), callee, paren, args)
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return ast.NewLiteralExpr(p.nextExprID(), false)
	case p.match(token.TRUE):
		return ast.NewLiteralExpr(p.nextExprID(), true)
	case p.match(token.NIL):
		return ast.NewLiteralExpr(p.nextExprID(), nil)
	case p.match(token.NUMBER, token.STRING):
		return ast.NewLiteralExpr(p.nextExprID(), p.previous().Literal)
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENT, "Expect superclass method name.")
		return ast.NewSuperExpr(p.nextExprID(), keyword, method)
	case p.match(token.THIS):
		return ast.NewThisExpr(p.nextExprID(), p.previous())
	case p.match(token.IDENT):
		return ast.NewVariableExpr(p.nextExprID(), p.previous())
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return ast.NewGroupingExpr(p.nextExprID(), expr)
	default:
		panic(p.error(p.peek(), "Expect expression."))
	}
}
