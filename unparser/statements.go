package unparser

import (
	"strings"

	"pythia/ast"
)

func (u *Unparser) statement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Comment:
		u.line(s.Text)
	case *ast.FunctionDef:
		u.functionDef(s)
	case *ast.AsyncFunctionDef:
		u.asyncFunctionDef(s)
	case *ast.ClassDef:
		u.classDef(s)
	case *ast.Return:
		u.writeIndent()
		u.out.WriteString("return")
		if s.Value != nil {
			u.out.WriteString(" ")
			u.expr(s.Value, precTest)
		}
	case *ast.Delete:
		u.writeIndent()
		u.out.WriteString("del ")
		u.exprList(s.Targets)
	case *ast.Assign:
		u.writeIndent()
		for _, t := range s.Targets {
			u.expr(t, precTest+1)
			u.out.WriteString(" = ")
		}
		u.expr(s.Value, precTest)
	case *ast.AugAssign:
		u.writeIndent()
		u.expr(s.Target, precTest+1)
		u.out.WriteString(" " + s.Op.AugSymbol() + " ")
		u.expr(s.Value, precTest)
	case *ast.AnnAssign:
		u.writeIndent()
		if s.Simple {
			u.expr(s.Target, precTest+1)
		} else {
			u.out.WriteString("(")
			u.expr(s.Target, precTest+1)
			u.out.WriteString(")")
		}
		u.out.WriteString(": ")
		u.expr(s.Annotation, precTest+1)
		if s.Value != nil {
			u.out.WriteString(" = ")
			u.expr(s.Value, precTest)
		}
	case *ast.TypeAlias:
		u.writeIndent()
		u.out.WriteString("type " + s.Name.Id)
		u.typeParamList(s.TypeParams)
		u.out.WriteString(" = ")
		u.expr(s.Value, precTest)
	case *ast.For:
		u.forStatement(s)
	case *ast.AsyncFor:
		u.asyncForStatement(s)
	case *ast.While:
		u.whileStatement(s)
	case *ast.If:
		u.ifStatement(s, "if")
	case *ast.With:
		u.withStatement(s)
	case *ast.AsyncWith:
		u.asyncWithStatement(s)
	case *ast.Try:
		u.tryStatement(s.Body, s.Handlers, s.Orelse, s.Finally, false)
	case *ast.TryStar:
		u.tryStatement(s.Body, s.Handlers, s.Orelse, s.Finally, true)
	case *ast.Assert:
		u.writeIndent()
		u.out.WriteString("assert ")
		u.expr(s.Test, precTest+1)
		if s.Msg != nil {
			u.out.WriteString(", ")
			u.expr(s.Msg, precTest+1)
		}
	case *ast.Import:
		u.writeIndent()
		u.out.WriteString("import ")
		u.aliasList(s.Names)
	case *ast.ImportFrom:
		u.importFrom(s)
	case *ast.Global:
		u.writeIndent()
		u.out.WriteString("global " + strings.Join(s.Names, ", "))
	case *ast.Nonlocal:
		u.writeIndent()
		u.out.WriteString("nonlocal " + strings.Join(s.Names, ", "))
	case *ast.Raise:
		u.writeIndent()
		u.out.WriteString("raise")
		if s.Exc != nil {
			u.out.WriteString(" ")
			u.expr(s.Exc, precTest+1)
		}
		if s.Cause != nil {
			u.out.WriteString(" from ")
			u.expr(s.Cause, precTest+1)
		}
	case *ast.ExprStmt:
		u.writeIndent()
		u.expr(s.Value, precTuple)
	case *ast.Pass:
		u.line("pass")
	case *ast.Break:
		u.line("break")
	case *ast.Continue:
		u.line("continue")
	case *ast.Match:
		u.matchStatement(s)
	default:
		u.line("?")
	}
}

func (u *Unparser) aliasList(names []*ast.Alias) {
	for i, n := range names {
		if i > 0 {
			u.out.WriteString(", ")
		}
		u.out.WriteString(n.Name)
		if n.AsName != "" {
			u.out.WriteString(" as " + n.AsName)
		}
	}
}

func (u *Unparser) importFrom(s *ast.ImportFrom) {
	u.writeIndent()
	u.out.WriteString("from " + strings.Repeat(".", s.Level) + s.Module + " import ")
	for i, n := range s.Names {
		if i > 0 {
			u.out.WriteString(", ")
		}
		u.out.WriteString(n.Name)
		if n.AsName != "" {
			u.out.WriteString(" as " + n.AsName)
		}
	}
}

func (u *Unparser) decorators(list []ast.Expr) {
	for _, d := range list {
		u.writeIndent()
		u.out.WriteString("@")
		u.expr(d, precTest+1)
	}
}

func (u *Unparser) typeParamList(params []ast.TypeParamNode) {
	if len(params) == 0 {
		return
	}
	u.out.WriteString("[")
	for i, p := range params {
		if i > 0 {
			u.out.WriteString(", ")
		}
		switch tp := p.(type) {
		case *ast.TypeVar:
			u.out.WriteString(tp.Name)
			if tp.Bound != nil {
				u.out.WriteString(": ")
				u.expr(tp.Bound, precTest+1)
			}
			if tp.Default != nil {
				u.out.WriteString(" = ")
				u.expr(tp.Default, precTest+1)
			}
		case *ast.ParamSpec:
			u.out.WriteString("**" + tp.Name)
			if tp.Default != nil {
				u.out.WriteString(" = ")
				u.expr(tp.Default, precTest+1)
			}
		case *ast.TypeVarTuple:
			u.out.WriteString("*" + tp.Name)
			if tp.Default != nil {
				u.out.WriteString(" = ")
				u.expr(tp.Default, precTest+1)
			}
		}
	}
	u.out.WriteString("]")
}

func (u *Unparser) functionDef(s *ast.FunctionDef) {
	u.functionDefHeading(s.DecoratorList, s.Name, s.Args, s.Body, s.Returns, s.TypeParams, false)
}

func (u *Unparser) asyncFunctionDef(s *ast.AsyncFunctionDef) {
	u.functionDefHeading(s.DecoratorList, s.Name, s.Args, s.Body, s.Returns, s.TypeParams, true)
}

func (u *Unparser) functionDefHeading(decoratorList []ast.Expr, name string, args *ast.Arguments, body []ast.Stmt, returns ast.Expr, typeParams []ast.TypeParamNode, isAsync bool) {
	u.decorators(decoratorList)
	u.writeIndent()
	if isAsync {
		u.out.WriteString("async ")
	}
	u.out.WriteString("def " + name)
	u.typeParamList(typeParams)
	u.out.WriteString("(")
	u.parameterList(args, true)
	u.out.WriteString(")")
	if returns != nil {
		u.out.WriteString(" -> ")
		u.expr(returns, precTest+1)
	}
	u.out.WriteString(":")
	u.block(body)
}

func (u *Unparser) classDef(s *ast.ClassDef) {
	u.decorators(s.DecoratorList)
	u.writeIndent()
	u.out.WriteString("class " + s.Name)
	u.typeParamList(s.TypeParams)
	if len(s.Bases) > 0 || len(s.Keywords) > 0 {
		u.out.WriteString("(")
		wrote := false
		for _, b := range s.Bases {
			if wrote {
				u.out.WriteString(", ")
			}
			u.expr(b, precTest+1)
			wrote = true
		}
		for _, kw := range s.Keywords {
			if wrote {
				u.out.WriteString(", ")
			}
			if kw.Arg == "" {
				u.out.WriteString("**")
			} else {
				u.out.WriteString(kw.Arg + "=")
			}
			u.expr(kw.Value, precTest+1)
			wrote = true
		}
		u.out.WriteString(")")
	}
	u.out.WriteString(":")
	u.block(s.Body)
}

func (u *Unparser) forStatement(s *ast.For) {
	u.forHeading(s.Target, s.Iter, s.Body, s.Orelse, false)
}

func (u *Unparser) asyncForStatement(s *ast.AsyncFor) {
	u.forHeading(s.Target, s.Iter, s.Body, s.Orelse, true)
}

func (u *Unparser) forHeading(target, iter ast.Expr, body, orelse []ast.Stmt, isAsync bool) {
	u.writeIndent()
	if isAsync {
		u.out.WriteString("async ")
	}
	u.out.WriteString("for ")
	u.expr(target, precTest+1)
	u.out.WriteString(" in ")
	u.expr(iter, precTest+1)
	u.out.WriteString(":")
	u.block(body)
	if len(orelse) > 0 {
		u.line("else:")
		u.block(orelse)
	}
}

func (u *Unparser) whileStatement(s *ast.While) {
	u.writeIndent()
	u.out.WriteString("while ")
	u.expr(s.Test, precTest+1)
	u.out.WriteString(":")
	u.block(s.Body)
	if len(s.Orelse) > 0 {
		u.line("else:")
		u.block(s.Orelse)
	}
}

// ifStatement reconstructs `elif` by detecting an Orelse that holds
// exactly one nested *If, matching what the parser produces.
func (u *Unparser) ifStatement(s *ast.If, keyword string) {
	u.writeIndent()
	u.out.WriteString(keyword + " ")
	u.expr(s.Test, precTest+1)
	u.out.WriteString(":")
	u.block(s.Body)

	switch {
	case len(s.Orelse) == 1:
		if nested, ok := s.Orelse[0].(*ast.If); ok {
			u.ifStatement(nested, "elif")
			return
		}
		u.line("else:")
		u.block(s.Orelse)
	case len(s.Orelse) > 1:
		u.line("else:")
		u.block(s.Orelse)
	}
}

func (u *Unparser) withStatement(s *ast.With) {
	u.withHeading(s.Items, s.Body, false)
}

func (u *Unparser) asyncWithStatement(s *ast.AsyncWith) {
	u.withHeading(s.Items, s.Body, true)
}

func (u *Unparser) withHeading(items []*ast.WithItem, body []ast.Stmt, isAsync bool) {
	u.writeIndent()
	if isAsync {
		u.out.WriteString("async ")
	}
	u.out.WriteString("with ")
	for i, item := range items {
		if i > 0 {
			u.out.WriteString(", ")
		}
		u.expr(item.ContextExpr, precTest+1)
		if item.OptionalVars != nil {
			u.out.WriteString(" as ")
			u.expr(item.OptionalVars, precTest+1)
		}
	}
	u.out.WriteString(":")
	u.block(body)
}

func (u *Unparser) tryStatement(body []ast.Stmt, handlers []*ast.ExceptHandler, orelse, finally []ast.Stmt, star bool) {
	u.line("try:")
	u.block(body)
	for _, h := range handlers {
		u.writeIndent()
		u.out.WriteString("except")
		if star {
			u.out.WriteString("*")
		}
		if h.Type != nil {
			u.out.WriteString(" ")
			u.expr(h.Type, precTest+1)
			if h.Name != "" {
				u.out.WriteString(" as " + h.Name)
			}
		}
		u.out.WriteString(":")
		u.block(h.Body)
	}
	if len(orelse) > 0 {
		u.line("else:")
		u.block(orelse)
	}
	if len(finally) > 0 {
		u.line("finally:")
		u.block(finally)
	}
}
