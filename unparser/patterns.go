package unparser

import (
	"pythia/ast"
)

func (u *Unparser) matchStatement(s *ast.Match) {
	u.writeIndent()
	u.out.WriteString("match ")
	u.expr(s.Subject, precTest+1)
	u.out.WriteString(":")
	u.depth++
	for _, c := range s.Cases {
		u.writeIndent()
		u.out.WriteString("case ")
		u.pattern(c.Pattern)
		if c.Guard != nil {
			u.out.WriteString(" if ")
			u.expr(c.Guard, precTest+1)
		}
		u.out.WriteString(":")
		u.block(c.Body)
	}
	u.depth--
}

func (u *Unparser) pattern(p ast.Pattern) {
	switch n := p.(type) {
	case *ast.MatchValue:
		u.expr(n.Value, precTest+1)
	case *ast.MatchSingleton:
		u.constant(&ast.Constant{Value: n.Value})
	case *ast.MatchSequence:
		u.out.WriteString("[")
		u.patternList(n.Patterns)
		u.out.WriteString("]")
	case *ast.MatchMapping:
		u.out.WriteString("{")
		wrote := false
		for i, k := range n.Keys {
			if wrote {
				u.out.WriteString(", ")
			}
			u.expr(k, precTest+1)
			u.out.WriteString(": ")
			u.pattern(n.Patterns[i])
			wrote = true
		}
		if n.Rest != "" {
			if wrote {
				u.out.WriteString(", ")
			}
			u.out.WriteString("**" + n.Rest)
		}
		u.out.WriteString("}")
	case *ast.MatchClass:
		u.expr(n.Cls, precAtom)
		u.out.WriteString("(")
		wrote := false
		for _, sub := range n.Patterns {
			if wrote {
				u.out.WriteString(", ")
			}
			u.pattern(sub)
			wrote = true
		}
		for i, attr := range n.KwdAttrs {
			if wrote {
				u.out.WriteString(", ")
			}
			u.out.WriteString(attr + "=")
			u.pattern(n.KwdPatterns[i])
			wrote = true
		}
		u.out.WriteString(")")
	case *ast.MatchStar:
		name := n.Name
		if name == "" {
			name = "_"
		}
		u.out.WriteString("*" + name)
	case *ast.MatchAs:
		if n.Pattern != nil {
			u.pattern(n.Pattern)
			u.out.WriteString(" as " + n.Name)
			return
		}
		u.out.WriteString(n.Name)
	case *ast.MatchOr:
		for i, alt := range n.Patterns {
			if i > 0 {
				u.out.WriteString(" | ")
			}
			u.pattern(alt)
		}
	default:
		u.out.WriteString("?")
	}
}

func (u *Unparser) patternList(patterns []ast.Pattern) {
	for i, p := range patterns {
		if i > 0 {
			u.out.WriteString(", ")
		}
		u.pattern(p)
	}
}
