package ast

import "iter"

// field is one (name, value) pair as returned by Fields.
type field struct {
	Name  string
	Value any
}

// Fields yields the non-location, non-kind-tag fields of node in
// declaration order. It's the single place that knows every node
// shape; Children (walk.go) reuses fieldValues, its unnamed twin.
func Fields(node Node) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, f := range fieldsOf(node) {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

func fieldValues(node Node) []any {
	fs := fieldsOf(node)
	out := make([]any, len(fs))
	for i, f := range fs {
		out[i] = f.Value
	}
	return out
}

func fieldsOf(node Node) []field {
	switch n := node.(type) {

	// ── modules ──────────────────────────────────────────────
	case *Module:
		return []field{{"Body", n.Body}}
	case *Interactive:
		return []field{{"Body", n.Body}}
	case *Expression:
		return []field{{"Body", n.Body}}
	case *FunctionType:
		return []field{{"ArgTypes", n.ArgTypes}, {"Returns", n.Returns}}

	// ── statements ───────────────────────────────────────────
	case *FunctionDef:
		return []field{
			{"Name", n.Name}, {"Args", n.Args}, {"Body", n.Body},
			{"DecoratorList", n.DecoratorList}, {"Returns", n.Returns},
			{"TypeComment", n.TypeComment}, {"TypeParams", n.TypeParams},
		}
	case *AsyncFunctionDef:
		return []field{
			{"Name", n.Name}, {"Args", n.Args}, {"Body", n.Body},
			{"DecoratorList", n.DecoratorList}, {"Returns", n.Returns},
			{"TypeComment", n.TypeComment}, {"TypeParams", n.TypeParams},
		}
	case *ClassDef:
		return []field{
			{"Name", n.Name}, {"Bases", n.Bases}, {"Keywords", n.Keywords},
			{"Body", n.Body}, {"DecoratorList", n.DecoratorList},
			{"TypeParams", n.TypeParams},
		}
	case *Return:
		return []field{{"Value", n.Value}}
	case *Delete:
		return []field{{"Targets", n.Targets}}
	case *Assign:
		return []field{{"Targets", n.Targets}, {"Value", n.Value}, {"TypeComment", n.TypeComment}}
	case *AugAssign:
		return []field{{"Target", n.Target}, {"Op", n.Op}, {"Value", n.Value}}
	case *AnnAssign:
		return []field{
			{"Target", n.Target}, {"Annotation", n.Annotation},
			{"Value", n.Value}, {"Simple", n.Simple},
		}
	case *TypeAlias:
		return []field{{"Name", n.Name}, {"TypeParams", n.TypeParams}, {"Value", n.Value}}
	case *For:
		return []field{
			{"Target", n.Target}, {"Iter", n.Iter}, {"Body", n.Body},
			{"Orelse", n.Orelse}, {"TypeComment", n.TypeComment},
		}
	case *AsyncFor:
		return []field{
			{"Target", n.Target}, {"Iter", n.Iter}, {"Body", n.Body},
			{"Orelse", n.Orelse}, {"TypeComment", n.TypeComment},
		}
	case *While:
		return []field{{"Test", n.Test}, {"Body", n.Body}, {"Orelse", n.Orelse}}
	case *If:
		return []field{{"Test", n.Test}, {"Body", n.Body}, {"Orelse", n.Orelse}}
	case *With:
		return []field{{"Items", n.Items}, {"Body", n.Body}, {"TypeComment", n.TypeComment}}
	case *AsyncWith:
		return []field{{"Items", n.Items}, {"Body", n.Body}, {"TypeComment", n.TypeComment}}
	case *Try:
		return []field{{"Body", n.Body}, {"Handlers", n.Handlers}, {"Orelse", n.Orelse}, {"Finally", n.Finally}}
	case *TryStar:
		return []field{{"Body", n.Body}, {"Handlers", n.Handlers}, {"Orelse", n.Orelse}, {"Finally", n.Finally}}
	case *Assert:
		return []field{{"Test", n.Test}, {"Msg", n.Msg}}
	case *Import:
		return []field{{"Names", n.Names}}
	case *ImportFrom:
		return []field{{"Module", n.Module}, {"Names", n.Names}, {"Level", n.Level}}
	case *Global:
		return []field{{"Names", n.Names}}
	case *Nonlocal:
		return []field{{"Names", n.Names}}
	case *Raise:
		return []field{{"Exc", n.Exc}, {"Cause", n.Cause}}
	case *ExprStmt:
		return []field{{"Value", n.Value}}
	case *Pass, *Break, *Continue:
		return nil
	case *Match:
		return []field{{"Subject", n.Subject}, {"Cases", n.Cases}}
	case *Comment:
		return []field{{"Text", n.Text}, {"Inline", n.Inline}}

	// ── expressions ──────────────────────────────────────────
	case *BoolOp:
		return []field{{"Op", n.Op}, {"Values", n.Values}}
	case *NamedExpr:
		return []field{{"Target", n.Target}, {"Value", n.Value}}
	case *BinOp:
		return []field{{"Left", n.Left}, {"Op", n.Op}, {"Right", n.Right}}
	case *UnaryOp:
		return []field{{"Op", n.Op}, {"Operand", n.Operand}}
	case *Lambda:
		return []field{{"Args", n.Args}, {"Body", n.Body}}
	case *IfExp:
		return []field{{"Test", n.Test}, {"Body", n.Body}, {"Orelse", n.Orelse}}
	case *Dict:
		return []field{{"Keys", n.Keys}, {"Values", n.Values}}
	case *Set:
		return []field{{"Elts", n.Elts}}
	case *ListComp:
		return []field{{"Elt", n.Elt}, {"Generators", n.Generators}}
	case *SetComp:
		return []field{{"Elt", n.Elt}, {"Generators", n.Generators}}
	case *DictComp:
		return []field{{"Key", n.Key}, {"Value", n.Value}, {"Generators", n.Generators}}
	case *GeneratorExp:
		return []field{{"Elt", n.Elt}, {"Generators", n.Generators}}
	case *Await:
		return []field{{"Value", n.Value}}
	case *Yield:
		return []field{{"Value", n.Value}}
	case *YieldFrom:
		return []field{{"Value", n.Value}}
	case *Compare:
		return []field{{"Left", n.Left}, {"Ops", n.Ops}, {"Comparators", n.Comparators}}
	case *Call:
		return []field{{"Func", n.Func}, {"Args", n.Args}, {"Keywords", n.Keywords}}
	case *FormattedValue:
		return []field{{"Value", n.Value}, {"Conversion", n.Conversion}, {"FormatSpec", n.FormatSpec}}
	case *JoinedStr:
		return []field{{"Values", n.Values}, {"Kind", n.Kind}}
	case *Constant:
		return []field{{"Value", n.Value}, {"Kind", n.Kind}}
	case *Attribute:
		return []field{{"Value", n.Value}, {"Attr", n.Attr}, {"Ctx", n.Ctx}}
	case *Subscript:
		return []field{{"Value", n.Value}, {"Slice", n.Slice}, {"Ctx", n.Ctx}}
	case *Starred:
		return []field{{"Value", n.Value}, {"Ctx", n.Ctx}}
	case *Name:
		return []field{{"Id", n.Id}, {"Ctx", n.Ctx}}
	case *List:
		return []field{{"Elts", n.Elts}, {"Ctx", n.Ctx}}
	case *Tuple:
		return []field{{"Elts", n.Elts}, {"Ctx", n.Ctx}}
	case *Slice:
		return []field{{"Lower", n.Lower}, {"Upper", n.Upper}, {"Step", n.Step}}

	// ── patterns ─────────────────────────────────────────────
	case *MatchValue:
		return []field{{"Value", n.Value}}
	case *MatchSingleton:
		return []field{{"Value", n.Value}}
	case *MatchSequence:
		return []field{{"Patterns", n.Patterns}}
	case *MatchMapping:
		return []field{{"Keys", n.Keys}, {"Patterns", n.Patterns}, {"Rest", n.Rest}}
	case *MatchClass:
		return []field{
			{"Cls", n.Cls}, {"Patterns", n.Patterns},
			{"KwdAttrs", n.KwdAttrs}, {"KwdPatterns", n.KwdPatterns},
		}
	case *MatchStar:
		return []field{{"Name", n.Name}}
	case *MatchAs:
		return []field{{"Pattern", n.Pattern}, {"Name", n.Name}}
	case *MatchOr:
		return []field{{"Patterns", n.Patterns}}

	// ── type params ──────────────────────────────────────────
	case *TypeVar:
		return []field{{"Name", n.Name}, {"Bound", n.Bound}, {"Default", n.Default}}
	case *ParamSpec:
		return []field{{"Name", n.Name}, {"Default", n.Default}}
	case *TypeVarTuple:
		return []field{{"Name", n.Name}, {"Default", n.Default}}

	// ── helpers ──────────────────────────────────────────────
	case *Arg:
		return []field{{"Arg", n.Arg}, {"Annotation", n.Annotation}, {"TypeComment", n.TypeComment}}
	case *Arguments:
		return []field{
			{"PosOnlyArgs", n.PosOnlyArgs}, {"Args", n.Args}, {"Vararg", n.Vararg},
			{"KwOnlyArgs", n.KwOnlyArgs}, {"KwDefaults", n.KwDefaults},
			{"Kwarg", n.Kwarg}, {"Defaults", n.Defaults},
		}
	case *Keyword:
		return []field{{"Arg", n.Arg}, {"Value", n.Value}}
	case *Alias:
		return []field{{"Name", n.Name}, {"AsName", n.AsName}}
	case *ExceptHandler:
		return []field{{"Type", n.Type}, {"Name", n.Name}, {"Body", n.Body}}

	default:
		return nil
	}
}
