package lua

import (
	"fmt"
	"strconv"
	"strings"
)

// AstPrinter renders syntax trees as S-expressions, one top level statement
// per line.
type AstPrinter struct{}

func (printer *AstPrinter) Print(block *Block) string {
	var lines []string
	for _, stmt := range block.Stmts {
		lines = append(lines, printer.stmt(stmt))
	}
	if block.Return != nil {
		lines = append(lines, printer.ret(block.Return))
	}
	return strings.Join(lines, "\n")
}

func (printer *AstPrinter) PrintExpr(expr Expr) string {
	return printer.expr(expr)
}

func (printer *AstPrinter) block(block *Block) string {
	var parts []string
	for _, stmt := range block.Stmts {
		parts = append(parts, printer.stmt(stmt))
	}
	if block.Return != nil {
		parts = append(parts, printer.ret(block.Return))
	}
	return strings.Join(parts, " ")
}

// parenthesize wraps the name and the non-empty parts in parentheses.
func parenthesize(name string, parts ...string) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, part := range parts {
		if part == "" {
			continue
		}
		sb.WriteString(" ")
		sb.WriteString(part)
	}
	sb.WriteString(")")
	return sb.String()
}

func (printer *AstPrinter) ret(stmt *ReturnStmt) string {
	return parenthesize("return", printer.exprs(stmt.Exprs)...)
}

func (printer *AstPrinter) stmt(stmt Stmt) string {
	switch stmt := stmt.(type) {
	case *EmptyStmt:
		return "(;)"
	case *BreakStmt:
		return "(break)"
	case *LabelStmt:
		return parenthesize("label", stmt.Name)
	case *GotoStmt:
		return parenthesize("goto", stmt.Label)
	case *DoStmt:
		return parenthesize("do", printer.block(stmt.Body))
	case *WhileStmt:
		return parenthesize("while", printer.expr(stmt.Cond), printer.block(stmt.Body))
	case *RepeatStmt:
		return parenthesize("repeat", printer.block(stmt.Body), "until", printer.expr(stmt.Cond))
	case *IfStmt:
		var parts []string
		for _, clause := range stmt.Clauses {
			parts = append(parts, parenthesize(printer.expr(clause.Cond), printer.block(clause.Body)))
		}
		if stmt.Else != nil {
			parts = append(parts, parenthesize("else", printer.block(stmt.Else)))
		}
		return parenthesize("if", parts...)
	case *NumericForStmt:
		step := ""
		if stmt.Step != nil {
			step = printer.expr(stmt.Step)
		}
		return parenthesize(
			"for",
			stmt.Control,
			printer.expr(stmt.Start),
			printer.expr(stmt.Limit),
			step,
			printer.block(stmt.Body),
		)
	case *GenericForStmt:
		return parenthesize(
			"for-in",
			"("+strings.Join(stmt.Names, " ")+")",
			"("+strings.Join(printer.exprs(stmt.Exprs), " ")+")",
			printer.block(stmt.Body),
		)
	case *FunctionStmt:
		name := strings.Join(stmt.Name.Names, ".")
		if stmt.Name.Method != "" {
			name += ":" + stmt.Name.Method
		}
		return parenthesize("function", name, params(stmt.Params), printer.block(stmt.Body))
	case *LocalFunctionStmt:
		return parenthesize("local-function", stmt.Name, params(stmt.Params), printer.block(stmt.Body))
	case *LocalStmt:
		var names []string
		for _, v := range stmt.Vars {
			if v.Attribute != "" {
				names = append(names, fmt.Sprintf("%s<%s>", v.Name, v.Attribute))
			} else {
				names = append(names, v.Name)
			}
		}
		parts := append([]string{"(" + strings.Join(names, " ") + ")"}, printer.exprs(stmt.Exprs)...)
		return parenthesize("local", parts...)
	case *AssignStmt:
		var targets []string
		for _, target := range stmt.Targets {
			targets = append(targets, printer.expr(target))
		}
		parts := append([]string{"(" + strings.Join(targets, " ") + ")"}, printer.exprs(stmt.Exprs)...)
		return parenthesize("=", parts...)
	case *CallStmt:
		return printer.expr(stmt.Call)
	}
	return fmt.Sprintf("<%T>", stmt)
}

func params(p Parameters) string {
	names := append([]string(nil), p.Names...)
	if p.VarArg {
		names = append(names, "...")
	}
	return "(" + strings.Join(names, " ") + ")"
}

func (printer *AstPrinter) exprs(exprs []Expr) []string {
	parts := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		parts = append(parts, printer.expr(expr))
	}
	return parts
}

func (printer *AstPrinter) expr(expr Expr) string {
	switch expr := expr.(type) {
	case *LiteralExpr:
		if s, ok := expr.Value.(string); ok {
			return strconv.Quote(s)
		}
		return ToString(expr.Value)
	case *VarArgExpr:
		return "..."
	case *NameExpr:
		return expr.Name
	case *ParenExpr:
		return parenthesize("group", printer.expr(expr.Expr))
	case *UnaryExpr:
		return parenthesize(expr.Op.String(), printer.expr(expr.Operand))
	case *BinaryExpr:
		return parenthesize(expr.Op.String(), printer.expr(expr.Lhs), printer.expr(expr.Rhs))
	case *LogicalExpr:
		return parenthesize(expr.Op.String(), printer.expr(expr.Lhs), printer.expr(expr.Rhs))
	case *TableExpr:
		var parts []string
		for _, field := range expr.Fields {
			switch {
			case field.Key != nil:
				parts = append(parts, fmt.Sprintf("[%s]=%s", printer.expr(field.Key), printer.expr(field.Value)))
			case field.Name != "":
				parts = append(parts, fmt.Sprintf("%s=%s", field.Name, printer.expr(field.Value)))
			default:
				parts = append(parts, printer.expr(field.Value))
			}
		}
		return parenthesize("table", parts...)
	case *FunctionExpr:
		return parenthesize("function", params(expr.Params), printer.block(expr.Body))
	case *PrefixExpr:
		s := printer.expr(expr.Primary)
		for _, action := range expr.Actions {
			switch action := action.(type) {
			case *Selector:
				key := strconv.Quote(action.Name)
				if action.Key != nil {
					key = printer.expr(action.Key)
				}
				s = parenthesize("index", s, key)
			case *Call:
				args := printer.exprs(action.Args)
				if action.Method != "" {
					s = parenthesize("method", append([]string{s, action.Method}, args...)...)
				} else {
					s = parenthesize("call", append([]string{s}, args...)...)
				}
			}
		}
		return s
	}
	return fmt.Sprintf("<%T>", expr)
}
