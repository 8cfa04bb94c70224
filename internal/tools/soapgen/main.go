package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/jirasoap/schema"
)

const header = "// Code generated by soapgen. DO NOT EDIT."

type param struct {
	name string
	typ  string
}

type method struct {
	name   string
	wire   string
	params []param
	result string
}

func main() {
	var root string
	flag.StringVar(&root, "root", ".", "module root directory")
	flag.Parse()

	methods, err := loadMethods(filepath.Join(root, "schema", "service.go"))
	if err != nil {
		fail(err)
	}
	if err := writeSource(filepath.Join(root, "soapclient", "operations_gen.go"), clientSource(methods)); err != nil {
		fail(err)
	}
	if err := writeSource(filepath.Join(root, "soapserver", "dispatch_gen.go"), serverSource(methods)); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func loadMethods(path string) ([]method, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	wire := make(map[string]string, len(schema.Operations))
	for _, op := range schema.Operations {
		wire[op.Method] = op.Name
	}
	var iface *ast.InterfaceType
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.TypeSpec)
		if !ok || spec.Name.Name != "Service" {
			return iface == nil
		}
		iface, _ = spec.Type.(*ast.InterfaceType)
		return false
	})
	if iface == nil {
		return nil, fmt.Errorf("%s: Service interface not found", path)
	}
	var methods []method
	for _, field := range iface.Methods.List {
		fn, ok := field.Type.(*ast.FuncType)
		if !ok || len(field.Names) != 1 {
			continue
		}
		m := method{name: field.Names[0].Name, wire: wire[field.Names[0].Name]}
		if m.wire == "" {
			return nil, fmt.Errorf("method %s has no catalogue entry", m.name)
		}
		for _, p := range fn.Params.List {
			typ := qualify(p.Type)
			if typ == "context.Context" {
				continue
			}
			for _, name := range p.Names {
				m.params = append(m.params, param{name: name.Name, typ: typ})
			}
		}
		if fn.Results.NumFields() == 2 {
			m.result = qualify(fn.Results.List[0].Type)
		}
		methods = append(methods, m)
	}
	if len(methods) != len(schema.Operations) {
		return nil, fmt.Errorf("Service declares %d methods, catalogue has %d", len(methods), len(schema.Operations))
	}
	return methods, nil
}

func qualify(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		if ast.IsExported(e.Name) {
			return "schema." + e.Name
		}
		return e.Name
	case *ast.StarExpr:
		return "*" + qualify(e.X)
	case *ast.ArrayType:
		return "[]" + qualify(e.Elt)
	default:
		return types.ExprString(expr)
	}
}

// signature merges consecutive parameters of the same type.
func signature(m method) string {
	parts := []string{"ctx context.Context"}
	for i := 0; i < len(m.params); {
		j := i
		names := []string{}
		for j < len(m.params) && m.params[j].typ == m.params[i].typ {
			names = append(names, m.params[j].name)
			j++
		}
		parts = append(parts, strings.Join(names, ", ")+" "+m.params[i].typ)
		i = j
	}
	return strings.Join(parts, ", ")
}

func results(m method) string {
	if m.result == "" {
		return "error"
	}
	return "(" + m.result + ", error)"
}

func argList(m method) string {
	var b strings.Builder
	for _, p := range m.params {
		b.WriteString(", ")
		b.WriteString(p.name)
	}
	return b.String()
}

func clientSource(methods []method) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\n\npackage soapclient\n\nimport (\n\t\"context\"\n\t\"time\"\n\n\t\"pkt.systems/jirasoap/schema\"\n)\n", header)
	for _, m := range methods {
		fmt.Fprintf(&b, "\n// %s calls %s.\n", m.name, m.wire)
		fmt.Fprintf(&b, "func (c *Client) %s(%s) %s {\n", m.name, signature(m), results(m))
		if m.result == "" {
			fmt.Fprintf(&b, "\treturn c.call(ctx, %q, nil%s)\n}\n", m.wire, argList(m))
			continue
		}
		fmt.Fprintf(&b, "\tvar out %s\n", m.result)
		fmt.Fprintf(&b, "\terr := c.call(ctx, %q, &out%s)\n", m.wire, argList(m))
		b.WriteString("\treturn out, err\n}\n")
	}
	b.WriteString("\nvar _ schema.Service = (*Client)(nil)\n")
	return b.Bytes()
}

func serverSource(methods []method) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s\n\npackage soapserver\n\nimport (\n\t\"context\"\n\n\t\"pkt.systems/jirasoap/internal/soapenc\"\n\t\"pkt.systems/jirasoap/schema\"\n)\n\n", header)
	b.WriteString("var operationHandlers = []operationHandler{\n")
	for _, m := range methods {
		b.WriteString("\t{\n")
		fmt.Fprintf(&b, "\t\tname: %q,\n", m.wire)
		if m.result == "" {
			b.WriteString("\t\tvoid: true,\n")
		}
		b.WriteString("\t\tcall: func(ctx context.Context, svc schema.Service, req *soapenc.Request) (any, error) {\n")
		ptrs := make([]string, 0, len(m.params))
		args := make([]string, 0, len(m.params))
		for _, p := range m.params {
			fmt.Fprintf(&b, "\t\t\tvar %s %s\n", p.name, p.typ)
			ptrs = append(ptrs, "&"+p.name)
			args = append(args, p.name)
		}
		fmt.Fprintf(&b, "\t\t\tif err := decodeParams(req, %s); err != nil {\n\t\t\t\treturn nil, err\n\t\t\t}\n", strings.Join(ptrs, ", "))
		call := fmt.Sprintf("svc.%s(ctx, %s)", m.name, strings.Join(args, ", "))
		if m.result == "" {
			fmt.Fprintf(&b, "\t\t\treturn nil, %s\n", call)
		} else {
			fmt.Fprintf(&b, "\t\t\treturn %s\n", call)
		}
		b.WriteString("\t\t},\n\t},\n")
	}
	b.WriteString("}\n")
	return b.Bytes()
}

func writeSource(path string, src []byte) error {
	formatted, err := format.Source(src)
	if err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
