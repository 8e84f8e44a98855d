package arch_test

import (
	"bufio"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxFilesPerPackage = 20
	maxLinesPerFile    = 400
)

// constantPrefixes names package-level vars that are built by a call but
// never reassigned, such as lipgloss styles and colors.
var constantPrefixes = map[string][]string{
	"ui": {"style", "color"},
}

// TestExportedSymbolsHaveGoDoc requires a doc comment that starts with the
// symbol name on every exported declaration. Members of a grouped const or
// var block may instead rely on the block comment or a trailing comment.
func TestExportedSymbolsHaveGoDoc(t *testing.T) {
	t.Parallel()
	for _, pkg := range packages(t) {
		pkg := pkg
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()
			for _, f := range parsePackage(t, pkg) {
				for _, decl := range f.AST.Decls {
					for _, miss := range undocumented(decl) {
						t.Errorf("%s:%d: exported %s has no GoDoc comment", f.Path, f.line(miss.Pos()), miss.Name)
					}
				}
			}
		})
	}
}

func undocumented(decl ast.Decl) []*ast.Ident {
	var out []*ast.Ident
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Name.IsExported() && exportedReceiver(d.Recv) && !startsWith(d.Doc, d.Name.Name) {
			out = append(out, d.Name)
		}
	case *ast.GenDecl:
		grouped := len(d.Specs) > 1
		for _, spec := range d.Specs {
			switch s := spec.(type) {
			case *ast.TypeSpec:
				if s.Name.IsExported() && !startsWith(s.Doc, s.Name.Name) && !startsWith(d.Doc, s.Name.Name) {
					out = append(out, s.Name)
				}
			case *ast.ValueSpec:
				for _, n := range s.Names {
					if !n.IsExported() || startsWith(s.Doc, n.Name) {
						continue
					}
					if grouped && (d.Doc != nil || s.Comment != nil) {
						continue
					}
					if !grouped && startsWith(d.Doc, n.Name) {
						continue
					}
					out = append(out, n)
				}
			}
		}
	}
	return out
}

func startsWith(doc *ast.CommentGroup, name string) bool {
	return doc != nil && strings.HasPrefix(strings.TrimSpace(doc.Text()), name)
}

func exportedReceiver(recv *ast.FieldList) bool {
	if recv == nil {
		return true
	}
	if len(recv.List) == 0 {
		return false
	}
	expr := recv.List[0].Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.IsExported()
		default:
			return false
		}
	}
}

// TestNoMutableGlobalState allows package-level vars only when they hold
// error sentinels, literals, or composite-literal lookup tables.
func TestNoMutableGlobalState(t *testing.T) {
	t.Parallel()
	for _, pkg := range packages(t) {
		pkg := pkg
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()
			for _, f := range parsePackage(t, pkg) {
				for _, name := range mutableGlobals(f.AST, constantPrefixes[pkg]) {
					t.Errorf("%s:%d: package-level var %s is mutable state; inject it instead",
						f.Path, f.line(name.Pos()), name.Name)
				}
			}
		})
	}
}

func mutableGlobals(file *ast.File, prefixes []string) []*ast.Ident {
	var out []*ast.Ident
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs := spec.(*ast.ValueSpec)
			for i, name := range vs.Names {
				var val ast.Expr
				if i < len(vs.Values) {
					val = vs.Values[i]
				}
				if name.Name == "_" || hasPrefix(name.Name, prefixes) || constantLike(vs.Type, val) {
					continue
				}
				out = append(out, name)
			}
		}
	}
	return out
}

func hasPrefix(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

func constantLike(typ, val ast.Expr) bool {
	if id, ok := typ.(*ast.Ident); ok && id.Name == "error" {
		return true
	}
	switch v := val.(type) {
	case *ast.BasicLit, *ast.CompositeLit:
		return true
	case *ast.CallExpr:
		sel, ok := v.Fun.(*ast.SelectorExpr)
		if !ok {
			return false
		}
		pkg, ok := sel.X.(*ast.Ident)
		if !ok {
			return false
		}
		return (pkg.Name == "errors" && sel.Sel.Name == "New") || (pkg.Name == "fmt" && sel.Sel.Name == "Errorf")
	}
	return false
}

func TestMutableGlobalCanary(t *testing.T) {
	t.Parallel()
	src := `package canary

import "errors"

var ErrGone = errors.New("gone")
var table = map[string]int{"a": 1}
var limit = 3
var cache = make(map[string]string)
var styleTitle = newStyle()
`
	f, err := parser.ParseFile(token.NewFileSet(), "canary.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}
	got := mutableGlobals(f, []string{"style"})
	if len(got) != 1 || got[0].Name != "cache" {
		names := make([]string, len(got))
		for i, g := range got {
			names[i] = g.Name
		}
		t.Errorf("flagged %v, want [cache]", names)
	}
}

// TestInterfacesLiveWithConsumers flags an interface declared next to a type
// whose method set already satisfies it.
func TestInterfacesLiveWithConsumers(t *testing.T) {
	t.Parallel()
	for _, pkg := range packages(t) {
		pkg := pkg
		files := parsePackage(t, pkg)
		methods := make(map[string]map[string]bool)
		for _, f := range files {
			for _, decl := range f.AST.Decls {
				fd, ok := decl.(*ast.FuncDecl)
				if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
					continue
				}
				recv := fd.Recv.List[0].Type
				if star, ok := recv.(*ast.StarExpr); ok {
					recv = star.X
				}
				id, ok := recv.(*ast.Ident)
				if !ok {
					continue
				}
				if methods[id.Name] == nil {
					methods[id.Name] = make(map[string]bool)
				}
				methods[id.Name][fd.Name.Name] = true
			}
		}

		for _, f := range files {
			ast.Inspect(f.AST, func(n ast.Node) bool {
				ts, ok := n.(*ast.TypeSpec)
				if !ok {
					return true
				}
				iface, ok := ts.Type.(*ast.InterfaceType)
				if !ok || iface.Methods == nil || len(iface.Methods.List) == 0 {
					return false
				}
				for typ, set := range methods {
					if satisfies(iface, set) {
						t.Errorf("%s: interface %s is satisfied by %s in the same package; declare it where it is consumed",
							f.Path, ts.Name.Name, typ)
					}
				}
				return false
			})
		}
	}
}

func satisfies(iface *ast.InterfaceType, set map[string]bool) bool {
	for _, m := range iface.Methods.List {
		for _, name := range m.Names {
			if !set[name.Name] {
				return false
			}
		}
	}
	return true
}

func TestPackageAndFileSize(t *testing.T) {
	t.Parallel()
	root := repoRoot(t)
	for _, pkg := range packages(t) {
		pkg := pkg
		dir := filepath.Join(root, "internal", pkg)
		if n := len(listGo(t, dir, false)); n > maxFilesPerPackage {
			t.Errorf("package %s has %d files (limit %d); split it", pkg, n, maxFilesPerPackage)
		}
		for _, path := range listGo(t, dir, true) {
			if n := countLines(t, path); n > maxLinesPerFile {
				rel, _ := filepath.Rel(root, path)
				t.Errorf("%s has %d lines (limit %d); decompose it", rel, n, maxLinesPerFile)
			}
		}
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		n++
	}
	return n
}
