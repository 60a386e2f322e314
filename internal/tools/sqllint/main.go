// sqllint verifies that every inline SQL constant starts with the
// "--sql <uuid>" audit marker the query runner logs by.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	looksLikeSQL = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with)\b`)
	validMarker  = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

type problem struct {
	file string
	line int
	name string
}

func main() {
	flag.Parse()
	roots := flag.Args()
	if len(roots) == 0 {
		roots = []string{"./internal/sqlinline"}
	}

	var problems []problem
	for _, root := range roots {
		if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if strings.HasPrefix(d.Name(), ".") || d.Name() == "vendor" {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			found, err := checkFile(path)
			if err != nil {
				return err
			}
			problems = append(problems, found...)
			return nil
		}); err != nil {
			fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
			os.Exit(1)
		}
	}

	if len(problems) > 0 {
		fmt.Fprintln(os.Stderr, "sqllint: queries without a valid --sql <uuid> marker")
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  %s:%d (%s)\n", p.file, p.line, p.name)
		}
		os.Exit(1)
	}
}

func checkFile(path string) ([]problem, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var problems []problem
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for _, value := range spec.Values {
			lit, ok := value.(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				continue
			}
			raw, err := unquote(lit.Value)
			if err != nil || !looksLikeSQL.MatchString(raw) {
				continue
			}
			if !validMarker.MatchString(firstLine(raw)) {
				problems = append(problems, problem{
					file: path,
					line: fset.Position(lit.Pos()).Line,
					name: specName(spec),
				})
			}
		}
		return true
	})
	return problems, nil
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func unquote(v string) (string, error) {
	if strings.HasPrefix(v, "`") {
		return strings.Trim(v, "`"), nil
	}
	return strconv.Unquote(v)
}

func specName(spec *ast.ValueSpec) string {
	names := make([]string, 0, len(spec.Names))
	for _, ident := range spec.Names {
		names = append(names, ident.Name)
	}
	return strings.Join(names, ",")
}
