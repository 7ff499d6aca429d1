package sqlinline

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var (
	sqlKeywordPattern = regexp.MustCompile(`(?i)\b(select|insert|update|delete|with|create)\b`)
	uuidMarkerPattern = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// Every SQL constant must open with a unique "--sql <uuid>" audit marker;
// infra.SQLRunner refuses statements without one.
func TestQueriesCarryUniqueMarkers(t *testing.T) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, ".", func(fi fs.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, 0)
	if err != nil {
		t.Fatalf("parse package: %v", err)
	}
	seen := map[string]string{}
	checked := 0
	for _, pkg := range pkgs {
		for path, file := range pkg.Files {
			ast.Inspect(file, func(n ast.Node) bool {
				vs, ok := n.(*ast.ValueSpec)
				if !ok {
					return true
				}
				for i, value := range vs.Values {
					bl, ok := value.(*ast.BasicLit)
					if !ok || bl.Kind != token.STRING {
						continue
					}
					raw, err := unquote(bl.Value)
					if err != nil || !sqlKeywordPattern.MatchString(raw) {
						continue
					}
					name := vs.Names[i].Name
					marker := firstLine(raw)
					if !uuidMarkerPattern.MatchString(marker) {
						t.Errorf("%s:%d %s: missing or invalid --sql <uuid> marker", path, fset.Position(bl.Pos()).Line, name)
						continue
					}
					if other, dup := seen[marker]; dup {
						t.Errorf("%s: marker %q already used by %s", name, marker, other)
					}
					seen[marker] = name
					checked++
				}
				return true
			})
		}
	}
	if checked == 0 {
		t.Fatalf("no SQL constants found")
	}
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\n\r \t")
	if idx := strings.IndexAny(s, "\n\r"); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

func unquote(v string) (string, error) {
	if len(v) > 0 && v[0] == '`' {
		return v[1 : len(v)-1], nil
	}
	return strconv.Unquote(v)
}
