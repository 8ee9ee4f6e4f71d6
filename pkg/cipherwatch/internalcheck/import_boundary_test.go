package internalcheck

import (
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const sealingPath = "github.com/cipherwatch/cipherwatch-go/internal/sealing"

// corePackages are the packages that must treat sealed values as opaque.
// None of them may reach the sealing provider, directly or transitively.
var corePackages = []string{
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch",
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/oracle",
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/assessment",
}

func TestCoreNeverImportsSealing(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedDeps,
	}

	pkgs, err := packages.Load(cfg, corePackages...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	for _, pkg := range pkgs {
		if path := findImport(pkg, sealingPath, make(map[string]bool)); path != "" {
			t.Errorf("%s must not depend on the sealing provider (via %s)", pkg.PkgPath, path)
		}
	}
}

// findImport walks the import graph and returns the chain that reaches
// target, or "" if unreachable.
func findImport(pkg *packages.Package, target string, seen map[string]bool) string {
	if seen[pkg.PkgPath] {
		return ""
	}
	seen[pkg.PkgPath] = true

	for path, imp := range pkg.Imports {
		if path == target {
			return pkg.PkgPath + " -> " + target
		}
		if !strings.HasPrefix(path, "github.com/cipherwatch/cipherwatch-go/") {
			continue
		}
		if chain := findImport(imp, target, seen); chain != "" {
			return pkg.PkgPath + " -> " + chain
		}
	}
	return ""
}
