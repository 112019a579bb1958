// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		"seedloc/internal/monitor": {
			"seedloc/internal/pipeline", "seedloc/internal/writers",
			"seedloc/internal/cli", "seedloc/internal/app", "seedloc/cmd/",
		},
		"seedloc/internal/pipeline": {
			"seedloc/internal/app", "seedloc/internal/cli",
			"seedloc/internal/writers", "seedloc/cmd/",
		},
		"seedloc/internal/writers": {
			"seedloc/internal/app", "seedloc/internal/cli",
			"seedloc/internal/pipeline", "seedloc/cmd/",
		},
		"seedloc/internal/cli": {
			"seedloc/internal/app", "seedloc/internal/pipeline", "seedloc/cmd/",
		},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "seedloc/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "seedloc/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
