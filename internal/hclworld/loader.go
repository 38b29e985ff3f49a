// Package hclworld reads world definitions written in HCL and compiles them
// with the dsl package.
package hclworld

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/tatianab/kastle/internal/ctxlog"
	"github.com/tatianab/kastle/internal/models"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// ErrNoGame is returned when none of the loaded files declares a game block.
var ErrNoGame = errors.New("no game block found")

// Loader parses HCL world files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL world loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads every .hcl file found in paths (files or directories) and
// compiles them into a single configuration. Exactly one game block must
// be declared across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*models.GameConfiguration, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	var files []*hcl.File
	for _, path := range hclFiles {
		f, diags := l.parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		files = append(files, f)
	}
	return l.compile(ctx, files)
}

// LoadSource compiles a single in-memory HCL document. filename is only
// used in diagnostics.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*models.GameConfiguration, error) {
	f, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	return l.compile(ctx, []*hcl.File{f})
}

var varsSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{{Name: "vars"}},
}

func (l *Loader) compile(ctx context.Context, files []*hcl.File) (*models.GameConfiguration, error) {
	logger := ctxlog.FromContext(ctx)

	// First pass: collect vars from every file so any file may reference them.
	vars := map[string]cty.Value{}
	bodies := make([]hcl.Body, 0, len(files))
	for _, f := range files {
		content, remain, diags := f.Body.PartialContent(varsSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to read vars: %w", diags)
		}
		if attr, ok := content.Attributes["vars"]; ok {
			val, diags := attr.Expr.Value(&hcl.EvalContext{Functions: functions})
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to evaluate vars: %w", diags)
			}
			if !val.Type().IsObjectType() && !val.Type().IsMapType() {
				return nil, fmt.Errorf("vars at %s must be an object", attr.Range)
			}
			for k, v := range val.AsValueMap() {
				if _, exists := vars[k]; exists {
					logger.Warn("Variable redefined, the later value wins.", "name", k)
				}
				vars[k] = v
			}
		}
		bodies = append(bodies, remain)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"vars": cty.ObjectVal(vars)},
		Functions: functions,
	}

	// Second pass: decode the game block.
	var games []*gameBlock
	for _, body := range bodies {
		var root fileRoot
		if diags := gohcl.DecodeBody(body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode world: %w", diags)
		}
		games = append(games, root.Games...)
	}

	switch len(games) {
	case 0:
		return nil, ErrNoGame
	case 1:
	default:
		return nil, fmt.Errorf("found %d game blocks, expected exactly one", len(games))
	}

	cfg, err := newTranslator(ctx).game(games[0])
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "rooms", len(cfg.Rooms), "items", len(cfg.Items), "characters", len(cfg.Characters))
	return cfg, nil
}

// functions are the helpers available inside world files.
var functions = map[string]function.Function{
	"upper":     stdlib.UpperFunc,
	"lower":     stdlib.LowerFunc,
	"title":     stdlib.TitleFunc,
	"trimspace": stdlib.TrimSpaceFunc,
	"format":    stdlib.FormatFunc,
	"join":      stdlib.JoinFunc,
	"concat":    stdlib.ConcatFunc,
	"replace":   stdlib.ReplaceFunc,
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found, in lexical order within each directory.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(p) == ".hcl" {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}
	return allFiles, nil
}
