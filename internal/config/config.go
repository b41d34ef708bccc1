// Package config loads CLI configuration files.
//
// Files ending in .cue are compiled as CUE; files ending in .yaml or .yml are
// decoded as YAML. Either way the result is unified with an embedded schema
// that supplies defaults and rejects unknown or out-of-range fields.
package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/jmgilman/go/fs/core"
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/mpq/errors"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "MPQ_CONFIG"

//go:embed schema.cue
var schemaSource []byte

// Config is the decoded configuration.
type Config struct {
	Log     LogConfig     `json:"log"`
	Extract ExtractConfig `json:"extract"`
	Create  CreateConfig  `json:"create"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// ExtractConfig configures the extract command.
type ExtractConfig struct {
	Output string `json:"output"`
}

// CreateConfig configures archive creation.
type CreateConfig struct {
	Compress        bool `json:"compress"`
	Encrypt         bool `json:"encrypt"`
	AdjustKey       bool `json:"adjust_key"`
	SectorSizeShift int  `json:"sector_size_shift"`
	Listfile        bool `json:"listfile"`
}

// Loader reads configuration files from a filesystem.
type Loader struct {
	fs     core.ReadFS
	cueCtx *cue.Context
}

// NewLoader creates a Loader reading from fsys.
func NewLoader(fsys core.ReadFS) *Loader {
	return &Loader{
		fs:     fsys,
		cueCtx: cuecontext.New(),
	}
}

// Default returns the schema defaults.
func (l *Loader) Default(ctx context.Context) (*Config, error) {
	return l.decode(ctx, l.cueCtx.CompileString("{}"), "<defaults>")
}

// Resolve loads the file at path, or the file named by EnvVar when path is
// empty. With neither set it returns the defaults.
func (l *Loader) Resolve(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return l.Default(ctx)
	}
	return l.Load(ctx, path)
}

// Load reads and validates the configuration file at path.
func (l *Loader) Load(ctx context.Context, path string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeCanceled, "configuration loading canceled")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, invalid(err, path, "could not resolve configuration path")
	}

	data, err := l.fs.ReadFile(abs)
	if err != nil {
		return nil, invalid(err, path, "could not read configuration file")
	}

	var value cue.Value
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		value = l.cueCtx.CompileBytes(data, cue.Filename(path))
	case ".yaml", ".yml":
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, invalid(err, path, "could not parse YAML configuration")
		}
		if doc == nil {
			doc = map[string]interface{}{}
		}
		value = l.cueCtx.Encode(doc)
	default:
		return nil, errors.WithContext(
			errors.Newf(errors.CodeInvalidConfig, "unsupported configuration format %q", ext),
			"path", path)
	}

	if err := value.Err(); err != nil {
		return nil, invalid(err, path, "could not compile configuration")
	}

	return l.decode(ctx, value, path)
}

func (l *Loader) decode(ctx context.Context, value cue.Value, path string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeCanceled, "configuration loading canceled")
	}

	schema := l.cueCtx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "embedded configuration schema is invalid")
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true), cue.Final(), cue.All()); err != nil {
		return nil, errors.WithContext(invalid(err, path, "configuration does not match schema"),
			"details", cueerrors.Details(err, nil))
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, invalid(err, path, "could not decode configuration")
	}
	return &cfg, nil
}

func invalid(err error, path, message string) errors.ToolError {
	return errors.WrapWithContext(err, errors.CodeInvalidConfig,
		fmt.Sprintf("%s %s", message, path),
		map[string]interface{}{"path": path})
}
