package conda

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/condagraph/condagraph/pkg/errors"
)

// ParseFile reads and parses an environment descriptor.
// The format is chosen by extension: .yml/.yaml are YAML, .json and .conda
// are JSON exports. Other extensions are rejected.
func ParseFile(path string) (*Environment, error) {
	ext := strings.ToLower(filepath.Ext(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "environment file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidEnvFile, err, "read %s", path)
	}

	switch ext {
	case ".yml", ".yaml":
		return parseYAML(path, data)
	case ".json", ".conda":
		return parseJSON(path, data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidEnvFile,
			"unsupported file format %q (only .yml, .yaml, .conda, or .json are supported)", ext)
	}
}

func parseYAML(path string, data []byte) (*Environment, error) {
	var env Environment
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEnvFile, err, "parse YAML from %s", path)
	}
	return &env, nil
}

func parseJSON(path string, data []byte) (*Environment, error) {
	var env Environment
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEnvFile, err, "parse JSON from %s", path)
	}
	return &env, nil
}

// operatorChars are the characters that terminate a package name in a spec.
const operatorChars = "=<>~^!"

// ParseSpec decomposes a dependency spec into a Package.
//
// Supported shapes:
//
//	conda-forge::numpy=1.21.0=py39h7f8727e_0   channel, name, version, build
//	numpy=1.21.0                               name, version
//	requests==2.26.0                           pip-style pin
//	python>=3.9                                constrained (version keeps no operator)
//	numpy                                      bare name
//
// The function is total: malformed specs yield a Package with whatever could
// be recovered, at minimum an empty Name that callers skip.
func ParseSpec(spec string) Package {
	var pkg Package

	spec = strings.TrimSpace(spec)
	if idx := strings.Index(spec, "::"); idx >= 0 {
		pkg.Channel = spec[:idx]
		spec = spec[idx+2:]
	}

	// Name runs until the first operator character.
	cut := strings.IndexAny(spec, operatorChars)
	if cut < 0 {
		pkg.Name = spec
		return pkg
	}

	pkg.Name = spec[:cut]
	rest := strings.TrimLeft(spec[cut:], operatorChars)

	// Conda triplet: version=build. Pip pins ("==") leave no second segment
	// after operator trimming, so this only splits genuine build strings.
	if ver, build, ok := strings.Cut(rest, "="); ok {
		pkg.Version = ver
		pkg.Build = build
	} else {
		pkg.Version = rest
	}

	pkg.IsPinned = pkg.Version != ""
	return pkg
}
