// Package config loads the authority configuration document (spec §6) into
// an AuthorityToken. It is the one place in the core that performs path
// canonicalisation (SPEC_FULL §5's resolution of the §9 open question):
// fs_root is resolved to an absolute, symlink-free path here so the
// Enforcer's path-prefix check against cwd means what it looks like it
// means.
package config

import (
	"encoding/json"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	"gopkg.in/yaml.v3"

	"github.com/opal-lang/gatectl/internal/gatierr"
	"github.com/opal-lang/gatectl/internal/types"
)

// document is the typed decode target for the authority config file.
type document struct {
	AuthorityLevel    string   `json:"authority_level" yaml:"authority_level"`
	AllowedTools      []string `json:"allowed_tools" yaml:"allowed_tools"`
	AllowedBins       []string `json:"allowed_bins" yaml:"allowed_bins"`
	FSRoot            string   `json:"fs_root" yaml:"fs_root"`
	Network           string   `json:"network" yaml:"network"`
	ExpirationSeconds int64    `json:"expiration_seconds" yaml:"expiration_seconds"`
}

var validLevels = map[string]types.AuthorityLevel{
	"observe":             types.LevelObserve,
	"tools_only":          types.LevelToolsOnly,
	"parameterized_tools": types.LevelParameterizedTools,
	"scoped_commands":     types.LevelScopedCommands,
}

var validNetwork = map[string]types.NetworkPolicy{
	"deny":      types.NetworkDeny,
	"localhost": types.NetworkLocalhost,
	"allowlist": types.NetworkAllowlist,
}

// Default returns the observe-level token bound to projectRoot that spec §6
// mandates when no config file is present.
func Default(projectRoot string) (*types.AuthorityToken, error) {
	root, err := Canonicalize(projectRoot)
	if err != nil {
		return nil, gatierr.Wrap(gatierr.ConfigMalformed, "could not canonicalise project root", err)
	}
	return &types.AuthorityToken{
		ProjectID: projectID(root),
		Level:     types.LevelObserve,
		FSRoot:    root,
		Network:   types.NetworkDeny,
	}, nil
}

// LoadJSON decodes raw as a JSON authority config document, resolved against
// projectRoot ("." in fs_root means the project root itself).
func LoadJSON(raw []byte, projectRoot string) (*types.AuthorityToken, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, gatierr.Wrap(gatierr.ConfigMalformed, "authority config is not valid JSON", err)
	}
	return build(doc, projectRoot)
}

// LoadYAML decodes raw as a YAML authority config document.
func LoadYAML(raw []byte, projectRoot string) (*types.AuthorityToken, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, gatierr.Wrap(gatierr.ConfigMalformed, "authority config is not valid YAML", err)
	}
	return build(doc, projectRoot)
}

func build(doc document, projectRoot string) (*types.AuthorityToken, error) {
	level, ok := validLevels[doc.AuthorityLevel]
	if !ok {
		return nil, gatierr.New(gatierr.InvalidLevel, "unknown authority_level").
			WithContext("authority_level", doc.AuthorityLevel)
	}

	network := types.NetworkDeny
	if doc.Network != "" {
		network, ok = validNetwork[doc.Network]
		if !ok {
			return nil, gatierr.New(gatierr.InvalidNetworkPolicy, "unknown network policy").
				WithContext("network", doc.Network)
		}
	}

	fsRoot := doc.FSRoot
	if fsRoot == "" || fsRoot == "." {
		fsRoot = projectRoot
	}
	canonicalRoot, err := Canonicalize(fsRoot)
	if err != nil {
		return nil, gatierr.Wrap(gatierr.ConfigMalformed, "could not canonicalise fs_root", err)
	}

	var expiration int64
	if doc.ExpirationSeconds > 0 {
		expiration = time.Now().Unix() + doc.ExpirationSeconds
	}

	return &types.AuthorityToken{
		ProjectID:    projectID(canonicalRoot),
		Level:        level,
		Expiration:   expiration,
		AllowedTools: doc.AllowedTools,
		AllowedBins:  doc.AllowedBins,
		FSRoot:       canonicalRoot,
		Network:      network,
	}, nil
}

// Canonicalize resolves path to an absolute, symlink-free form. Both
// fs_root here and cwd at command-build time go through this function, so
// the Enforcer's component-aware prefix comparison (spec §4.4/§9) is
// comparing like with like.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// A path that does not exist yet (e.g. a cwd about to be created)
		// still canonicalises on its absolute form; EvalSymlinks failing
		// here is expected for such paths and is not itself an error.
		return abs, nil
	}
	return resolved, nil
}

// projectID hashes the canonicalized project root path into the 32-byte
// ProjectID spec §3 requires, using sha3-256 to match the corpus's choice
// of sha3 over sha256 for content-derived identifiers (core/planfmt).
func projectID(canonicalRoot string) types.ProjectID {
	return types.ProjectID(sha3.Sum256([]byte(canonicalRoot)))
}
