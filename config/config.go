// Package config implements .tskit.yaml loading and auto-detection of the
// locale directory layout. Explicit configuration always wins over
// detection; detection only fills the gaps.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up at the project root.
const FileName = ".tskit.yaml"

// DefaultMinMessages is the document survival threshold: translations with
// fewer messages after pruning are not worth shipping.
const DefaultMinMessages = 10

// BackupSuffix is appended to original files before postprocessing.
const BackupSuffix = ".orig"

// Project holds the effective run configuration.
type Project struct {
	// Root is the project root directory.
	Root string
	// LocaleDir is the directory with .ts files, relative to Root.
	LocaleDir string
	// SourceFile is the source-language file name (e.g. "app_en.ts");
	// it is never validated or rewritten.
	SourceFile string
	// MinMessages is the document survival threshold.
	MinMessages int
	// TxCommand is the Transifex client binary name.
	TxCommand string
}

// tskitFile is the on-disk .tskit.yaml schema.
type tskitFile struct {
	LocaleDir   string `yaml:"locale_dir,omitempty"`
	SourceFile  string `yaml:"source_file,omitempty"`
	MinMessages int    `yaml:"min_messages,omitempty"`
	TxCommand   string `yaml:"tx_command,omitempty"`
}

// Load builds the effective configuration for rootDir: .tskit.yaml when
// present, auto-detection for anything it leaves unset.
func Load(rootDir string) (*Project, error) {
	p := &Project{Root: rootDir, MinMessages: DefaultMinMessages}

	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err == nil {
		var tf tskitFile
		if err := yaml.Unmarshal(data, &tf); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		p.LocaleDir = tf.LocaleDir
		p.SourceFile = tf.SourceFile
		p.TxCommand = tf.TxCommand
		if tf.MinMessages > 0 {
			p.MinMessages = tf.MinMessages
		}
	}

	detect(p)
	return p, nil
}

// detect fills unset fields by scanning the project tree.
func detect(p *Project) {
	if p.LocaleDir == "" {
		p.LocaleDir = detectLocaleDir(p.Root)
	}
	if p.SourceFile == "" && p.LocaleDir != "" {
		p.SourceFile = detectSourceFile(filepath.Join(p.Root, p.LocaleDir))
	}
}

// detectLocaleDir walks the tree for a directory containing .ts files,
// preferring paths with a "locale" component (the Qt convention).
func detectLocaleDir(root string) string {
	var candidates []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".ts") {
			rel, err := filepath.Rel(root, filepath.Dir(path))
			if err == nil {
				candidates = append(candidates, rel)
			}
		}
		return nil
	})

	if len(candidates) == 0 {
		return ""
	}

	sort.Strings(candidates)
	for _, c := range candidates {
		for _, part := range strings.Split(c, string(filepath.Separator)) {
			if part == "locale" || part == "locales" {
				return c
			}
		}
	}
	return candidates[0]
}

// detectSourceFile picks the English source file in a locale directory.
func detectSourceFile(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, "_en.ts") || name == "en.ts" {
			return name
		}
	}
	return ""
}

// LocalePath returns the absolute locale directory.
func (p *Project) LocalePath() string {
	return filepath.Join(p.Root, p.LocaleDir)
}

// IsSourceFile reports whether name is the source-language file.
func (p *Project) IsSourceFile(name string) bool {
	return p.SourceFile != "" && name == p.SourceFile
}

// TSFiles lists the translation files to process: every .ts file in the
// locale directory except the source-language file and backups.
func (p *Project) TSFiles() ([]string, error) {
	return p.listFiles(".ts")
}

// BackupFiles lists the .ts.orig backups in the locale directory.
func (p *Project) BackupFiles() ([]string, error) {
	return p.listFiles(".ts" + BackupSuffix)
}

func (p *Project) listFiles(suffix string) ([]string, error) {
	dir := p.LocalePath()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading locale directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		if p.IsSourceFile(strings.TrimSuffix(name, BackupSuffix)) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}
