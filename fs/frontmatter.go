package fs

import (
	"bytes"
	"strings"

	"github.com/fwojciec/docsite"
	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// frontMatter holds the metadata fields read from a content file.
type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// parseFrontMatter splits src into its leading YAML block and body.
// Files without a block return zero metadata and src unchanged.
func parseFrontMatter(src []byte) (frontMatter, []byte, error) {
	var fm frontMatter

	src = bytes.TrimPrefix(src, []byte("\ufeff"))
	first, rest, found := bytes.Cut(src, []byte("\n"))
	if !isDelim(first) {
		return fm, src, nil
	}
	if !found {
		return fm, nil, docsite.Errorf(docsite.EINVALID, "unterminated front matter")
	}

	offset := 0
	for {
		line, next, found := bytes.Cut(rest[offset:], []byte("\n"))
		if isDelim(line) {
			if err := yaml.Unmarshal(rest[:offset], &fm); err != nil {
				return fm, nil, docsite.Errorf(docsite.EINVALID, "invalid front matter: %v", err)
			}
			return fm, next, nil
		}
		if !found {
			return fm, nil, docsite.Errorf(docsite.EINVALID, "unterminated front matter")
		}
		offset += len(line) + 1
	}
}

func isDelim(line []byte) bool {
	return strings.TrimRight(string(line), " \t\r") == frontMatterDelim
}
