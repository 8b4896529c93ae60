package docsite_test

import (
	"testing"

	"github.com/fwojciec/docsite"
	"github.com/stretchr/testify/assert"
)

func TestCleanContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes fenced code blocks with their bodies",
			input: "Before\n\n```go\nfunc secret() {}\n```\n\nAfter",
			want:  "Before After",
		},
		{
			name:  "removes several code blocks lazily",
			input: "a\n```\none\n```\nb\n```\ntwo\n```\nc",
			want:  "a b c",
		},
		{
			name:  "keeps link text and drops target",
			input: "See [the guide](https://example.com/guide) for more.",
			want:  "See the guide for more.",
		},
		{
			name:  "strips heading and emphasis markers",
			input: "## Setup\n\nThis is **bold**, _italic_ and `code`.",
			want:  "Setup This is bold, italic and code.",
		},
		{
			name:  "collapses newline runs to one space",
			input: "line one\n\n\nline two\r\nline three",
			want:  "line one line two line three",
		},
		{
			name:  "trims surrounding whitespace",
			input: "\n\n  Hello  \n",
			want:  "Hello",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, docsite.CleanContent(tt.input))
		})
	}
}

func TestCleanContent_NeverContainsFenceBodies(t *testing.T) {
	t.Parallel()

	got := docsite.CleanContent("Intro\n```bash\nnpm install secret-package\n```\nOutro")

	assert.NotContains(t, got, "secret-package")
	assert.NotContains(t, got, "```")
}
