package links

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/testutil"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/stretchr/testify/require"
)

const (
	testHome = "/home/u"
	testRoot = "/home/u/dotfiles"
)

// scriptedConfirmer answers prompts in order and records what it was asked
type scriptedConfirmer struct {
	answers []bool
	err     error
	prompts []string
}

func (c *scriptedConfirmer) Confirm(prompt string) (bool, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return false, c.err
	}
	if len(c.answers) == 0 {
		return false, nil
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

type fixture struct {
	fs        *testutil.MemoryFS
	out       *bytes.Buffer
	confirmer *scriptedConfirmer
	r         *Reconciler
}

func newFixture(t *testing.T, answers ...bool) *fixture {
	t.Helper()

	memfs := testutil.NewMemoryFS()
	require.NoError(t, memfs.MkdirAll(testRoot, 0755))

	f := &fixture{
		fs:        memfs,
		out:       &bytes.Buffer{},
		confirmer: &scriptedConfirmer{answers: answers},
	}
	f.r = New(Options{
		FS:        memfs,
		Expander:  paths.NewStaticExpander(testHome),
		Confirmer: f.confirmer,
		Out:       f.out,
	})
	return f
}

func (f *fixture) writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := testRoot + "/" + name
	require.NoError(t, f.fs.WriteFile(path, []byte(content), 0644))
	return path
}

func (f *fixture) lines() []string {
	text := strings.TrimRight(f.out.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func mappings(pairs ...string) []types.Mapping {
	out := make([]types.Mapping, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, types.Mapping{Source: pairs[i], Destination: pairs[i+1]})
	}
	return out
}
