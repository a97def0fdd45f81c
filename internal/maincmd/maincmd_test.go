package maincmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klox-lang/klox/internal/maincmd"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lx")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestTokenizePrintsTokensForValidScript(t *testing.T) {
	path := writeScript(t, `var x = 1;`)
	var buf, ebuf bytes.Buffer
	c := &maincmd.Cmd{}
	err := c.Tokenize(context.Background(), mainer.Stdio{Stdout: &buf, Stderr: &ebuf}, []string{path})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"var"`)
	assert.Empty(t, ebuf.String())
}

func TestTokenizeReportsCompileError(t *testing.T) {
	path := writeScript(t, `"unterminated`)
	var buf, ebuf bytes.Buffer
	c := &maincmd.Cmd{}
	err := c.Tokenize(context.Background(), mainer.Stdio{Stdout: &buf, Stderr: &ebuf}, []string{path})
	require.Error(t, err)
	assert.NotEmpty(t, ebuf.String())
}

func TestRunExecutesScriptAndPrintsOutput(t *testing.T) {
	path := writeScript(t, `print 1 + 2;`)
	var buf, ebuf bytes.Buffer
	c := &maincmd.Cmd{}
	err := c.Run(context.Background(), mainer.Stdio{Stdout: &buf, Stderr: &ebuf}, []string{path})
	require.NoError(t, err)
	assert.Equal(t, "3\n", buf.String())
}

func TestRunReportsRuntimeError(t *testing.T) {
	path := writeScript(t, `print 1 / 0;`)
	var buf, ebuf bytes.Buffer
	c := &maincmd.Cmd{}
	err := c.Run(context.Background(), mainer.Stdio{Stdout: &buf, Stderr: &ebuf}, []string{path})
	require.Error(t, err)
	assert.Contains(t, ebuf.String(), "Runtime Error")
}

func TestMainImplicitlyRunsABareLxPath(t *testing.T) {
	path := writeScript(t, `print 1 + 2;`)
	var buf, ebuf bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Main([]string{"klox", path}, mainer.Stdio{Stdout: &buf, Stderr: &ebuf})
	assert.Equal(t, mainer.Success, code)
	assert.Equal(t, "3\n", buf.String())
}

func TestMainRejectsUnknownCommandNotEndingInLx(t *testing.T) {
	var buf, ebuf bytes.Buffer
	c := &maincmd.Cmd{}
	code := c.Main([]string{"klox", "bogus"}, mainer.Stdio{Stdout: &buf, Stderr: &ebuf})
	assert.NotEqual(t, mainer.Success, code)
}

func TestCompileWritesCppAndRuntimeFiles(t *testing.T) {
	path := writeScript(t, `print "hi";`)
	var buf, ebuf bytes.Buffer
	c := &maincmd.Cmd{}
	err := c.Compile(context.Background(), mainer.Stdio{Stdout: &buf, Stderr: &ebuf}, []string{path})
	require.NoError(t, err)

	cppPath := path[:len(path)-len(filepath.Ext(path))] + ".cpp"
	b, err := os.ReadFile(cppPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), `#include "klox_runtime.hpp"`)

	dir := filepath.Dir(path)
	_, err = os.Stat(filepath.Join(dir, "klox_runtime.hpp"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "klox_runtime.cpp"))
	require.NoError(t, err)
}
