package main

import (
	"bytes"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterh/liner"
	"github.com/pontaoski/dendron/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	status int
	stdout string
	stderr string
}

func dendron(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cfg := filepath.Join(t.TempDir(), config.DefaultFile)
	argv := append([]string{"dendron", "--config", cfg}, args...)

	status := run(argv, strings.NewReader(stdin), &stdout, &stderr)
	return result{status, stdout.String(), stderr.String()}
}

func TestRunFullPipeline(t *testing.T) {
	res := dendron(t, "", "run", ":=", "x", "_", "5")
	require.Equal(t, 0, res.status, res.stderr)

	assert.Equal(t, "x := _5\n"+
		"\n"+
		"Interpreting the parse tree...\n"+
		"Interpretation complete.\n"+
		"\n"+
		"Symbol Table Contents\n"+
		"=====================\n"+
		"\n"+
		"           x :          -5\n"+
		"\n"+
		"Compiled code:\n"+
		"PUSH 5\n"+
		"NEG\n"+
		"STORE x\n"+
		"\n"+
		"Executing compiled code...\n"+
		"Machine: execution ended with 0 items left on the stack.\n"+
		"\n"+
		"Symbol Table Contents\n"+
		"=====================\n"+
		"\n"+
		"           x :          -5\n", res.stdout)
}

func TestRunPrints(t *testing.T) {
	res := dendron(t, "", "run", "@", "-", "10", "3")
	require.Equal(t, 0, res.status, res.stderr)

	assert.Contains(t, res.stdout, "PRINT ( 10 - 3 )\n")
	assert.Contains(t, res.stdout, "=== 7\n")
	assert.Contains(t, res.stdout, "*** 7\n")
}

func TestRunStageFlags(t *testing.T) {
	res := dendron(t, "", "--display=false", "--compile=false", "--symbols=false", "run", ":=", "x", "2", "@", "*", "x", "x")
	require.Equal(t, 0, res.status, res.stderr)

	assert.Equal(t, "Interpreting the parse tree...\n=== 4\nInterpretation complete.\n\n", res.stdout)
}

func TestRunStdin(t *testing.T) {
	res := dendron(t, ":= x 2\n@ x\n", "--symbols=false", "run")
	require.Equal(t, 0, res.status, res.stderr)

	assert.Contains(t, res.stdout, "=== 2\n")
	assert.Contains(t, res.stdout, "*** 2\n")
	assert.Contains(t, res.stdout, "Machine: execution ended with 0 items left on the stack.\n")
	assert.NotContains(t, res.stdout, "Symbol Table Contents")
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		args   []string
		stderr string
	}{
		{[]string{"run", "@", "x"}, "uninitialized variable in expression: x\n"},
		{[]string{"run", ":=", "5", "5"}, "illegal value encountered in source: \"5\"\n"},
		{[]string{"run", ":=", "x"}, "premature end of statement: expected expression\n"},
		{[]string{"run", "@", "/", "1", "0"}, "divide by zero: ( 1 / 0 )\n"},
		{[]string{"run", "@", "#", "_", "4"}, "square root of negative value: -4\n"},
	}

	for _, c := range cases {
		res := dendron(t, "", c.args...)
		assert.Equal(t, 1, res.status, "%v", c.args)
		assert.Equal(t, c.stderr, res.stderr, "%v", c.args)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.dendron")
	require.NoError(t, ioutil.WriteFile(path, []byte(":= a 6\n:= b 7\n@ * a b\n"), 0644))

	res := dendron(t, "", "run", "--file", path)
	require.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stdout, "=== 42\n")
	assert.Contains(t, res.stdout, "*** 42\n")

	res = dendron(t, "", "run", "--file", filepath.Join(dir, "missing.dendron"))
	assert.Equal(t, 1, res.status)
	assert.NotEmpty(t, res.stderr)
}

func TestRunFileLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dendron")
	require.NoError(t, ioutil.WriteFile(path, []byte(":= a 6\n@ $\n"), 0644))

	res := dendron(t, "", "run", "-f", path)
	assert.Equal(t, 1, res.status)
	assert.Equal(t, "illegal value encountered in source: \"$\" at bad.dendron:2:3\n", res.stderr)
}

func TestRunDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "a.dendron"), []byte("@ 1"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "b.dendron"), []byte("@ 2"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "notes.txt"), []byte("@ 3"), 0644))

	res := dendron(t, "", "--compile=false", "run", "--dir", dir)
	require.Equal(t, 0, res.status, res.stderr)

	assert.Contains(t, res.stdout, "\nTest File a.dendron:\n\n")
	assert.Contains(t, res.stdout, "\nTest File b.dendron:\n\n")
	assert.NotContains(t, res.stdout, "notes.txt")
	assert.Contains(t, res.stdout, "=== 1\n")
	assert.Contains(t, res.stdout, "=== 2\n")
	assert.NotContains(t, res.stdout, "=== 3\n")
	assert.Equal(t, 2, strings.Count(res.stdout, separator))
	assert.Less(t, strings.Index(res.stdout, "=== 1"), strings.Index(res.stdout, "=== 2"))
}

func TestRunDirectoryHalts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "a.dendron"), []byte("@ / 1 0"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "b.dendron"), []byte("@ 2"), 0644))

	res := dendron(t, "", "run", "-d", dir)
	assert.Equal(t, 1, res.status)
	assert.Contains(t, res.stderr, "divide by zero")
	assert.NotContains(t, res.stdout, "b.dendron")
}

func TestProjectFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), config.DefaultFile)
	require.NoError(t, ioutil.WriteFile(cfg, []byte("display: false\ninterpret: false\nlisting: false\nsymbols: false\n"), 0644))

	var stdout, stderr bytes.Buffer
	status := run([]string{"dendron", "-c", cfg, "run", "@", "+", "2", "2"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, status, stderr.String())

	assert.Equal(t, "Executing compiled code...\n*** 4\nMachine: execution ended with 0 items left on the stack.\n", stdout.String())
}

func TestSample(t *testing.T) {
	res := dendron(t, "", "sample", "3")
	require.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stdout, "=== 6\n")
	assert.Contains(t, res.stdout, "*** 6\n")
	assert.Contains(t, res.stdout, "pastafagiole :           4\n")

	for _, arg := range []string{"5", "99", "seven"} {
		res := dendron(t, "", "sample", arg)
		assert.Equal(t, 2, res.status, arg)
		assert.NotEmpty(t, res.stderr, arg)
		assert.Empty(t, res.stdout, arg)
	}
}

func TestAsm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.lst")
	require.NoError(t, ioutil.WriteFile(path, []byte("PUSH 10\nPUSH 3\nSUBTRACT\nPRINT\nPUSH 1\n"), 0644))

	res := dendron(t, "", "--symbols=false", "asm", path)
	require.Equal(t, 0, res.status, res.stderr)
	assert.Equal(t, "Executing compiled code...\n*** 7\nMachine: execution ended with 1 items left on the stack.\n", res.stdout)
	assert.Contains(t, res.stderr, "1 items left on the stack")

	res = dendron(t, "", "asm")
	assert.Equal(t, 2, res.status)
}

func TestLLVM(t *testing.T) {
	res := dendron(t, "", "llvm", ":=", "x", "4", "@", "#", "x")
	require.Equal(t, 0, res.status, res.stderr)
	assert.Contains(t, res.stdout, "define i32 @main()")
	assert.Contains(t, res.stdout, "@llvm.sqrt.f64")

	out := filepath.Join(t.TempDir(), "prog.ll")
	res = dendron(t, "", "llvm", "--output", out, "@", "1")
	require.Equal(t, 0, res.status, res.stderr)
	data, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "define i32 @main()")

	res = dendron(t, "", "llvm", "@", "y")
	assert.Equal(t, 1, res.status)
	assert.Equal(t, "uninitialized variable in expression: y\n", res.stderr)
}

func TestInit(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), config.DefaultFile)

	var stdout, stderr bytes.Buffer
	status := run([]string{"dendron", "--config", cfg, "init", "demo"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, status, stderr.String())

	doc, err := config.Load(cfg)
	require.NoError(t, err)
	want := config.Default()
	want.Name = "demo"
	assert.Equal(t, want, doc)

	status = run([]string{"dendron", "--config", cfg, "init"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 2, status)
}

type scriptedLine struct {
	text string
	err  error
}

type scriptedLines struct {
	lines   []scriptedLine
	prompts []string
	history []string
}

func (s *scriptedLines) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	next := s.lines[0]
	s.lines = s.lines[1:]
	return next.text, next.err
}

func (s *scriptedLines) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func TestSession(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := &runner{out: &stdout, cfg: config.Project{Interpret: true}}

	lines := &scriptedLines{lines: []scriptedLine{
		{text: ":= x 2"},
		{text: "@ * x"},
		{text: "  x  "},
		{text: " . "},
		{text: "@ y"},
		{text: "."},
		{text: "@ 1"},
		{err: liner.ErrPromptAborted},
		{text: "."},
		{text: ""},
		{text: "@ 5"},
		{text: "."},
	}}

	require.NoError(t, session(r, lines, &stderr, false))

	assert.Equal(t, "Interpreting the parse tree...\n=== 4\nInterpretation complete.\n\n"+
		"Interpreting the parse tree...\n"+
		"Interpreting the parse tree...\n=== 5\nInterpretation complete.\n\n"+
		"\n", stdout.String())
	assert.Equal(t, "uninitialized variable in expression: y\n", stderr.String())

	assert.Equal(t, []string{promptMain, promptCont, promptCont, promptCont}, lines.prompts[:4])
	assert.Equal(t, promptMain, lines.prompts[len(lines.prompts)-1])
	assert.Equal(t, []string{":= x 2", "@ * x", "  x  ", "@ y", "@ 1", "@ 5"}, lines.history)
}
