package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/alecthomas/participle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const decls = `
type Name = string;
type Expression = | Variable of Name | Constant of int64 | Wrapped of Expression;
`

func TestGenerateDecls(t *testing.T) {
	parser := participle.MustBuild(&TypeDecls{})

	ast := TypeDecls{}
	require.NoError(t, parser.ParseString(decls, &ast))
	require.Len(t, ast.Declarations, 2)
	assert.True(t, ast.IsSumType("Expression"))
	assert.False(t, ast.IsSumType("Name"))

	out := fmt.Sprintf("%#v", GenerateDecls("nodes.adt", "ast", &ast))

	assert.Contains(t, out, "Code generated by adtgen from nodes.adt. DO NOT EDIT.")
	assert.Contains(t, out, "package ast")
	assert.Contains(t, out, "type Name string")
	assert.Contains(t, out, "type Constant int64")
	assert.Contains(t, out, "func (v Constant) is_Expression() {}")
	assert.Contains(t, out, "type Wrapped struct {\n\tExpression\n}")
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "struct{}", unquote("`struct{}`"))
	assert.Equal(t, "int64", unquote(`"int64"`))
	assert.Equal(t, "int64", unquote("int64"))
	assert.Equal(t, "`", unquote("`"))
}

func TestCommittedOutputIsCurrent(t *testing.T) {
	cases := []struct {
		in, out, pkg string
	}{
		{"../ast/nodes.adt", "../ast/nodes_gen.go", "ast"},
		{"../machine/instructions.adt", "../machine/instructions_gen.go", "machine"},
	}

	for _, c := range cases {
		f, err := generate(c.in, c.pkg)
		require.NoError(t, err, c.in)

		var buf bytes.Buffer
		require.NoError(t, f.Render(&buf), c.in)

		committed, err := ioutil.ReadFile(c.out)
		require.NoError(t, err, c.out)
		assert.Equal(t, buf.String(), string(committed), "%s is stale; run go generate", c.out)
	}
}
