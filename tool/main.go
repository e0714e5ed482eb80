// Command adtgen turns sum type declarations into Go interfaces, variant
// types and marker methods.
//
//	adtgen <input> <output> <package>
//
// A declaration is either a plain alias, `type Name = Other;`, or a closed
// set of variants, `type Name = | A of int64 | B of `+"`struct{ X Name }`"+`;`.
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

type TCase struct {
	Name string `@Ident "of"`
	Kind string `(@Ident | @String | @RawString)`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Plain *string  `(  (@Ident | @String | @RawString)`
	Many  *[]TCase ` | ("|" (@@))*)`
	I     struct{} `";"`
}

func (t *TypeDecls) IsSumType(name string) bool {
	for _, decls := range t.Declarations {
		if decls.Name == name && decls.Many != nil {
			return true
		}
	}
	return false
}

// unquote strips the quotes a string or raw string kind was written with.
func unquote(kind string) string {
	if len(kind) >= 2 {
		if (kind[0] == '`' && kind[len(kind)-1] == '`') || (kind[0] == '"' && kind[len(kind)-1] == '"') {
			return kind[1 : len(kind)-1]
		}
	}
	return kind
}

func GenerateDecls(source, pkgname string, t *TypeDecls) *File {
	f := NewFile(pkgname)
	f.HeaderComment(fmt.Sprintf("Code generated by adtgen from %s. DO NOT EDIT.", source))

	for _, decl := range t.Declarations {
		if decl.Plain != nil {
			f.Type().Id(decl.Name).Id(unquote(*decl.Plain))
		} else if decl.Many != nil {
			f.Type().Id(decl.Name).Interface(
				Id("is_" + decl.Name).Params(),
			)

			for _, it := range *decl.Many {
				kind := unquote(it.Kind)
				if t.IsSumType(kind) {
					f.Type().Id(it.Name).Struct(Id(kind))
				} else {
					f.Type().Id(it.Name).Id(kind)
				}

				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
			}
		}
	}

	return f
}

// generate parses the declarations in file in and builds the Go source for
// package pkgname.
func generate(in, pkgname string) (*File, error) {
	parser, err := participle.Build(&TypeDecls{})
	if err != nil {
		return nil, err
	}

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		return nil, err
	}

	ast := TypeDecls{}
	err = parser.ParseBytes(inData, &ast)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in, err)
	}

	return GenerateDecls(filepath.Base(in), pkgname, &ast), nil
}

func run(in, out, pkgname string) error {
	f, err := generate(in, pkgname)
	if err != nil {
		return err
	}
	return f.Save(out)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtgen <input> <output> <package>")
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2], os.Args[3]); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}
