package grakopp_test

import (
	"fmt"

	"github.com/lambdafu/grakopp"
	"github.com/lambdafu/grakopp/ast"
	"github.com/lambdafu/grakopp/astio"
	"github.com/lambdafu/grakopp/parser"
)

// greeting = name:"hello" {"again"} $;
func greeting(p *parser.Parser) *ast.Ast {
	return p.Call("greeting", func() *ast.Ast {
		node := ast.NewNamed(ast.Key{Name: "name"})
		node.SetKey("name", p.Token("hello"))
		if node.IsFailure() {
			return node
		}
		node.Add(p.Closure(func() *ast.Ast { return p.Token("again") }))
		if node.IsFailure() {
			return node
		}
		node.Add(p.CheckEOF())
		return node
	})
}

func Example() {
	tree, err := grakopp.Parse("hello again again", greeting,
		grakopp.WithWhitespace(" \t\n"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	name, _ := tree.Value("name")
	fmt.Println(astio.String(name))
	// Output:
	// "hello"
}

func ExampleParse_failure() {
	_, err := grakopp.Parse("goodbye", greeting, grakopp.WithWhitespace(" "))
	fmt.Println(err)
	// Output:
	// expecting "hello"
}
