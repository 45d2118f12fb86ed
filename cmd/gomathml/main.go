// Command gomathml converts a textual term into MathML content markup or
// another notation.
//
// The input is tried against the term grammar first and the
// boolean-expression grammar second, unless a grammar is forced.
//
// Examples:
//
//	gomathml '1 + 2*3'
//	gomathml --to postfix 'CASE WHEN 3|12 THEN 1+3 ELSE e^(4*1) END'
//	echo 'a = 1 or b > 5 and true' | gomathml --bool --indent '  '
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/sandrolain/gomathml"
	"github.com/sandrolain/gomathml/pkg/markup"
	"github.com/sandrolain/gomathml/pkg/types"
)

var cli struct {
	To     string `help:"Output format." short:"t" default:"mathml" enum:"mathml,infix,prefix,postfix"`
	Bool   bool   `help:"Parse as a boolean expression only, without trying the term grammar first."`
	List   bool   `help:"Parse the input as a comma-separated term list."`
	Indent string `help:"Indent unit for MathML output; empty writes a single line."`

	Term string `arg:"" optional:"" help:"Term to convert; read from stdin when omitted."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("gomathml"),
		kong.Description("Convert textual math/boolean terms to MathML content markup and back between notations."),
	)
	ctx.FatalIfErrorf(run())
}

func run() error {
	input := cli.Term
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = strings.TrimSpace(string(data))
	}
	if input == "" {
		return fmt.Errorf("empty input")
	}

	term, err := parse(input)
	if err != nil {
		return err
	}

	if cli.To == "mathml" {
		opts := []markup.XMLOption{}
		if cli.Indent != "" {
			opts = append(opts, markup.WithIndent(cli.Indent))
		}
		if err := gomathml.WriteMathML(term.AST(), os.Stdout, opts...); err != nil {
			return err
		}
		if cli.Indent == "" {
			fmt.Println()
		}
		return nil
	}

	text, err := gomathml.Render(term.AST(), cli.To)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func parse(input string) (*types.Term, error) {
	switch {
	case cli.List:
		return gomathml.ParseTermList(input)
	case cli.Bool:
		return gomathml.ParseBoolExpression(input)
	default:
		return gomathml.ParseAny(input)
	}
}
