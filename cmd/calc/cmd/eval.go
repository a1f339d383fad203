package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/history"
)

var evalOpts struct {
	in         string
	given      []string
	places     int
	prec       uint
	lines      bool
	echo       bool
	scientific bool
}

var evalCmd = &cobra.Command{
	Use:   "eval [expression...]",
	Short: "Evaluate expressions",
	Long: `Evaluate expressions given as arguments, read from a file, or read from
stdin when there are no arguments.

The standard grammar allows + - * / × ÷ and brackets. With --scientific,
expressions may also use ^, implicit multiplication, pi, e, and the functions
sqrt, log, ln, exp, sin, cos, tan, asin, acos, and atan, with angles in
degrees.`,
	Example: `  calc eval "2+3*4"
  calc eval -s "sin30+cos60" "log(8, 2)"
  calc eval -s --given r=2 "pi r^2"
  echo "1/3" | calc eval --places 3`,
	RunE: runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringVar(&evalOpts.in, "in", "", "input file (default stdin if no args given)")
	f.StringArrayVar(&evalOpts.given, "given", nil, "name=value variable definition (any number of times)")
	f.IntVar(&evalOpts.places, "places", -1, "decimal places to round results to (default from config)")
	f.UintVarP(&evalOpts.prec, "prec", "p", 64, "precision of calculations in bits")
	f.BoolVarP(&evalOpts.lines, "lines", "n", false, "parse separate input lines as separate expressions")
	f.BoolVar(&evalOpts.echo, "echo", false, "print parse trees")
	f.BoolVarP(&evalOpts.scientific, "scientific", "s", false, "use the scientific grammar")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	if evalOpts.prec == 0 {
		return fmt.Errorf("precision must be positive")
	}
	places := evalOpts.places
	if places < 0 {
		places = cfg.Display.Places
	}
	mode := calc.ModeStandard
	if evalOpts.scientific {
		mode = calc.ModeScientific
	}

	var ins []evalInput
	f, closeIn, err := infile(evalOpts.in, len(args) == 0, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer closeIn()
	if f != nil {
		ins = append(ins, evalInput{src: f})
	}
	for _, arg := range args {
		ins = append(ins, evalInput{src: strings.NewReader(arg), arg: true})
	}

	ctx, err := givenContext(evalOpts.given, evalOpts.prec)
	if err != nil {
		return err
	}

	opts := []calc.ParseOption{mode.Grammar()}
	if evalOpts.lines {
		opts = append(opts, calc.StopOn('\n'))
	}

	rec, closeHist := openHistory()
	defer closeHist()

	out := cmd.OutOrStdout()
	failed := 0
	for _, in := range ins {
		for n := 0; ; n++ {
			// First check whether we're done with the input. An empty
			// argument still goes to the parser, which rejects it.
			if _, _, err := in.src.ReadRune(); err != nil {
				if err != io.EOF {
					return err
				}
				if n > 0 || !in.arg {
					break
				}
			} else {
				in.src.UnreadRune()
			}
			a, err := calc.Parse(in.src, opts...)
			if err != nil {
				// A parse error leaves the input in an unknown position.
				fmt.Fprintln(out, err)
				failed++
				break
			}
			if evalOpts.echo {
				fmt.Fprintf(out, "%v : ", a)
			}
			e := history.Entry{Panel: mode.String(), Input: a.String()}
			r := ctx.Eval(a)
			if r == nil {
				fmt.Fprintln(out, ctx.Err())
				e.Output, e.Failed = calc.ErrorText, true
				failed++
			} else {
				e.Output = calc.Format(r, places)
				fmt.Fprintln(out, e.Output)
			}
			if err := rec.Record(context.Background(), e); err != nil {
				logger.Warn("failed to record history", "error", err)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d expression(s) failed", failed)
	}
	return nil
}

// evalInput is a source of expressions for eval.
type evalInput struct {
	src io.RuneScanner
	// arg is set for an expression from the command line, which must not
	// be empty.
	arg bool
}

// givenContext creates an evaluation context with variables defined by
// name=value strings. Values are themselves expressions.
func givenContext(given []string, prec uint) (*calc.Context, error) {
	ctx := calc.NewContext(calc.Prec(prec))
	for _, s := range given {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		nm, vl := strings.TrimSpace(d[0]), strings.TrimSpace(d[1])
		r, err := calc.EvalString(vl, calc.Prec(prec))
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", nm, err)
		}
		ctx.Set(nm, r)
	}
	return ctx, nil
}

func infile(inname string, std bool, stdin io.Reader) (io.RuneScanner, func(), error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, nil, err
		}
		return bufio.NewReader(f), func() { f.Close() }, nil
	case inname == "-", std:
		return bufio.NewReader(stdin), func() {}, nil
	}
	return nil, func() {}, nil
}
