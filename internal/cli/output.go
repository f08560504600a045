package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type printer struct {
	w     io.Writer
	key   *color.Color
	value *color.Color
	good  *color.Color
	bad   *color.Color
}

func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{
		w:     w,
		key:   color.New(color.Bold),
		value: color.New(color.FgGreen, color.Bold),
		good:  color.New(color.FgGreen),
		bad:   color.New(color.FgRed),
	}

	enable := !noColor && isTerminal(w)
	for _, c := range []*color.Color{p.key, p.value, p.good, p.bad} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *printer) field(name, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.key.Sprint(name+":"), value)
}

func (p *printer) code(name, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.key.Sprint(name+":"), p.value.Sprint(value))
}

func (p *printer) ok(msg string) {
	p.good.Fprintln(p.w, msg)
}

func (p *printer) error(msg string) {
	p.bad.Fprintln(p.w, msg)
}
