package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/go-textscan/batch"
)

// printer writes one result line per element, styled when w is a terminal.
type printer struct {
	w  io.Writer
	na string

	index, missing, dropped, term lipgloss.Style
}

func newPrinter(w io.Writer, na string) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		na:      na,
		index:   r.NewStyle().Foreground(lipgloss.Color("8")),
		missing: r.NewStyle().Foreground(lipgloss.Color("3")).Italic(true),
		dropped: r.NewStyle().Faint(true),
		term:    r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

func (p *printer) line(i int, values ...string) error {
	_, err := fmt.Fprintf(p.w, "%s\t%s\n", p.index.Render(strconv.Itoa(i+1)), strings.Join(values, " "))
	return err
}

func (p *printer) counts(counts []batch.Count) error {
	for i, c := range counts {
		value := c.String()
		if c.Missing {
			value = p.missing.Render(p.na)
		}
		if err := p.line(i, value); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) chunks(lists []batch.Chunks) error {
	for i, l := range lists {
		if l.Missing {
			if err := p.line(i, p.missing.Render(p.na)); err != nil {
				return err
			}
			continue
		}
		quoted := make([]string, len(l.Spans))
		for j, s := range l.Spans {
			quoted[j] = strconv.Quote(s.String())
		}
		if err := p.line(i, quoted...); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) tokens(lists []batch.TokenList) error {
	for i, l := range lists {
		if l.Missing {
			if err := p.line(i, p.missing.Render(p.na)); err != nil {
				return err
			}
			continue
		}
		values := make([]string, len(l.Terms))
		for j, t := range l.Terms {
			if t == nil {
				values[j] = p.dropped.Render("_")
			} else {
				values[j] = p.term.Render(t.Text)
			}
		}
		if err := p.line(i, values...); err != nil {
			return err
		}
	}
	return nil
}
