package syncer

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

var (
	keyStyle     = lipgloss.NewStyle().Bold(true)
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
)

// List prints the selected catalogue entries. Installed repositories are
// marked with = and missing ones with !.
func (s *Syncer) List(ctx context.Context, req Request) error {
	type row struct {
		key       string
		installed bool
	}
	var rows []row
	err := s.each(ctx, "list", req.Filter, func(ctx context.Context, r repository) {
		rows = append(rows, row{key: r.key, installed: s.isWorkingCopy(ctx, r)})
	})
	if err != nil {
		return err
	}

	if !req.Table {
		for _, r := range rows {
			sep := "!"
			if r.installed {
				sep = "="
			}
			fmt.Fprintln(s.out, s.catalogue.Line(r.key, sep))
		}
		return nil
	}

	tbl := table.New("Directory", "Remote", "State")
	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return keyStyle.Render(fmt.Sprintf(format, vals...))
	})
	tbl.WithPadding(2)
	tbl.WithWidthFunc(lipgloss.Width)
	tbl.WithWriter(s.out)
	for _, r := range rows {
		remote, _ := s.catalogue.Get(r.key)
		state := "installed"
		if !r.installed {
			state = missingStyle.Render("missing")
		}
		tbl.AddRow(r.key, remote, state)
	}
	tbl.Print()
	return nil
}
