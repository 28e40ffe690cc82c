package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"debtop/pkg/contents"
)

// renderStyled writes the ranking as a bordered table for interactive use.
func renderStyled(w io.Writer, entries []contents.Entry) {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{strconv.Itoa(i + 1), e.Name, strconv.Itoa(e.Files)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Rank", "Package", "Files").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			switch col {
			case 0:
				return StyleDim
			case 2:
				return StyleNumber.Align(lipgloss.Right)
			default:
				return StyleValue
			}
		})

	fmt.Fprintln(w, t.Render())
}

// renderPlain writes the ranking as an aligned text table, suitable for
// pipes and files. Column widths are computed from the data.
func renderPlain(w io.Writer, entries []contents.Entry) error {
	rankW, pkgW, countW := len("Rank"), len("Package"), len("Files")
	for i, e := range entries {
		rankW = max(rankW, len(strconv.Itoa(i+1)))
		pkgW = max(pkgW, len(e.Name))
		countW = max(countW, len(strconv.Itoa(e.Files)))
	}

	header := fmt.Sprintf("%-*s | %-*s | %*s", rankW, "Rank", pkgW, "Package", countW, "Files")
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", len(header))); err != nil {
		return err
	}
	for i, e := range entries {
		if _, err := fmt.Fprintf(w, "%-*d | %-*s | %*d\n", rankW, i+1, pkgW, e.Name, countW, e.Files); err != nil {
			return err
		}
	}
	return nil
}
