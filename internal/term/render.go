package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/inkwell-editor/inkwell/internal/engine/buffer"
)

var (
	styleDefault   = tcell.StyleDefault
	styleGutter    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleStatus    = tcell.StyleDefault.Reverse(true).Bold(true)
)

// draw repaints the whole screen from the session.
func (e *Editor) draw() {
	settings := e.currentSettings()
	width, height := e.screen.Size()
	if width == 0 || height == 0 {
		return
	}

	textRows := height
	if settings.UI.StatusLine {
		textRows--
	}

	buf := e.session.Buffer()
	e.scrollTo(e.session.Point().Line, textRows)

	gutterWidth := 0
	if settings.UI.LineNumbers {
		gutterWidth = numberWidth(buf.LineCount()) + 1
	}

	selRange := e.session.SelectionRange()
	e.screen.Clear()

	row := 0
	for i := e.topLine; i < buf.LineCount() && row < textRows; i++ {
		line, err := buf.Line(i)
		if err != nil {
			break
		}
		e.drawLine(row, i, line, gutterWidth, width, settings.Editor.TabWidth, selRange)
		row++
	}

	if settings.UI.StatusLine {
		e.drawStatusLine(height-1, width)
	}

	pt := e.session.Point()
	lineText, _ := buf.LineText(pt.Line)
	cursorX := gutterWidth + visualColumn(lineText, pt.Column, settings.Editor.TabWidth)
	e.screen.ShowCursor(cursorX, pt.Line-e.topLine)

	e.screen.Show()
}

// drawLine renders one buffer line with gutter, tab expansion, and
// selection highlighting.
func (e *Editor) drawLine(row, lineIndex int, line buffer.Line, gutterWidth, screenWidth, tabWidth int, sel buffer.Range) {
	x := 0
	if gutterWidth > 0 {
		for _, r := range fmt.Sprintf("%*d ", gutterWidth-1, lineIndex+1) {
			e.screen.SetContent(x, row, r, nil, styleGutter)
			x++
		}
	}

	text := e.session.Buffer().TextRange(line.Range())
	offset := line.Start
	for _, r := range text {
		if x >= screenWidth {
			break
		}
		style := styleDefault
		if !sel.IsEmpty() && offset >= sel.Start && offset < sel.End {
			style = styleSelection
		}

		if r == '\t' {
			spaces := tabWidth - ((x - gutterWidth) % tabWidth)
			for j := 0; j < spaces && x < screenWidth; j++ {
				e.screen.SetContent(x, row, ' ', nil, style)
				x++
			}
		} else {
			e.screen.SetContent(x, row, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
		offset++
	}
}

// drawStatusLine renders the bottom bar: file name, modified marker,
// cursor position, and any transient status message.
func (e *Editor) drawStatusLine(row, width int) {
	name := e.filename
	if name == "" {
		name = "[no name]"
	}
	mark := ""
	if e.modified() {
		mark = " [+]"
	}
	pt := e.session.Point()

	left := fmt.Sprintf(" %s%s", name, mark)
	right := fmt.Sprintf("%d:%d ", pt.Line+1, pt.Column+1)
	if e.status != "" {
		left += "  " + e.status
		e.status = ""
	}

	pad := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if pad < 1 {
		pad = 1
	}
	bar := left + strings.Repeat(" ", pad) + right

	x := 0
	for _, r := range bar {
		if x >= width {
			break
		}
		e.screen.SetContent(x, row, r, nil, styleStatus)
		x += runewidth.RuneWidth(r)
	}
}

// scrollTo adjusts topLine so the cursor's line is inside the viewport.
func (e *Editor) scrollTo(line, textRows int) {
	if textRows < 1 {
		textRows = 1
	}
	if line < e.topLine {
		e.topLine = line
	} else if line >= e.topLine+textRows {
		e.topLine = line - textRows + 1
	}
	if e.topLine < 0 {
		e.topLine = 0
	}
}

// visualColumn converts a codepoint column in a line to a display
// column, expanding tabs and accounting for wide glyphs.
func visualColumn(line string, column, tabWidth int) int {
	x := 0
	i := 0
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			x += tabWidth - (x % tabWidth)
		} else {
			x += runewidth.RuneWidth(r)
		}
		i++
	}
	return x
}

// numberWidth returns the digit count needed for the largest line
// number.
func numberWidth(lineCount int) int {
	w := 1
	for lineCount >= 10 {
		lineCount /= 10
		w++
	}
	return w
}
