// Package term is the terminal front end: a tcell screen driven by an
// editing session, with a line-number gutter, selection highlighting,
// and a status line. It holds no document state of its own; everything
// it draws comes from the session.
package term

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-editor/inkwell/internal/config"
	"github.com/inkwell-editor/inkwell/internal/engine"
	"github.com/inkwell-editor/inkwell/internal/engine/buffer"
)

// Editor owns the screen and the event loop.
type Editor struct {
	screen  tcell.Screen
	session *engine.Session

	mu       sync.Mutex
	settings *config.Settings

	filename string
	topLine  int // first buffer line shown in the viewport
	savedRev buffer.RevisionID
	status   string
}

// New creates an editor over an existing session.
func New(session *engine.Session, settings *config.Settings, filename string) (*Editor, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return &Editor{
		screen:   screen,
		session:  session,
		settings: settings,
		filename: filename,
		savedRev: session.Buffer().RevisionID(),
	}, nil
}

// Run initializes the screen and drives the event loop until quit.
func (e *Editor) Run() error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer e.screen.Fini()
	e.screen.EnablePaste()

	e.draw()
	for {
		switch ev := e.screen.PollEvent().(type) {
		case *tcell.EventResize:
			e.screen.Sync()
		case *tcell.EventInterrupt:
			// posted by UpdateSettings; fall through to redraw
		case *tcell.EventKey:
			if quit := e.handleKey(ev); quit {
				return nil
			}
		case nil:
			return nil
		}
		e.draw()
	}
}

// UpdateSettings swaps in freshly loaded settings and wakes the event
// loop so the change is visible immediately. Safe to call from a config
// watcher goroutine.
func (e *Editor) UpdateSettings(s *config.Settings) {
	e.mu.Lock()
	e.settings = s
	e.mu.Unlock()
	_ = e.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (e *Editor) currentSettings() *config.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// handleKey dispatches a key event; it returns true when the editor
// should quit.
func (e *Editor) handleKey(ev *tcell.EventKey) bool {
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return true
	case tcell.KeyCtrlS:
		e.save()
	case tcell.KeyCtrlZ:
		if err := e.session.Undo(); err != nil {
			e.status = "nothing to undo"
		}
	case tcell.KeyCtrlY:
		if err := e.session.Redo(); err != nil {
			e.status = "nothing to redo"
		}
	case tcell.KeyCtrlA:
		e.session.SelectAll()
	case tcell.KeyLeft:
		e.moveOrSelect(shift, e.session.MoveLeftCluster, -1)
	case tcell.KeyRight:
		e.moveOrSelect(shift, e.session.MoveRightCluster, 1)
	case tcell.KeyUp:
		e.session.MoveUp()
	case tcell.KeyDown:
		e.session.MoveDown()
	case tcell.KeyHome:
		e.session.MoveToLineStart()
	case tcell.KeyEnd:
		e.session.MoveToLineEnd()
	case tcell.KeyEscape:
		e.session.ClearSelection()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.session.Backspace()
	case tcell.KeyDelete:
		e.session.DeleteForward()
	case tcell.KeyEnter:
		e.insertNewline()
	case tcell.KeyTab:
		e.session.InsertText("\t")
	case tcell.KeyRune:
		e.session.InsertText(string(ev.Rune()))
	}
	return false
}

// moveOrSelect extends the selection by one codepoint when shift is
// held, otherwise moves by one grapheme cluster.
func (e *Editor) moveOrSelect(shift bool, move func(), delta int) {
	if !shift {
		move()
		return
	}
	e.session.SelectTo(e.session.Position() + delta)
}

// insertNewline inserts a line break, copying the previous line's
// leading whitespace when auto-indent is on. The break and the indent
// form a single undo unit.
func (e *Editor) insertNewline() {
	if !e.currentSettings().Editor.AutoIndent {
		e.session.InsertNewline()
		return
	}

	pt := e.session.Point()
	line, err := e.session.Buffer().LineText(pt.Line)
	if err != nil {
		e.session.InsertNewline()
		return
	}

	indent := leadingWhitespace(line)
	if indent == "" {
		e.session.InsertNewline()
		return
	}
	e.session.BeginGroup("newline")
	e.session.InsertText("\n" + indent)
	e.session.EndGroup()
}

func leadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

func (e *Editor) save() {
	if e.filename == "" {
		e.status = "no file name"
		return
	}
	if err := os.WriteFile(e.filename, []byte(e.session.Text()), 0o644); err != nil {
		e.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	e.savedRev = e.session.Buffer().RevisionID()
	e.status = fmt.Sprintf("saved %s", e.filename)
}

func (e *Editor) modified() bool {
	return e.session.Buffer().RevisionID() != e.savedRev
}
