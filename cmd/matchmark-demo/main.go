// Package main is an interactive terminal demo: type into a small
// buffer and watch derived formatting follow the matcher rules live.
// Ctrl+O activates the match under the cursor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/matchmark"
	"github.com/dshills/matchmark/delta"
	"github.com/dshills/matchmark/document"
	"github.com/dshills/matchmark/render"
	"github.com/dshills/matchmark/ruleset"
	"github.com/dshills/matchmark/script"
	"github.com/dshills/matchmark/style"
)

const defaultRules = `{
  "rules": [
    {
      "name": "hashtag",
      "pattern": "#\\w+",
      "attribute": "hashtag",
      "style": {"foreground": "#5f87ff", "bold": true},
      "on_activate": "local text, key = ... notify('activated ' .. key .. ': ' .. text)"
    },
    {
      "name": "mention",
      "pattern": "@\\w+",
      "attribute": "mention",
      "case_sensitive": false,
      "style": {"foreground": "#5fd75f", "underline": true},
      "on_activate": "local text = ... notify('mention tapped: ' .. text)"
    },
    {
      "name": "link",
      "pattern": "https?://\\S+",
      "attribute": "link",
      "style": {"foreground": "#5fd7d7", "underline": true},
      "on_activate": "local text = ... notify('open ' .. text)"
    }
  ]
}`

func main() {
	os.Exit(run())
}

func run() int {
	var rulesPath string
	var logPath string
	flag.StringVar(&rulesPath, "rules", "", "Path to a JSON or TOML rule file")
	flag.StringVar(&logPath, "log", "", "Write sync pass errors to this file")
	flag.Parse()

	logger := log.New(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger = log.New(f)
	}

	cfg, err := loadRules(rulesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading rules: %v\n", err)
		return 1
	}

	engine := script.NewEngine()
	defer engine.Close()

	demo := &demo{status: "type text; Ctrl+O activates the span under the cursor; Esc quits"}
	engine.SetGlobal("notify", func(args ...string) error {
		demo.status = strings.Join(args, " ")
		return nil
	})

	set, registry, err := cfg.Build(engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: building rules: %v\n", err)
		return 1
	}

	doc := document.NewMemory("#hello editor, see https://example.com and @friends\ntype away")
	sync, err := matchmark.New(doc, set,
		matchmark.WithObserver(matchmark.NewLogObserver(logger)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: starting synchronizer: %v\n", err)
		return 1
	}
	defer sync.Dispose()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	demo.doc = doc
	demo.theme = cfg.BuildTheme()
	demo.projector = render.NewProjector(registry)
	demo.screen = screen
	demo.cursor = doc.Length()

	demo.loop()
	return 0
}

func loadRules(path string) (*ruleset.Config, error) {
	if path == "" {
		return ruleset.LoadJSON([]byte(defaultRules))
	}
	return ruleset.LoadFile(path)
}

type demo struct {
	doc       *document.Memory
	theme     *style.Theme
	projector *render.Projector
	screen    tcell.Screen
	cursor    int
	status    string
}

func (d *demo) loop() {
	for {
		d.draw()
		switch ev := d.screen.PollEvent().(type) {
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventKey:
			if !d.handleKey(ev) {
				return
			}
		}
	}
}

func (d *demo) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		if d.cursor > 0 {
			d.cursor--
		}
	case tcell.KeyRight:
		if d.cursor < d.doc.Length() {
			d.cursor++
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if d.cursor > 0 {
			if err := d.doc.DeleteText(d.cursor-1, 1, delta.SourceLocal); err == nil {
				d.cursor--
			}
		}
	case tcell.KeyEnter:
		d.insert("\n")
	case tcell.KeyCtrlO:
		d.activate()
	case tcell.KeyRune:
		d.insert(string(ev.Rune()))
	}
	return true
}

func (d *demo) insert(text string) {
	if err := d.doc.InsertText(d.cursor, text, delta.SourceLocal); err != nil {
		d.status = fmt.Sprintf("insert failed: %v", err)
		return
	}
	d.cursor += len([]rune(text))
}

// activate projects the derived run under the cursor and fires its
// resolved tap callback.
func (d *demo) activate() {
	run, ok := d.runAt(d.cursor)
	if !ok {
		d.status = "nothing to activate here"
		return
	}
	text, err := d.doc.TextRange(run.Start, run.End)
	if err != nil {
		d.status = fmt.Sprintf("read failed: %v", err)
		return
	}
	in := d.projector.Project(render.Span{
		Text:      text,
		Attr:      run.Attr,
		HasCursor: true,
		Cursor:    d.cursor - run.Start,
	})
	if in == nil || in.OnTap == nil {
		d.status = fmt.Sprintf("%s has no activation", run.Attr.Key)
		return
	}
	if err := in.OnTap(); err != nil {
		d.status = fmt.Sprintf("activation failed: %v", err)
	}
}

// runAt returns the winning derived run covering the offset, if any.
func (d *demo) runAt(pos int) (document.Run, bool) {
	if pos >= d.doc.Length() && pos > 0 {
		pos--
	}
	runs := d.doc.RunsAt(pos)
	var winner document.Run
	found := false
	for _, r := range runs {
		if r.Attr.Unset {
			continue
		}
		if !found || r.Seq > winner.Seq {
			winner = r
			found = true
		}
	}
	return winner, found
}

func (d *demo) draw() {
	d.screen.Clear()

	x, y := 0, 0
	for i, r := range []rune(d.doc.Text()) {
		if r == '\n' {
			x, y = 0, y+1
			continue
		}
		d.screen.SetContent(x, y, r, nil, d.styleAt(i))
		x++
	}

	_, height := d.screen.Size()
	for i, r := range d.status {
		d.screen.SetContent(i, height-1, r, nil, tcell.StyleDefault.Dim(true))
	}

	cx, cy := d.cursorCell()
	d.screen.ShowCursor(cx, cy)
	d.screen.Show()
}

func (d *demo) cursorCell() (int, int) {
	x, y := 0, 0
	for i, r := range []rune(d.doc.Text()) {
		if i == d.cursor {
			break
		}
		if r == '\n' {
			x, y = 0, y+1
			continue
		}
		x++
	}
	return x, y
}

func (d *demo) styleAt(pos int) tcell.Style {
	run, ok := d.runAt(pos)
	if !ok || pos < run.Start || pos >= run.End {
		return tcell.StyleDefault
	}
	return toTcellStyle(d.theme.For(run.Attr.Key))
}

func toTcellStyle(s style.Style) tcell.Style {
	out := tcell.StyleDefault
	if !s.Foreground.Default {
		out = out.Foreground(toTcellColor(s.Foreground))
	}
	if !s.Background.Default {
		out = out.Background(toTcellColor(s.Background))
	}
	out = out.Bold(s.Attrs&style.AttrBold != 0)
	out = out.Italic(s.Attrs&style.AttrItalic != 0)
	out = out.Underline(s.Attrs&style.AttrUnderline != 0)
	out = out.StrikeThrough(s.Attrs&style.AttrStrikethrough != 0)
	out = out.Dim(s.Attrs&style.AttrDim != 0)
	out = out.Reverse(s.Attrs&style.AttrReverse != 0)
	return out
}

func toTcellColor(c style.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
