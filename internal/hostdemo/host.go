package hostdemo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/encoding"
	"github.com/gdamore/tcell/v2"

	"github.com/quillcore/editor/internal/config"
	"github.com/quillcore/editor/internal/config/notify"
	"github.com/quillcore/editor/internal/config/schema"
	"github.com/quillcore/editor/internal/engine/caret"
	"github.com/quillcore/editor/internal/engine/input"
	"github.com/quillcore/editor/internal/hostdemo/scripts"
	"github.com/quillcore/editor/internal/logx"
	"github.com/quillcore/editor/internal/ops"
	"github.com/quillcore/editor/internal/plugin"
	"github.com/quillcore/editor/internal/plugin/script"
	"github.com/quillcore/editor/internal/plugins/brackets"
	"github.com/quillcore/editor/internal/plugins/gutter"
	"github.com/quillcore/editor/internal/plugins/palette"
	"github.com/quillcore/editor/internal/plugins/registers"
	"github.com/quillcore/editor/internal/plugins/timeline"
	"github.com/quillcore/editor/internal/variant"
)

// Option configures a Host's plugin enablement resolution at construction.
type Option func(*options)

type options struct {
	userConfigDir string
	hostAttrs     map[string]bool
}

// WithUserConfigDir points the config-tiddler-equivalent layer at a
// specific user settings directory instead of the OS default.
func WithUserConfigDir(dir string) Option {
	return func(o *options) { o.userConfigDir = dir }
}

// WithHostAttr records a host-attribute enable/disable override for a
// plugin, mirroring a wiki embedding's enable<PluginNameCamel> attribute.
// It always wins over the config layer and the plugin's own default.
func WithHostAttr(pluginName string, enabled bool) Option {
	return func(o *options) {
		if o.hostAttrs == nil {
			o.hostAttrs = make(map[string]bool)
		}
		o.hostAttrs[plugin.EnableAttrName(pluginName)] = enabled
	}
}

// Host owns the terminal screen and a Framed engine and runs the read-key/
// execute-operation/redraw loop: a demo-scale application shell with a
// flag-parsed entry point and a signal-driven shutdown path.
type Host struct {
	screen   tcell.Screen
	surface  *cellSurface
	engine   *variant.Framed
	pipeline *input.Pipeline
	log      *logx.Logger
	cfg      *config.Config
	cfgSub   *notify.Subscription

	scriptDir string // temp dir backing the materialized scripted plugin; "" if load failed

	paletteOpen  bool
	paletteQuery string
	paletteHits  []palette.Match
	status       string

	shutdownOnce sync.Once
}

// New creates the tcell screen and wires a Framed engine with the demo's
// plugin set over initialText. Plugin enablement is resolved through the
// layered config system (the config-tiddler-equivalent "plugins.<name>.
// enabled" path) before any host-attribute override supplied via opts.
func New(initialText string, log *logx.Logger, opts ...Option) (*Host, error) {
	// Register every locale codec tcell ships with gdamore/encoding so a
	// non-UTF8 terminal (legacy locale, no $LANG set) still decodes input
	// correctly, per tcell's own setup convention.
	encoding.Register()

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("hostdemo: create screen: %w", err)
	}
	if log == nil {
		log = logx.Discard
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfgOpts := []config.Option{config.WithWatcher(false)}
	if o.userConfigDir != "" {
		cfgOpts = append(cfgOpts, config.WithUserConfigDir(o.userConfigDir))
	}
	cfg := config.New(cfgOpts...)
	if err := cfg.Load(context.Background()); err != nil {
		log.Warn(fmt.Sprintf("hostdemo: load config: %v", err), nil)
	}

	h := &Host{screen: screen, log: log, cfg: cfg}
	h.surface = newCellSurface(func() string { return h.engine.Text() })

	h.engine = variant.NewFramed(h.surface,
		variant.WithInitialText(initialText),
		variant.WithLogger(log),
		variant.WithChangeTracking(),
	)
	modules := []plugin.Module{
		gutter.Module{Mode: gutter.Absolute},
		registers.Module{},
		brackets.Module{},
		timeline.Module{},
		palette.Module{},
	}
	if scripted, err := h.loadScriptedPlugins(); err != nil {
		log.Warn(fmt.Sprintf("hostdemo: scripted plugins unavailable: %v", err), nil)
	} else {
		modules = append(modules, scripted...)
	}
	h.engine.Plugins().Discover(modules...)

	schemaBuild := func(description string, defaultEnabled bool) (json.RawMessage, error) {
		return json.Marshal(schema.PluginToggleSchema(description, defaultEnabled))
	}
	if err := h.engine.Plugins().RegisterDescribedSchemas(cfg.Plugins(), schemaBuild); err != nil {
		log.Warn(fmt.Sprintf("hostdemo: register plugin schemas: %v", err), nil)
	}

	h.engine.Plugins().ConstructAll()

	h.applyEnablement(o.hostAttrs)

	// Re-resolve and re-apply enablement whenever a "plugins.*" path changes
	// at runtime, so a live Set (or a future watcher-driven reload) reaches
	// already-constructed plugins instead of only affecting the next launch.
	hostAttrs := o.hostAttrs
	h.cfgSub = cfg.SubscribePluginEnablement(func(notify.Change) {
		h.applyEnablement(hostAttrs)
	})

	// sel is nil: this terminal host has no native out-of-band
	// selection-change source to poll (every caret move already flows
	// through this package's own key handlers), so the pipeline's
	// fallback ticker never starts.
	h.pipeline = input.New(h.engine, nil)
	return h, nil
}

// applyEnablement resolves every discovered plugin's enable state against
// h.cfg and hostAttrs and pushes the result through BulkConfigure, warning
// (never failing) on a per-plugin construct/destroy error.
func (h *Host) applyEnablement(hostAttrs map[string]bool) {
	want := h.engine.Plugins().ResolveEnablement(h.cfg, hostAttrs)
	for name, result := range h.engine.Plugins().BulkConfigure(want) {
		if result.Err != nil {
			h.log.Warn(fmt.Sprintf("hostdemo: plugin %s: %v", name, result.Err), nil)
		}
	}
}

// loadScriptedPlugins materializes the demo's bundled Lua plugin to a temp
// directory and loads it through script.Loader, the same path a host
// embedding a user's own .lua plugin directory would use. The temp
// directory is tracked on h.scriptDir for cleanup in Shutdown.
func (h *Host) loadScriptedPlugins() ([]plugin.Module, error) {
	manifestPath, err := scripts.MaterializeKeystrokeCounter()
	if err != nil {
		return nil, err
	}
	h.scriptDir = filepath.Dir(manifestPath)

	m, err := script.NewLoader().Load(manifestPath)
	if err != nil {
		os.RemoveAll(h.scriptDir)
		h.scriptDir = ""
		return nil, err
	}
	return []plugin.Module{m}, nil
}

// Shutdown restores the terminal outside the normal Run loop, for a signal
// handler racing a still-running Run, mirroring this codebase's
// app.Application.Shutdown invoked from both the main return path and a
// SIGINT/SIGTERM goroutine.
func (h *Host) Shutdown() {
	h.shutdownOnce.Do(func() {
		h.pipeline.Destroy()
		if h.cfgSub != nil {
			h.cfgSub.Unsubscribe()
		}
		h.cfg.Close()
		if h.scriptDir != "" {
			os.RemoveAll(h.scriptDir)
		}
		h.screen.Fini()
	})
}

// Run initializes the screen, drives the event loop until the user quits
// (Ctrl+C), and restores the terminal on every exit path.
func (h *Host) Run() error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("hostdemo: init screen: %w", err)
	}
	defer h.Shutdown()
	h.pipeline.Start()

	h.screen.EnableMouse()
	cols, rows := h.screen.Size()
	h.surface.resize(cols, rows)
	h.render()

	for {
		ev := h.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			cols, rows = e.Size()
			h.surface.resize(cols, rows)
			h.engine.Refit()
			h.screen.Sync()
		case *tcell.EventKey:
			quit, err := h.handleKey(e)
			if err != nil {
				h.status = err.Error()
			}
			if quit {
				return nil
			}
		}
		h.render()
	}
}

// handleKey dispatches one key event to either the palette overlay or the
// buffer, returning quit=true on Ctrl+C.
func (h *Host) handleKey(e *tcell.EventKey) (quit bool, err error) {
	switch {
	case e.Key() == tcell.KeyCtrlC:
		return true, nil
	case e.Key() == tcell.KeyCtrlP:
		h.togglePalette()
		return false, nil
	}

	if h.paletteOpen {
		return false, h.handlePaletteKey(e)
	}
	return false, h.handleBufferKey(e)
}

func (h *Host) togglePalette() {
	h.paletteOpen = !h.paletteOpen
	h.paletteQuery = ""
	if h.paletteOpen {
		h.refreshPaletteHits()
	}
}

func (h *Host) refreshPaletteHits() {
	inst, ok := h.engine.Plugins().Plugin("palette")
	if !ok {
		return
	}
	p := inst.(*palette.Plugin)
	h.paletteHits = p.Search(h.paletteQuery, 10)
}

func (h *Host) handlePaletteKey(e *tcell.EventKey) error {
	switch e.Key() {
	case tcell.KeyEscape:
		h.paletteOpen = false
		return nil
	case tcell.KeyEnter:
		h.paletteOpen = false
		if len(h.paletteHits) == 0 {
			return nil
		}
		cmd := h.paletteHits[0].Command
		if cmd.Run == nil {
			return nil
		}
		if err := cmd.Run(context.Background()); err != nil {
			return err
		}
		h.status = "ran: " + cmd.Title
		if owner, _, ok := strings.Cut(cmd.ID, "."); ok {
			if p, found := h.engine.Plugins().Plugin(owner); found {
				if rr, ok := p.(plugin.ResultReporter); ok {
					if text := rr.LastResult(); text != "" {
						h.status = text
					}
				}
			}
		}
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if h.paletteQuery != "" {
			_, size := utf8.DecodeLastRuneInString(h.paletteQuery)
			h.paletteQuery = h.paletteQuery[:len(h.paletteQuery)-size]
		}
	case tcell.KeyRune:
		h.paletteQuery += string(e.Rune())
	}
	h.refreshPaletteHits()
	return nil
}

// handleBufferKey runs every key through the input pipeline first (firing
// the before/afterKeydown hooks and the pipeline's own undo/redo/Escape
// interception), then applies the key's buffer-level effect, grounded on
// this codebase's dispatcher verb-plus-motion handlers adapted onto this
// repo's ops package.
func (h *Host) handleBufferKey(e *tcell.EventKey) error {
	h.pipeline.Dispatch(keydownEvent(e))

	switch e.Key() {
	case tcell.KeyRune:
		return h.insert(string(e.Rune()))
	case tcell.KeyEnter:
		return h.insert("\n")
	case tcell.KeyTab:
		return h.insert("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		h.extendPrimaryBack()
		return h.insert("")
	case tcell.KeyDelete:
		h.extendPrimaryForward()
		return h.insert("")
	case tcell.KeyLeft:
		h.moveBy(-1, e.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyRight:
		h.moveBy(1, e.Modifiers()&tcell.ModShift != 0)
	case tcell.KeyUp:
		h.moveLine(-1)
	case tcell.KeyDown:
		h.moveLine(1)
	case tcell.KeyCtrlZ, tcell.KeyCtrlY, tcell.KeyEscape:
		// The pipeline's intercept already ran Undo/Redo/ClearSecondary
		// above; NotifyUndoRedo is Framed-specific overlay bookkeeping
		// outside the narrow input.Host interface, so it's the host's
		// job rather than the pipeline's.
		h.engine.NotifyUndoRedo()
		h.notifySelectionChange()
	}
	return nil
}

// keydownEvent translates a tcell key event into the pipeline's logical
// key name and modifier set. Keys the pipeline's intercept doesn't care
// about still dispatch (for beforeKeydown/afterKeydown hook observers)
// with an empty Key.
func keydownEvent(e *tcell.EventKey) input.Event {
	mods := input.Modifiers{
		Shift: e.Modifiers()&tcell.ModShift != 0,
		Alt:   e.Modifiers()&tcell.ModAlt != 0,
		Ctrl:  e.Modifiers()&tcell.ModCtrl != 0,
		Cmd:   e.Modifiers()&tcell.ModMeta != 0,
	}
	switch e.Key() {
	case tcell.KeyRune:
		return input.Event{Kind: input.KindKeydown, Key: strings.ToLower(string(e.Rune())), Mods: mods}
	case tcell.KeyEscape:
		return input.Event{Kind: input.KindKeydown, Key: "Escape", Mods: mods}
	case tcell.KeyCtrlZ:
		mods.Ctrl = true
		return input.Event{Kind: input.KindKeydown, Key: "z", Mods: mods}
	case tcell.KeyCtrlY:
		mods.Ctrl = true
		return input.Event{Kind: input.KindKeydown, Key: "y", Mods: mods}
	default:
		return input.Event{Kind: input.KindKeydown, Mods: mods}
	}
}

// notifySelectionChange dispatches a select event through the pipeline so
// the brackets plugin's pair highlight and the gutter's current-line
// marker stay in sync with direct caret moves that bypass the operation
// protocol (plain cursor motion carries no text edit, so it has no
// operation.List to run through Execute).
func (h *Host) notifySelectionChange() {
	h.pipeline.Dispatch(input.Event{Kind: input.KindSelect})
}

// insert runs InsertText through the operation protocol: CreateOperation
// snapshots text+carets, InsertText fills in the cut/replacement fields,
// Normalize clamps them, and Execute applies the edit and reports the
// change through every bound hook (including the gutter/brackets redraw and
// the tracker's change recording).
func (h *Host) insert(text string) error {
	list := h.engine.CreateOperation()
	ops.InsertText(ops.Event{Params: ops.Params{Text: text}}, list)
	if err := h.engine.Execute(list); err != nil {
		return err
	}
	h.notifySelectionChange()
	return nil
}

func (h *Host) extendPrimaryBack() {
	c := h.engine.Carets().Primary()
	if c.Start != c.End {
		return
	}
	prev := prevRuneStart(h.engine.Text(), c.Start)
	h.engine.Carets().SetPrimary(prev, c.End)
}

func (h *Host) extendPrimaryForward() {
	c := h.engine.Carets().Primary()
	if c.Start != c.End {
		return
	}
	next := nextRuneEnd(h.engine.Text(), c.End)
	h.engine.Carets().SetPrimary(c.Start, next)
}

func (h *Host) moveBy(delta int, extend bool) {
	c := h.engine.Carets().Primary()
	text := h.engine.Text()
	var head caret.ByteOffset
	if delta < 0 {
		head = prevRuneStart(text, c.Head)
	} else {
		head = nextRuneEnd(text, c.Head)
	}
	if extend {
		anchor := c.Start
		if c.Head == c.Start {
			anchor = c.End
		}
		start, end := anchor, head
		if start > end {
			start, end = end, start
		}
		h.engine.Carets().SetAll([]caret.Caret{{ID: c.ID, Start: start, End: end, Head: head, IsPrimary: true}})
	} else {
		h.engine.Carets().SetPrimary(head, head)
	}
	h.engine.Redraw()
	h.notifySelectionChange()
}

func (h *Host) moveLine(delta int) {
	text := h.engine.Text()
	c := h.engine.Carets().Primary()
	lines := strings.Split(text, "\n")
	lineNo, col := lineAndColumn(text, c.Head)
	target := lineNo + delta
	if target < 0 || target >= len(lines) {
		return
	}
	offset := offsetOfLineColumn(lines, target, col)
	h.engine.Carets().SetPrimary(offset, offset)
	h.engine.Redraw()
	h.notifySelectionChange()
}

func prevRuneStart(text string, offset caret.ByteOffset) caret.ByteOffset {
	if offset <= 0 {
		return 0
	}
	o := int(offset) - 1
	for o > 0 && !utf8.RuneStart(text[o]) {
		o--
	}
	return caret.ByteOffset(o)
}

func nextRuneEnd(text string, offset caret.ByteOffset) caret.ByteOffset {
	if int(offset) >= len(text) {
		return caret.ByteOffset(len(text))
	}
	_, size := utf8.DecodeRuneInString(text[offset:])
	return offset + caret.ByteOffset(size)
}

func lineAndColumn(text string, offset caret.ByteOffset) (line, col int) {
	prefix := text[:clampOffset(offset, len(text))]
	line = strings.Count(prefix, "\n")
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		col = len(prefix) - idx - 1
	} else {
		col = len(prefix)
	}
	return line, col
}

func offsetOfLineColumn(lines []string, line, col int) caret.ByteOffset {
	var offset int
	for i := 0; i < line; i++ {
		offset += len(lines[i]) + 1
	}
	l := lines[line]
	if col > len(l) {
		col = len(l)
	}
	return caret.ByteOffset(offset + col)
}

func clampOffset(v caret.ByteOffset, max int) int {
	iv := int(v)
	if iv < 0 {
		return 0
	}
	if iv > max {
		return max
	}
	return iv
}

// render repaints gutter, text, overlay decorations, the palette overlay
// (if open), and the status line, then shows the cursor and flips the
// buffer, mirroring backend.Terminal.Show discipline.
func (h *Host) render() {
	h.screen.Clear()
	cols, rows := h.screen.Size()

	text := h.engine.Text()
	lines := strings.Split(text, "\n")
	bracketLine, bracketStyle := bracketPairRow(h.engine)

	textRows := rows - 1
	for row := 0; row < textRows && row < len(lines); row++ {
		style := tcell.StyleDefault
		if row == bracketLine {
			style = bracketStyle
		}
		drawLine(h.screen, row, gutterWidth, cols-gutterWidth, lines[row], style)
		drawGutterLabel(h.screen, row, row+1)
	}

	h.drawStatus(rows - 1)
	if h.paletteOpen {
		h.drawPalette(cols, rows)
	} else {
		h.showCursor()
	}
	h.screen.Show()
}

func (h *Host) showCursor() {
	primary := h.engine.Carets().Primary()
	coord, ok := h.engine.Geometry().OffsetToCoord(primary.Head)
	if !ok {
		h.screen.HideCursor()
		return
	}
	h.screen.ShowCursor(int(coord.Left), int(coord.Top))
}

func (h *Host) drawStatus(row int) {
	style := tcell.StyleDefault.Reverse(true)
	msg := h.status
	if msg == "" {
		msg = "Ctrl+P: command palette   Ctrl+Z/Y: undo/redo   Ctrl+C: quit"
	}
	drawText(h.screen, 0, row, msg, style)
}

// drawPalette overlays a centered command list, filtered by the current
// query, over the bottom few rows of the buffer area.
func (h *Host) drawPalette(cols, rows int) {
	height := len(h.paletteHits) + 2
	if height > rows {
		height = rows
	}
	top := rows - height - 1
	if top < 0 {
		top = 0
	}
	style := tcell.StyleDefault.Reverse(true)
	drawText(h.screen, 0, top, "> "+h.paletteQuery, style)
	for i, m := range h.paletteHits {
		if top+1+i >= rows {
			break
		}
		line := fmt.Sprintf("%-30s %s", m.Command.Title, m.Command.Category)
		drawText(h.screen, 2, top+1+i, line, tcell.StyleDefault)
	}
	_ = cols
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col++
	}
}

func drawLine(s tcell.Screen, row, x0, width int, line string, style tcell.Style) {
	col := x0
	for _, r := range line {
		if col >= x0+width {
			break
		}
		s.SetContent(col, row, r, nil, style)
		col++
	}
}

// bracketPairRow reports the visual row the brackets plugin's pair
// highlight applies to (the primary caret's line) and the style to render
// it in, derived from the decoration's blended Color. ok is false when the
// brackets plugin found no pair to highlight this frame.
func bracketPairRow(e *variant.Framed) (row int, style tcell.Style) {
	var color string
	for _, d := range e.Overlay().Decorations() {
		if d.Owner == "brackets" {
			color = d.Color
			break
		}
	}
	if color == "" {
		return -1, tcell.StyleDefault
	}
	line, _ := lineAndColumn(e.Text(), e.Carets().Primary().Head)
	return line, tcell.StyleDefault.Foreground(hexToTcellColor(color)).Bold(true)
}

func hexToTcellColor(hex string) tcell.Color {
	c := tcell.GetColor(hex)
	if c == tcell.ColorDefault {
		return tcell.ColorOrange
	}
	return c
}

func drawGutterLabel(s tcell.Screen, row, number int) {
	label := fmt.Sprintf("%*d", gutterWidth-1, number)
	style := tcell.StyleDefault.Dim(true)
	for i, r := range label {
		s.SetContent(i, row, r, nil, style)
	}
}

