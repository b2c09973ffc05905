package ops

import (
	"testing"

	"github.com/quillcore/editor/internal/engine/operation"
	"github.com/quillcore/editor/internal/hostapi"
	"github.com/quillcore/editor/internal/hostapi/memstore"
)

func listFor(text string, selStart, selEnd ByteOffset) *operation.List {
	sel := text
	if int(selStart) <= len(text) && int(selEnd) <= len(text) && selStart <= selEnd {
		sel = text[selStart:selEnd]
	}
	d := operation.Descriptor{
		Text:      text,
		SelStart:  selStart,
		SelEnd:    selEnd,
		Selection: sel,
		CursorID:  "primary",
	}
	return &operation.List{Descriptors: []operation.Descriptor{d}, Legacy: &d}
}

func applied(text string, list *operation.List) string {
	d := list.Descriptors[0]
	if d.Replacement == nil {
		return text
	}
	start, end := d.SelStart, d.SelEnd
	if d.CutStart != nil {
		start = *d.CutStart
	}
	if d.CutEnd != nil {
		end = *d.CutEnd
	}
	return text[:start] + *d.Replacement + text[end:]
}

func TestInsertTextCollapsesCaretAfterInsertion(t *testing.T) {
	text := "hello"
	list := listFor(text, 5, 5)
	InsertText(Event{Params: Params{Text: " world"}}, list)

	if got := applied(text, list); got != "hello world" {
		t.Fatalf("applied() = %q", got)
	}
	if *list.Descriptors[0].NewSelStart != *list.Descriptors[0].NewSelEnd {
		t.Error("expected collapsed caret after insert-text")
	}
}

func TestReplaceSelectionSelectsInsertedRange(t *testing.T) {
	text := "hello world"
	list := listFor(text, 0, 5)
	ReplaceSelection(Event{Params: Params{Text: "goodbye"}}, list)

	if got := applied(text, list); got != "goodbye world" {
		t.Fatalf("applied() = %q", got)
	}
	d := list.Descriptors[0]
	if *d.NewSelStart != 0 || *d.NewSelEnd != ByteOffset(len("goodbye")) {
		t.Errorf("selection = [%d,%d), want [0,7)", *d.NewSelStart, *d.NewSelEnd)
	}
}

func TestReplaceAllIgnoresLaterDescriptors(t *testing.T) {
	text := "abc"
	list := listFor(text, 1, 1)
	list.Descriptors = append(list.Descriptors, operation.Descriptor{Text: text, SelStart: 2, SelEnd: 2, CursorID: "c2"})

	ReplaceAll(Event{Params: Params{Text: "xyz", Select: "all"}}, list)

	if got := applied(text, list); got != "xyz" {
		t.Fatalf("applied() = %q", got)
	}
	if list.Descriptors[1].Active() {
		t.Error("expected second descriptor marked inactive by replace-all")
	}
}

func TestMakeLinkWrapsThenStrips(t *testing.T) {
	text := "see page"
	list := listFor(text, 4, 8)
	MakeLink(Event{}, list)
	wrapped := applied(text, list)
	if wrapped != "see [[page]]" {
		t.Fatalf("wrapped = %q", wrapped)
	}

	list2 := listFor(wrapped, 6, 10)
	MakeLink(Event{}, list2)
	if got := applied(wrapped, list2); got != text {
		t.Fatalf("stripped = %q, want round trip back to %q", got, text)
	}
}

func TestWrapSelectionTrimsWhitespaceIntoWrap(t *testing.T) {
	text := "  hello  "
	list := listFor(text, 0, ByteOffset(len(text)))
	WrapSelection(Event{Params: Params{Prefix: "__", Suffix: "__", TrimSelection: "yes"}}, list)

	if got := applied(text, list); got != "  __hello__  " {
		t.Fatalf("applied() = %q", got)
	}
}

func TestPrefixLinesTogglesRoundTrip(t *testing.T) {
	text := "foo\nbar\nbaz"
	list := listFor(text, 0, ByteOffset(len(text)))
	PrefixLines(Event{Params: Params{Prefix: "// "}}, list)
	once := applied(text, list)
	if once != "// foo\n// bar\n// baz" {
		t.Fatalf("once = %q", once)
	}

	list2 := listFor(once, 0, ByteOffset(len(once)))
	PrefixLines(Event{Params: Params{Prefix: "// "}}, list2)
	if got := applied(once, list2); got != text {
		t.Fatalf("twice = %q, want original %q", got, text)
	}
}

func TestWrapLinesWrapsThenUnwraps(t *testing.T) {
	text := "body line"
	list := listFor(text, 0, ByteOffset(len(text)))
	WrapLines(Event{Params: Params{Prefix: "<<<", Suffix: ">>>"}}, list)
	wrapped := applied(text, list)
	if wrapped != "<<<\nbody line\n>>>\n" {
		t.Fatalf("wrapped = %q", wrapped)
	}

	// The body sits on the middle line now; select just that line.
	bodyStart := ByteOffset(len("<<<\n"))
	bodyEnd := bodyStart + ByteOffset(len(text))
	list2 := listFor(wrapped, bodyStart, bodyEnd)
	WrapLines(Event{Params: Params{Prefix: "<<<", Suffix: ">>>"}}, list2)
	if got := applied(wrapped, list2); got != text {
		t.Fatalf("unwrapped = %q, want %q", got, text)
	}
}

func TestExciseCreatesDocumentAndLeavesLink(t *testing.T) {
	store := memstore.New()
	text := "some excised passage here"
	list := listFor(text, 5, 13)
	Excise(Event{Store: store, Params: Params{Format: "wiki"}}, list)

	got := applied(text, list)
	if got == text {
		t.Fatal("expected buffer to change")
	}
	docs := store.FilterDocuments(func(hostapi.Document) bool { return true })
	if len(docs) != 1 {
		t.Fatalf("len(docs) = %d, want 1", len(docs))
	}
	if docs[0].Text != "excised " {
		t.Errorf("doc text = %q, want %q", docs[0].Text, "excised ")
	}
}

func TestExciseSkipsEmptySelection(t *testing.T) {
	store := memstore.New()
	text := "abc"
	list := listFor(text, 1, 1)
	Excise(Event{Store: store}, list)

	if list.Descriptors[0].Active() {
		t.Error("expected empty-selection descriptor marked inactive")
	}
}

func TestSaveSelectionDoesNotMutateBuffer(t *testing.T) {
	store := memstore.New()
	text := "abc def"
	list := listFor(text, 0, 3)
	list.Descriptors = append(list.Descriptors, operation.Descriptor{
		Text: text, SelStart: 4, SelEnd: 7, Selection: "def", CursorID: "c2",
	})

	SaveSelection(Event{Store: store, Params: Params{Separator: "+", TargetTitle: "Saved"}}, list)

	for _, d := range list.Descriptors {
		if d.Active() {
			t.Error("save-selection must not produce an active descriptor")
		}
	}
	if got := store.GetDocumentText("Saved"); got != "abc+def" {
		t.Errorf("saved text = %q, want %q", got, "abc+def")
	}
}

func TestFocusEditorMarksEveryDescriptorInactive(t *testing.T) {
	list := listFor("abc", 1, 1)
	FocusEditor(Event{}, list)
	if list.Descriptors[0].Active() {
		t.Error("expected descriptor inactive after focus-editor")
	}
}
