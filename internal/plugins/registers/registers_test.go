package registers

import (
	"testing"

	"github.com/quillcore/editor/internal/variant"
)

func TestYankJoinsNonEmptySelections(t *testing.T) {
	e := variant.NewInline(nil, variant.WithInitialText("hello world"))
	e.Carets().SetPrimary(0, 5)

	instance, err := Module{}.Create(e)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	p := instance.(*Plugin)

	if got := p.Yank("a"); got != "hello" {
		t.Errorf("Yank() = %q, want %q", got, "hello")
	}
}

func TestPasteInsertsStoredText(t *testing.T) {
	e := variant.NewInline(nil, variant.WithInitialText("hello world"))
	e.Carets().SetPrimary(0, 5)

	instance, _ := Module{}.Create(e)
	p := instance.(*Plugin)
	p.Yank("a")

	e.Carets().SetPrimary(6, 6)
	if err := p.Paste("a"); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if got, want := e.Text(), "hello helloworld"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestPasteOfEmptyRegisterIsNoOp(t *testing.T) {
	e := variant.NewInline(nil, variant.WithInitialText("abc"))
	instance, _ := Module{}.Create(e)
	p := instance.(*Plugin)

	if err := p.Paste("missing"); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if e.Text() != "abc" {
		t.Errorf("Text() = %q, want unchanged %q", e.Text(), "abc")
	}
}

func TestOpenReturnsSnapshot(t *testing.T) {
	e := variant.NewInline(nil, variant.WithInitialText("abc"))
	e.Carets().SetPrimary(0, 1)
	instance, _ := Module{}.Create(e)
	p := instance.(*Plugin)
	p.Yank("a")

	snap := p.Open()
	if snap["a"] != "a" {
		t.Errorf("snapshot[a] = %q, want %q", snap["a"], "a")
	}
}
