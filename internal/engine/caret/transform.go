package caret

// TransformOffset updates a single offset after an edit has been applied,
// per the standard rules: an edit entirely before the offset shifts it by
// the edit's delta; an edit at or after the offset leaves it unchanged; an
// edit spanning the offset moves it to the end of the replacement text.
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	if edit.Range.End <= offset {
		oldLen := edit.Range.End - edit.Range.Start
		newLen := ByteOffset(len(edit.NewText))
		return offset - oldLen + newLen
	}
	if edit.Range.Start >= offset {
		return offset
	}
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// TransformCaret updates a caret's Start/End/Head after an edit.
func TransformCaret(c Caret, edit Edit) Caret {
	c.Start = TransformOffset(c.Start, edit)
	c.End = TransformOffset(c.End, edit)
	c.Head = TransformOffset(c.Head, edit)
	if c.Start > c.End {
		c.Start, c.End = c.End, c.Start
	}
	return c
}

// TransformSet updates every caret in the set after a single edit, then
// renormalizes (an edit can cause two previously distinct carets to merge).
func TransformSet(cs *Set, edit Edit) {
	for i := range cs.carets {
		cs.carets[i] = TransformCaret(cs.carets[i], edit)
	}
	cs.normalize()
}

// InsertAtAll inserts text at every caret's range in the buffer-mutating
// callback apply, right-to-left so earlier indices stay valid against the
// live buffer, then repositions every caret left-to-right using a running
// cumulative delta. apply must replace [start,end) with text
// in the live document and is called once per caret, descending by Start.
// InsertAtAll returns nothing; afterwards the set holds every caret
// collapsed immediately after its own insertion.
func InsertAtAll(cs *Set, text string, apply func(start, end ByteOffset, text string)) {
	carets := cs.All()
	if len(carets) == 0 {
		return
	}

	// Right-to-left mutation against the live buffer.
	for i := len(carets) - 1; i >= 0; i-- {
		c := carets[i]
		apply(c.Start, c.End, text)
	}

	// Left-to-right repositioning using a running cumulative offset.
	newLen := ByteOffset(len(text))
	cumulative := ByteOffset(0)
	next := make([]Caret, len(carets))
	for i, c := range carets {
		oldLen := c.End - c.Start
		pos := c.Start + cumulative + newLen
		next[i] = c.MoveTo(pos)
		cumulative += newLen - oldLen
	}
	cs.SetAll(next)
}

// DeleteAtAll deletes one character (forward) or (backward) at every
// collapsed caret, right-to-left against the live buffer, guarded at buffer
// boundaries so a boundary caret is left unchanged. apply
// replaces [start,end) with "" in the live document. bufLen is the buffer
// length before any deletion in this call.
func DeleteAtAll(cs *Set, forward bool, bufLen ByteOffset, apply func(start, end ByteOffset)) {
	carets := cs.All()
	if len(carets) == 0 {
		return
	}

	type deletion struct {
		at  ByteOffset
		len ByteOffset
	}
	dels := make([]deletion, len(carets))
	for i, c := range carets {
		start, end := c.Start, c.End
		if c.IsEmpty() {
			if forward {
				if end >= bufLen {
					dels[i] = deletion{at: start, len: 0}
					continue
				}
				end = start + 1
			} else {
				if start <= 0 {
					dels[i] = deletion{at: start, len: 0}
					continue
				}
				start = start - 1
			}
		}
		dels[i] = deletion{at: start, len: end - start}
	}

	// Right-to-left mutation against the live buffer.
	for i := len(dels) - 1; i >= 0; i-- {
		d := dels[i]
		if d.len == 0 {
			continue
		}
		apply(d.at, d.at+d.len)
	}

	// Left-to-right replay yields the new collapsed positions.
	cumulative := ByteOffset(0)
	next := make([]Caret, len(carets))
	for i, c := range carets {
		d := dels[i]
		pos := d.at + cumulative
		next[i] = c.MoveTo(pos)
		if d.len > 0 {
			cumulative -= d.len
		}
	}
	cs.SetAll(next)
}
