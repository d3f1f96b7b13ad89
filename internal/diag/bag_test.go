package diag

import (
	"testing"

	"dry/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, SynTrailingTokens, source.Span{}, "w")) {
		t.Fatal("first add must succeed")
	}
	if b.HasErrors() || !b.HasWarnings() {
		t.Fatal("only a warning was added")
	}
	b.Add(NewError(SynExpectIn, source.Span{}, "e"))
	if b.Add(NewError(SynExpectIn, source.Span{}, "dropped")) {
		t.Fatal("bag must refuse items past its limit")
	}
	if !b.HasErrors() || b.Len() != 2 || b.Cap() != 2 {
		t.Fatalf("unexpected bag state: len=%d cap=%d", b.Len(), b.Cap())
	}
}

func TestBagSortMergeDedup(t *testing.T) {
	a := NewBag(4)
	a.Add(NewError(SynExpectBody, source.Span{File: 0, Start: 9, End: 10}, "late"))
	a.Add(NewError(SynMissingMarker, source.Span{File: 0, Start: 1, End: 2}, "early"))

	other := NewBag(4)
	other.Add(NewError(SynMissingMarker, source.Span{File: 0, Start: 1, End: 2}, "early"))
	other.Add(New(SevWarning, SynMissingMarker, source.Span{File: 0, Start: 1, End: 2}, "early warning"))
	other.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 0, End: 1}, "first"))
	a.Merge(other)
	if a.Len() != 5 || a.Cap() != 5 {
		t.Fatalf("merge must grow the limit: len=%d cap=%d", a.Len(), a.Cap())
	}

	a.Sort()
	a.Dedup()
	items := a.Items()
	want := []string{"first", "early", "early warning", "late"}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, msg := range want {
		if items[i].Message != msg {
			t.Errorf("items[%d] = %q, want %q", i, items[i].Message, msg)
		}
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	counter := &CountingReporter{Next: BagReporter{Bag: bag}}
	b := ReportError(counter, SynExpectValues, source.Span{File: 0, Start: 3, End: 4}, "expected values").
		WithHelp("like this: `[one, two, three]`").
		WithFix("use square brackets", FixEdit{Span: source.Span{Start: 3, End: 4}, NewText: "["})
	b.Emit()
	b.Emit()

	if bag.Len() != 1 || counter.Errors != 1 {
		t.Fatalf("expected exactly one emitted error, bag=%d counter=%d", bag.Len(), counter.Errors)
	}
	d := bag.Items()[0]
	if help := d.Help(); len(help) != 1 || help[0] != "like this: `[one, two, three]`" {
		t.Fatalf("Help() = %v", help)
	}
	if len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "[" {
		t.Fatalf("fix not recorded: %+v", d.Fixes)
	}
	if SynExpectValues.ID() != "SYN2104" || IOLoadFileError.ID() != "IO4001" {
		t.Fatal("unexpected code ids")
	}
}

func TestSeverityNames(t *testing.T) {
	for sev, want := range map[Severity]string{
		SevInfo:      "INFO",
		SevWarning:   "WARNING",
		SevError:     "ERROR",
		Severity(42): "UNKNOWN",
	} {
		if got := sev.String(); got != want {
			t.Fatalf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}
