package document

import (
	"path/filepath"
	"testing"

	"draftboard/pkg/geometry"
)

func testShape(id string, x, y, w, h float64) Element {
	el := NewShape(ShapeRectangle, geometry.NewRect(x, y, w, h))
	el.ID = ID(id)
	return el
}

func TestPageAddRemove(t *testing.T) {
	p := NewPage(DefaultPageSize)
	p.Add(testShape("a", 0, 0, 10, 10))
	p.Add(testShape("b", 20, 0, 10, 10))

	if _, ok := p.ElementByID("a"); !ok {
		t.Fatal("a not found")
	}
	if !p.Remove("a") {
		t.Fatal("remove a failed")
	}
	if p.Remove("a") {
		t.Error("second remove should report missing")
	}
	if _, ok := p.ElementByID("a"); ok {
		t.Error("a still present after remove")
	}
	if len(p.Elements) != 1 || p.Elements[0].ID != "b" {
		t.Errorf("elements = %v", p.Elements)
	}
}

func TestPageZOrder(t *testing.T) {
	p := NewPage(DefaultPageSize)
	p.Add(testShape("a", 0, 0, 10, 10))
	p.Add(testShape("b", 0, 0, 10, 10))
	p.Add(testShape("c", 0, 0, 10, 10))

	if !p.BringToFront("a") {
		t.Fatal("BringToFront failed")
	}
	if got := p.Elements[2].ID; got != "a" {
		t.Errorf("top = %v, want a", got)
	}

	if !p.SendToBack("c") {
		t.Fatal("SendToBack failed")
	}
	if got := p.Elements[0].ID; got != "c" {
		t.Errorf("bottom = %v, want c", got)
	}
	if len(p.Elements) != 3 {
		t.Errorf("element count changed: %d", len(p.Elements))
	}
}

func TestPageMutatorsReportStaleIDs(t *testing.T) {
	p := NewPage(DefaultPageSize)
	p.Add(testShape("a", 0, 0, 10, 10))

	if p.SetBounds("missing", geometry.NewRect(0, 0, 1, 1)) {
		t.Error("SetBounds on missing id should fail")
	}
	if p.Translate("missing", 1, 1) {
		t.Error("Translate on missing id should fail")
	}
	if p.BringToFront("missing") || p.SendToBack("missing") {
		t.Error("z-order ops on missing id should fail")
	}
}

func TestSetTextOnlyOnTextElements(t *testing.T) {
	p := NewPage(DefaultPageSize)
	p.Add(testShape("shape", 0, 0, 10, 10))
	txt := NewText(geometry.NewRect(0, 0, 80, 20), "before")
	txt.ID = "txt"
	p.Add(txt)

	if p.SetText("shape", "nope") {
		t.Error("SetText must reject non-text elements")
	}
	if !p.SetText("txt", "after") {
		t.Fatal("SetText on text element failed")
	}
	got, _ := p.ElementByID("txt")
	if got.Text != "after" {
		t.Errorf("text = %q", got.Text)
	}
}

func TestTranslateAndSetBounds(t *testing.T) {
	p := NewPage(DefaultPageSize)
	p.Add(testShape("a", 100, 100, 50, 50))

	p.Translate("a", 30, -20)
	got, _ := p.ElementByID("a")
	if got.Bounds != geometry.NewRect(130, 80, 50, 50) {
		t.Errorf("after translate: %v", got.Bounds)
	}

	p.SetBounds("a", geometry.NewRect(0, 0, 10, 10))
	got, _ = p.ElementByID("a")
	if got.Bounds != geometry.NewRect(0, 0, 10, 10) {
		t.Errorf("after set bounds: %v", got.Bounds)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	d := New("test drawing")
	page := d.ActivePage()
	page.Add(testShape("a", 10, 20, 30, 40))
	txt := NewText(geometry.NewRect(50, 60, 80, 20), "label")
	txt.ID = "t"
	page.Add(txt)

	path := filepath.Join(t.TempDir(), "drawing.draftboard")
	if err := d.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "test drawing" || loaded.Version != FileVersion {
		t.Errorf("metadata = %q v%d", loaded.Name, loaded.Version)
	}
	lp := loaded.ActivePage()
	if len(lp.Elements) != 2 {
		t.Fatalf("element count = %d", len(lp.Elements))
	}
	a, ok := lp.ElementByID("a")
	if !ok || a.Bounds != geometry.NewRect(10, 20, 30, 40) {
		t.Errorf("a = %+v", a)
	}
	tl, ok := lp.ElementByID("t")
	if !ok || tl.Text != "label" || tl.Kind != KindText {
		t.Errorf("t = %+v", tl)
	}
}

func TestLoadRejectsNewerVersions(t *testing.T) {
	d := New("future")
	d.Version = FileVersion + 1
	path := filepath.Join(t.TempDir(), "future.draftboard")
	if err := d.Save(path); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected version error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.draftboard")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := map[ID]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %v", id)
		}
		seen[id] = true
	}
}
