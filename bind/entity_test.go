package bind

import (
	"errors"
	"strings"
	"testing"

	"github.com/jbweber/virtbind/xmltree"
)

func TestUnboundSlot(t *testing.T) {
	e := newPerson()

	if _, err := e.Get("salary"); !errors.Is(err, ErrUnboundProperty) {
		t.Errorf("Get of undeclared slot error = %v, want ErrUnboundProperty", err)
	}
	if err := e.Set("salary", 1); !errors.Is(err, ErrUnboundProperty) {
		t.Errorf("Set of undeclared slot error = %v, want ErrUnboundProperty", err)
	}
	if err := e.Delete("salary"); !errors.Is(err, ErrUnboundProperty) {
		t.Errorf("Delete of undeclared slot error = %v, want ErrUnboundProperty", err)
	}
}

func TestForbiddenSlot(t *testing.T) {
	e := newPerson()

	if _, err := e.Get("secret"); !errors.Is(err, ErrUnboundProperty) {
		t.Errorf("Get of forbidden slot error = %v, want ErrUnboundProperty", err)
	}
	if err := e.Set("secret", "x"); !errors.Is(err, ErrUnboundProperty) {
		t.Errorf("Set of forbidden slot error = %v, want ErrUnboundProperty", err)
	}
	if err := e.Delete("secret"); !errors.Is(err, ErrUnboundProperty) {
		t.Errorf("Delete of forbidden slot error = %v, want ErrUnboundProperty", err)
	}
}

func TestCopyIndependence(t *testing.T) {
	e := newPerson()
	if err := e.Set("name", "alice"); err != nil {
		t.Fatal(err)
	}

	c, err := e.Copy()
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	if err := c.Set("name", "bob"); err != nil {
		t.Fatal(err)
	}
	if got, _ := e.GetString("name"); got != "alice" {
		t.Errorf("original mutated through copy: name = %q", got)
	}

	if err := e.Set("name", "carol"); err != nil {
		t.Fatal(err)
	}
	if got, _ := c.GetString("name"); got != "bob" {
		t.Errorf("copy mutated through original: name = %q", got)
	}

	if c.Kind() != e.Kind() {
		t.Errorf("copy kind = %q, want %q", c.Kind(), e.Kind())
	}
}

func TestLoadXML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:  "matching root",
			input: `<person id="p1"><name>alice</name></person>`,
		},
		{
			name:    "wrong root tag",
			input:   `<robot id="r1"/>`,
			wantErr: ErrShape,
		},
		{
			name:    "malformed input",
			input:   `<person id=`,
			wantErr: xmltree.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newPerson()
			err := e.LoadXML(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadXML() error = %v, want %v", err, tt.wantErr)
				}
				// A failed load leaves the entity untouched and usable.
				if e.Tree().Root().Tag != "person" {
					t.Error("entity tree changed by failed load")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadXML() error = %v", err)
			}
			if got, _ := e.GetString("name"); got != "alice" {
				t.Errorf("name after load = %q, want alice", got)
			}
		})
	}
}

func TestXMLSerialization(t *testing.T) {
	e := newPerson()
	if err := e.SetupAttrs(map[string]any{
		"id":   "p1",
		"name": "alice",
	}); err != nil {
		t.Fatal(err)
	}

	xml := e.XML()
	for _, want := range []string{`id="p1"`, "<name>alice</name>"} {
		if !strings.Contains(xml, want) {
			t.Errorf("XML() = %s, missing %s", xml, want)
		}
	}
}

func TestSlots(t *testing.T) {
	e := newPerson()
	slots := e.Slots()
	if len(slots) != 9 {
		t.Fatalf("Slots() returned %d names, want 9", len(slots))
	}
	// Declaration order is preserved.
	if slots[0] != "id" || slots[len(slots)-1] != "secret" {
		t.Errorf("Slots() order unexpected: %v", slots)
	}
}
