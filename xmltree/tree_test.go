package xmltree

import (
	"errors"
	"os"
	"strings"
	"testing"
)

const sampleXML = `<domain type="kvm">
  <name>testvm</name>
  <devices>
    <disk device="disk"><target dev="vda"/></disk>
    <disk device="cdrom"><target dev="sda"/></disk>
    <interface type="bridge"/>
  </devices>
</domain>`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "well-formed document",
			input: sampleXML,
		},
		{
			name:  "minimal element",
			input: "<memory/>",
		},
		{
			name:    "unclosed element",
			input:   "<domain><name>x</name>",
			wantErr: true,
		},
		{
			name:    "mismatched tags",
			input:   "<domain></device>",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "plain text",
			input:   "not xml at all",
			wantErr: true,
		},
		{
			name:    "multiple roots",
			input:   "<a/><b/>",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() expected error, got nil")
				}
				if !errors.Is(err, ErrParse) {
					t.Errorf("Parse() error = %v, want ErrParse", err)
				}
				if tree != nil {
					t.Error("Parse() returned a tree alongside an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := t.TempDir() + "/domain.xml"
	if err := os.WriteFile(path, []byte(sampleXML), 0o644); err != nil {
		t.Fatal(err)
	}

	tree, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if tree.SourcePath() != path {
		t.Errorf("SourcePath() = %q, want %q", tree.SourcePath(), path)
	}
	if tree.Root().Tag != "domain" {
		t.Errorf("root tag = %q, want domain", tree.Root().Tag)
	}

	if _, err := ParseFile(t.TempDir() + "/missing.xml"); err == nil {
		t.Error("ParseFile() of missing file expected error")
	}
}

func TestFind(t *testing.T) {
	tree, err := Parse(sampleXML)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantTag string
		wantNil bool
	}{
		{name: "root via dot", path: ".", wantTag: "domain"},
		{name: "root via empty", path: "", wantTag: "domain"},
		{name: "direct child", path: "name", wantTag: "name"},
		{name: "nested first match", path: "devices/disk", wantTag: "disk"},
		{name: "absent leaf", path: "devices/video", wantNil: true},
		{name: "absent intermediate", path: "os/type", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tree.Find(tt.path)
			if tt.wantNil {
				if n != nil {
					t.Fatalf("Find(%q) = <%s>, want nil", tt.path, n.Tag)
				}
				return
			}
			if n == nil {
				t.Fatalf("Find(%q) = nil", tt.path)
			}
			if n.Tag != tt.wantTag {
				t.Errorf("Find(%q).Tag = %q, want %q", tt.path, n.Tag, tt.wantTag)
			}
		})
	}
}

func TestFindAll(t *testing.T) {
	tree, err := Parse(sampleXML)
	if err != nil {
		t.Fatal(err)
	}

	disks := tree.FindAll("devices/disk")
	if len(disks) != 2 {
		t.Fatalf("FindAll(devices/disk) returned %d nodes, want 2", len(disks))
	}
	// Document order must be preserved.
	if dev, _ := disks[0].Attr("device"); dev != "disk" {
		t.Errorf("first disk device = %q, want disk", dev)
	}
	if dev, _ := disks[1].Attr("device"); dev != "cdrom" {
		t.Errorf("second disk device = %q, want cdrom", dev)
	}

	if got := tree.FindAll("devices/video"); len(got) != 0 {
		t.Errorf("FindAll of absent tag returned %d nodes", len(got))
	}
}

func TestCreateAlong(t *testing.T) {
	tree, err := Parse("<domain/>")
	if err != nil {
		t.Fatal(err)
	}

	n := tree.CreateAlong("os/type")
	if n.Tag != "type" {
		t.Fatalf("CreateAlong returned <%s>, want <type>", n.Tag)
	}
	if tree.Find("os/type") != n {
		t.Error("created node not reachable via Find")
	}

	// A second call must reuse, not duplicate.
	again := tree.CreateAlong("os/type")
	if again != n {
		t.Error("CreateAlong duplicated an existing path")
	}
	if got := len(tree.FindAll("os")); got != 1 {
		t.Errorf("got %d <os> elements, want 1", got)
	}
}

func TestRemove(t *testing.T) {
	tree, err := Parse(sampleXML)
	if err != nil {
		t.Fatal(err)
	}

	iface := tree.Find("devices/interface")
	if !tree.Remove(iface) {
		t.Fatal("Remove() = false for attached node")
	}
	if tree.Find("devices/interface") != nil {
		t.Error("node still present after Remove")
	}
	if tree.Remove(iface) {
		t.Error("Remove() = true for already-detached node")
	}
	if tree.Remove(tree.Root()) {
		t.Error("Remove() = true for root")
	}
}

func TestRestore(t *testing.T) {
	tree, err := Parse(sampleXML)
	if err != nil {
		t.Fatal(err)
	}

	tree.Find("name").Text = "renamed"
	tree.Remove(tree.Find("devices"))

	if err := tree.Restore(); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := tree.Find("name").Text; got != "testvm" {
		t.Errorf("name after Restore = %q, want testvm", got)
	}
	if tree.Find("devices") == nil {
		t.Error("devices missing after Restore")
	}
}

func TestWriteAndRelease(t *testing.T) {
	tree, err := Parse("<domain><name>x</name></domain>")
	if err != nil {
		t.Fatal(err)
	}

	path, err := tree.Write()
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != tree.XML() {
		t.Error("temp file content differs from serialization")
	}

	// A second Write reuses the same file with fresh content.
	tree.Find("name").Text = "y"
	path2, err := tree.Write()
	if err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	if path2 != path {
		t.Errorf("second Write() path = %q, want %q", path2, path)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "<name>y</name>") {
		t.Error("temp file not rewritten")
	}

	tree.Release()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("temp file still present after Release")
	}
	tree.Release() // safe to repeat
}

func TestCloneIndependence(t *testing.T) {
	tree, err := Parse(sampleXML)
	if err != nil {
		t.Fatal(err)
	}
	clone, err := tree.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}

	clone.Find("name").Text = "other"
	if got := tree.Find("name").Text; got != "testvm" {
		t.Errorf("original mutated through clone: name = %q", got)
	}
	tree.Find("name").Text = "changed"
	if got := clone.Find("name").Text; got != "other" {
		t.Errorf("clone mutated through original: name = %q", got)
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "attributes and text", input: `<a b="c"><d>text</d></a>`},
		{name: "escaping", input: `<a b="&lt;&amp;&gt;"><t>a &amp; b</t></a>`},
		{name: "ordered children", input: `<l><i>1</i><i>2</i><i>3</i></l>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			reparsed, err := Parse(tree.XML())
			if err != nil {
				t.Fatalf("serialized form does not reparse: %v", err)
			}
			if got, want := reparsed.XML(), tree.XML(); got != want {
				t.Errorf("round trip changed serialization:\n got %s\nwant %s", got, want)
			}
		})
	}
}

func TestNodeClone(t *testing.T) {
	tree, err := Parse(`<a x="1"><b>t</b></a>`)
	if err != nil {
		t.Fatal(err)
	}
	clone := tree.Root().Clone()
	clone.SetAttr("x", "2")
	clone.Child("b").Text = "u"

	if v, _ := tree.Root().Attr("x"); v != "1" {
		t.Error("attribute mutation leaked through Clone")
	}
	if tree.Find("b").Text != "t" {
		t.Error("text mutation leaked through Clone")
	}
}
