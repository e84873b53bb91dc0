package attrfile

import (
	"os"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	payload := []byte(`
name: testvm
vcpu: 2
memory: 4194304
devices:
  - model: dimm
seclabels:
  - model: selinux
    type: dynamic
os_type: hvm
`)
	values, err := Load(payload)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if values["name"] != "testvm" {
		t.Errorf("name = %v", values["name"])
	}
	if values["vcpu"] != 2 {
		t.Errorf("vcpu = %v (%T)", values["vcpu"], values["vcpu"])
	}

	seclabels, ok := values["seclabels"].([]any)
	if !ok {
		t.Fatalf("seclabels type = %T", values["seclabels"])
	}
	first, ok := seclabels[0].(map[string]any)
	if !ok {
		t.Fatalf("seclabel entry type = %T", seclabels[0])
	}
	if first["model"] != "selinux" {
		t.Errorf("seclabel model = %v", first["model"])
	}
}

func TestLoadRejectsNonMapping(t *testing.T) {
	if _, err := Load([]byte("- a\n- b\n")); err == nil {
		t.Error("Load of a sequence expected error")
	}
	if _, err := Load([]byte(": not yaml :")); err == nil {
		t.Error("Load of invalid YAML expected error")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := t.TempDir() + "/attrs.yaml"
	if err := os.WriteFile(path, []byte("name: testvm\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	values, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if values["name"] != "testvm" {
		t.Errorf("name = %v", values["name"])
	}

	if _, err := LoadFromFile(t.TempDir() + "/missing.yaml"); err == nil {
		t.Error("LoadFromFile of missing file expected error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	in := map[string]any{
		"name": "testvm",
		"vcpu": 2,
		"target": map[string]any{
			"size":      524288,
			"size_unit": "KiB",
		},
	}
	data, err := Save(in)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	out, err := Load(data)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip changed payload:\n in  %#v\n out %#v", in, out)
	}
}
