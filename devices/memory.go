package devices

import "github.com/jbweber/virtbind/bind"

// Memory is a memory module device:
//
//	<memory model="dimm">
//	  <target>
//	    <size unit="KiB">524288</size>
//	    <node>0</node>
//	  </target>
//	</memory>
type Memory struct {
	*bind.Entity
}

// NewMemory returns a memory device over the default tree <memory/>.
func NewMemory() *Memory {
	e := bind.New("memory device", "memory")
	e.Bind("model", &bind.Attribute{Path: ".", Name: "model"})
	e.Bind("target", &bind.ElementNest{Path: "target", New: newMemoryTarget})
	return &Memory{Entity: e}
}

// ParseMemory builds a memory device from literal XML.
func ParseMemory(text string) (*Memory, error) {
	m := NewMemory()
	if err := m.LoadXML(text); err != nil {
		return nil, err
	}
	return m, nil
}

// Model returns the device model attribute (for example "dimm" or "nvdimm").
func (m *Memory) Model() (string, error) { return m.GetString("model") }

// SetModel sets the device model attribute.
func (m *Memory) SetModel(v string) error { return m.Set("model", v) }

// Target returns the target sub-entity, re-rooted over the shared child
// node so mutations write through to the device.
func (m *Memory) Target() (*MemoryTarget, error) {
	v, err := m.Get("target")
	if err != nil {
		return nil, err
	}
	return &MemoryTarget{Entity: v.(*bind.Entity)}, nil
}

// MemoryTarget is the <target> subtree of a memory device.
type MemoryTarget struct {
	*bind.Entity
}

func newMemoryTarget() *bind.Entity {
	e := bind.New("memory target", "target")
	e.Bind("size", &bind.ElementText{Path: "size", Coerce: bind.CoerceInt})
	e.Bind("size_unit", &bind.Attribute{Path: "size", Name: "unit"})
	e.Bind("node", &bind.ElementText{Path: "node", Coerce: bind.CoerceInt})
	return e
}

// NewMemoryTarget returns an empty memory target.
func NewMemoryTarget() *MemoryTarget {
	return &MemoryTarget{Entity: newMemoryTarget()}
}

// Size returns the target size in the declared unit.
func (t *MemoryTarget) Size() (int, error) { return t.GetInt("size") }

// SetSize sets the target size.
func (t *MemoryTarget) SetSize(v int) error { return t.Set("size", v) }

// SizeUnit returns the size unit attribute (for example "KiB").
func (t *MemoryTarget) SizeUnit() (string, error) { return t.GetString("size_unit") }

// Node returns the guest NUMA node the module is attached to.
func (t *MemoryTarget) Node() (int, error) { return t.GetInt("node") }
