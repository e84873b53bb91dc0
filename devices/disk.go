package devices

import "github.com/jbweber/virtbind/bind"

// Disk is a block device:
//
//	<disk type="volume" device="disk">
//	  <driver name="qemu" type="qcow2" cache="none"/>
//	  <source pool="vms" volume="myvm_boot"/>
//	  <target dev="vda" bus="virtio"/>
//	  <boot order="1"/>
//	  <readonly/>
//	  <address type="pci" .../>
//	</disk>
type Disk struct {
	*bind.Entity
}

// NewDisk returns a disk device over the default tree <disk/>.
func NewDisk() *Disk {
	e := bind.New("disk device", "disk")
	e.Bind("type", &bind.Attribute{Path: ".", Name: "type"})
	e.Bind("device", &bind.Attribute{Path: ".", Name: "device", Default: "disk"})
	e.Bind("driver", &bind.ElementMap{Path: "driver"})
	e.Bind("source", &bind.ElementMap{Path: "source"})
	e.Bind("target", &bind.ElementMap{Path: "target"})
	e.Bind("boot_order", &bind.Attribute{Path: "boot", Name: "order"})
	// Presence-only element: "" when present, ErrNotFound when absent.
	e.Bind("readonly", &bind.ElementText{Path: "readonly"})
	e.Bind("address", &bind.ElementNest{Path: "address", New: newAddress})
	return &Disk{Entity: e}
}

// ParseDisk builds a disk device from literal XML.
func ParseDisk(text string) (*Disk, error) {
	d := NewDisk()
	if err := d.LoadXML(text); err != nil {
		return nil, err
	}
	return d, nil
}

// TargetDev returns the guest-visible device name (vda, vdb, ...).
func (d *Disk) TargetDev() (string, error) {
	t, err := d.Get("target")
	if err != nil {
		return "", err
	}
	return t.(map[string]string)["dev"], nil
}

// SetReadOnly adds or removes the <readonly/> marker.
func (d *Disk) SetReadOnly(ro bool) error {
	if ro {
		return d.Set("readonly", "")
	}
	return d.Delete("readonly")
}

// ReadOnly reports whether the <readonly/> marker is present.
func (d *Disk) ReadOnly() bool {
	_, err := d.Get("readonly")
	return err == nil
}

// Address is the device address subtree shared by disks and controllers.
// Its whole attribute set is bound as one flat map.
type Address struct {
	*bind.Entity
}

func newAddress() *bind.Entity {
	e := bind.New("device address", "address")
	e.Bind("attrs", &bind.ElementMap{Path: "."})
	return e
}

// NewAddress returns an empty device address.
func NewAddress() *Address {
	return &Address{Entity: newAddress()}
}

// Attrs returns the full address attribute map.
func (a *Address) Attrs() (map[string]string, error) {
	v, err := a.Get("attrs")
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}
