package devices

import "github.com/jbweber/virtbind/bind"

// Interface is a network interface device:
//
//	<interface type="bridge">
//	  <mac address="be:ef:0a:14:1e:28"/>
//	  <source bridge="br0"/>
//	  <model type="virtio"/>
//	  <target dev="vnet0"/>
//	</interface>
type Interface struct {
	*bind.Entity
}

// NewInterface returns an interface device over the default tree
// <interface/>.
func NewInterface() *Interface {
	e := bind.New("interface device", "interface")
	e.Bind("type", &bind.Attribute{Path: ".", Name: "type"})
	e.Bind("mac_address", &bind.Attribute{Path: "mac", Name: "address"})
	e.Bind("source", &bind.ElementMap{Path: "source"})
	e.Bind("model", &bind.Attribute{Path: "model", Name: "type"})
	e.Bind("target_dev", &bind.Attribute{Path: "target", Name: "dev"})
	return &Interface{Entity: e}
}

// ParseInterface builds an interface device from literal XML.
func ParseInterface(text string) (*Interface, error) {
	i := NewInterface()
	if err := i.LoadXML(text); err != nil {
		return nil, err
	}
	return i, nil
}

// MACAddress returns the interface's MAC address.
func (i *Interface) MACAddress() (string, error) { return i.GetString("mac_address") }

// SetMACAddress sets the interface's MAC address.
func (i *Interface) SetMACAddress(v string) error { return i.Set("mac_address", v) }
