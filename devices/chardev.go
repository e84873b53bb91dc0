package devices

import "github.com/jbweber/virtbind/bind"

// newCharacterEntity declares the slots shared by character-backed devices
// (consoles, channels): the backend type attribute, the backend source and
// the guest-side target.
func newCharacterEntity(kind, tag string) *bind.Entity {
	e := bind.New(kind, tag)
	e.Bind("type", &bind.Attribute{Path: ".", Name: "type"})
	e.Bind("source", &bind.ElementMap{Path: "source"})
	e.Bind("target", &bind.ElementMap{Path: "target"})
	return e
}

// Channel is a guest/host communication channel:
//
//	<channel type="unix">
//	  <source mode="bind" path="/var/lib/libvirt/qemu/guest.agent"/>
//	  <target type="virtio" name="org.qemu.guest_agent.0"/>
//	</channel>
type Channel struct {
	*bind.Entity
}

// NewChannel returns a channel device over the default tree <channel/>.
func NewChannel() *Channel {
	return &Channel{Entity: newCharacterEntity("channel device", "channel")}
}

// ParseChannel builds a channel device from literal XML.
func ParseChannel(text string) (*Channel, error) {
	c := NewChannel()
	if err := c.LoadXML(text); err != nil {
		return nil, err
	}
	return c, nil
}

// Console is the guest console:
//
//	<console type="pty">
//	  <target type="serial" port="0"/>
//	</console>
//
// A console's backend is chosen by the hypervisor, so the inherited
// "source" slot is withheld: consoles expose only the backend type and the
// guest-side target.
type Console struct {
	*bind.Entity
}

// NewConsole returns a console device over the default tree <console/>.
func NewConsole() *Console {
	e := newCharacterEntity("console device", "console")
	e.Bind("source", bind.Forbidden{})
	e.Bind("target_port", &bind.Attribute{Path: "target", Name: "port"})
	return &Console{Entity: e}
}

// ParseConsole builds a console device from literal XML.
func ParseConsole(text string) (*Console, error) {
	c := NewConsole()
	if err := c.LoadXML(text); err != nil {
		return nil, err
	}
	return c, nil
}
