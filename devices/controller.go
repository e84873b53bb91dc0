package devices

import "github.com/jbweber/virtbind/bind"

// Controller is a bus controller device:
//
//	<controller type="pci" index="0" model="pci-root">
//	  <address type="pci" .../>
//	</controller>
type Controller struct {
	*bind.Entity
}

// NewController returns a controller device over the default tree
// <controller/>.
func NewController() *Controller {
	e := bind.New("controller device", "controller")
	e.Bind("type", &bind.Attribute{Path: ".", Name: "type"})
	e.Bind("index", &bind.Attribute{Path: ".", Name: "index"})
	e.Bind("model", &bind.Attribute{Path: ".", Name: "model"})
	e.Bind("address", &bind.ElementNest{Path: "address", New: newAddress})
	return &Controller{Entity: e}
}

// ParseController builds a controller device from literal XML.
func ParseController(text string) (*Controller, error) {
	c := NewController()
	if err := c.LoadXML(text); err != nil {
		return nil, err
	}
	return c, nil
}
