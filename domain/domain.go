// Package domain declares the domain document entity: the root <domain>
// configuration a hypervisor defines a guest from, expressed as declarative
// configuration of the bind engine.
package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jbweber/virtbind/bind"
	"github.com/jbweber/virtbind/devices"
	"github.com/jbweber/virtbind/internal/validate"
)

// Domain is the guest configuration document.
//
// The "devices" slot is a heterogeneous ordered list partitioned out of the
// <devices> element by the device catalog; <emulator> lives under the same
// parent but is bound separately, which exercises the partitioning rule:
// each list slot claims only the children its marshal pair recognizes.
//
// The uuid slot is declared uncomparable: two domains that differ only in
// uuid describe the same configuration.
type Domain struct {
	*bind.Entity
}

// New returns a domain over the minimal default tree <domain/>.
func New() *Domain {
	e := bind.New("domain", "domain")

	e.Bind("type", &bind.Attribute{Path: ".", Name: "type", Default: "kvm"})
	e.Bind("name", &bind.ElementText{Path: "name"})
	e.Bind("uuid", &bind.ElementText{Path: "uuid"})
	e.Bind("title", &bind.ElementText{Path: "title"})

	e.Bind("memory", &bind.ElementText{Path: "memory", Coerce: bind.CoerceInt})
	e.Bind("memory_unit", &bind.Attribute{Path: "memory", Name: "unit", Default: "KiB"})
	e.Bind("current_memory", &bind.ElementText{Path: "currentMemory", Coerce: bind.CoerceInt})
	e.Bind("vcpu", &bind.ElementText{Path: "vcpu", Coerce: bind.CoerceInt})
	e.Bind("vcpu_placement", &bind.Attribute{Path: "vcpu", Name: "placement"})

	e.Bind("os_type", &bind.ElementText{Path: "os/type"})
	e.Bind("os_arch", &bind.Attribute{Path: "os/type", Name: "arch"})
	e.Bind("os_machine", &bind.Attribute{Path: "os/type", Name: "machine"})

	e.Bind("on_poweroff", &bind.ElementText{Path: "on_poweroff"})
	e.Bind("on_reboot", &bind.ElementText{Path: "on_reboot"})
	e.Bind("on_crash", &bind.ElementText{Path: "on_crash"})

	e.Bind("emulator", &bind.ElementText{Path: "devices/emulator"})

	devTo, devFrom := devices.Marshal()
	e.Bind("devices", &bind.ElementList{Path: "devices", To: devTo, From: devFrom})

	secTo, secFrom := bind.MapMarshal("seclabel")
	e.Bind("seclabels", &bind.ElementList{Path: ".", To: secTo, From: secFrom})

	e.Uncomparable("uuid")
	return &Domain{Entity: e}
}

// Parse builds a domain from literal XML, such as the output of a dump
// command.
func Parse(text string) (*Domain, error) {
	d := New()
	if err := d.LoadXML(text); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseFile builds a domain from the XML document at path.
func ParseFile(path string) (*Domain, error) {
	d := New()
	if err := d.LoadFile(path); err != nil {
		return nil, err
	}
	return d, nil
}

// Name returns the domain name.
func (d *Domain) Name() (string, error) { return d.GetString("name") }

// SetName sets the domain name.
func (d *Domain) SetName(v string) error { return d.Set("name", v) }

// UUID returns the domain UUID.
func (d *Domain) UUID() (string, error) { return d.GetString("uuid") }

// AssignUUID sets a freshly generated UUID and returns it.
func (d *Domain) AssignUUID() (string, error) {
	id := uuid.NewString()
	if err := d.Set("uuid", id); err != nil {
		return "", err
	}
	return id, nil
}

// Devices returns the domain's devices as a catalog-checked typed list.
// The devices are re-rooted over the live document nodes, so mutating one
// writes through to the domain.
func (d *Domain) Devices() (*devices.List, error) {
	v, err := d.Get("devices")
	if err != nil {
		return nil, err
	}
	items := v.([]any)
	devs := make([]devices.Device, len(items))
	for i, item := range items {
		devs[i] = item.(devices.Device)
	}
	return devices.NewList(devs...)
}

// AddDevice appends dev to the device list. The list slot re-marshals on
// write, so previously fetched device handles no longer write through
// after AddDevice; re-fetch via Devices when live handles are needed.
func (d *Domain) AddDevice(dev devices.Device) error {
	var items []any
	v, err := d.Get("devices")
	switch {
	case err == nil:
		items = v.([]any)
	case errors.Is(err, bind.ErrNotFound):
	default:
		return err
	}
	items = append(items, dev)
	if err := d.Set("devices", items); err != nil {
		return fmt.Errorf("adding <%s> device: %w", dev.Base().Tag(), err)
	}
	return nil
}

// Validate materializes the current document into the entity's temp file
// and runs the external schema validator against it. The boolean and
// diagnostic text report the validator's verdict verbatim; an error means
// the validator could not run at all, never that the document is invalid.
func (d *Domain) Validate(ctx context.Context) (bool, string, error) {
	path, err := d.Tree().Write()
	if err != nil {
		return false, "", err
	}
	return validate.Schema(ctx, path)
}
