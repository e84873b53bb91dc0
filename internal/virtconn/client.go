// Package virtconn provides the libvirt connection used to fetch live
// domain XML as a parse source and to hand serialized XML back to the
// daemon's define operation.
//
// This package wraps github.com/digitalocean/go-libvirt. Consumers that
// want to inject fakes define their own interface over the two document
// operations; *Client satisfies it implicitly.
package virtconn

import (
	"context"
	"fmt"
	"time"

	"github.com/digitalocean/go-libvirt"
	"github.com/digitalocean/go-libvirt/socket/dialers"
)

// Client wraps a go-libvirt connection and exposes the document-level
// operations the binding layer's collaborators need: dump and define.
type Client struct {
	libvirt *libvirt.Libvirt
}

// Connect establishes a connection to the local libvirt daemon.
// It returns a Client that must be closed via Close() when done.
//
// If socketPath is empty, defaults to "/var/run/libvirt/libvirt-sock"
// (qemu:///system). If timeout is zero, defaults to 5 seconds.
func Connect(socketPath string, timeout time.Duration) (*Client, error) {
	if socketPath == "" {
		socketPath = "/var/run/libvirt/libvirt-sock"
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	dialer := dialers.NewLocal(
		dialers.WithSocket(socketPath),
		dialers.WithLocalTimeout(timeout),
	)

	l := libvirt.NewWithDialer(dialer)
	if err := l.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to libvirt at %s: %w", socketPath, err)
	}

	return &Client{libvirt: l}, nil
}

// ConnectWithContext establishes a connection with context support for
// cancellation.
func ConnectWithContext(ctx context.Context, socketPath string, timeout time.Duration) (*Client, error) {
	type result struct {
		client *Client
		err    error
	}
	resultCh := make(chan result, 1)

	go func() {
		c, err := Connect(socketPath, timeout)
		resultCh <- result{client: c, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
	case res := <-resultCh:
		return res.client, res.err
	}
}

// Close closes the libvirt connection and releases resources.
// It is safe to call Close multiple times.
func (c *Client) Close() error {
	if c.libvirt == nil {
		return nil
	}

	if err := c.libvirt.Disconnect(); err != nil {
		return fmt.Errorf("failed to disconnect from libvirt: %w", err)
	}

	c.libvirt = nil
	return nil
}

// DumpXML returns the live XML description of the named domain, the same
// markup a dump command emits. The result is well-formed input for the
// document parser.
func (c *Client) DumpXML(name string) (string, error) {
	dom, err := c.libvirt.DomainLookupByName(name)
	if err != nil {
		return "", fmt.Errorf("failed to look up domain %s: %w", name, err)
	}
	xml, err := c.libvirt.DomainGetXMLDesc(dom, 0)
	if err != nil {
		return "", fmt.Errorf("failed to dump domain %s: %w", name, err)
	}
	return xml, nil
}

// Define hands serialized domain XML to the daemon's define operation and
// returns the defined domain's name.
func (c *Client) Define(xml string) (string, error) {
	dom, err := c.libvirt.DomainDefineXML(xml)
	if err != nil {
		return "", fmt.Errorf("failed to define domain: %w", err)
	}
	return dom.Name, nil
}
