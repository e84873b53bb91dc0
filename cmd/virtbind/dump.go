package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/virtbind/domain"
	"github.com/jbweber/virtbind/internal/virtconn"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <domain-name>",
	Short: "Dump a live domain's XML",
	Long: `Fetch the XML description of a defined domain from the local libvirt
daemon, round-trip it through the binding engine, and print it.

Round-tripping proves the document parses cleanly; the output is the
engine's canonical serialization, not the daemon's byte-for-byte text.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := virtconn.ConnectWithContext(cmd.Context(), "", 0)
		if err != nil {
			return fmt.Errorf("failed to connect to libvirt: %w", err)
		}
		defer client.Close()

		xml, err := client.DumpXML(args[0])
		if err != nil {
			return err
		}

		d, err := domain.Parse(xml)
		if err != nil {
			return fmt.Errorf("failed to parse dumped XML: %w", err)
		}
		defer d.Release()

		fmt.Println(d.XML())
		return nil
	},
}

var defineCmd = &cobra.Command{
	Use:   "define <domain.xml>",
	Short: "Define a domain from an XML file",
	Long: `Parse a domain XML file through the binding engine and hand the
serialized result to the local libvirt daemon's define operation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := domain.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to load domain XML: %w", err)
		}
		defer d.Release()

		client, err := virtconn.ConnectWithContext(cmd.Context(), "", 0)
		if err != nil {
			return fmt.Errorf("failed to connect to libvirt: %w", err)
		}
		defer client.Close()

		name, err := client.Define(d.XML())
		if err != nil {
			return err
		}

		fmt.Printf("Defined domain %s\n", name)
		return nil
	},
}
