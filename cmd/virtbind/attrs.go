package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbweber/virtbind/domain"
	"github.com/jbweber/virtbind/internal/attrfile"
)

var attrsCmd = &cobra.Command{
	Use:   "attrs",
	Short: "Bulk structured access to a domain XML file",
}

func init() {
	attrsCmd.AddCommand(attrsGetCmd)
	attrsCmd.AddCommand(attrsSetCmd)
}

var attrsGetCmd = &cobra.Command{
	Use:   "get <domain.xml>",
	Short: "Print a domain's bound attributes as YAML",
	Long: `Read every bound, present slot of a domain XML file and print the
result as a YAML mapping. Absent optional slots are omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := domain.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to load domain XML: %w", err)
		}
		defer d.Release()

		values, err := d.FetchAttrs()
		if err != nil {
			return fmt.Errorf("failed to fetch attributes: %w", err)
		}

		out, err := attrfile.Save(flatten(values))
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

var attrsSetCmd = &cobra.Command{
	Use:   "set <domain.xml> <attrs.yaml>",
	Short: "Apply a YAML attribute payload to a domain XML file",
	Long: `Load a YAML attribute payload and apply it to a domain XML file with
merge semantics: nested mappings update the matching subtrees, leaving
unmentioned fields untouched. The rewritten XML is printed to stdout, or
written back in place with --in-place.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := domain.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to load domain XML: %w", err)
		}
		defer d.Release()

		values, err := attrfile.LoadFromFile(args[1])
		if err != nil {
			return err
		}

		if err := d.SetupAttrs(values); err != nil {
			return fmt.Errorf("failed to apply attributes: %w", err)
		}

		if inPlace {
			if err := os.WriteFile(args[0], []byte(d.XML()), 0o644); err != nil {
				return fmt.Errorf("failed to rewrite %s: %w", args[0], err)
			}
			fmt.Printf("✓ updated %s\n", args[0])
			return nil
		}

		fmt.Println(d.XML())
		return nil
	},
}

var inPlace bool

func init() {
	attrsSetCmd.Flags().BoolVarP(&inPlace, "in-place", "i", false,
		"rewrite the XML file instead of printing to stdout")
}

// flatten rewrites entity-valued sequence entries (devices) into their
// fetched maps so the whole result serializes as plain YAML.
func flatten(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = flattenValue(v)
	}
	return out
}

func flattenValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return flatten(v)
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = flattenValue(item)
		}
		return items
	case interface {
		FetchAttrs() (map[string]any, error)
	}:
		m, err := v.FetchAttrs()
		if err != nil {
			return fmt.Sprintf("<error: %v>", err)
		}
		return flatten(m)
	default:
		return v
	}
}
