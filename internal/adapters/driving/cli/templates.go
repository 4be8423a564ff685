package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Template catalog commands",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the slide templates in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesList,
}

func init() {
	templatesListCmd.Flags().BoolVar(&templatesJSON, "json", false, "output as JSON")
	templatesCmd.AddCommand(templatesListCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("template catalog not configured")
	}

	assets := catalogService.List()

	if templatesJSON {
		data, err := json.MarshalIndent(assets, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal templates: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(assets) == 0 {
		cmd.Println("No templates in catalog.")
		return nil
	}

	cmd.Printf("Templates (%d):\n", len(assets))
	for _, asset := range assets {
		cmd.Printf("  %s  %s\n", asset.ID, asset.Description)
		if asset.Category != "" || len(asset.Tags) > 0 {
			cmd.Printf("      category: %s", asset.Category)
			if len(asset.Tags) > 0 {
				cmd.Printf("  tags: %s", strings.Join(asset.Tags, ", "))
			}
			cmd.Println()
		}
		cmd.Printf("      placeholders: %d\n", len(asset.Placeholders))
	}
	return nil
}
