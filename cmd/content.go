package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novaforge/sitekit/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Work with the content collections",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate a content directory",
	Long: `Load a content directory and run the same integrity checks the
server runs at startup: parseable collections, unique ids and slugs,
ratings in range. Without an argument, validates the embedded content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContentValidate,
}

var contentListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List collection sizes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runContentList,
}

var contentPackCmd = &cobra.Command{
	Use:   "pack <dir> <database>",
	Short: "Compile a content directory into a seed database",
	Long: `Load and validate a content directory, then write every record
into a SQLite seed database that can be served with
'sitekit serve --source sqlite'.`,
	Args: cobra.ExactArgs(2),
	RunE: runContentPack,
}

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentListCmd)
	contentCmd.AddCommand(contentPackCmd)
}

func loadFrom(args []string) (*content.Store, string, error) {
	if len(args) == 0 {
		store, err := content.NewEmbeddedSource().Load()
		return store, "embedded content", err
	}
	store, err := content.NewDirSource(args[0]).Load()
	return store, args[0], err
}

func runContentValidate(cmd *cobra.Command, args []string) error {
	_, label, err := loadFrom(args)
	if err != nil {
		return err
	}
	fmt.Printf("%s: OK\n", label)
	return nil
}

func runContentList(cmd *cobra.Command, args []string) error {
	store, label, err := loadFrom(args)
	if err != nil {
		return err
	}
	fmt.Printf("Content in %s:\n", label)
	fmt.Printf("  services      %d\n", len(store.Services))
	fmt.Printf("  case studies  %d\n", len(store.CaseStudies))
	fmt.Printf("  blog posts    %d\n", len(store.BlogPosts))
	fmt.Printf("  testimonials  %d\n", len(store.Testimonials))
	fmt.Printf("  team members  %d\n", len(store.Team))
	fmt.Printf("  company       %s\n", store.Company.Name)
	return nil
}

func runContentPack(cmd *cobra.Command, args []string) error {
	store, err := content.NewDirSource(args[0]).Load()
	if err != nil {
		return err
	}
	if err := content.Pack(store, args[1]); err != nil {
		return fmt.Errorf("packing content: %w", err)
	}
	fmt.Printf("Packed %s into %s\n", args[0], args[1])
	return nil
}
