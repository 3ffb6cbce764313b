package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/merchantscan/merchantscan/internal/mcc"
)

// NewCodesCmd creates the codes command.
func NewCodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List the merchant category code taxonomy",
		Long: `Codes lists the built-in mapping from Google place types to merchant
category codes (MCCs).

Examples:
  # List the whole taxonomy
  merchantscan codes

  # List only retail mappings
  merchantscan codes --category Retail

  # Check whether a code exists in the taxonomy
  merchantscan codes --validate 5812`,
		RunE: runCodesCmd,
	}

	cmd.Flags().String("category", "",
		"Only list entries in the given category (e.g. Retail)")
	cmd.Flags().String("validate", "",
		"Check whether the given 4-character MCC exists in the taxonomy")

	return cmd
}

// runCodesCmd executes the codes command.
func runCodesCmd(cmd *cobra.Command, _ []string) error {
	code, err := cmd.Flags().GetString("validate")
	if err != nil {
		return err
	}
	if code != "" {
		return validateCode(cmd, code)
	}

	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return err
	}
	if category != "" {
		return listCategory(cmd, mcc.Category(category))
	}

	return listAll(cmd)
}

// validateCode reports whether the code exists in the taxonomy.
func validateCode(cmd *cobra.Command, code string) error {
	if !mcc.IsValidCode(code) {
		return fmt.Errorf("unknown MCC %q", code)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid MCC\n", code)
	return nil
}

// listCategory lists the taxonomy entries for one category.
func listCategory(cmd *cobra.Command, category mcc.Category) error {
	known := false
	for _, c := range mcc.Categories() {
		if c == category {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown category %q", category)
	}

	infos := mcc.ByCategory(category)
	types := make([]string, 0, len(infos))
	for placeType := range infos {
		types = append(types, placeType)
	}
	sort.Strings(types)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLACE TYPE\tMCC\tCATEGORY")
	for _, placeType := range types {
		info := infos[placeType]
		fmt.Fprintf(w, "%s\t%s\t%s\n", placeType, info.Code, info.Category)
	}
	return w.Flush()
}

// listAll lists the whole taxonomy sorted by place type.
func listAll(cmd *cobra.Command) error {
	entries := mcc.Entries()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PlaceType < entries[j].PlaceType
	})

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLACE TYPE\tMCC\tCATEGORY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.PlaceType, e.Code, e.Category)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d place types across %d categories\n",
		mcc.EntryCount(), len(mcc.Categories()))
	return nil
}
