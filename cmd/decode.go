package cmd

import (
	"fmt"

	"github.com/Beastly713/sssolve/pkg/radix"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [value] [base]",
	Short: "Convert a share value from its base to decimal",
	Long: `Decode prints the base 10 form of a value written in any base from 2 to 62.

Example:
  sssolve decode ff 16`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := radix.ParseBase(args[1])
		if err != nil {
			return err
		}

		n, err := radix.Decode(args[0], base)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), n.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
