package cmd

import (
	"fmt"
	"math/big"

	"github.com/Beastly713/sssolve/pkg/field"
	"github.com/spf13/cobra"
)

var (
	inversePrime        string
	inverseConstantTime bool
)

var inverseCmd = &cobra.Command{
	Use:   "inverse [a]",
	Short: "Compute the multiplicative inverse of a modulo the field prime",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, ok := new(big.Int).SetString(args[0], 10)
		if !ok {
			return fmt.Errorf("%q is not a base 10 integer", args[0])
		}

		f, err := buildField(inversePrime, inverseConstantTime)
		if err != nil {
			return err
		}

		inv, err := f.Inv(a)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), inv.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inverseCmd)

	inverseCmd.Flags().StringVar(&inversePrime, "prime", field.Mersenne127Decimal, "Field modulus in base 10")
	inverseCmd.Flags().BoolVar(&inverseConstantTime, "constant-time", false, "Invert with constant-time arithmetic")
}
