package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"signoff/internal/checklist"
)

var validateChecklistPath string

// validateCmd lints a checklist without evaluating anything: it loads the
// document and reports every checker whose spec is internally inconsistent
// for its declared mode.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a checklist for configuration problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := checklist.Load(validateChecklistPath)
		if err != nil {
			return err
		}

		bad := 0
		for _, ck := range cl.Checkers {
			if msg := ck.Spec.Validate(); msg != "" {
				bad++
				fmt.Printf("BAD  %s: %s\n", ck.ID, msg)
				continue
			}
			fmt.Printf("OK   %s\n", ck.ID)
		}
		if bad > 0 {
			return fmt.Errorf("%d of %d checker(s) misconfigured", bad, len(cl.Checkers))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateChecklistPath, "checklist", "c", "", "checklist YAML file (required)")
	_ = validateCmd.MarkFlagRequired("checklist")
}
