package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stylecheck/internal/diag"
	"stylecheck/internal/lint"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [code...]",
	Short: "List the built-in rules in execution order",
	Long:  "List the built-in rules. With codes (S001, s009, ...) only those rules are shown.",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleOutput struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Template string `json:"template"`
	Doc      string `json:"doc"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	rules, err := selectRules(lint.Default(), args)
	if err != nil {
		return err
	}
	out := make([]ruleOutput, len(rules))
	for i, r := range rules {
		out[i] = ruleOutput{
			Code:     r.Code.ID(),
			Name:     r.Name,
			Kind:     r.Kind.String(),
			Template: r.Code.Title(),
			Doc:      r.Doc,
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "pretty":
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, r := range out {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Code, r.Name, r.Kind, r.Template)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// selectRules: все правила набора или только перечисленные коды, в порядке аргументов.
func selectRules(set *lint.Set, codes []string) ([]*lint.Rule, error) {
	if len(codes) == 0 {
		return set.Rules(), nil
	}
	rules := make([]*lint.Rule, 0, len(codes))
	for _, arg := range codes {
		code, ok := diag.ParseCode(arg)
		if !ok {
			return nil, fmt.Errorf("unknown rule code: %s", arg)
		}
		r, ok := set.Lookup(code)
		if !ok {
			return nil, fmt.Errorf("rule %s is not registered", code.ID())
		}
		rules = append(rules, r)
	}
	return rules, nil
}
