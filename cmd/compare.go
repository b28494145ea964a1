package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"debt-planner/domain"
	"debt-planner/payoff"
	"debt-planner/service"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagFile     string
	flagExtra    string
	flagStrategy string
)

// portfolioFile is the YAML layout read by the compare command. Loans may be
// fully specified or given tersely as simple_loans.
type portfolioFile struct {
	Loans        []domain.LoanDetail `yaml:"loans"`
	SimpleLoans  []domain.LoanInput  `yaml:"simple_loans"`
	ExtraPayment decimal.Decimal     `yaml:"extra_payment"`
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare payoff strategies for a YAML portfolio",
	Example: `  debt-planner compare --file loans.yaml --extra 5000
  debt-planner compare --file loans.yaml --strategy avalanche`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&flagFile, "file", "f", "", "Portfolio YAML file (required)")
	compareCmd.Flags().StringVarP(&flagExtra, "extra", "e", "", "Monthly extra payment, overrides the file")
	compareCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "compare", "compare, snowball or avalanche")
	_ = compareCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	input, err := readPortfolio(flagFile)
	if err != nil {
		return err
	}
	if flagExtra != "" {
		extra, err := decimal.NewFromString(flagExtra)
		if err != nil {
			return fmt.Errorf("--extra: %w", err)
		}
		input.ExtraPayment = extra
	}

	svc := service.NewDebtStrategyService(payoff.NewNormalizer(nil), nil, 0, nil, cfg.PayoffOptions())
	if len(input.SimpleLoans) > 0 {
		details, err := svc.Synthesize(input.SimpleLoans)
		if err != nil {
			return err
		}
		input.Loans = append(input.Loans, details...)
	}

	multi := domain.MultiLoanInput{Loans: input.Loans, ExtraPayment: input.ExtraPayment}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var out any
	if flagStrategy == "compare" {
		out, err = svc.Compare(ctx, multi)
	} else {
		out, err = svc.Plan(ctx, multi, flagStrategy)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readPortfolio(path string) (*portfolioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}

	var p portfolioFile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse portfolio: %w", err)
	}
	return &p, nil
}
