package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"themesim/cmd"
	"themesim/internal/domain"
	"themesim/internal/service"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	capital     float64
	dateStr     string
	wholeShares bool
	port        int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "themesim",
		Short: "Thematic portfolio return simulator",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", cmd.ConfigPath(), "path to the portfolio config")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one simulation and print the results",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().Float64Var(&capital, "capital", 10000, "amount to invest")
	simulateCmd.Flags().StringVar(&dateStr, "date", "", "purchase date (YYYY-MM-DD, default from config)")
	simulateCmd.Flags().BoolVar(&wholeShares, "whole-shares", false, "allocate whole shares and deploy residual cash")

	apiCmd := &cobra.Command{
		Use:   "api",
		Short: "Start the HTTP API",
		RunE:  runApi,
	}
	apiCmd.Flags().IntVar(&port, "port", 8080, "port to listen on")

	rootCmd.AddCommand(simulateCmd, apiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runApi(_ *cobra.Command, _ []string) error {
	handler, err := cmd.InitializeDependencies(configPath)
	if err != nil {
		return err
	}
	return handler.StartApi(port)
}

func runSimulate(c *cobra.Command, _ []string) error {
	handler, err := cmd.InitializeDependencies(configPath)
	if err != nil {
		return err
	}

	req := domain.SimulationRequest{
		Capital:     decimal.NewFromFloat(capital),
		WholeShares: wholeShares,
	}
	if dateStr == "" {
		req.PurchaseDate = handler.Config.PurchaseDate(time.Now().UTC())
	} else {
		req.PurchaseDate, err = time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", dateStr, err)
		}
	}

	result, err := handler.SimulationService.Run(c.Context(), req)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}

func printResult(result *service.SimulationResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tSECTOR\tWEIGHT\tALLOCATED\tSHARES\tVALUE\tGAIN/LOSS\tRETURN")
	for _, p := range result.Positions {
		fmt.Fprintf(w, "%s\t%s\t%.1f%%\t$%s\t%s\t$%s\t$%s\t%s%%\n",
			p.Ticker,
			p.Sector,
			p.Weight*100,
			p.AllocatedCapital.Round(2).String(),
			p.SharesHeld.Round(4).String(),
			p.CurrentValue.Round(2).String(),
			p.GainLoss.Round(2).String(),
			p.ReturnPct.Round(2).String(),
		)
	}
	w.Flush()

	fmt.Printf("\ntotal invested: $%s\n", result.Summary.TotalInvested.Round(2).String())
	fmt.Printf("current value:  $%s\n", result.Summary.TotalCurrentValue.Round(2).String())
	fmt.Printf("gain/loss:      $%s (%s%%)\n",
		result.Summary.TotalGainLoss.Round(2).String(),
		result.Summary.TotalReturnPct.Round(2).String(),
	)

	if result.LeftoverCash != nil {
		fmt.Printf("leftover cash:  $%s (%d extra purchases)\n",
			result.LeftoverCash.Round(2).String(), len(result.Events))
	}
	if result.Metrics != nil {
		fmt.Printf("annualized return %.2f%%, stdev %.2f%%, sharpe %.2f, max drawdown %.2f%%\n",
			result.Metrics.AnnualizedReturn*100,
			result.Metrics.AnnualizedStdev,
			result.Metrics.SharpeRatio,
			result.Metrics.MaxDrawdownPct,
		)
	}
	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
}
