package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "findash-cli",
		Short: "FinDash CLI tool",
		Long:  `A command line interface for the FinDash reporting API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinDash API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Dashboard reports",
	}

	reportCmd.AddCommand(&cobra.Command{
		Use:   "balances",
		Short: "Show per-account balances and totals",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAndPrint("/api/v1/reports/balances", nil)
		},
	})

	var breakdownType string
	breakdownCmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show the per-category breakdown",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAndPrint("/api/v1/reports/breakdown", url.Values{"type": {breakdownType}})
		},
	}
	breakdownCmd.Flags().StringVar(&breakdownType, "type", "Expense", "Entry type (Income or Expense)")
	reportCmd.AddCommand(breakdownCmd)

	var heatmapType string
	heatmapCmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show the month-by-year heatmap",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAndPrint("/api/v1/reports/heatmap", url.Values{"type": {heatmapType}})
		},
	}
	heatmapCmd.Flags().StringVar(&heatmapType, "type", "Expense", "Entry type (Income or Expense)")
	reportCmd.AddCommand(heatmapCmd)

	var netChangeYear int
	netChangeCmd := &cobra.Command{
		Use:   "netchange",
		Short: "Show the income/expense/net table",
		Run: func(cmd *cobra.Command, args []string) {
			query := url.Values{}
			if netChangeYear > 0 {
				query.Set("year", fmt.Sprint(netChangeYear))
			}
			fetchAndPrint("/api/v1/reports/netchange", query)
		},
	}
	netChangeCmd.Flags().IntVar(&netChangeYear, "year", 0, "Calendar year (0 for all years)")
	reportCmd.AddCommand(netChangeCmd)

	reportCmd.AddCommand(&cobra.Command{
		Use:   "milestones",
		Short: "Show net-worth milestones",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAndPrint("/api/v1/reports/milestones", nil)
		},
	})

	reportCmd.AddCommand(&cobra.Command{
		Use:   "overview",
		Short: "Show the full dashboard payload",
		Run: func(cmd *cobra.Command, args []string) {
			fetchAndPrint("/api/v1/reports/overview", nil)
		},
	})

	var (
		forecastAccount string
		forecastMethod  string
		forecastHorizon int
	)
	forecastCmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project a balance series",
		Run: func(cmd *cobra.Command, args []string) {
			query := url.Values{"method": {forecastMethod}}
			if forecastAccount != "" {
				query.Set("account", forecastAccount)
			}
			if forecastHorizon > 0 {
				query.Set("horizon", fmt.Sprint(forecastHorizon))
			}
			fetchAndPrint("/api/v1/reports/forecast", query)
		},
	}
	forecastCmd.Flags().StringVar(&forecastAccount, "account", "", "Account to project (empty for net worth)")
	forecastCmd.Flags().StringVar(&forecastMethod, "method", "linear", "Forecast method (linear, moving-average, exponential-smoothing)")
	forecastCmd.Flags().IntVar(&forecastHorizon, "horizon", 0, "Months to project (0 for the method default)")
	reportCmd.AddCommand(forecastCmd)

	rootCmd.AddCommand(reportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func fetchAndPrint(path string, query url.Values) {
	target := baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(target)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var pretty any
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return
	}

	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(out))
}
