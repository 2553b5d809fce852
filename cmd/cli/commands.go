package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	seasonFlag string
	weekFlag   int
	allFlag    bool
)

func init() {
	standingsCmd.Flags().StringVar(&seasonFlag, "season", "", "Season key (YYYY-MM), defaults to the current season")
	winnersCmd.Flags().StringVar(&seasonFlag, "season", "", "Season key (YYYY-MM), defaults to the current season")
	winnersCmd.Flags().IntVar(&weekFlag, "week", 0, "Week of the month (1-4), defaults to the current week")
	archiveCmd.Flags().BoolVar(&allFlag, "all", false, "Show the full rollover audit log instead of the capped list")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(winnersCmd)
	rootCmd.AddCommand(rolloverCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the current season and week of the month",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/week")
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "List the archived past seasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/archive"
		if allFlag {
			endpoint += "?all=true"
		}
		return performGetRequest(endpoint)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the roster standings for a season",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if seasonFlag != "" {
			params.Set("season", seasonFlag)
		}
		endpoint := "/standings"
		if encoded := params.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
		return performGetRequest(endpoint)
	},
}

var winnersCmd = &cobra.Command{
	Use:   "winners",
	Short: "Show the weekly winners for a season and week",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if seasonFlag != "" {
			params.Set("season", seasonFlag)
		}
		if weekFlag != 0 {
			params.Set("week", strconv.Itoa(weekFlag))
		}
		endpoint := "/weekly-winners"
		if encoded := params.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
		return performGetRequest(endpoint)
	},
}

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Trigger a manual rollover check",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/rollover")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
