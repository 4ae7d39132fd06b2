package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	// Global flags
	serverURL string
	language  string

	// Answer command flags
	maxLength         int
	temperature       float64
	topK              int
	repetitionPenalty float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "ragctl",
	Short:   "Query the bilingual hybrid retrieval service",
	Version: version,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run hybrid retrieval for a query",
	Long: `Run hybrid retrieval (vector search + BM25 re-ranking) for a query.

The language is auto-detected unless --language is given.

Examples:
  ragctl search "benefits of AI in healthcare"
  ragctl search --language arabic "ما هي فوائد الذكاء الاصطناعي؟"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]interface{}{"query": args[0]}
		if language != "" {
			payload["language"] = language
		}
		return postJSON("/v1/search", payload)
	},
}

var answerCmd = &cobra.Command{
	Use:   "answer [query]",
	Short: "Generate an answer with retrieved context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]interface{}{"query": args[0]}
		if language != "" {
			payload["language"] = language
		}
		if maxLength > 0 {
			payload["max_length"] = maxLength
		}
		if temperature > 0 {
			payload["temperature"] = temperature
		}
		if topK > 0 {
			payload["top_k"] = topK
		}
		if repetitionPenalty > 0 {
			payload["repetition_penalty"] = repetitionPenalty
		}
		return postJSON("/v1/answer", payload)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server readiness",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(serverURL + "/readyz")
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()
		return printResponse(resp)
	},
}

func postJSON(path string, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: 180 * time.Second}
	resp, err := client.Post(serverURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if err := printResponse(resp); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

func printResponse(resp *http.Response) error {
	var body interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	pretty, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:9020", "server base URL")
	rootCmd.PersistentFlags().StringVar(&language, "language", "", "query language: english or arabic (default auto-detect)")

	answerCmd.Flags().IntVar(&maxLength, "max-length", 0, "maximum answer length in tokens")
	answerCmd.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature")
	answerCmd.Flags().IntVar(&topK, "top-k", 0, "top-k sampling cutoff")
	answerCmd.Flags().Float64Var(&repetitionPenalty, "repetition-penalty", 0, "repetition penalty")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(healthCmd)
}
