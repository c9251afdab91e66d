package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var askTopK int

var uploadCmd = &cobra.Command{
	Use:   "upload [file-path...]",
	Short: "Upload PDF files for indexing",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			part, err := writer.CreateFormFile("files", filepath.Base(path))
			if err != nil {
				f.Close()
				return fmt.Errorf("create form part: %w", err)
			}
			if _, err := io.Copy(part, f); err != nil {
				f.Close()
				return fmt.Errorf("read %s: %w", path, err)
			}
			f.Close()
		}
		if err := writer.Close(); err != nil {
			return fmt.Errorf("finalize form: %w", err)
		}

		req, err := http.NewRequest(http.MethodPost, serverURL+"/api/v1/documents", body)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return doRequest(req)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the indexed documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := json.Marshal(map[string]any{
			"question": args[0],
			"top_k":    askTopK,
		})
		if err != nil {
			return err
		}
		req, err := http.NewRequest(http.MethodPost, serverURL+"/api/v1/ask", bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		return doRequest(req)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index and processing statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := http.NewRequest(http.MethodGet, serverURL+"/api/v1/stats", nil)
		if err != nil {
			return err
		}
		return doRequest(req)
	},
}

func doRequest(req *http.Request) error {
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s: %s", resp.Status, bytes.TrimSpace(raw))
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}

func init() {
	askCmd.Flags().IntVar(&askTopK, "top-k", 0, "number of chunks to retrieve (0 uses the server default)")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(statsCmd)
}
