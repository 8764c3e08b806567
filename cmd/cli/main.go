package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"evodex/internal/config"
	"evodex/internal/visitor"
)

var (
	cfg     *config.Config
	apiFlag string
)

var rootCmd = &cobra.Command{
	Use:   "dexctl",
	Short: "Browse the evolution dex and manage your caught list",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if apiFlag != "" {
			cfg.Client.APIURL = apiFlag
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "API base URL (default from config)")
	rootCmd.AddCommand(
		regionsCmd, regionCmd, searchCmd,
		catchCmd, releaseCmd, caughtCmd, nameCmd, saveCmd, loadCmd,
		watchCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func httpClient() *http.Client {
	return &http.Client{Timeout: cfg.Client.Timeout}
}

// openSession loads the on-device record. Callers must Close it so pending
// writes reach disk.
func openSession() (*visitor.Session, error) {
	local := visitor.NewLocal(visitor.NewFileStorage(cfg.Client.StateDir), cfg.Client.PersistInterval, nil)
	remote := visitor.NewRemote(cfg.Client.APIURL, cfg.Client.Timeout)
	return visitor.NewSession(local, remote)
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func timeoutCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.Client.Timeout+5*time.Second)
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}
