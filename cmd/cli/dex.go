package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"evodex/pkg/models"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions and their codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeoutCtx()
		defer cancel()

		var resp struct {
			Items []struct {
				Name string `json:"name"`
				Code string `json:"code"`
			} `json:"items"`
		}
		if err := doJSON(ctx, httpClient(), http.MethodGet, cfg.Client.APIURL+"/dex/regions", &resp); err != nil {
			return err
		}
		for _, r := range resp.Items {
			fmt.Printf("%-3s %s\n", r.Code, r.Name)
		}
		return nil
	},
}

var regionCmd = &cobra.Command{
	Use:   "region <name>",
	Short: "List a region's entries, marking the ones you caught",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeoutCtx()
		defer cancel()

		var resp struct {
			Region string          `json:"region"`
			Total  int             `json:"total"`
			Items  []models.DexMon `json:"items"`
		}
		endpoint := cfg.Client.APIURL + "/dex/regions/" + url.PathEscape(args[0])
		if err := doJSON(ctx, httpClient(), http.MethodGet, endpoint, &resp); err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		for _, m := range resp.Items {
			mark := " "
			if s.IsCaught(m.FamilyID) {
				mark = "x"
			}
			fmt.Printf("[%s] %s  #%03d %s\n", mark, m.FamilyID, m.NationalID, m.Name)
		}
		fmt.Printf("%d entries in %s\n", resp.Total, resp.Region)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find entries whose name contains term",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := timeoutCtx()
		defer cancel()

		var resp struct {
			Total int      `json:"total"`
			Slugs []string `json:"slugs"`
		}
		endpoint := cfg.Client.APIURL + "/dex/search?q=" + url.QueryEscape(strings.Join(args, " "))
		if err := doJSON(ctx, httpClient(), http.MethodGet, endpoint, &resp); err != nil {
			return err
		}
		for _, slug := range resp.Slugs {
			fmt.Println(slug)
		}
		fmt.Printf("%d matches\n", resp.Total)
		return nil
	},
}
