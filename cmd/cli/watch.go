package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream record.saved events from the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint, err := websocketURL(cfg.Client.APIURL, "/ws")
		if err != nil {
			return fmt.Errorf("ws url: %w", err)
		}

		conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
		if err != nil {
			return err
		}
		defer conn.Close()
		fmt.Fprintf(os.Stderr, "connected to %s\n", endpoint)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sig
			_ = conn.Close()
		}()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return nil
			}
			fmt.Println(string(msg))
		}
	},
}
