package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/akwaba/ussdflow"
	"github.com/akwaba/ussdflow/pkg/adapters/http"
	"github.com/akwaba/ussdflow/pkg/domain"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Dial the app from an interactive terminal session",
	Long:  `Plays the role of the carrier: dials the app, prints each menu and feeds your keystrokes back as responses. Sessions live in process memory.`,
	Run: func(cmd *cobra.Command, args []string) {
		graphPath, _ := cmd.Flags().GetString("graph")
		msisdn, _ := cmd.Flags().GetString("msisdn")

		app, err := ussdflow.New(graphPath,
			ussdflow.WithRemoteSwitch(http.NewClient(0)),
		)
		if err != nil {
			fmt.Printf("Error initializing app: %v\n", err)
			os.Exit(1)
		}

		if err := runSimulation(app, msisdn); err != nil {
			fmt.Printf("Simulation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().String("msisdn", "233200000000", "Subscriber number to simulate")
}

func runSimulation(app *ussdflow.App, msisdn string) error {
	ctx := context.Background()
	sessionID := uuid.NewString()
	scanner := bufio.NewScanner(os.Stdin)

	req := domain.Request{
		MSISDN:    msisdn,
		Network:   "simulator",
		SessionID: sessionID,
		Op:        domain.OpInit,
	}

	for {
		reply, err := app.Process(ctx, req)
		if err != nil {
			return err
		}
		if reply.Raw != nil {
			fmt.Println(string(reply.Raw))
			return nil
		}

		fmt.Println()
		fmt.Println(reply.Message)

		if reply.Op == domain.OpEnd {
			return nil
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		req = domain.Request{
			MSISDN:    msisdn,
			Network:   "simulator",
			SessionID: sessionID,
			Input:     strings.TrimSpace(scanner.Text()),
			Op:        domain.OpResponse,
		}
	}
}
