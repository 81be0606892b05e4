// lifecyclectl drives one rental lifecycle session against the marketplace
// API and prints every published snapshot. It exists for debugging the
// engine outside the mobile app.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"rentmate-client-core/internal/config"
	"rentmate-client-core/internal/identity"
	"rentmate-client-core/internal/lifecycle"
	"rentmate-client-core/internal/logger"
	"rentmate-client-core/internal/remote/httpapi"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	requestID := flag.String("request", "", "Rental request id to load")
	token := flag.String("token", os.Getenv("RENTMATE_TOKEN"), "Access token for the session")
	command := flag.String("command", "", "Optional command to issue after load: confirm, reject, confirm-cash, complete, confirm-pickup")
	watch := flag.Duration("watch", 30*time.Second, "How long to keep printing snapshot updates")
	flag.Parse()

	if *requestID == "" {
		log.Fatal("-request is required")
	}
	if *token == "" {
		log.Fatal("-token or RENTMATE_TOKEN is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	tokenSource := func() string { return *token }
	client := httpapi.NewClient(cfg.Client.APIBaseURL, httpapi.WithTokenSource(tokenSource))
	tokens := identity.NewTokenManager(cfg.JWT.Secret)

	controller := lifecycle.NewController(
		*requestID,
		httpapi.NewRequestService(client),
		httpapi.NewTransactionService(client),
		httpapi.NewItemService(client),
		identity.NewViewerResolver(tokens, tokenSource),
		lifecycle.WithPollInterval(cfg.PollInterval()),
	)
	defer controller.Close()

	ctx := context.Background()
	controller.Load(ctx)

	if *command != "" {
		if err := issue(ctx, controller, *command); err != nil {
			logger.Error("Command failed", "command", *command, "error", err)
		}
	}

	deadline := time.After(*watch)
	for {
		select {
		case st, ok := <-controller.Updates():
			if !ok {
				return
			}
			printState(st)
			if st.Phase == lifecycle.PhaseSuccess && !controller.PollerRunning() && *command == "" {
				return
			}
		case <-deadline:
			return
		}
	}
}

func issue(ctx context.Context, c *lifecycle.Controller, command string) error {
	switch command {
	case "confirm":
		return c.OwnerConfirmRequest(ctx)
	case "reject":
		return c.OwnerReject(ctx)
	case "confirm-cash":
		return c.OwnerConfirmCashPayment(ctx)
	case "complete":
		return c.OwnerComplete(ctx)
	case "confirm-pickup":
		return c.RenterConfirmPickup(ctx)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func printState(st lifecycle.SessionState) {
	switch st.Phase {
	case lifecycle.PhaseLoading:
		fmt.Println("… loading")
	case lifecycle.PhaseError:
		fmt.Printf("✗ error: %s (retryable=%v)\n", st.ErrorMessage, st.CanRetry)
	case lifecycle.PhaseSuccess:
		d := st.Details
		fmt.Printf("✓ step=%s status=%s", d.Step, d.Request.Status)
		if d.Transaction != nil {
			fmt.Printf(" payment=%s/%s", d.Transaction.PaymentMethod, d.Transaction.PaymentStatus)
		}
		if !st.Capabilities.CanProgress {
			fmt.Printf(" blocked=%q", st.Capabilities.BlockedReason)
		}
		if st.ErrorMessage != "" {
			fmt.Printf(" warning=%q", st.ErrorMessage)
		}
		fmt.Println()
	}
}
