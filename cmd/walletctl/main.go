// walletctl drives the verified-identity connect flow against a running
// gateway: it fetches a nonce, asks the local wallet agent to sign the
// challenge, submits the payload for verification and prints the resulting
// session.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/defai/walletgate/adapters/provider"
	"github.com/defai/walletgate/core"
	"github.com/defai/walletgate/ports"
	"github.com/defai/walletgate/wallet"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// noInjected is the injected-wallet port for a terminal: there is no
// browser wallet to reach.
type noInjected struct{}

func (noInjected) Connect(ctx context.Context) (*core.Account, error) {
	return nil, errors.New("no injected wallet available in a terminal session")
}
func (noInjected) Disconnect(ctx context.Context) error { return nil }
func (noInjected) Connected(ctx context.Context) bool { return false }

var _ ports.InjectedConnector = noInjected{}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	gatewayURL := envOr("GATEWAY_URL", "http://localhost:9000")
	agentURL := envOr("IDENTITY_AGENT_URL", "http://localhost:8686")

	auth, err := wallet.NewAuthClient(gatewayURL)
	if err != nil {
		log.Fatalf("Failed to create auth client: %v", err)
	}

	agent := provider.NewHTTPProvider(agentURL)
	reconciler := wallet.NewReconciler(noInjected{}, logger)
	controller := wallet.NewController(reconciler, noInjected{}, agent, auth, logger)

	// The agent may wait on user approval for a while, but not forever.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := controller.ConnectVerified(ctx); err != nil {
		fmt.Fprintln(os.Stderr, wallet.FailureMessage(err))
		os.Exit(1)
	}

	session := reconciler.Session()
	fmt.Printf("connected: %s via %s\n", session.Address, session.Connector)
}
