// Command aetheris is a terminal client for the Aetheris tool server.
//
// Usage:
//
//	aetheris chat                 interactive streaming chat
//	aetheris ask <message>        one-shot streaming answer
//	aetheris tools list           list server tools
//	aetheris json format <glob>   format JSON files through the server
//	aetheris code gen <content>   generate a QR code or barcode
//	aetheris theme color purple   change the accent colour
//
// Configuration is read from ~/.aetheris/config.yaml. AETHERIS_BASE_URL
// overrides the configured server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(os.Getenv)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "aetheris: %v\n", err)
		stop()
		os.Exit(1)
	}
}
