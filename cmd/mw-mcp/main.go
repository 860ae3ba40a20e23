package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/magicwound/internal/game"
	mwmcp "github.com/peterkuimelis/magicwound/internal/mcp"
	mwnet "github.com/peterkuimelis/magicwound/internal/net"
)

func main() {
	decks := flag.String("decks", "decks.yaml", "path to decks YAML file")
	port := flag.String("port", mwnet.DefaultPort, "TCP port the human opponent joins on")
	flag.Parse()

	mwmcp.SetDecksFile(*decks)
	mwmcp.SetPort(*port)
	mwmcp.SetCatalog(game.NewCatalog())

	s := server.NewMCPServer("magicwound", "1.0.0")
	mwmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
