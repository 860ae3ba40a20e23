package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/magicwound/internal/game"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// decksFile is the path to the decks YAML file, set by main.
var decksFile string

// port is the TCP port the human player joins on, set by main.
var port string

// catalog is the shared card catalog, set by main.
var catalog *game.Catalog

// SetDecksFile sets the path to the decks YAML file.
func SetDecksFile(path string) {
	decksFile = path
}

// SetPort sets the TCP port the human player joins on.
func SetPort(p string) {
	port = p
}

// SetCatalog sets the card catalog.
func SetCatalog(c *game.Catalog) {
	catalog = c
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(hostGameTool(), handleHostGame)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(playCardTool(), handlePlayCard)
	s.AddTool(endTurnTool(), handleEndTurn)
	s.AddTool(sendEmojiTool(), handleSendEmoji)
}

// --- Tool definitions ---

func hostGameTool() mcp.Tool {
	return mcp.NewTool("host_game",
		mcp.WithDescription("Host a MagicWound battle and wait for the human opponent. "+
			"The human connects via `mw-cli join --addr localhost:<port> --deck N` in a separate terminal. "+
			"This call blocks until they connect. You play as the host and move first."),
		mcp.WithNumber("deck", mcp.Required(), mcp.Description("Your deck number (1-indexed from decks.yaml)")),
		mcp.WithString("name", mcp.Description("Display name sent to the opponent (default 'Claude')")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current battle state plus events and emotes since the last call. Read-only. "+
			"Call this to see whether the opponent has moved."),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from your hand. Costs drain the actor's energy (mages), then base mana, "+
			"then the actor's life. Pure Physical cards are free but any character can use them; "+
			"other cards need a mage actor."),
		mcp.WithNumber("hand_index", mcp.Required(), mcp.Description("0-based index into your hand")),
		mcp.WithNumber("actor_slot", mcp.Required(), mcp.Description("Which of your active characters acts: 0 or 1")),
		mcp.WithString("target", mcp.Required(), mcp.Description("'B' for the enemy base, or '0'/'1' for an enemy active slot")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn and hand control to the opponent."),
	)
}

func sendEmojiTool() mcp.Tool {
	return mcp.NewTool("send_emoji",
		mcp.WithDescription("Send an emote to the opponent. Cosmetic only."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The emote text")),
	)
}

// --- Tool handlers ---

func handleHostGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A battle is already running. Only one battle at a time is supported."), nil
	}

	deckNumber := request.GetInt("deck", 0)
	if deckNumber < 1 {
		return mcp.NewToolResultError("deck must be >= 1"), nil
	}
	name := request.GetString("name", "Claude")

	sess, err := NewGameSession(decksFile, deckNumber, name, port, catalog)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to host battle: %v", err), nil
	}
	activeSession = sess

	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No battle is running. Use host_game first."), nil
	}
	resp := sess.snapshot()
	if resp.GameOver {
		activeSession = nil
		sess.Close()
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No battle is running. Use host_game first."), nil
	}

	handIndex := request.GetInt("hand_index", -1)
	actorSlot := request.GetInt("actor_slot", -1)
	targetStr := request.GetString("target", "")

	sess.mu.Lock()
	target, err := decodeTarget(targetStr)
	if err != nil {
		sess.mu.Unlock()
		return mcp.NewToolResultErrorf("Bad target %q: use 'B', '0' or '1'.", targetStr), nil
	}

	var cardID string
	if handIndex >= 0 && handIndex < len(sess.battle.Players[sess.localPlayer].Hand) {
		cardID = sess.battle.Players[sess.localPlayer].Hand[handIndex].ID
	}
	err = sess.battle.PlayCard(sess.localPlayer, handIndex, actorSlot, target)
	sess.mu.Unlock()
	if err != nil {
		return mcp.NewToolResultErrorf("Play rejected: %v", err), nil
	}

	if err := sess.applier.SendPlay(cardID, actorSlot, target); err != nil {
		return mcp.NewToolResultErrorf("Play applied locally but not delivered: %v", err), nil
	}

	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

func handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No battle is running. Use host_game first."), nil
	}

	sess.mu.Lock()
	err := sess.battle.EndTurn(sess.localPlayer)
	sess.mu.Unlock()
	if err != nil {
		return mcp.NewToolResultErrorf("End turn rejected: %v", err), nil
	}
	if err := sess.applier.SendEndTurn(); err != nil {
		return mcp.NewToolResultErrorf("Turn ended locally but not delivered: %v", err), nil
	}

	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

func handleSendEmoji(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No battle is running. Use host_game first."), nil
	}

	text := request.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("text must not be empty"), nil
	}
	if err := sess.applier.SendEmote(text); err != nil {
		return mcp.NewToolResultErrorf("Emote not delivered: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

func decodeTarget(s string) (game.Target, error) {
	switch s {
	case "B", "b":
		return game.TargetBase(), nil
	case "0":
		return game.TargetSlot(0), nil
	case "1":
		return game.TargetSlot(1), nil
	}
	return game.Target{}, game.ErrBadTarget
}
