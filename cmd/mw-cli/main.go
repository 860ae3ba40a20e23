package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/peterkuimelis/magicwound/internal/game"
	"github.com/peterkuimelis/magicwound/internal/log"
	mwnet "github.com/peterkuimelis/magicwound/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "host":
		runHost(os.Args[2:])
	case "join":
		runJoin(os.Args[2:])
	case "decks":
		runDecks(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  mw-cli host   [--deck N] [--port P] [--decks FILE] [--name NAME]")
	fmt.Println("  mw-cli join   [--deck N] [--addr ADDR] [--decks FILE] [--name NAME]")
	fmt.Println("  mw-cli decks  [--decks FILE]")
	fmt.Println("  mw-cli decode CODE")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Wait for an opponent and play as Player 1")
	fmt.Println("  join    Connect to a host and play as Player 2")
	fmt.Println("  decks   List the decks in the decks file with their share codes")
	fmt.Println("  decode  Show the contents of a deck share code")
}

func runHost(args []string) {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	deck := fs.Int("deck", 1, "deck number to use (from the decks file)")
	port := fs.String("port", mwnet.DefaultPort, "TCP port to listen on")
	decksFile := fs.String("decks", "decks.yaml", "path to decks file")
	name := fs.String("name", "Player 1", "display name sent to the opponent")
	fs.Parse(args)

	catalog := game.NewCatalog()
	mine, err := game.DeckByNumber(*decksFile, *deck, catalog)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Waiting for opponent on port %s...\n", *port)
	sess, err := mwnet.Host(*port)
	if err != nil {
		fatal(err)
	}
	defer sess.Close()

	peer := sess.Handshake(*name)
	fmt.Printf("Opponent connected: %s\n", peer)

	theirs, err := mwnet.ExchangeDecks(sess, mine, catalog)
	if err != nil {
		fatal(err)
	}
	seed, err := mwnet.SignalStart(sess)
	if err != nil {
		fatal(err)
	}

	battle, err := game.NewBattle(game.BattleConfig{
		Deck0:   mine,
		Deck1:   theirs,
		Name0:   *name,
		Name1:   peer,
		Catalog: catalog,
		Logger:  log.NewTextLogger(os.Stdout),
		Seed:    seed,
	})
	if err != nil {
		fatal(err)
	}
	battle.Start()
	runBattleLoop(battle, sess, 0)
}

func runJoin(args []string) {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	deck := fs.Int("deck", 1, "deck number to use (from the decks file)")
	addr := fs.String("addr", "localhost:"+mwnet.DefaultPort, "host address to connect to")
	decksFile := fs.String("decks", "decks.yaml", "path to decks file")
	name := fs.String("name", "Player 2", "display name sent to the opponent")
	fs.Parse(args)

	catalog := game.NewCatalog()
	mine, err := game.DeckByNumber(*decksFile, *deck, catalog)
	if err != nil {
		fatal(err)
	}

	sess, err := mwnet.Dial(*addr)
	if err != nil {
		fatal(err)
	}
	defer sess.Close()

	peer := sess.Handshake(*name)
	fmt.Printf("Connected to %s\n", peer)

	theirs, err := mwnet.ExchangeDecks(sess, mine, catalog)
	if err != nil {
		fatal(err)
	}
	seed, err := mwnet.AwaitStart(sess)
	if err != nil {
		fatal(err)
	}

	battle, err := game.NewBattle(game.BattleConfig{
		Deck0:   theirs,
		Deck1:   mine,
		Name0:   peer,
		Name1:   *name,
		Catalog: catalog,
		Logger:  log.NewTextLogger(os.Stdout),
		Seed:    seed,
	})
	if err != nil {
		fatal(err)
	}
	battle.Start()
	runBattleLoop(battle, sess, 1)
}

func runDecks(args []string) {
	fs := flag.NewFlagSet("decks", flag.ExitOnError)
	decksFile := fs.String("decks", "decks.yaml", "path to decks file")
	fs.Parse(args)

	catalog := game.NewCatalog()
	decks, err := game.ParseDeckFile(*decksFile, catalog)
	if err != nil {
		fatal(err)
	}
	for i, d := range decks {
		valid := ""
		if !d.Valid() {
			valid = "  (incomplete)"
		}
		fmt.Printf("%d. %s [%s] %d cards%s\n", i+1, d.Name, d.Type, len(d.Cards), valid)
		fmt.Printf("   code: %s\n", d.Code)
	}
}

func runDecode(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mw-cli decode CODE")
		os.Exit(1)
	}
	catalog := game.NewCatalog()
	d, err := game.DeckFromCode(args[0], catalog)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s [%s]\n", d.Name, d.Type)
	fmt.Println("Characters:")
	for _, ch := range d.Characters {
		fmt.Printf("  %s\n", ch.Name)
	}
	fmt.Println("Cards:")
	for _, c := range d.Cards {
		fmt.Printf("  %s (cost %d)\n", c.Name, c.Cost)
	}
}

// runBattleLoop is the local REPL: one goroutine replays the opponent's
// moves as they arrive, the main loop reads commands from stdin. The battle
// is shared, so every touch goes through the mutex.
func runBattleLoop(battle *game.Battle, sess *mwnet.Session, localPlayer int) {
	var mu sync.Mutex
	applier := mwnet.NewApplier(battle, sess, battle.Opponent(localPlayer))
	applier.OnEmote = func(text string) {
		fmt.Printf("<< %s\n", text)
	}

	go func() {
		for {
			msg, ok := sess.Recv()
			if !ok {
				mu.Lock()
				over := battle.Over
				mu.Unlock()
				if !over {
					fmt.Println("Opponent disconnected.")
				}
				return
			}
			mu.Lock()
			if err := applier.Apply(msg); err != nil {
				fmt.Printf("desync: %v\n", err)
			}
			mu.Unlock()
		}
	}()

	fmt.Println("Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		mu.Lock()
		over := battle.Over
		mu.Unlock()
		if over {
			break
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printBattleHelp()
		case "hand":
			mu.Lock()
			printHand(battle.Players[localPlayer])
			mu.Unlock()
		case "board":
			mu.Lock()
			printBoard(battle, localPlayer)
			mu.Unlock()
		case "play":
			doPlay(battle, applier, &mu, localPlayer, fields[1:])
		case "end":
			mu.Lock()
			err := battle.EndTurn(localPlayer)
			mu.Unlock()
			if err != nil {
				fmt.Printf("cannot end turn: %v\n", err)
				continue
			}
			if err := applier.SendEndTurn(); err != nil {
				fmt.Printf("send failed: %v\n", err)
			}
		case "emoji":
			if len(fields) < 2 {
				fmt.Println("Usage: emoji TEXT")
				continue
			}
			if err := applier.SendEmote(strings.Join(fields[1:], " ")); err != nil {
				fmt.Printf("send failed: %v\n", err)
			}
		case "quit":
			sess.Close()
			return
		default:
			fmt.Printf("unknown command %q (try 'help')\n", fields[0])
		}
	}

	mu.Lock()
	defer mu.Unlock()
	switch {
	case battle.Winner == localPlayer:
		fmt.Printf("You win! %s\n", battle.Result)
	case battle.Winner >= 0:
		fmt.Printf("You lose. %s\n", battle.Result)
	case battle.Over:
		fmt.Printf("Draw. %s\n", battle.Result)
	}
}

func printBattleHelp() {
	fmt.Println("Commands:")
	fmt.Println("  hand                  Show your hand")
	fmt.Println("  board                 Show the board")
	fmt.Println("  play H A T            Play hand card H with actor slot A at target T ('B' or enemy slot)")
	fmt.Println("  end                   End your turn")
	fmt.Println("  emoji TEXT            Send an emote")
	fmt.Println("  quit                  Concede and disconnect")
}

func printHand(p *game.PlayerState) {
	for i, c := range p.Hand {
		free := ""
		if c.HasElement(game.ElementPhysical) {
			free = " (free)"
		}
		fmt.Printf("  [%d] %s  cost %d%s  %s\n", i, c.Name, c.Cost, free, c.Description)
	}
	if len(p.Hand) == 0 {
		fmt.Println("  (empty)")
	}
}

func printBoard(b *game.Battle, localPlayer int) {
	for _, side := range []int{b.Opponent(localPlayer), localPlayer} {
		p := b.Players[side]
		label := "They"
		if side == localPlayer {
			label = "You"
		}
		fmt.Printf("%s: %s  base %d HP, %d mana\n", label, p.Name, p.BaseHP, p.BaseMana)
		for i, cs := range p.Chars {
			pos := fmt.Sprintf("slot %d", i)
			if i == game.ReserveSlot {
				pos = "reserve"
			}
			status := fmt.Sprintf("%d HP", cs.HP)
			if cs.Character.IsMage() {
				status += fmt.Sprintf(", %d energy", cs.Energy)
			}
			if !cs.Alive() {
				status = "down"
			}
			fmt.Printf("  %-8s %s (%s)\n", pos, cs.Character.Name, status)
		}
	}
	turn := "their turn"
	if b.TurnPlayer == localPlayer {
		turn = "your turn"
	}
	fmt.Printf("Turn %d, %s\n", b.Turn, turn)
}

func doPlay(battle *game.Battle, applier *mwnet.Applier, mu *sync.Mutex, localPlayer int, args []string) {
	if len(args) != 3 {
		fmt.Println("Usage: play HAND ACTOR TARGET")
		return
	}
	handIndex, err1 := strconv.Atoi(args[0])
	actorSlot, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("HAND and ACTOR must be numbers")
		return
	}
	target, err := mwnet.DecodeTarget(args[2])
	if err != nil {
		fmt.Println("TARGET must be 'B' or an enemy slot number")
		return
	}

	mu.Lock()
	me := battle.Players[localPlayer]
	if err := battle.CanPlay(localPlayer, handIndex, actorSlot); err != nil {
		if err != game.ErrCannotAfford {
			mu.Unlock()
			fmt.Printf("cannot play: %v\n", err)
			return
		}
		fmt.Println("warning: cost exceeds energy and mana, the remainder comes out of the actor's life")
	}
	cardID := me.Hand[handIndex].ID
	err = battle.PlayCard(localPlayer, handIndex, actorSlot, target)
	mu.Unlock()
	if err != nil {
		fmt.Printf("cannot play: %v\n", err)
		return
	}
	if err := applier.SendPlay(cardID, actorSlot, target); err != nil {
		fmt.Printf("send failed: %v\n", err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
