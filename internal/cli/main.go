package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Main(ctx context.Context) {

	fmt.Println("docvault (type 'help' for commands)")

	for {
		fmt.Print("docvault > ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: save <title> <DOC|PDF|TXT|IMG>, get <id>, search <keyword>, audit [event_type], exit")

		case "save":
			a.Save(ctx, args)
		case "get":
			a.Get(ctx, args)
		case "search":
			a.Search(ctx, args)
		case "audit":
			a.Audit(ctx, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}
	}
}
