package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"deckforge/database"
	"deckforge/slides"
)

const usageText = `deckforge - conversational deck builder

Usage:
  deckforge create -title <title> [-owner <name>] [-objective <text>] [-brand <kit-id>]
  deckforge list
  deckforge import -deck <id> -in <slides.json>
  deckforge chat -deck <id> -m <message>
  deckforge export -deck <id>
  deckforge export -in <slides.json> [-title <title>] [-brand <kit-id>] [-out <file.pptx>]
  deckforge templates
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	// Template listing needs no services at all.
	if os.Args[1] == "templates" {
		runTemplates()
		return
	}

	app := NewApp()
	ctx := context.Background()
	if err := app.Startup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer app.Shutdown()

	var err error
	switch os.Args[1] {
	case "create":
		err = runCreate(app, os.Args[2:])
	case "list":
		err = runList(app)
	case "import":
		err = runImport(app, os.Args[2:])
	case "chat":
		err = runChat(app, ctx, os.Args[2:])
	case "export":
		err = runExport(app, ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCreate(app *App, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "deck title")
	owner := fs.String("owner", "", "deck owner")
	objective := fs.String("objective", "", "deck objective")
	brand := fs.String("brand", "", "brand kit id")
	fs.Parse(args)

	rec, err := app.DeckFacade.CreateDeck(*title, *owner, database.DeckMeta{
		Objective:  *objective,
		BrandKitID: *brand,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created deck %s\n", rec.ID)
	return nil
}

func runList(app *App) error {
	recs, err := app.DeckFacade.ListDecks()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No decks yet.")
		return nil
	}
	for _, rec := range recs {
		updated := time.UnixMilli(rec.UpdatedAt).Format("2006-01-02 15:04")
		fmt.Printf("%s  %-30q  %-15s  %d slides  updated %s\n",
			rec.ID, rec.Title, rec.Status, len(rec.Slides), updated)
	}
	return nil
}

func runImport(app *App, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	deckID := fs.String("deck", "", "deck id")
	in := fs.String("in", "", "slides JSON file")
	fs.Parse(args)

	if *deckID == "" || *in == "" {
		return fmt.Errorf("import requires -deck and -in")
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	deck, err := app.DeckFacade.ImportSlides(data)
	if err != nil {
		return err
	}

	rec, err := app.DeckFacade.GetDeck(*deckID)
	if err != nil {
		return err
	}
	rec.Slides = deck
	if _, err := app.DeckFacade.SaveDeck(*rec); err != nil {
		return err
	}
	fmt.Printf("Imported %d slides into deck %s\n", len(deck), *deckID)
	return nil
}

func runChat(app *App, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	deckID := fs.String("deck", "", "deck id")
	message := fs.String("m", "", "message to the assistant")
	fs.Parse(args)

	if *deckID == "" || *message == "" {
		return fmt.Errorf("chat requires -deck and -m")
	}
	reply, err := app.Chat.SendMessage(ctx, *deckID, *message)
	if err != nil {
		return err
	}
	fmt.Printf("[%s] %s\n", reply.Strategy, reply.Content)
	return nil
}

func runExport(app *App, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	deckID := fs.String("deck", "", "deck id to export from the store")
	in := fs.String("in", "", "slides JSON file to export directly")
	title := fs.String("title", "Untitled Deck", "deck title for file exports")
	brand := fs.String("brand", "", "brand kit id for file exports")
	out := fs.String("out", "", "output .pptx path")
	fs.Parse(args)

	switch {
	case *deckID != "":
		path, err := app.ExportFacade.ExportDeck(ctx, *deckID)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	case *in != "":
		data, err := os.ReadFile(*in)
		if err != nil {
			return err
		}
		deck, err := app.DeckFacade.ImportSlides(data)
		if err != nil {
			return err
		}
		path, err := app.ExportFacade.ExportFile(ctx, deck, *title, *out, *brand)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	default:
		return fmt.Errorf("export requires -deck or -in")
	}
	return nil
}

func runTemplates() {
	for _, tpl := range slides.Templates {
		fmt.Printf("%-12s  %-16s  %s\n", tpl.ID, tpl.Layout, tpl.Description)
	}
}
