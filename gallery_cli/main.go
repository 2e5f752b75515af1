package main

import (
	"fmt"
	"log"
	"os"

	"eventgallery/client"
	"eventgallery/config"
	"eventgallery/session"
)

// App wires the API client and the session store for the commands.
type App struct {
	api   *client.Client
	store *session.Store
}

func main() {
	config.LoadEnv()

	tokens, err := session.NewTokenFile()
	if err != nil {
		log.Fatalf("Failed to init token storage: %v", err)
	}
	api := client.New(config.APIBaseURL(), tokens)
	app := &App{api: api, store: session.NewStore(api, tokens)}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := app.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *App) run(command string, args []string) error {
	switch command {
	case "register":
		return a.cmdRegister(args)
	case "login":
		return a.cmdLogin(args)
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami()
	case "events":
		return a.cmdEvents(args)
	case "event":
		return a.cmdEvent(args)
	case "create-event":
		return a.cmdCreateEvent(args)
	case "update-event":
		return a.cmdUpdateEvent(args)
	case "delete-event":
		return a.cmdDeleteEvent(args)
	case "join":
		return a.cmdJoin(args)
	case "join-code":
		return a.cmdJoinCode(args)
	case "leave":
		return a.cmdLeave(args)
	case "participants":
		return a.cmdParticipants(args)
	case "event-stats":
		return a.cmdEventStats(args)
	case "featured":
		return a.cmdFeatured(args)
	case "recent":
		return a.cmdFeed(args, "recent")
	case "popular":
		return a.cmdFeed(args, "popular")
	case "stats":
		return a.cmdStats()
	case "images":
		return a.cmdImages(args)
	case "image":
		return a.cmdImage(args)
	case "upload":
		return a.cmdUpload(args)
	case "delete-image":
		return a.cmdDeleteImage(args)
	case "like":
		return a.cmdLike(args)
	case "unlike":
		return a.cmdUnlike(args)
	case "comment":
		return a.cmdComment(args)
	case "edit-comment":
		return a.cmdEditComment(args)
	case "delete-comment":
		return a.cmdDeleteComment(args)
	case "search":
		return a.cmdSearch(args)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Println("EventGallery CLI")
	fmt.Println()
	fmt.Println("Usage: gallery_cli <command> [flags]")
	fmt.Println()
	fmt.Println("Account:   register, login, logout, whoami")
	fmt.Println("Events:    events, event, create-event, update-event, delete-event,")
	fmt.Println("           join, join-code, leave, participants, event-stats")
	fmt.Println("Gallery:   featured, recent, popular, stats")
	fmt.Println("Images:    images, image, upload, delete-image, like, unlike")
	fmt.Println("Comments:  comment, edit-comment, delete-comment")
	fmt.Println("Search:    search")
}
