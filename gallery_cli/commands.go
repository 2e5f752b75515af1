package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"eventgallery/client"
	"eventgallery/types"
)

func (a *App) cmdRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fullName := fs.String("name", "", "full name (optional)")
	fs.Parse(args)

	err := a.store.Register(types.RegisterRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
		FullName: *fullName,
	})
	if err != nil {
		return err
	}
	user := a.store.CurrentUser()
	fmt.Printf("Registered and signed in as %s (%s)\n", user.Username, user.Email)
	return nil
}

func (a *App) cmdLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	if err := a.store.Login(types.LoginRequest{Email: *email, Password: *password}); err != nil {
		return err
	}
	user := a.store.CurrentUser()
	fmt.Printf("Signed in as %s (%s)\n", user.Username, user.Email)
	return nil
}

func (a *App) cmdLogout() error {
	if err := a.store.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

func (a *App) cmdWhoami() error {
	if err := a.store.Refresh(); err != nil {
		return fmt.Errorf("not signed in: %w", err)
	}
	user := a.store.CurrentUser()
	if user == nil {
		fmt.Println("Not signed in")
		return nil
	}
	fmt.Printf("%s <%s> (id %s)\n", user.Username, user.Email, user.ID)
	return nil
}

func (a *App) cmdEvents(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	page := fs.Int("page", 1, "page")
	limit := fs.Int("limit", 12, "page size")
	searchTerm := fs.String("search", "", "filter by name")
	sortBy := fs.String("sort", "", "sort field")
	order := fs.String("order", "", "asc or desc")
	fs.Parse(args)

	resp, err := a.api.ListEvents(types.EventFilters{
		Page: *page, Limit: *limit, Search: *searchTerm,
		SortBy: *sortBy, SortOrder: *order,
	})
	if err != nil {
		return err
	}
	for _, ev := range resp.Data {
		printEventLine(ev)
	}
	printMeta(resp.Meta)
	return nil
}

func (a *App) cmdEvent(args []string) error {
	fs := flag.NewFlagSet("event", flag.ExitOnError)
	id := fs.String("id", "", "event id")
	fs.Parse(args)

	ev, err := a.api.GetEvent(*id)
	if err != nil {
		return err
	}
	printEventLine(*ev)
	if ev.Description != nil {
		fmt.Println(" ", *ev.Description)
	}
	if ev.InviteCode != nil {
		fmt.Println("  invite code:", *ev.InviteCode)
	}
	return nil
}

func eventUploadFlags(fs *flag.FlagSet) (name, description, location, start, end, private, cover *string) {
	name = fs.String("name", "", "event name")
	description = fs.String("description", "", "description")
	location = fs.String("location", "", "location")
	start = fs.String("start", "", "start date (RFC3339)")
	end = fs.String("end", "", "end date (RFC3339)")
	private = fs.String("private", "", "true or false")
	cover = fs.String("cover", "", "cover image path")
	return
}

func buildEventUpload(name, description, location, start, end, private, cover string) (client.EventUpload, func(), error) {
	upload := client.EventUpload{
		Name:        name,
		Description: description,
		Location:    location,
		StartDate:   start,
		EndDate:     end,
	}
	cleanup := func() {}
	if private != "" {
		isPrivate := private == "true"
		upload.IsPrivate = &isPrivate
	}
	if cover != "" {
		f, err := os.Open(cover)
		if err != nil {
			return upload, cleanup, err
		}
		cleanup = func() { f.Close() }
		upload.CoverImage = &client.FileUpload{Name: filepath.Base(cover), Reader: f}
	}
	return upload, cleanup, nil
}

func (a *App) cmdCreateEvent(args []string) error {
	fs := flag.NewFlagSet("create-event", flag.ExitOnError)
	name, description, location, start, end, private, cover := eventUploadFlags(fs)
	fs.Parse(args)

	upload, cleanup, err := buildEventUpload(*name, *description, *location, *start, *end, *private, *cover)
	if err != nil {
		return err
	}
	defer cleanup()

	ev, err := a.api.CreateEvent(upload)
	if err != nil {
		return err
	}
	fmt.Println("Created event", ev.ID)
	if ev.InviteCode != nil {
		fmt.Println("Invite code:", *ev.InviteCode)
	}
	return nil
}

func (a *App) cmdUpdateEvent(args []string) error {
	fs := flag.NewFlagSet("update-event", flag.ExitOnError)
	id := fs.String("id", "", "event id")
	name, description, location, start, end, private, cover := eventUploadFlags(fs)
	fs.Parse(args)

	upload, cleanup, err := buildEventUpload(*name, *description, *location, *start, *end, *private, *cover)
	if err != nil {
		return err
	}
	defer cleanup()

	ev, err := a.api.UpdateEvent(*id, upload)
	if err != nil {
		return err
	}
	fmt.Println("Updated event", ev.ID)
	return nil
}

func (a *App) cmdDeleteEvent(args []string) error {
	fs := flag.NewFlagSet("delete-event", flag.ExitOnError)
	id := fs.String("id", "", "event id")
	fs.Parse(args)

	if err := a.api.DeleteEvent(*id); err != nil {
		return err
	}
	fmt.Println("Deleted event", *id)
	return nil
}

func (a *App) cmdJoin(args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	id := fs.String("id", "", "event id")
	fs.Parse(args)

	result, err := a.api.JoinEvent(*id)
	if err != nil {
		return err
	}
	fmt.Println(result.Message, "-", result.Event.Name)
	return nil
}

func (a *App) cmdJoinCode(args []string) error {
	fs := flag.NewFlagSet("join-code", flag.ExitOnError)
	code := fs.String("code", "", "invite code")
	fs.Parse(args)

	result, err := a.api.JoinEventByCode(*code)
	if err != nil {
		return err
	}
	fmt.Println(result.Message, "-", result.Event.Name)
	return nil
}

func (a *App) cmdLeave(args []string) error {
	fs := flag.NewFlagSet("leave", flag.ExitOnError)
	id := fs.String("id", "", "event id")
	fs.Parse(args)

	if err := a.api.LeaveEvent(*id); err != nil {
		return err
	}
	fmt.Println("Left event", *id)
	return nil
}

func (a *App) cmdParticipants(args []string) error {
	fs := flag.NewFlagSet("participants", flag.ExitOnError)
	id := fs.String("id", "", "event id")
	fs.Parse(args)

	participants, err := a.api.EventParticipants(*id)
	if err != nil {
		return err
	}
	for _, p := range participants {
		fmt.Printf("%s (joined %s)\n", p.User.Username, p.JoinedAt)
	}
	return nil
}

func (a *App) cmdEventStats(args []string) error {
	fs := flag.NewFlagSet("event-stats", flag.ExitOnError)
	id := fs.String("id", "", "event id")
	fs.Parse(args)

	stats, err := a.api.EventStatistics(*id)
	if err != nil {
		return err
	}
	fmt.Printf("images: %d  participants: %d  likes: %d  comments: %d\n",
		stats.ImageCount, stats.ParticipantCount, stats.LikeCount, stats.CommentCount)
	return nil
}

func (a *App) cmdFeatured(args []string) error {
	fs := flag.NewFlagSet("featured", flag.ExitOnError)
	limit := fs.Int("limit", 12, "number of images")
	fs.Parse(args)

	featured, err := a.api.Featured(*limit)
	if err != nil {
		return err
	}
	for _, img := range featured {
		printImageLine(img)
	}
	return nil
}

func (a *App) cmdFeed(args []string, feed string) error {
	fs := flag.NewFlagSet(feed, flag.ExitOnError)
	page := fs.Int("page", 1, "page")
	limit := fs.Int("limit", 12, "page size")
	fs.Parse(args)

	var resp *types.Paginated[types.GalleryImage]
	var err error
	if feed == "recent" {
		resp, err = a.api.Recent(*page, *limit)
	} else {
		resp, err = a.api.Popular(*page, *limit)
	}
	if err != nil {
		return err
	}
	for _, img := range resp.Data {
		printImageLine(img)
	}
	printMeta(resp.Meta)
	return nil
}

func (a *App) cmdStats() error {
	stats, err := a.api.GalleryStats()
	if err != nil {
		return err
	}
	fmt.Printf("events: %d  images: %d  users: %d  likes: %d  comments: %d\n",
		stats.TotalEvents, stats.TotalImages, stats.TotalUsers, stats.TotalLikes, stats.TotalComments)
	return nil
}

func (a *App) cmdImages(args []string) error {
	fs := flag.NewFlagSet("images", flag.ExitOnError)
	page := fs.Int("page", 1, "page")
	limit := fs.Int("limit", 12, "page size")
	eventID := fs.String("event", "", "filter by event id")
	userID := fs.String("user", "", "filter by uploader id")
	searchTerm := fs.String("search", "", "filter by title")
	fs.Parse(args)

	resp, err := a.api.ListImages(types.ImageFilters{
		Page: *page, Limit: *limit,
		EventID: *eventID, UserID: *userID, Search: *searchTerm,
	})
	if err != nil {
		return err
	}
	for _, img := range resp.Data {
		printImageLine(img)
	}
	printMeta(resp.Meta)
	return nil
}

func (a *App) cmdImage(args []string) error {
	fs := flag.NewFlagSet("image", flag.ExitOnError)
	id := fs.String("id", "", "image id")
	fs.Parse(args)

	detail, err := a.api.GetImage(*id)
	if err != nil {
		return err
	}
	printImageLine(detail.GalleryImage)
	fmt.Printf("  by %s, liked by me: %v\n", detail.User.Username, detail.IsLikedByCurrentUser)
	for _, comment := range detail.Comments {
		fmt.Printf("  [%s] %s: %s\n", comment.CreatedAt, comment.User.Username, comment.Content)
	}
	return nil
}

func (a *App) cmdUpload(args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	eventID := fs.String("event", "", "event id")
	path := fs.String("file", "", "image path")
	title := fs.String("title", "", "title (optional)")
	description := fs.String("description", "", "description (optional)")
	fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("image path is required")
	}
	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := a.api.UploadImage(client.ImageUpload{
		EventID:     *eventID,
		Title:       *title,
		Description: *description,
		Image:       &client.FileUpload{Name: filepath.Base(*path), Reader: f},
	})
	if err != nil {
		return err
	}
	fmt.Println(result.Message, "-", result.Image.ID)
	return nil
}

func (a *App) cmdDeleteImage(args []string) error {
	fs := flag.NewFlagSet("delete-image", flag.ExitOnError)
	id := fs.String("id", "", "image id")
	fs.Parse(args)

	if err := a.api.DeleteImage(*id); err != nil {
		return err
	}
	fmt.Println("Deleted image", *id)
	return nil
}

func (a *App) cmdLike(args []string) error {
	fs := flag.NewFlagSet("like", flag.ExitOnError)
	id := fs.String("id", "", "image id")
	fs.Parse(args)

	result, err := a.api.LikeImage(*id)
	if err != nil {
		return err
	}
	fmt.Printf("Liked, %d likes now\n", result.LikeCount)
	return nil
}

func (a *App) cmdUnlike(args []string) error {
	fs := flag.NewFlagSet("unlike", flag.ExitOnError)
	id := fs.String("id", "", "image id")
	fs.Parse(args)

	result, err := a.api.UnlikeImage(*id)
	if err != nil {
		return err
	}
	fmt.Printf("Unliked, %d likes now\n", result.LikeCount)
	return nil
}

func (a *App) cmdComment(args []string) error {
	fs := flag.NewFlagSet("comment", flag.ExitOnError)
	imageID := fs.String("image", "", "image id")
	content := fs.String("content", "", "comment text")
	fs.Parse(args)

	comment, err := a.api.CreateComment(*imageID, *content)
	if err != nil {
		return err
	}
	fmt.Println("Comment added", comment.ID)
	return nil
}

func (a *App) cmdEditComment(args []string) error {
	fs := flag.NewFlagSet("edit-comment", flag.ExitOnError)
	id := fs.String("id", "", "comment id")
	content := fs.String("content", "", "new text")
	fs.Parse(args)

	if _, err := a.api.UpdateComment(*id, *content); err != nil {
		return err
	}
	fmt.Println("Comment updated")
	return nil
}

func (a *App) cmdDeleteComment(args []string) error {
	fs := flag.NewFlagSet("delete-comment", flag.ExitOnError)
	id := fs.String("id", "", "comment id")
	fs.Parse(args)

	if err := a.api.DeleteComment(*id); err != nil {
		return err
	}
	fmt.Println("Comment deleted")
	return nil
}

func (a *App) cmdSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	q := fs.String("q", "", "search query")
	searchType := fs.String("type", "all", "all, events, images or users")
	page := fs.Int("page", 1, "page")
	limit := fs.Int("limit", 20, "page size")
	fs.Parse(args)

	results, err := a.api.Search(*q, client.SearchOptions{Type: *searchType, Page: *page, Limit: *limit})
	if err != nil {
		return err
	}
	for _, ev := range results.Events {
		fmt.Println("[event]", ev.ID, ev.Name)
	}
	for _, img := range results.Images {
		printImageLine(img)
	}
	for _, user := range results.Users {
		fmt.Println("[user] ", user.ID, user.Username)
	}
	return nil
}

func printEventLine(ev types.Event) {
	marker := " "
	if ev.IsPrivate {
		marker = "P"
	}
	fmt.Printf("[%s] %s  %s  (%d participants, %d images)\n",
		marker, ev.ID, ev.Name, ev.ParticipantCount, ev.ImageCount)
}

func printImageLine(img types.GalleryImage) {
	title := "(untitled)"
	if img.Title != nil {
		title = *img.Title
	}
	fmt.Printf("[image] %s  %s  (%d likes, %d comments)\n",
		img.ID, title, img.LikeCount, img.CommentCount)
}

func printMeta(meta types.PageMeta) {
	fmt.Printf("page %d of %d (%d total)\n", meta.Page, meta.TotalPages, meta.Total)
}
