package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dspetrov/docvault/internal/common"
	"github.com/dspetrov/docvault/internal/models"
)

// Save reads the document body interactively and stores it. Title and file
// type come from the arguments when given, otherwise they are prompted for.
// Usage: save [<title> <DOC|PDF|TXT|IMG>]
func (a *App) Save(ctx context.Context, args []string) {
	var title string
	var fileType models.FileType

	switch len(args) {
	case 2:
		title = args[0]
		fileType = models.FileType(args[1])
	case 0:
		var err error
		title, err = GetSimpleText(a.reader, "Title:", os.Stdout)
		if err != nil {
			fmt.Printf("Input error: %v\n", err)
			return
		}
		ft, err := GetSimpleText(a.reader, "File type (DOC|PDF|TXT|IMG):", os.Stdout)
		if err != nil {
			fmt.Printf("Input error: %v\n", err)
			return
		}
		fileType = models.FileType(ft)
	default:
		fmt.Println("Usage: save [<title> <DOC|PDF|TXT|IMG>]")
		return
	}

	content, err := GetMultiline(a.reader, "Document content:", os.Stdout)
	if err != nil {
		fmt.Printf("Input error: %v\n", err)
		return
	}

	err = a.store.SaveDocument(ctx, title, content, fileType)
	switch {
	case errors.Is(err, common.ErrDuplicateTitle):
		fmt.Printf("A document titled %q already exists\n", title)
	case errors.Is(err, common.ErrInvalidFileType):
		fmt.Println("File type must be one of DOC, PDF, TXT, IMG")
	case err != nil:
		fmt.Println("Save failed")
	default:
		fmt.Printf("Saved %q\n", title)
	}
}

// Get fetches, decrypts and prints one document by id.
func (a *App) Get(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: get <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Usage: get <id>")
		return
	}

	doc, err := a.store.GetDocument(ctx, id)
	switch {
	case errors.Is(err, common.ErrNotFound):
		fmt.Printf("No document with id %d\n", id)
	case errors.Is(err, common.ErrTamperDetected):
		fmt.Printf("Document %d failed integrity verification; see audit log\n", id)
	case err != nil:
		fmt.Println("Fetch failed")
	default:
		fmt.Printf("[%d] %s (%s, %s)\n%s\n", doc.ID, doc.Title, doc.FileType, doc.CreatedAt.Format("2006-01-02 15:04:05"), doc.Content)
	}
}

// Search lists documents whose title contains the keyword.
func (a *App) Search(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: search <keyword>")
		return
	}

	results := a.store.SearchDocuments(ctx, args[0])
	if len(results) == 0 {
		fmt.Println("No matches")
		return
	}
	for _, r := range results {
		fmt.Printf("[%d] %s\n", r.ID, r.Title)
	}
}

// Audit prints recent audit events, optionally filtered by event type.
func (a *App) Audit(ctx context.Context, args []string) {
	eventType := ""
	if len(args) > 0 {
		eventType = args[0]
	}

	events, err := a.store.RecentAuditEvents(ctx, eventType, 20)
	if err != nil {
		fmt.Println("Audit read failed")
		return
	}
	if len(events) == 0 {
		fmt.Println("No audit events")
		return
	}
	for _, e := range events {
		fmt.Printf("[%d] %s %s %s\n", e.ID, e.Timestamp.Format("2006-01-02 15:04:05"), e.EventType, e.Details)
	}
}
