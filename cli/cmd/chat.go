package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ponyo877/kieru/domain"
	"github.com/ponyo877/kieru/usecase"
)

// runChatUI enters the room view: a header with occupant count and the
// expiry countdown, the message timeline, and an input line. It returns
// when the session exits (user leaves, room expires, or the UI fails).
func runChatUI(roomName, userName string) error {
	app := tview.NewApplication()

	header := tview.NewTextView().
		SetDynamicColors(true)

	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true).
		SetScrollable(true).
		ScrollToEnd()

	inputField := tview.NewInputField().
		SetLabel(userName + " ❯❯ ").
		SetFieldWidth(0).
		SetAcceptanceFunc(tview.InputFieldMaxLength(500))

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(textView, 0, 1, false).
		AddItem(inputField, 1, 0, true)

	app.SetRoot(flex, true).SetFocus(inputField)

	// Header state only ever touched on the tview thread.
	occupantCount := 0
	countdownText := ""
	updateHeader := func() {
		header.SetText(fmt.Sprintf("[green]%s[white]  %d online  [yellow]%s", roomName, occupantCount, countdownText))
	}
	updateHeader()

	dial := func(ctx context.Context, room, user string) (usecase.Conn, error) {
		return wsDialer.Dial(ctx, room, user)
	}
	sess := usecase.NewRoomSession(roomClient, dial, roomName, userName)

	sess.OnEntry = func(entry domain.TimelineEntry) {
		app.QueueUpdateDraw(func() {
			printEntry(textView, entry)
			textView.ScrollToEnd()
		})
	}
	sess.OnOccupants = func(users []string) {
		app.QueueUpdateDraw(func() {
			occupantCount = len(users)
			updateHeader()
		})
	}
	sess.OnCountdown = func(display string, expired bool) {
		app.QueueUpdateDraw(func() {
			countdownText = display
			updateHeader()
		})
		if expired {
			// Grace window before the forced exit. Expiry policy lives
			// here, not in the countdown itself.
			time.AfterFunc(2*time.Second, func() {
				sess.Exit(context.Background())
			})
		}
	}
	sess.OnState = func(state domain.ConnectionState) {
		if state == domain.StateClosed {
			app.QueueUpdateDraw(func() {
				fmt.Fprintln(textView, "[red]Disconnected from room.")
			})
		}
	}
	sess.OnExit = func() {
		app.Stop()
	}

	startCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	err := sess.Start(startCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("enter room: %w", err)
	}

	fmt.Fprintf(textView, "[green]Welcome to %s! You are %s. (Ctrl+C to exit, /image <path> to share an image)\n", roomName, userName)

	inputField.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := strings.TrimSpace(inputField.GetText())
		if text == "" {
			return
		}
		inputField.SetText("")

		switch {
		case text == "/exit":
			go sess.Exit(context.Background())
		case text == "/users":
			users := sess.Occupants()
			fmt.Fprintf(textView, "[yellow]%d online: %s\n", len(users), strings.Join(users, ", "))
		case strings.HasPrefix(text, "/image "):
			sendImageFile(sess, textView, strings.TrimSpace(strings.TrimPrefix(text, "/image ")))
		default:
			if err := sess.SendText(text); err != nil {
				fmt.Fprintf(textView, "[red]Failed to send message: %v\n", err)
			}
		}
	})

	// Leave on Ctrl+C; Exit stops the app through OnExit.
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			go sess.Exit(context.Background())
			return nil
		}
		return event
	})

	if err := app.Run(); err != nil {
		sess.Exit(context.Background())
		return err
	}
	return nil
}

func sendImageFile(sess *usecase.RoomSession, textView *tview.TextView, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(textView, "[red]Failed to read %s: %v\n", path, err)
		return
	}
	contentType := http.DetectContentType(data)
	if err := sess.SendImage(data, contentType); err != nil {
		fmt.Fprintf(textView, "[red]Attachment rejected (%v): %s\n", err, path)
		return
	}
	fmt.Fprintf(textView, "[yellow]Sending %s...\n", filepath.Base(path))
}

func printEntry(w io.Writer, entry domain.TimelineEntry) {
	switch entry.Kind {
	case domain.EntryPresence:
		fmt.Fprintf(w, "[yellow]%s\n", entry.Content)
	case domain.EntryImage:
		fmt.Fprintf(w, "[white][%s] [blue]%s[white] sent an image\n", formatClock(entry.Timestamp), entry.Sender)
	default:
		fmt.Fprintf(w, "[white][%s] [blue]%s[white]: %s\n", formatClock(entry.Timestamp), entry.Sender, entry.Content)
	}
}

func formatClock(timestamp string) string {
	if ts, err := time.Parse(time.RFC3339, timestamp); err == nil {
		return ts.Local().Format("15:04:05")
	}
	return timestamp
}
