// Command vtcoredemo spawns a shell under a pty, feeds its output into a
// vtcore.Emulator, and redraws the resulting screen to stdout every 200ms
// until the shell exits. It is a minimal host integrator: vtcore owns no I/O
// of its own, so something has to own the pty, the input loop, and the
// rendering, and this is the smallest program that does all three.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"

	"github.com/vtcore-project/vtcore"
)

func main() {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	cmd := exec.Command(shell)
	f, err := pty.Start(cmd)
	if err != nil {
		log.Fatalf("vtcoredemo: pty.Start: %v", err)
	}
	defer f.Close()

	term, err := vtcore.New(
		vtcore.WithSize(80, 24),
		vtcore.WithWriteCallback(f),
	)
	if err != nil {
		log.Fatalf("vtcoredemo: vtcore.New: %v", err)
	}
	_ = pty.Setsize(f, &pty.Winsize{Rows: 24, Cols: 80})

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 4096)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				term.Input(buf[:n])
			}
			if err != nil {
				if err != io.EOF {
					log.Printf("vtcoredemo: pty read: %v", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-done:
			break loop
		case <-ticker.C:
			render(term)
		}
	}
	render(term)

	_ = cmd.Wait()
}

// render draws the current screen content to stdout, one line per screen
// row, using Screen.Draw's cell-iteration contract.
func render(term *vtcore.Emulator) {
	screen := term.Screen()
	lines := make([]strings.Builder, screen.Height())

	err := screen.Draw(nil, nil, func(ctx any, cell vtcore.DrawCell) error {
		if len(cell.Runes) > 0 {
			lines[cell.Y].WriteString(string(cell.Runes))
		} else {
			lines[cell.Y].WriteByte(' ')
		}
		return nil
	}, nil)
	if err != nil {
		log.Printf("vtcoredemo: draw: %v", err)
		return
	}

	fmt.Print("\x1b[H\x1b[2J")
	for _, line := range lines {
		fmt.Println(line.String())
	}
}
