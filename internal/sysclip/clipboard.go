// Package sysclip provides clipboard writers for the copy broker.
package sysclip

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"github.com/jask/spawncodes/internal/service"
)

// System writes through the OS clipboard tools (pbcopy, xclip, clip.exe...).
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// OSC52 asks the terminal to set the clipboard. It works over SSH where no
// local clipboard tool exists.
type OSC52 struct {
	Out io.Writer
}

func (o OSC52) WriteAll(text string) error {
	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	seq := osc52.New(text)
	if strings.HasPrefix(os.Getenv("TERM"), "screen") {
		seq = seq.Screen()
	} else if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	_, err := seq.WriteTo(out)
	return err
}

// New picks a writer for mode ("system" or "osc52").
func New(mode string) service.Clipboard {
	if strings.EqualFold(mode, "osc52") {
		return OSC52{}
	}
	return System{}
}
