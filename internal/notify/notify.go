// Package notify is the best-effort notification collaborator. Everything
// here is permission-gated and fire-and-forget: failures degrade to
// visual-only, never to an error the caller sees.
package notify

import (
	"fmt"
	"io"
	"time"

	"github.com/gen2brain/beeep"
)

// Desktop sends OS notifications via beeep and falls back to a terminal
// bell on the given writer (usually stderr) when the desktop layer fails.
type Desktop struct {
	// Bell receives the BEL fallback; nil disables it.
	Bell io.Writer
	// Enabled=false turns the whole collaborator into a no-op.
	Enabled bool
}

func NewDesktop(bell io.Writer) *Desktop {
	return &Desktop{Bell: bell, Enabled: true}
}

func (d *Desktop) Notify(title, body string) {
	if d == nil || !d.Enabled {
		return
	}
	if err := beeep.Notify(title, body, ""); err != nil && d.Bell != nil {
		fmt.Fprint(d.Bell, "\a")
	}
}

func (d *Desktop) Vibrate(dur time.Duration) {
	if d == nil || !d.Enabled {
		return
	}
	// No vibration hardware on desktops; map to the system beep.
	_ = beeep.Beep(beeep.DefaultFreq, int(dur.Milliseconds()))
}

// Silent drops every notification. Used when the user disabled them.
type Silent struct{}

func (Silent) Notify(string, string) {}
func (Silent) Vibrate(time.Duration) {}
