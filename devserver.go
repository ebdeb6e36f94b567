package main

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"

	"launchpad/internal/content"
)

// warnIfDevServerDown probes the dev server once and raises a desktop
// notification when nothing answers. The splash keeps waiting either way.
func warnIfDevServerDown(ctx context.Context, title string, src content.Source) {
	if src.Kind != content.KindURL {
		return
	}
	if err := content.Probe(ctx, src.Location); err != nil {
		Log.Warn("dev server not reachable", "url", src.Location, "error", err)
		beeep.AppName = title
		if nerr := beeep.Notify(title, fmt.Sprintf("Development server not reachable at %s", src.Location), ""); nerr != nil {
			Log.Debug("notification failed", "error", nerr)
		}
		return
	}
	Log.Debug("dev server reachable", "url", src.Location)
}
