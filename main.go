// Package main provides the entry point for the Draftboard application.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"draftboard/internal/app"
	"draftboard/internal/version"
	"draftboard/ui/mainwindow"
	"draftboard/ui/prefs"
)

const appTitle = "Draftboard"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("io.draftboard.editor")
	fyneApp.Settings().SetTheme(&app.DraftboardTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Open a document given on the command line, falling back to the
	// last one used.
	docPath := appPrefs.String(prefs.KeyLastDocument)
	if len(os.Args) > 1 {
		docPath = os.Args[1]
	}
	if docPath != "" {
		if err := appState.LoadDocument(docPath); err != nil {
			log.Printf("Failed to open %s: %v", docPath, err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload prompts for a restart when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}
	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	reloader.OnNewBinary(func() {
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
