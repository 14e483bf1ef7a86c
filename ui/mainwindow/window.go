// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"draftboard/internal/app"
	appcanvas "draftboard/internal/canvas"
	"draftboard/internal/document"
	"draftboard/internal/version"
	"draftboard/pkg/geometry"
	uicanvas "draftboard/ui/canvas"
	"draftboard/ui/prefs"
)

const docExtension = ".draftboard"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	canvas *uicanvas.DocumentCanvas

	statusBar   *widget.Label
	toolButtons map[appcanvas.Tool]*widget.Button

	undoItem *fyne.MenuItem
	redoItem *fyne.MenuItem
	mainMenu *fyne.MainMenu
}

// New creates the main window bound to the application state.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Draftboard")

	mw := &MainWindow{
		Window:      win,
		app:         fyneApp,
		state:       state,
		prefs:       p,
		toolButtons: make(map[appcanvas.Tool]*widget.Button),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restorePreferences()

	return mw
}

// setupUI creates the main layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = uicanvas.New(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	content := container.NewBorder(
		mw.createToolbar(),                // top
		container.NewPadded(mw.statusBar), // bottom
		nil, nil,
		mw.canvas,
	)
	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1100, 800))

	// Command keys go to the engine regardless of focus.
	mw.Canvas().SetOnTypedKey(mw.canvas.TypedKey)
}

// createToolbar builds the tool palette and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	tools := []struct {
		label string
		tool  appcanvas.Tool
	}{
		{"Select", appcanvas.ToolSelect},
		{"Rect", appcanvas.ToolRectangle},
		{"Ellipse", appcanvas.ToolEllipse},
		{"Line", appcanvas.ToolLine},
		{"Arrow", appcanvas.ToolArrow},
		{"Polygon", appcanvas.ToolPolygon},
		{"Text", appcanvas.ToolText},
		{"Image", appcanvas.ToolImage},
		{"Pan", appcanvas.ToolPan},
	}

	box := container.NewHBox()
	for _, t := range tools {
		tool := t.tool
		btn := widget.NewButton(t.label, func() {
			mw.state.ApplyEffects(mw.state.Interactor().SetTool(tool))
		})
		mw.toolButtons[tool] = btn
		box.Add(btn)
	}
	mw.highlightTool(appcanvas.ToolSelect)

	box.Add(widget.NewSeparator())
	box.Add(widget.NewButton("-", func() { mw.state.ZoomBy(1 / 1.25) }))
	box.Add(widget.NewButton("+", func() { mw.state.ZoomBy(1.25) }))
	box.Add(widget.NewButton("1:1", func() { mw.state.SetZoom(1) }))
	return box
}

func (mw *MainWindow) highlightTool(active appcanvas.Tool) {
	for tool, btn := range mw.toolButtons {
		if tool == active {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New", mw.onNew),
		fyne.NewMenuItem("Open...", mw.onOpen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSave),
		fyne.NewMenuItem("Save As...", mw.onSaveAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.savePreferences(); mw.app.Quit() }),
	)

	mw.undoItem = fyne.NewMenuItem("Undo", mw.state.Undo)
	mw.redoItem = fyne.NewMenuItem("Redo", mw.state.Redo)
	mw.undoItem.Disabled = true
	mw.redoItem.Disabled = true

	editMenu := fyne.NewMenu("Edit",
		mw.undoItem,
		mw.redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete", func() {
			mw.state.HandleCanvasEvent(appcanvas.KeyEvent{Key: appcanvas.KeyDelete})
		}),
		fyne.NewMenuItem("Select All", func() {
			mw.state.ApplyEffects(mw.state.Interactor().SelectAll())
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.state.ZoomBy(1.25) }),
		fyne.NewMenuItem("Zoom Out", func() { mw.state.ZoomBy(1 / 1.25) }),
		fyne.NewMenuItem("Actual Size", func() { mw.state.SetZoom(1) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Snap to Grid", func() {
			on := !mw.state.View().SnapToGrid
			mw.state.SetSnapToGrid(on)
			mw.prefs.SetBool(prefs.KeySnapToGrid, on)
		}),
		fyne.NewMenuItem("Toggle Snap to Guides", func() {
			on := !mw.state.View().SnapToGuides
			mw.state.SetSnapToGuides(on)
			mw.prefs.SetBool(prefs.KeySnapToGuides, on)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add Vertical Guide", func() { mw.addGuide(true) }),
		fyne.NewMenuItem("Add Horizontal Guide", func() { mw.addGuide(false) }),
		fyne.NewMenuItem("Clear Guides", mw.state.ClearGuides),
	)

	arrangeMenu := fyne.NewMenu("Arrange",
		fyne.NewMenuItem("Align Left", mw.align(appcanvas.AlignLeft)),
		fyne.NewMenuItem("Align Right", mw.align(appcanvas.AlignRight)),
		fyne.NewMenuItem("Align Top", mw.align(appcanvas.AlignTop)),
		fyne.NewMenuItem("Align Bottom", mw.align(appcanvas.AlignBottom)),
		fyne.NewMenuItem("Center Horizontally", mw.align(appcanvas.AlignCenterH)),
		fyne.NewMenuItem("Center Vertically", mw.align(appcanvas.AlignCenterV)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Distribute Horizontally", func() {
			mw.state.ApplyEffects(mw.state.Interactor().DistributeSelection(false))
		}),
		fyne.NewMenuItem("Distribute Vertically", func() {
			mw.state.ApplyEffects(mw.state.Interactor().DistributeSelection(true))
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Bring to Front", mw.state.BringToFront),
		fyne.NewMenuItem("Send to Back", mw.state.SendToBack),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, viewMenu, arrangeMenu, helpMenu)
	mw.SetMainMenu(mw.mainMenu)
}

func (mw *MainWindow) align(kind appcanvas.Alignment) func() {
	return func() {
		mw.state.ApplyEffects(mw.state.Interactor().AlignSelection(kind))
	}
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventDocumentLoaded, func(interface{}) {
		name := mw.state.Document().Name
		if mw.state.DocumentPath != "" {
			name = filepath.Base(mw.state.DocumentPath)
		}
		mw.SetTitle("Draftboard - " + name)
		mw.updateStatus("Opened " + name)
	})

	mw.state.On(app.EventDocumentSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Draftboard - " + filepath.Base(path))
			mw.updateStatus("Saved " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		if ids, ok := data.([]document.ID); ok {
			switch len(ids) {
			case 0:
				mw.updateStatus("Ready")
			case 1:
				mw.updateStatus("1 element selected")
			default:
				mw.updateStatus(fmt.Sprintf("%d elements selected", len(ids)))
			}
		}
	})

	mw.state.On(app.EventToolChanged, func(data interface{}) {
		if tool, ok := data.(appcanvas.Tool); ok {
			mw.highlightTool(tool)
			mw.updateStatus("Tool: " + tool.String())
		}
	})

	mw.state.On(app.EventHistoryChanged, func(interface{}) {
		mw.refreshUndoMenu()
	})

	mw.state.On(app.EventBeginEdit, func(data interface{}) {
		req, ok := data.(appcanvas.EditRequest)
		if !ok {
			return
		}
		switch req.Kind {
		case document.KindText:
			mw.editText(req.ID)
		case document.KindImage:
			mw.chooseImage(req.ID)
		}
	})

	mw.SetCloseIntercept(func() {
		mw.savePreferences()
		mw.Close()
	})
}

func (mw *MainWindow) refreshUndoMenu() {
	h := mw.state.History()
	mw.undoItem.Disabled = !h.CanUndo()
	mw.redoItem.Disabled = !h.CanRedo()
	if label := h.UndoLabel(); label != "" {
		mw.undoItem.Label = "Undo " + label
	} else {
		mw.undoItem.Label = "Undo"
	}
	if label := h.RedoLabel(); label != "" {
		mw.redoItem.Label = "Redo " + label
	} else {
		mw.redoItem.Label = "Redo"
	}
	mw.mainMenu.Refresh()
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// addGuide places a guide at the center of the current viewport.
func (mw *MainWindow) addGuide(vertical bool) {
	view := mw.state.View()
	size := mw.Canvas().Size()
	center := view.ToDocument(geometry.NewPoint2D(
		float64(size.Width)/2, float64(size.Height)/2))
	if vertical {
		mw.state.AddGuide(true, center.X)
	} else {
		mw.state.AddGuide(false, center.Y)
	}
}

// editText opens an entry dialog for a text element.
func (mw *MainWindow) editText(id document.ID) {
	el, ok := mw.state.Document().ActivePage().ElementByID(id)
	if !ok {
		return
	}
	entry := widget.NewEntry()
	entry.SetText(el.Text)
	dialog.ShowForm("Edit Text", "OK", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Text", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			mw.state.EditElementText(id, entry.Text)
		}, mw.Window)
}

// chooseImage opens a file dialog to set an image element's source.
func (mw *MainWindow) chooseImage(id document.ID) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		mw.state.SetElementImage(id, reader.URI().Path())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	fd.Show()
}

// Menu action handlers

func (mw *MainWindow) onNew() {
	mw.state.NewDocument()
	mw.SetTitle("Draftboard - Untitled")
}

func (mw *MainWindow) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastDocument, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{docExtension}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSave() {
	if mw.state.DocumentPath == "" {
		mw.onSaveAs()
		return
	}
	if err := mw.state.SaveDocument(mw.state.DocumentPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += docExtension
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastDocument, path)
	}, mw.Window)
	fd.SetFileName(mw.state.Document().Name + docExtension)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About",
		fmt.Sprintf("Draftboard %s\nA 2D document and diagram editor.", version.Version),
		mw.Window)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
}

// restorePreferences applies persisted view settings and window size.
func (mw *MainWindow) restorePreferences() {
	w := mw.prefs.Float(prefs.KeyWindowWidth, 1100)
	h := mw.prefs.Float(prefs.KeyWindowHeight, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))

	mw.state.SetSnapToGrid(mw.prefs.Bool(prefs.KeySnapToGrid, true))
	mw.state.SetSnapToGuides(mw.prefs.Bool(prefs.KeySnapToGuides, true))
	if spacing := mw.prefs.Float(prefs.KeyGridSpacing, 0); spacing > 0 {
		mw.state.SetGridSpacing(spacing)
	}
	if zoom := mw.prefs.Float(prefs.KeyZoom, 0); zoom > 0 {
		mw.state.SetZoom(zoom)
	}
}

// savePreferences persists view settings and window size.
func (mw *MainWindow) savePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))

	view := mw.state.View()
	mw.prefs.SetBool(prefs.KeySnapToGrid, view.SnapToGrid)
	mw.prefs.SetBool(prefs.KeySnapToGuides, view.SnapToGuides)
	mw.prefs.SetFloat(prefs.KeyGridSpacing, view.GridSpacing)
	mw.prefs.SetFloat(prefs.KeyZoom, view.Zoom)

	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}
