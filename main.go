package main

import (
	"KitchenTimer/ui"
	"embed"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

//go:embed assets/*
var content embed.FS

func main() {
	fyneApp := app.New()

	if iconBytes, err := content.ReadFile("assets/icon.png"); err == nil {
		fyneApp.SetIcon(fyne.NewStaticResource("icon.png", iconBytes))
	} else {
		log.Printf("Failed to load icon. %v", err)
	}

	var mediumFontRes, boldFontRes fyne.Resource
	if data, err := content.ReadFile("assets/Quicksand-Medium.ttf"); err == nil {
		mediumFontRes = fyne.NewStaticResource("Quicksand-Medium.ttf", data)
	}
	if data, err := content.ReadFile("assets/Quicksand-Bold.ttf"); err == nil {
		boldFontRes = fyne.NewStaticResource("Quicksand-Bold.ttf", data)
	}
	fyneApp.Settings().SetTheme(ui.NewCustomTheme(mediumFontRes, boldFontRes))

	a := NewAppManager(content)

	w := ui.CreateMainWindow(a, fyneApp)
	a.mainWindow = w

	w.SetOnClosed(func() {
		a.Shutdown()
	})

	w.ShowAndRun()
}
