package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arcwand/spellcaster/internal/app"
	"github.com/arcwand/spellcaster/internal/config"
	"github.com/arcwand/spellcaster/internal/server"
	"github.com/arcwand/spellcaster/internal/spellbook"
	"github.com/arcwand/spellcaster/internal/store"
	"github.com/arcwand/spellcaster/internal/tracker"
	"github.com/arcwand/spellcaster/internal/tray"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the spell recognition daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon()
	},
}

func runDaemon() error {
	settings, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	st, err := openStore(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer st.Close()

	a := app.New(settings, st)
	if err := a.LoadSpells(); err != nil {
		return fmt.Errorf("failed to load spells: %w", err)
	}
	if err := a.EnsureModel(); err != nil {
		return fmt.Errorf("failed to prepare classifier: %w", err)
	}

	var srv *server.Server
	if settings.Server.Enabled {
		irDetector, _ := a.Detector().(*tracker.IRDetector)
		srv = server.New(server.Config{
			StaticDir: findWebDir(),
			Store:     st,
			Book:      a.Book(),
			Camera:    a.Camera(),
			Detector:  irDetector,
			OnSpellsChanged: func() {
				if err := a.Retrain(); err != nil {
					log.Printf("Retrain failed: %v", err)
				}
			},
		})
		a.AddSink(srv.Results())

		go func() {
			log.Printf("HTTP server listening on %s", settings.Server.Addr)
			if err := srv.ListenAndServe(settings.Server.Addr); err != nil {
				log.Printf("HTTP server stopped: %v", err)
			}
		}()
	}

	if err := a.Start(); err != nil {
		return fmt.Errorf("failed to start pipeline: %w", err)
	}
	a.SetEnabled(true)
	defer a.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if settings.Tray.Enabled {
		runWithTray(a, sigCh)
		return nil
	}

	select {
	case sig := <-sigCh:
		log.Printf("Received %v, shutting down", sig)
	case err := <-a.Errors():
		log.Printf("Pipeline failed: %v", err)
	}
	return nil
}

// runWithTray runs the system tray on the main goroutine, as the tray event
// loop requires, and shuts down on tray quit or a signal.
func runWithTray(a *app.App, sigCh chan os.Signal) {
	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnQuit(func() {})
	a.AddSink(app.SinkFunc(func(spell spellbook.Spell, confidence float64) {
		t.SetLastSpell(spell.Name)
	}))

	go func() {
		select {
		case sig := <-sigCh:
			log.Printf("Received %v, shutting down", sig)
		case err := <-a.Errors():
			log.Printf("Pipeline failed: %v", err)
		}
		t.Quit()
	}()

	t.Run()
}

// openStore opens the sqlite store, creating its directory first.
func openStore(settings *config.Settings) (*store.Store, error) {
	dir := filepath.Dir(settings.Database.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return store.New(settings.Database.Path)
}

// findWebDir searches for the web dashboard directory in common locations.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(p); err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".spellcaster", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
