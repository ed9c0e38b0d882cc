package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wailslinux "github.com/wailsapp/wails/v2/pkg/options/linux"
	wailswindows "github.com/wailsapp/wails/v2/pkg/options/windows"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"sidepanel/internal/assistant"
	"sidepanel/internal/config"
	"sidepanel/internal/history"
	"sidepanel/internal/logging"
	"sidepanel/internal/overlay"
	"sidepanel/internal/shortcut"
	"sidepanel/internal/shortcut/native"
)

//go:embed all:frontend/dist
var assets embed.FS

// pcInfoEvent is emitted to the frontend with every fresh PC info snapshot
const pcInfoEvent = "pcinfo:update"

// App struct
type App struct {
	ctx       context.Context
	cancel    context.CancelFunc
	config    *config.Service
	log       *logging.Leveled
	hotkey    *shortcut.Listener
	assistant *assistant.Client
	poller    *assistant.Poller
	history   *history.Store
	watching  bool

	// Native backends, swapped out in tests
	supported func() bool
	register  func(shortcut.Combo) (*shortcut.Listener, error)
	locator   func(ctx context.Context, title string, log logger.Logger) (overlay.Locator, func())

	// mu guards the fields OnDomReady publishes to binding goroutines
	mu      sync.Mutex
	overlay *overlay.Service
	cleanup func()
	ready   sync.Once
}

// NewApp creates a new App application struct
func NewApp(configSvc *config.Service, log *logging.Leveled) *App {
	return &App{
		config:    configSvc,
		log:       log,
		supported: shortcut.Supported,
		register:  native.Register,
		locator:   newLocator,
	}
}

// OnStartup is called when the app starts up. Failing to claim the global
// shortcut is fatal.
func (a *App) OnStartup(ctx context.Context) {
	if err := a.start(ctx); err != nil {
		fmt.Printf("Failed to register global shortcut: %v\n", err)
		os.Exit(1)
	}
}

// start claims the hotkey before anything else runs, so a failure leaves
// no poller or watcher behind
func (a *App) start(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)
	cfg := a.config.Get()

	listener, err := registerHotkey(cfg.Hotkey, a.supported, a.register)
	if err != nil {
		return err
	}
	a.hotkey = listener
	if listener != nil {
		a.log.Info(fmt.Sprintf("Listening for %s", listener.Combo()))
	} else {
		a.log.Warning("Global shortcuts are not available in this session; toggle from the panel instead")
	}

	if cfg.Assistant.Enabled {
		a.assistant = assistant.NewClient(cfg.Assistant.BaseURL)
		a.poller = assistant.NewPoller(a.assistant, func(info assistant.PCInfo) {
			runtime.EventsEmit(ctx, pcInfoEvent, info)
		}, time.Duration(cfg.Assistant.PollInterval)*time.Second)
		a.poller.Start()

		if cfg.Assistant.History {
			a.openHistory(cfg)
		}
	}

	if err := a.config.Watch(a.ctx, a.applyConfig, func(err error) {
		a.log.Warning(fmt.Sprintf("Config reload failed: %v", err))
	}); err != nil {
		a.log.Debug(fmt.Sprintf("Not watching %s: %v", a.config.Path(), err))
	} else {
		a.watching = true
	}
	return nil
}

// registerHotkey parses accel and claims it. It returns (nil, nil) when the
// session has no global shortcuts at all.
func registerHotkey(accel string, supported func() bool, register func(shortcut.Combo) (*shortcut.Listener, error)) (*shortcut.Listener, error) {
	if !supported() {
		return nil, nil
	}

	combo, err := shortcut.Parse(accel)
	if err != nil {
		return nil, err
	}

	listener, err := register(combo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", combo, err)
	}
	return listener, nil
}

func (a *App) openHistory(cfg *config.Config) {
	path, err := cfg.HistoryFile()
	if err != nil {
		a.log.Warning(fmt.Sprintf("Chat history disabled: %v", err))
		return
	}

	store, err := history.Open(path)
	if err != nil {
		a.log.Warning(fmt.Sprintf("Chat history disabled: %v", err))
		return
	}
	a.history = store
}

// applyConfig takes live settings from a reloaded config. Window and hotkey
// settings only apply on the next launch.
func (a *App) applyConfig(cfg *config.Config) {
	if level, err := logger.StringToLogLevel(cfg.LogLevel); err == nil {
		a.log.SetLevel(level)
	} else {
		a.log.Warning(fmt.Sprintf("Invalid log level %q in reloaded config", cfg.LogLevel))
	}

	if a.poller != nil {
		a.poller.SetInterval(time.Duration(cfg.Assistant.PollInterval) * time.Second)
	}

	a.log.Info(fmt.Sprintf("Reloaded %s", a.config.Path()))
}

// OnDomReady runs once the window exists: capture the monitor, snap the
// window and start handling toggles.
func (a *App) OnDomReady(ctx context.Context) {
	a.ready.Do(func() {
		cfg := a.config.Get()

		locate, cleanup := a.locator(a.ctx, cfg.Window.Title, a.log)
		svc := overlay.New(overlay.Options{
			Locate:   locate,
			Expanded: cfg.ExpandedSize(),
			Fallback: cfg.Fallback(),
			Log:      a.log,
		})
		svc.Place()

		a.mu.Lock()
		a.overlay = svc
		a.cleanup = cleanup
		a.mu.Unlock()

		var events <-chan shortcut.Event
		if a.hotkey != nil {
			events = a.hotkey.Events()
		}
		go svc.Run(a.ctx, events)
	})
}

// OnShutdown is called when the app is shutting down
func (a *App) OnShutdown(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
	if a.hotkey != nil {
		a.hotkey.Close()
	}
	if a.poller != nil {
		a.poller.Stop()
	}

	a.mu.Lock()
	cleanup := a.cleanup
	a.cleanup = nil
	a.mu.Unlock()
	if cleanup != nil {
		cleanup()
	}

	if a.history != nil {
		a.history.Close()
	}
}

// panel returns the overlay service once OnDomReady has built it
func (a *App) panel() *overlay.Service {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.overlay
}

// Frontend API methods (these will be exposed to the frontend)

// GetPanelState returns the current panel state
func (a *App) GetPanelState() overlay.PanelInfo {
	svc := a.panel()
	if svc == nil {
		return overlay.PanelInfo{Interactive: true, Input: "interactive", Visibility: "expanded"}
	}
	return svc.Info()
}

// TogglePanel performs the same transition as the hotkey
func (a *App) TogglePanel() bool {
	svc := a.panel()
	if svc == nil {
		return false
	}
	return svc.RequestToggle()
}

// GetPCInfo returns the last PC info snapshot, fetching one if none is cached
func (a *App) GetPCInfo() (assistant.PCInfo, error) {
	if a.assistant == nil {
		return nil, fmt.Errorf("assistant is disabled in %s", a.config.Path())
	}
	if info := a.poller.Latest(); info != nil {
		return info, nil
	}

	ctx, cancel := context.WithTimeout(a.ctx, 10*time.Second)
	defer cancel()
	return a.assistant.PCInfo(ctx)
}

// SendMessage relays a chat prompt to the assistant backend
func (a *App) SendMessage(text string) (string, error) {
	if a.assistant == nil {
		return "", fmt.Errorf("assistant is disabled in %s", a.config.Path())
	}

	ctx, cancel := context.WithTimeout(a.ctx, 60*time.Second)
	defer cancel()

	reply, err := a.assistant.SendMessage(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	a.record(text, text, reply)
	return reply, nil
}

// Ask expands free text through the backend's command search, then sends it
func (a *App) Ask(userText string) (string, error) {
	if a.assistant == nil {
		return "", fmt.Errorf("assistant is disabled in %s", a.config.Path())
	}

	ctx, cancel := context.WithTimeout(a.ctx, 60*time.Second)
	defer cancel()

	prompt, reply, err := a.assistant.Ask(ctx, userText)
	if err != nil {
		return "", fmt.Errorf("failed to ask assistant: %w", err)
	}
	a.record(userText, prompt, reply)
	return reply, nil
}

// GetHistory returns up to limit recent exchanges, newest first
func (a *App) GetHistory(limit int) ([]history.Exchange, error) {
	if a.history == nil {
		return []history.Exchange{}, nil
	}
	return a.history.Recent(limit)
}

func (a *App) record(userText, prompt, reply string) {
	if a.history == nil || reply == "" {
		return
	}
	if _, err := a.history.Record(userText, prompt, reply); err != nil {
		a.log.Debug(fmt.Sprintf("history: %v", err))
	}
}

func main() {
	configSvc, err := config.New()
	if err != nil {
		fmt.Printf("Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	cfg := configSvc.Get()

	logLevel, err := logger.StringToLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Invalid log level %q, using info\n", cfg.LogLevel)
		logLevel = logger.INFO
	}
	log := logging.NewLeveled(logger.NewDefaultLogger(), logLevel)

	app := NewApp(configSvc, log)

	err = wails.Run(&options.App{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Frameless:        cfg.Window.Frameless,
		AlwaysOnTop:      cfg.Window.AlwaysOnTop,
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 0}, // Transparent
		Windows: &wailswindows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
		Linux: &wailslinux.Options{
			WindowIsTranslucent: true,
			ProgramName:         "sidepanel",
		},
		Logger:     log,
		LogLevel:   logger.TRACE, // filtered by log so reloads can change it
		OnStartup:  app.OnStartup,
		OnDomReady: app.OnDomReady,
		OnShutdown: app.OnShutdown,
		Bind:       []interface{}{app},
	})

	if err != nil {
		fmt.Printf("Error starting application: %v\n", err)
		os.Exit(1)
	}
}
