package main

import (
	"fmt"
	"os"
	goruntime "runtime"

	"github.com/spf13/cobra"

	"launchpad/internal/config"
	"launchpad/internal/content"
	"launchpad/internal/lifecycle"
	"launchpad/internal/splash"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		dev        bool
		keepAlive  bool
		console    bool
	)

	cmd := &cobra.Command{
		Use:          "launchpad",
		Short:        "Desktop shell that shows a splash while the main window loads",
		Version:      AppVersion,
		SilenceUsage: true,
		// A relaunch forwards its arguments to the running instance.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
			}
			if dev {
				cfg.Mode = content.ModeDevelopment.String()
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if keepAlive {
				stay := false
				cfg.QuitOnAllClosed = &stay
			}
			return run(cfg, console)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: error, info or debug")
	cmd.Flags().BoolVar(&dev, "dev", false, "load the UI from the development server")
	cmd.Flags().BoolVar(&keepAlive, "keep-alive", false, "keep running after all windows are closed")
	cmd.Flags().BoolVar(&console, "console", false, "also log to stderr")
	return cmd
}

func run(cfg *config.Config, console bool) error {
	logFile, err := InitLogger(cfg.LogLevel, console)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
	} else {
		defer logFile.Close()
	}

	browserPath, err := checkWebviewRuntime()
	if err != nil {
		Log.Error("webview runtime missing", "error", err)
		showErrorBox(cfg.Title, err.Error())
		return err
	}

	installDir, err := content.InstallDir()
	if err != nil {
		Log.Error("resolve install dir", "error", err)
		return err
	}
	src := content.Selector{
		Mode:       cfg.ContentMode(),
		DevURL:     cfg.DevServerURL,
		InstallDir: installDir,
	}.Select()

	host := newWailsHost(browserPath)
	ctrl := lifecycle.New(host, lifecycle.Config{
		Title:      cfg.Title,
		Source:     src,
		Splash:     splash.Default(cfg.Title),
		MainWidth:  cfg.WindowWidth,
		MainHeight: cfg.WindowHeight,
		Web: lifecycle.WebPreferences{
			NodeIntegration:  cfg.IsNodeIntegration(),
			ContextIsolation: cfg.ContextIsolation,
		},
		QuitOnAllClosed:             cfg.ShouldQuitOnAllClosed(goruntime.GOOS),
		DisableHardwareAcceleration: cfg.IsHardwareAccelerationDisabled(),
	}, Log)
	app := NewDesktopApp(host, cfg, src)
	host.attach(ctrl, app)

	ctrl.Prepare()
	app.initSystray()

	Log.Info("starting",
		"version", AppVersion,
		"channel", AppChannel(),
		"mode", cfg.ContentMode().String(),
		"source", src.String(),
		"platform", goruntime.GOOS,
	)

	opts := host.options(cfg.Title, cfg.WindowWidth, cfg.WindowHeight, cfg.IsNodeIntegration())
	if err := host.run(opts); err != nil {
		Log.Error("application error", "error", err)
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
