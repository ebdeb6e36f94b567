//go:build windows

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

const webview2GUID = `{F3017226-FE2A-4295-8BEF-335AE1BC7588}`

// localWebView2Dir returns a fixed-version WebView2 runtime bundled next to
// the executable, or "".
func localWebView2Dir() string {
	exePath, err := os.Executable()
	if err != nil {
		return ""
	}
	dir := filepath.Join(filepath.Dir(exePath), "WebView2Runtime")
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return ""
}

// checkWebviewRuntime returns the browser path to hand Wails ("" for the
// system runtime) or an error when no WebView2 runtime is available.
func checkWebviewRuntime() (string, error) {
	if isWebView2SystemInstalled() {
		return "", nil
	}
	if dir := localWebView2Dir(); dir != "" {
		return dir, nil
	}
	return "", errors.New("WebView2 runtime not found; install it from https://developer.microsoft.com/microsoft-edge/webview2/")
}

// isWebView2SystemInstalled checks for system-installed WebView2 Evergreen Runtime.
// Uses registry, Windows version, and filesystem checks.
func isWebView2SystemInstalled() bool {
	keys := []struct {
		root registry.Key
		path string
	}{
		{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Microsoft\EdgeUpdate\Clients\` + webview2GUID},
		{registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\EdgeUpdate\Clients\` + webview2GUID},
		{registry.CURRENT_USER, `SOFTWARE\Microsoft\EdgeUpdate\Clients\` + webview2GUID},
	}
	for _, k := range keys {
		if h, err := registry.OpenKey(k.root, k.path, registry.QUERY_VALUE); err == nil {
			h.Close()
			return true
		}
	}

	// Windows 11+ ships WebView2 as part of the OS
	if isWindows11OrLater() {
		return true
	}
	return isWebView2EvergreenOnDisk()
}

// isWebView2EvergreenOnDisk catches Edge-bundled WebView2 installs that lack
// the EdgeUpdate registry key.
func isWebView2EvergreenOnDisk() bool {
	for _, root := range []string{
		os.Getenv("ProgramFiles(x86)"),
		os.Getenv("ProgramFiles"),
		os.Getenv("LOCALAPPDATA"),
	} {
		if root == "" {
			continue
		}
		appDir := filepath.Join(root, "Microsoft", "EdgeWebView", "Application")
		entries, err := os.ReadDir(appDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, err := os.Stat(filepath.Join(appDir, entry.Name(), "msedgewebview2.exe")); err == nil {
				return true
			}
		}
	}
	return false
}

// isWindows11OrLater returns true for build >= 22000.
func isWindows11OrLater() bool {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()

	buildStr, _, err := k.GetStringValue("CurrentBuildNumber")
	if err != nil {
		return false
	}
	var build int
	fmt.Sscanf(buildStr, "%d", &build)
	return build >= 22000
}
