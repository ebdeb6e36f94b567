//go:build !windows

package main

// checkWebviewRuntime is a no-op outside Windows; the webview ships with the
// platform (WebKitGTK, WKWebView).
func checkWebviewRuntime() (string, error) {
	return "", nil
}
