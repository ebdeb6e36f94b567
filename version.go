package main

// AppVersion is the current application version.
const AppVersion = "0.3.0-dev"

// AppChannel returns "dev" for pre-release versions and "stable" otherwise.
func AppChannel() string {
	for _, c := range AppVersion {
		if c == '-' {
			return "dev"
		}
	}
	return "stable"
}
