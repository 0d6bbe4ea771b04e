package target

import (
	"os"
	"regexp"
	"strings"
)

var (
	// protocolPattern matches "scheme://", including custom deep-link schemes.
	protocolPattern = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*://`)

	// schemePattern matches any scheme prefix, with or without "//" (mailto:, tel:).
	schemePattern = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*:`)

	// domainPattern matches label(.label)+.tld[:port][/path]. It is anchored and
	// admits no whitespace, so multi-word commands never match.
	domainPattern = regexp.MustCompile(`(?i)^[a-z0-9]+([-.][a-z0-9]+)*\.[a-z]{2,}(:[0-9]{1,5})?(/\S*)?$`)
)

// statFn is swapped in tests that need special filesystem entries.
var statFn = os.Stat

// Classify decides the kind of raw. The filesystem is consulted on every call;
// results are never cached.
//
// Order matters: an existing path wins over URL shape, so a file literally
// named "example.com" is a file.
func Classify(raw string) Kind {
	if strings.TrimSpace(raw) == "" {
		return KindUnknown
	}

	if info, err := statFn(raw); err == nil {
		switch {
		case info.IsDir():
			return KindFolder
		case info.Mode().IsRegular():
			return KindFile
		default:
			return KindUnknown
		}
	}

	if LooksLikeURL(raw) {
		return KindURL
	}

	return KindCommand
}

// LooksLikeURL reports whether raw has a "scheme://" prefix or is a bare domain.
func LooksLikeURL(raw string) bool {
	return protocolPattern.MatchString(raw) || domainPattern.MatchString(raw)
}

// NormalizeURL prepares a URL target for the OS default handler. Strings that
// already carry a scheme pass through untouched; bare domains get "https://".
func NormalizeURL(raw string) string {
	bare := domainPattern.MatchString(raw)

	// "example.com:8080" looks like scheme "example.com:" but is a host with a port.
	if HasScheme(raw) && !bare {
		return raw
	}
	if bare {
		return "https://" + raw
	}
	return raw
}

// HasScheme reports whether raw starts with a scheme prefix such as "mailto:".
func HasScheme(raw string) bool {
	return schemePattern.MatchString(raw)
}
