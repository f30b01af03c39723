package pathment

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// knownTLDs is a curated list of top-level domains that show up in pasted text
// often enough to trust without consulting the public suffix list.
var knownTLDs = toSet(
	"com", "org", "net", "edu", "gov", "mil", "int", "info", "biz", "name", "pro",
	"io", "ai", "app", "dev", "co", "me", "tv", "cc", "ly", "to", "fm", "gg",
	"xyz", "online", "site", "tech", "store", "blog", "cloud", "shop", "news",
	"email", "live", "media", "page", "wiki", "space", "website", "agency",
	"us", "uk", "ca", "au", "nz", "ie", "de", "at", "ch", "fr", "be", "nl", "lu",
	"it", "es", "pt", "se", "no", "dk", "fi", "is", "pl", "cz", "sk", "hu", "ro",
	"bg", "gr", "tr", "ru", "ua", "by", "lt", "lv", "ee", "si", "hr", "rs", "ba",
	"jp", "cn", "kr", "tw", "hk", "sg", "in", "id", "th", "vn", "my", "ph", "pk",
	"il", "ae", "sa", "ir", "eg", "za", "ng", "ke", "ma", "br", "ar", "mx", "cl",
	"pe", "ve", "uy", "eu", "asia", "mobi", "travel", "jobs", "museum", "aero",
	"coop", "cat", "local", "lan", "internal", "corp", "home", "test", "example",
)

// commonFileExtensions holds extensions that make a dotted token more likely a
// file name than a host, e.g. "setup.py" or "notes.md".
var commonFileExtensions = toSet(
	"txt", "md", "rst", "log", "csv", "tsv", "json", "yaml", "yml", "xml", "toml",
	"ini", "cfg", "conf", "env", "properties", "lock",
	"doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt", "ods", "odp", "pdf", "rtf",
	"epub", "tex",
	"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "svg", "webp", "ico", "psd",
	"heic", "raw",
	"mp3", "wav", "flac", "ogg", "aac", "m4a", "mp4", "mkv", "avi", "mov", "wmv",
	"webm",
	"zip", "rar", "7z", "tar", "gz", "tgz", "bz2", "xz", "iso", "dmg", "img",
	"exe", "dll", "msi", "bat", "cmd", "ps1", "sh", "bash", "zsh", "so", "dylib",
	"bin", "apk", "jar", "war", "deb", "rpm", "pkg",
	"c", "h", "cc", "cpp", "hpp", "cs", "go", "rs", "py", "pyc", "rb", "pl", "php",
	"java", "class", "kt", "kts", "scala", "swift", "m", "mm", "js", "mjs", "cjs",
	"ts", "tsx", "jsx", "vue", "css", "scss", "sass", "less", "html", "htm", "sql",
	"db", "sqlite", "bak", "tmp", "old", "orig", "swp", "dat", "sum", "mod",
)

func toSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// IsKnownTLD reports whether tld (without a leading dot) is a top-level domain.
// The curated list is consulted first; the ICANN section of the public suffix
// list is the fallback.
func IsKnownTLD(tld string) bool {
	tld = strings.ToLower(strings.TrimPrefix(tld, "."))
	if tld == "" {
		return false
	}
	if _, ok := knownTLDs[tld]; ok {
		return true
	}
	suffix, icann := publicsuffix.PublicSuffix(tld)
	return icann && suffix == tld
}

// IsCommonFileExtension reports whether ext (without a leading dot) is a
// commonly seen file extension.
func IsCommonFileExtension(ext string) bool {
	_, ok := commonFileExtensions[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return ok
}

// lastLabel returns the part of host after its final dot.
func lastLabel(host string) string {
	if i := strings.LastIndexByte(host, '.'); i >= 0 {
		return host[i+1:]
	}
	return host
}
