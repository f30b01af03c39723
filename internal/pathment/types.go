package pathment

import "strings"

// Type identifies which kind of resource a Pathment refers to.
type Type int

const (
	Unspecified Type = iota
	URLAddress
	Email
	FTPAddress
	SSHAddress
	TelnetAddress
	IPAddress
	Hostname
	FileURL
	LocalPath
	UNCPath
	RelativePath
	ExecCommand
	Prompt
)

var typeNames = map[Type]string{
	Unspecified:   "UNSPECIFIED",
	URLAddress:    "URL_ADDRESS",
	Email:         "EMAIL",
	FTPAddress:    "FTP_ADDRESS",
	SSHAddress:    "SSH_ADDRESS",
	TelnetAddress: "TELNET_ADDRESS",
	IPAddress:     "IP_ADDRESS",
	Hostname:      "HOSTNAME",
	FileURL:       "FILE_URL",
	LocalPath:     "LOCAL_PATH",
	UNCPath:       "UNC_PATH",
	RelativePath:  "RELATIVE_PATH",
	ExecCommand:   "EXEC_COMMAND",
	Prompt:        "PROMPT",
}

// String returns the upper-case name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNSPECIFIED"
}

// ParseType is the inverse of Type.String. Unknown names map to Unspecified.
func ParseType(name string) Type {
	name = strings.TrimSpace(name)
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t
		}
	}
	return Unspecified
}

// IsWebBased reports whether the type is addressed over a network protocol.
func (t Type) IsWebBased() bool {
	switch t {
	case URLAddress, FTPAddress, SSHAddress, TelnetAddress:
		return true
	}
	return false
}

// IsFileBased reports whether the type refers to something on a file system.
func (t Type) IsFileBased() bool {
	switch t {
	case FileURL, LocalPath, UNCPath, RelativePath:
		return true
	}
	return false
}

// sortPriority is the coarse bucket used by the default ordering.
func (t Type) sortPriority() int {
	switch {
	case t.IsWebBased():
		return 10
	case t == Email:
		return 20
	case t.IsFileBased():
		return 30
	case t == IPAddress || t == Hostname:
		return 40
	case t == ExecCommand || t == Prompt:
		return 50
	default:
		return 100
	}
}

// TransferProtocol is the protocol tag carried by a Pathment and the first
// dispatch key of the classifier.
type TransferProtocol int

const (
	ProtocolNone TransferProtocol = iota
	ProtocolHTTP
	ProtocolHTTPS
	ProtocolFTP
	ProtocolSSH
	ProtocolTelnet
	ProtocolMailto
	ProtocolFile
	ProtocolMalformedFile
	ProtocolLocalFile
	ProtocolUNC
	ProtocolRelative
)

var protocolNames = map[TransferProtocol]string{
	ProtocolNone:          "none",
	ProtocolHTTP:          "http",
	ProtocolHTTPS:         "https",
	ProtocolFTP:           "ftp",
	ProtocolSSH:           "ssh",
	ProtocolTelnet:        "telnet",
	ProtocolMailto:        "mailto",
	ProtocolFile:          "file",
	ProtocolMalformedFile: "malformed-file",
	ProtocolLocalFile:     "local",
	ProtocolUNC:           "unc",
	ProtocolRelative:      "relative",
}

func (p TransferProtocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return "none"
}

// ParseTransferProtocol is the inverse of TransferProtocol.String.
func ParseTransferProtocol(name string) TransferProtocol {
	for p, n := range protocolNames {
		if n == name {
			return p
		}
	}
	return ProtocolNone
}

// Scheme returns the URI scheme for web and mail protocols, or "".
func (p TransferProtocol) Scheme() string {
	switch p {
	case ProtocolHTTP, ProtocolHTTPS, ProtocolFTP, ProtocolSSH, ProtocolTelnet, ProtocolMailto, ProtocolFile:
		return p.String()
	}
	return ""
}

// Category is the coarse class of a TransferProtocol.
type Category int

const (
	CategoryNone Category = iota
	CategoryWeb
	CategoryMail
	CategoryFile
)

// Category maps the protocol to its dispatch category.
func (p TransferProtocol) Category() Category {
	switch p {
	case ProtocolHTTP, ProtocolHTTPS, ProtocolFTP, ProtocolSSH, ProtocolTelnet:
		return CategoryWeb
	case ProtocolMailto:
		return CategoryMail
	case ProtocolFile, ProtocolMalformedFile, ProtocolLocalFile, ProtocolUNC, ProtocolRelative:
		return CategoryFile
	}
	return CategoryNone
}

// webProtocolForScheme maps a lower-case URL scheme to its protocol.
func webProtocolForScheme(scheme string) (TransferProtocol, bool) {
	switch scheme {
	case "http":
		return ProtocolHTTP, true
	case "https":
		return ProtocolHTTPS, true
	case "ftp":
		return ProtocolFTP, true
	case "ssh":
		return ProtocolSSH, true
	case "telnet":
		return ProtocolTelnet, true
	}
	return ProtocolNone, false
}
