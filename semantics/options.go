package semantics

import "github.com/mxmlextrema/mxmlcaot/common"

// DatabaseOptions configures a new Database.
type DatabaseOptions struct {
	// The directory of the main project.  The meta-environment file is read
	// from this directory.  Empty means no meta-environment.
	ProjectPath string

	// The URI of the builtin language namespace.
	AS3NamespaceURI string

	// The URI of the `flash_proxy` compliant namespace.
	ProxyNamespaceURI string

	// The name of the package holding the `Proxy`, `Dictionary` and
	// `ByteArray` utility types.
	UtilsPackage []string

	// Initial configuration constants for conditional compilation.
	ConfigConstants map[string]string
}

// DefaultDatabaseOptions returns the options used when nothing is configured.
func DefaultDatabaseOptions() DatabaseOptions {
	return DatabaseOptions{
		AS3NamespaceURI:   common.DefaultAS3NamespaceURI,
		ProxyNamespaceURI: common.DefaultProxyNamespaceURI,
		UtilsPackage:      append([]string(nil), common.DefaultUtilsPackage...),
	}
}
