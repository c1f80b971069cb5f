package common

// Version is the current version of the semantic model as a string.
const Version string = "0.1.0"

// ConfigFileName is the name of the optional project configuration file.
const ConfigFileName string = "asconfig.toml"

// EnvFileName is the name of the meta-environment file read relative to the
// project path.
const EnvFileName string = ".env"

// DefaultAS3NamespaceURI is the URI of the builtin language namespace.
const DefaultAS3NamespaceURI string = "http://adobe.com/AS3/2006/builtin"

// DefaultProxyNamespaceURI is the URI of the `flash_proxy` namespace.
const DefaultProxyNamespaceURI string = "http://www.adobe.com/2006/actionscript/flash/proxy"

// DefaultUtilsPackage is the name of the package that holds the `Proxy`,
// `Dictionary` and `ByteArray` utility types.
var DefaultUtilsPackage = []string{"flash", "utils"}

// VectorPackage is the name of the package that holds the `Vector` type.
var VectorPackage = []string{"__AS3__", "vec"}
