// Package app contains the core application logic. It assembles the type
// universe from registered Go modules and HCL manifests, builds the registry
// over it and answers queries, either once from the command line or
// continuously over HTTP. It is decoupled from any specific entrypoint.
package app
