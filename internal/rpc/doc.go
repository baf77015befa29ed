// Package rpc defines the ChatService wire contract shared by the server
// and the CLI client: request and response messages, the gRPC service
// descriptor, a client stub and a JSON codec.
//
// Messages travel as JSON under the "json" content-subtype
// (application/grpc+json). Importing the package registers the codec, and
// the client stub selects it on every call.
package rpc
