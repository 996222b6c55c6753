// Package hdns is a typed Go client for the Hetzner DNS API.
//
// A Client is created from an API token and exposes one sub-client per
// resource: Zones, Records and PrimaryServers. Every call runs through a
// shared pipeline that injects authentication, builds the HTTP request,
// decodes the response into typed values and maps failures onto the error
// types in this package.
//
//	client, err := hdns.New(token)
//	if err != nil {
//		// handle err
//	}
//	zones, err := client.Zones.All(ctx)
//
// The client holds no mutable request state and is safe for concurrent use.
package hdns

// Version is the library version reported to the API in the User-Agent header.
const Version = "0.4.0"
