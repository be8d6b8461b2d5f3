// Package common contains shared constants and sentinel errors used across
// meetpoint components.
package common

// APITokenQueryParam is the query-string key clients use to pass the static
// API token on guarded requests.
const APITokenQueryParam = "token"
