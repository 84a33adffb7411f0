// Package httputil holds the JSON response helpers shared by the API
// handlers. Every error leaves the server as {"error": "..."}.
package httputil
