package main

import "net/http"

// The bearer credential rides in a custom header carrying the raw session
// token. Header names are matched case-insensitively by net/http.
const _sessionTokenHeader = "X-Session-Token"

func sessionTokenFromRequest(r *http.Request) string {
	return r.Header.Get(_sessionTokenHeader)
}

func actionFromRequest(r *http.Request) string {
	return r.URL.Query().Get("action")
}

func ticketIDFromRequest(r *http.Request) string {
	return r.URL.Query().Get("id")
}
