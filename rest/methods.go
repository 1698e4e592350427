package rest

import "net/http"

// Request methods. Besides the RFC 9110 methods the WebDAV and cache
// extension methods used by some services are listed.
const (
	MethodGet      = http.MethodGet
	MethodPost     = http.MethodPost
	MethodPut      = http.MethodPut
	MethodPatch    = http.MethodPatch
	MethodDelete   = http.MethodDelete
	MethodOptions  = http.MethodOptions
	MethodHead     = http.MethodHead
	MethodTrace    = http.MethodTrace
	MethodConnect  = http.MethodConnect
	MethodLink     = "LINK"
	MethodUnlink   = "UNLINK"
	MethodCopy     = "COPY"
	MethodPurge    = "PURGE"
	MethodLock     = "LOCK"
	MethodUnlock   = "UNLOCK"
	MethodPropfind = "PROPFIND"
	MethodView     = "VIEW"
)
