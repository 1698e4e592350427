// Package errors provides the error taxonomy shared by the REST client,
// the discovery providers and the configuration layer.
//
// Every failure raised by this module before a request reaches the wire is
// an *AppError carrying a machine-readable ErrorCode. Use the Is* helpers
// rather than comparing messages:
//
//	if errors.IsNotReady(err) {
//	    // the client has not resolved its service address yet
//	}
package errors
