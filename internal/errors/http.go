package errors

// IsHTTPClass reports whether err carries a code produced from a decoded
// management-API HTTP response. Transport failures never carry these codes.
func IsHTTPClass(err error) bool {
	switch GetCode(err) {
	case CodeRemoteAPI, CodeRemoteAuth, CodeResourceNotFound:
		return true
	}
	return false
}

// IsNotFound reports whether err is a remote not-found response.
func IsNotFound(err error) bool {
	return GetCode(err) == CodeResourceNotFound
}
