package store

import "errors"

var (
	// ErrDocumentNotFound is returned when no document matches.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrUnknownDriver is returned for an unsupported store driver.
	ErrUnknownDriver = errors.New("unknown store driver")
	// ErrRequestFailed is returned when the CMS API answers with an error.
	ErrRequestFailed = errors.New("cms request failed")
	// ErrInvalidAssetLocator is returned for an asset locator that is not "<image|file>@<url>".
	ErrInvalidAssetLocator = errors.New("invalid asset locator")
	// ErrAssetUnavailable is returned when an asset file cannot be read for upload.
	ErrAssetUnavailable = errors.New("asset file unavailable")
)
