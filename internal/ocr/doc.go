// Package ocr wraps the Baidu general text recognition API.
//
// New performs the client-credentials token exchange; Recognize posts a
// base64 encoded image and returns the "words" of every "words_result"
// entry. All failures are failure.OCR errors carrying the service response.
package ocr
