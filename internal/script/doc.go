// Package script runs JavaScript helpers with the goja engine.
//
// Sources loaded with Load, LoadURL or LoadFile share one global scope, so a
// later Call can invoke any function defined by an earlier load. Calls and
// loads stop when their context ends. Host globals such as require and
// process are removed; console output goes to the configured zap logger.
//
// Example Usage:
//
//	engine := script.New()
//	if err := engine.LoadURL(ctx, "https://example.test/sign.js"); err != nil {
//		return err
//	}
//	sig, err := engine.Call(ctx, "sign", payload)
package script
