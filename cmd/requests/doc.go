// Command requests sends HTTP requests from the command line.
//
// Usage:
//
//	requests get  [-H "Name: Value"] [-p key=value] [--jq EXPR] URL
//	requests post [-H "Name: Value"] [-p key=value | -d BODY] URL
//	requests encode URL
//	requests ocr IMAGE
//	requests js SOURCE FUNCTION [ARGS...]
//
// Configuration comes from the environment (REQUESTS_*, LOG_*, OCR_*);
// global flags override it. Logs go to stderr, response bodies to stdout.
package main
