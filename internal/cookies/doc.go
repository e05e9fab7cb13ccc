// Package cookies keeps the name/value cookie store carried by a session.
//
// The jar holds at most one cookie per name. Adding a cookie whose name is
// already present overwrites the value without moving it, so the serialized
// Cookie header keeps first-seen order.
package cookies
