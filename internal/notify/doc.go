// Package notify provides publishers for violation-change events. The board
// is a client-side component; publishing lets embedding processes fan the
// events out to whatever alerting pipeline they run.
package notify
