// Package actions implements st commands on top of the engine.
//
// Each action takes a runtime.Context, calls into the engine and reports
// what happened through the context's Splog.
package actions
