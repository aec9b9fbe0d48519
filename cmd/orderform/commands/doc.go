// Package commands implements the orderform CLI:
//
//	orderform serve               run the web form
//	orderform order               fill in and submit an order in the terminal
//	orderform validate [file|-]   check an order draft (JSON) against the schema
package commands
