//go:build !linux

package main

// names is a stub on platforms without a USB ID database.
type names struct{}

func loadNames() *names { return &names{} }

func (n *names) vendor(uint16) string          { return "" }
func (n *names) product(uint16, uint16) string { return "" }
func (n *names) class(uint8) string            { return "" }
