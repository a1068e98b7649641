//go:build linux

package main

import (
	"github.com/ardnew/usbhotplug/pkg/linux/usbid"
)

// names resolves descriptor fields to human-readable strings using the
// system USB ID database.
type names struct {
	db *usbid.Database
}

func loadNames() *names {
	db := usbid.New()
	db.Load()
	return &names{db: db}
}

func (n *names) vendor(vid uint16) string       { return n.db.LookupVendor(vid) }
func (n *names) product(vid, pid uint16) string { return n.db.LookupProduct(vid, pid) }
func (n *names) class(class uint8) string       { return n.db.LookupClass(class) }
