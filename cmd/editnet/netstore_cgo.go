//go:build cgo

package main

import "github.com/wikimetrics/editnet/internal/netstore"

// openNetStore opens the file-based network store. Requires CGO because
// the KuzuDB driver wraps a C library.
func openNetStore(path string) (netstore.Store, error) {
	return netstore.NewKuzuFileStore(path)
}
