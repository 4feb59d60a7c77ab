//go:build !cgo

package main

import (
	"fmt"

	"github.com/wikimetrics/editnet/internal/netstore"
)

func openNetStore(path string) (netstore.Store, error) {
	return nil, fmt.Errorf("the network store is backed by KuzuDB and needs a CGO-enabled build")
}
