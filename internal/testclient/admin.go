// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package testclient

import (
	"testing"

	moovadmin "github.com/moov-io/base/admin"
)

// Admin starts an admin server on an ephemeral port and shuts it down
// with the test.
func Admin(t *testing.T) *moovadmin.Server {
	svc := moovadmin.NewServer(":0")
	go svc.Listen()
	t.Cleanup(func() { svc.Shutdown() })
	return svc
}
