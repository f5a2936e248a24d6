// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package cobranca

// Version is the semantic version of this module.
const Version = "v0.3.0"
