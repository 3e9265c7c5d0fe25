// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fileio

import "io"

// Closer is io.Closer with an additional Name method that returns
// the name of the original source of the closer. osdriver.Driver
// satisfies this so callers can report which file a close error came
// from.
type Closer interface {
	io.Closer
	Name() string
}
