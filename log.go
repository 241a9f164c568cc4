// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqwest

import (
	"github.com/getlantern/golog"
)

var log = golog.LoggerFor("reqwest")
